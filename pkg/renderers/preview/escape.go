package preview

import (
	"html"
	"strings"

	"github.com/goliatone/go-json2beamer/pkg/markup"
)

// Escape converts question text into HTML: text is escaped, **bold** becomes
// <strong>, !!alert!! becomes <mark> and line breaks become <br>.
func Escape(text string) (string, error) {
	nodes, err := markup.Parse(text)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	writeNodes(&b, nodes)
	return b.String(), nil
}

func writeNodes(b *strings.Builder, nodes []markup.Node) {
	for _, node := range nodes {
		switch node.Kind {
		case markup.KindBold:
			b.WriteString("<strong>")
			writeNodes(b, node.Children)
			b.WriteString("</strong>")
		case markup.KindAlert:
			b.WriteString("<mark>")
			writeNodes(b, node.Children)
			b.WriteString("</mark>")
		default:
			b.WriteString(strings.ReplaceAll(html.EscapeString(node.Text), "\n", "<br>"))
		}
	}
}
