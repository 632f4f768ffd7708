package beamer

import (
	"strings"

	"github.com/goliatone/go-json2beamer/pkg/markup"
)

var specialReplacer = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`%`, `\%`,
	`&`, `\&`,
	`#`, `\#`,
	`_`, `\_`,
	`$`, `\$`,
	`^`, `\^{}`,
	`~`, `\textasciitilde{}`,
	"\n", `\newline{}`,
)

// EscapePlain escapes LaTeX reserved characters. Markers are not interpreted.
func EscapePlain(text string) string {
	return specialReplacer.Replace(text)
}

// Escape converts question text into LaTeX: reserved characters are escaped,
// **bold** becomes \textbf and !!alert!! becomes \alert.
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
			b.WriteString(`\textbf{`)
			writeNodes(b, node.Children)
			b.WriteByte('}')
		case markup.KindAlert:
			b.WriteString(`\alert{`)
			writeNodes(b, node.Children)
			b.WriteByte('}')
		default:
			b.WriteString(EscapePlain(node.Text))
		}
	}
}
