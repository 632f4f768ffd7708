package validation

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-json2beamer/pkg/markup"
)

var (
	htmlPolicyOnce sync.Once
	htmlPolicy     *bluemonday.Policy
)

var htmlMarkerReplacer = strings.NewReplacer(
	"<b>", markup.BoldMarker, "</b>", markup.BoldMarker,
	"<strong>", markup.BoldMarker, "</strong>", markup.BoldMarker,
	"<em>", markup.AlertMarker, "</em>", markup.AlertMarker,
	"<i>", markup.AlertMarker, "</i>", markup.AlertMarker,
	"<mark>", markup.AlertMarker, "</mark>", markup.AlertMarker,
	"<br/>", "\n", "<br>", "\n", "<br />", "\n",
	"<p>", "", "</p>", "\n",
)

// htmlToMarkers converts HTML-formatted question text into plain text with
// rich-text markers. Every element other than the emphasis tags is dropped.
func htmlToMarkers(raw string) string {
	if !strings.ContainsAny(raw, "<&") {
		return raw
	}
	cleaned := htmlSanitizer().Sanitize(raw)
	converted := htmlMarkerReplacer.Replace(cleaned)
	return html.UnescapeString(converted)
}

func htmlSanitizer() *bluemonday.Policy {
	htmlPolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()
		policy.AllowElements("b", "strong", "em", "i", "mark", "br", "p")
		htmlPolicy = policy
	})
	return htmlPolicy
}
