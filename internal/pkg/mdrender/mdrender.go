package mdrender

import (
	"bytes"

	"github.com/yuin/goldmark"
)

var md = goldmark.New()

// ToHTML converts markdown to HTML. On conversion failure the input is
// returned untouched so callers always have usable text.
func ToHTML(markdown string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return markdown
	}
	return buf.String()
}
