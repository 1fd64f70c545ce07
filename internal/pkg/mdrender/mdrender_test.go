package mdrender

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToHTML(t *testing.T) {
	out := ToHTML("**bold** text")
	require.Contains(t, out, "<strong>bold</strong>")
}

func TestToHTML_PlainText(t *testing.T) {
	out := ToHTML("just a sentence")
	require.Contains(t, out, "just a sentence")
}
