package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/mentetech/blog-api/configs"
)

func testRenderer() *Renderer {
	return NewRenderer(config.Sanitizer{
		AllowedTags: []string{"h1", "h2", "p", "a", "strong", "em", "ul", "li", "code", "pre", "img"},
		AllowedAttributes: map[string][]string{
			"a":   {"href", "title", "target", "rel"},
			"img": {"src", "alt"},
		},
	})
}

func TestProcessMarkdown(t *testing.T) {
	r := testRenderer()

	out, err := r.Process("# Título\n\nUm parágrafo com **negrito**.", FormatMarkdown)
	require.NoError(t, err)
	assert.Contains(t, out, "Título")
	assert.Contains(t, out, "<strong>negrito</strong>")
}

func TestProcessStripsScripts(t *testing.T) {
	r := testRenderer()

	tests := []struct {
		name   string
		input  string
		format string
	}{
		{"script tag in html mode", `<p>ok</p><script>alert(1)</script>`, FormatHTML},
		{"script tag inside markdown", "texto\n\n<script>alert(1)</script>\n", FormatMarkdown},
		{"inline event handler", `<p onclick="alert(1)">ok</p>`, FormatHTML},
		{"javascript uri", `<a href="javascript:alert(1)">x</a>`, FormatHTML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.Process(tt.input, tt.format)
			require.NoError(t, err)
			assert.NotContains(t, out, "<script")
			assert.NotContains(t, out, "alert(1)</script>")
			assert.NotContains(t, out, "onclick")
			assert.NotContains(t, out, "javascript:")
		})
	}
}

func TestProcessKeepsAllowedMarkup(t *testing.T) {
	r := testRenderer()

	out, err := r.Process(`<p>oi</p><a href="https://example.com" rel="nofollow">link</a>`, FormatHTML)
	require.NoError(t, err)
	assert.Contains(t, out, `<p>oi</p>`)
	assert.Contains(t, out, `href="https://example.com"`)
}

func TestProcessDeterministic(t *testing.T) {
	r := testRenderer()
	input := "## Seção\n\n- item um\n- item dois\n\n[site](https://mentetech.com.br)"

	first, err := r.Process(input, FormatMarkdown)
	require.NoError(t, err)
	second, err := r.Process(input, FormatMarkdown)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestProcessUnknownFormat(t *testing.T) {
	r := testRenderer()

	_, err := r.Process("qualquer coisa", "docx")
	assert.ErrorIs(t, err, ErrUnprocessable)
}

func TestSanitizeDropsDisallowedTags(t *testing.T) {
	r := testRenderer()

	out := r.Sanitize(`<table><tr><td>x</td></tr></table><p>fica</p>`)
	assert.NotContains(t, out, "<table>")
	assert.Contains(t, out, "<p>fica</p>")
}
