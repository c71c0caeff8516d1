package content

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"

	config "github.com/mentetech/blog-api/configs"
)

const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// ErrUnprocessable is returned when authored content cannot be converted.
// Callers surface it as a field-level error and block persistence.
var ErrUnprocessable = errors.New("content could not be processed")

// Renderer converts authored Markdown or raw HTML into HTML that is safe to
// store and to inject into a page. The allow-list comes from configuration.
type Renderer struct {
	policy *bluemonday.Policy
}

func NewRenderer(cfg config.Sanitizer) *Renderer {
	policy := bluemonday.NewPolicy()
	policy.AllowElements(cfg.AllowedTags...)
	for tag, attrs := range cfg.AllowedAttributes {
		policy.AllowAttrs(attrs...).OnElements(tag)
	}
	policy.AllowStandardURLs()

	return &Renderer{policy: policy}
}

// Process converts input in the given format into sanitized HTML. The result
// is deterministic for identical input and never contains script elements,
// inline event handlers, or javascript: URIs.
func (r *Renderer) Process(input, format string) (string, error) {
	switch format {
	case FormatHTML:
		return r.Sanitize(input), nil
	case FormatMarkdown, "":
		rendered, err := renderMarkdown(input)
		if err != nil {
			return "", err
		}
		return r.Sanitize(rendered), nil
	default:
		return "", ErrUnprocessable
	}
}

// Sanitize applies the allow-list to an HTML fragment. Stored bodies are run
// through this again on the public read path in case the list has tightened
// since they were written.
func (r *Renderer) Sanitize(htmlFragment string) string {
	return strings.TrimSpace(r.policy.Sanitize(htmlFragment))
}

// renderMarkdown converts Markdown to HTML. The parser keeps state per
// document, so a fresh one is built on every call. Panics on pathological
// input are recovered into ErrUnprocessable rather than taking the page down.
func renderMarkdown(input string) (out string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("markdown conversion panicked", "panic", rec)
			out = ""
			err = ErrUnprocessable
		}
	}()

	extensions := parser.CommonExtensions | parser.AutoHeadingIDs
	p := parser.NewWithExtensions(extensions)
	doc := p.Parse([]byte(input))

	htmlFlags := html.CommonFlags | html.HrefTargetBlank
	renderer := html.NewRenderer(html.RendererOptions{Flags: htmlFlags})

	return string(markdown.Render(doc, renderer)), nil
}
