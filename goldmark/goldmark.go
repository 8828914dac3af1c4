// Package goldmark renders model responses written in markdown as styled
// terminal text. Parsing is done by goldmark and styling by lipgloss.
package goldmark

import (
	"strings"

	"github.com/passagecli/passage"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// DefaultWidth is used when no positive width is configured.
const DefaultWidth = 80

// Renderer renders markdown for stdout outputs.
type Renderer struct {
	width int
	theme passage.Theme
	md    goldmark.Markdown
}

// Option configures a [Renderer].
type Option func(*Renderer)

// WithWidth sets the wrap width for paragraphs and list items.
func WithWidth(width int) Option {
	return func(r *Renderer) {
		if width > 0 {
			r.width = width
		}
	}
}

// WithTheme sets the color mapping.
func WithTheme(theme passage.Theme) Option {
	return func(r *Renderer) { r.theme = theme }
}

// New creates a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		width: DefaultWidth,
		theme: passage.DefaultTheme(),
		md:    goldmark.New(goldmark.WithExtensions(extension.Strikethrough, extension.TaskList)),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Render returns source as styled terminal text. Paragraphs and list items
// are wrapped to the configured width; code blocks are never reflowed.
// It has the signature expected by passage.WithStdoutRenderer.
func (r *Renderer) Render(source string) string {
	if strings.TrimSpace(source) == "" {
		return source
	}
	src := []byte(source)
	doc := r.md.Parser().Parse(text.NewReader(src))
	w := newWriter(src, r.theme)
	w.blocks(doc, r.width, "")
	return strings.TrimRight(w.String(), "\n")
}

// Render is a convenience wrapper around New(...).Render.
func Render(source string, width int, theme passage.Theme) string {
	return New(WithWidth(width), WithTheme(theme)).Render(source)
}
