package goldmark

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/passagecli/passage"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
)

const minWrap = 10

type styles struct {
	heading lipgloss.Style
	strong  lipgloss.Style
	em      lipgloss.Style
	strike  lipgloss.Style
	code    lipgloss.Style
	muted   lipgloss.Style
	link    lipgloss.Style
}

func newStyles(theme passage.Theme) styles {
	return styles{
		heading: lipgloss.NewStyle().Foreground(color(theme.Accent)).Bold(true),
		strong:  lipgloss.NewStyle().Bold(true),
		em:      lipgloss.NewStyle().Italic(true),
		strike:  lipgloss.NewStyle().Strikethrough(true),
		code:    lipgloss.NewStyle().Foreground(color(theme.Code)),
		muted:   lipgloss.NewStyle().Foreground(color(theme.Muted)).Faint(true),
		link:    lipgloss.NewStyle().Underline(true),
	}
}

func color(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

// writer walks a parsed document and accumulates styled lines.
type writer struct {
	strings.Builder
	src []byte
	st  styles
}

func newWriter(src []byte, theme passage.Theme) *writer {
	return &writer{src: src, st: newStyles(theme)}
}

// blocks renders every child block of n. Each output line starts with
// prefix, and width is the room left after it.
func (w *writer) blocks(n ast.Node, width int, prefix string) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		w.block(c, width, prefix)
		if c.NextSibling() != nil {
			w.WriteString(strings.TrimRight(prefix, " ") + "\n")
		}
	}
}

func (w *writer) block(n ast.Node, width int, prefix string) {
	switch n := n.(type) {
	case *ast.Heading:
		w.wrapped(w.st.heading.Render(w.inline(n)), width, prefix, prefix)
	case *ast.Paragraph, *ast.TextBlock:
		w.wrapped(w.inline(n), width, prefix, prefix)
	case *ast.FencedCodeBlock:
		if lang := string(n.Language(w.src)); lang != "" {
			w.line(prefix, w.st.muted.Render(lang))
		}
		w.code(n, prefix)
	case *ast.CodeBlock:
		w.code(n, prefix)
	case *ast.Blockquote:
		gutter := w.st.muted.Render("┃") + " "
		w.blocks(n, width-2, prefix+gutter)
	case *ast.List:
		w.list(n, width, prefix)
	case *ast.ThematicBreak:
		w.line(prefix, w.st.muted.Render(strings.Repeat("─", max(width, 3))))
	case *ast.HTMLBlock:
		w.raw(n, prefix)
	default:
		w.blocks(n, width, prefix)
	}
}

func (w *writer) list(n *ast.List, width int, prefix string) {
	num := n.Start
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		marker := "- "
		if n.IsOrdered() {
			marker = strconv.Itoa(num) + ". "
			num++
		}
		pad := strings.Repeat(" ", runewidth.StringWidth(marker))
		inner := max(width-runewidth.StringWidth(marker), minWrap)

		first := true
		for ic := c.FirstChild(); ic != nil; ic = ic.NextSibling() {
			lead := prefix + pad
			if first {
				lead = prefix + marker
			}
			switch ic.(type) {
			case *ast.Paragraph, *ast.TextBlock:
				w.wrapped(w.inline(ic), inner, lead, prefix+pad)
			default:
				if first {
					w.line(prefix, strings.TrimRight(marker, " "))
				}
				w.block(ic, inner, prefix+pad)
			}
			first = false
		}
	}
}

// wrapped word-wraps s to width and writes it, using first as the prefix of
// the first line and rest for continuation lines.
func (w *writer) wrapped(s string, width int, first, rest string) {
	width = max(width, minWrap)
	out := lipgloss.NewStyle().Width(width).Render(s)
	for i, l := range strings.Split(out, "\n") {
		p := rest
		if i == 0 {
			p = first
		}
		w.line(p, strings.TrimRight(l, " "))
	}
}

func (w *writer) code(n ast.Node, prefix string) {
	gutter := w.st.muted.Render("│") + " "
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		w.line(prefix+gutter, strings.TrimRight(string(seg.Value(w.src)), "\r\n"))
	}
}

func (w *writer) raw(n ast.Node, prefix string) {
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		w.line(prefix, strings.TrimRight(string(seg.Value(w.src)), "\r\n"))
	}
}

func (w *writer) line(prefix, s string) {
	w.WriteString(prefix)
	w.WriteString(s)
	w.WriteByte('\n')
}

func (w *writer) inline(n ast.Node) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		w.span(c, &b)
	}
	return b.String()
}

func (w *writer) span(n ast.Node, b *strings.Builder) {
	switch n := n.(type) {
	case *ast.Text:
		b.Write(n.Segment.Value(w.src))
		switch {
		case n.HardLineBreak():
			b.WriteByte('\n')
		case n.SoftLineBreak():
			b.WriteByte(' ')
		}
	case *ast.String:
		b.Write(n.Value)
	case *ast.Emphasis:
		if n.Level >= 2 {
			b.WriteString(w.st.strong.Render(w.inline(n)))
		} else {
			b.WriteString(w.st.em.Render(w.inline(n)))
		}
	case *east.Strikethrough:
		b.WriteString(w.st.strike.Render(w.inline(n)))
	case *east.TaskCheckBox:
		if n.IsChecked {
			b.WriteString("[x]")
		} else {
			b.WriteString("[ ]")
		}
	case *ast.CodeSpan:
		b.WriteString(w.st.code.Render(w.inline(n)))
	case *ast.Link:
		b.WriteString(w.st.link.Render(w.inline(n)))
		b.WriteString(" " + w.st.muted.Render("("+string(n.Destination)+")"))
	case *ast.Image:
		b.WriteString(w.st.link.Render(w.inline(n)))
		b.WriteString(" " + w.st.muted.Render("("+string(n.Destination)+")"))
	case *ast.AutoLink:
		b.WriteString(w.st.link.Render(string(n.URL(w.src))))
	case *ast.RawHTML:
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			b.Write(seg.Value(w.src))
		}
	default:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			w.span(c, b)
		}
	}
}
