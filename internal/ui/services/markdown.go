package services

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

// MarkdownRenderer renders markdown for a terminal of the given width.
type MarkdownRenderer interface {
	Render(content string, width int) (string, error)
}

// GlamourRenderer renders markdown with glamour, caching one renderer per
// wrap width.
type GlamourRenderer struct {
	mu        sync.Mutex
	style     string
	renderers map[int]*glamour.TermRenderer
}

// NewGlamourRenderer creates a renderer for a named glamour style such as
// "dark" or "light". An empty style or "auto" picks one from the terminal.
func NewGlamourRenderer(style string) *GlamourRenderer {
	if style == "" {
		style = styles.AutoStyle
	}
	return &GlamourRenderer{
		style:     style,
		renderers: make(map[int]*glamour.TermRenderer),
	}
}

// Render implements MarkdownRenderer.
func (g *GlamourRenderer) Render(content string, width int) (string, error) {
	tr, err := g.renderer(width)
	if err != nil {
		return "", err
	}
	return tr.Render(content)
}

func (g *GlamourRenderer) renderer(width int) (*glamour.TermRenderer, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if tr, ok := g.renderers[width]; ok {
		return tr, nil
	}

	tr, err := glamour.NewTermRenderer(glamour.WithStandardStyle(g.style), glamour.WithWordWrap(width))
	if err != nil {
		return nil, err
	}
	g.renderers[width] = tr
	return tr, nil
}

// RenderMarkdown renders content, falling back to the raw text if the
// renderer fails.
func RenderMarkdown(content string, width int, renderer MarkdownRenderer) string {
	if renderer == nil {
		return content
	}
	out, err := renderer.Render(content, width)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}
