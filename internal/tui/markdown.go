package tui

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// Renderers are cached per wrap width and style. Building one with
// WithAutoStyle can trigger terminal capability queries that block on some
// terminals, so the style is picked up front and the renderer reused.
var mdCache = struct {
	sync.Mutex
	byKey map[string]*glamour.TermRenderer
}{byKey: map[string]*glamour.TermRenderer{}}

func markdownStyle() string {
	if hasDarkBackground() {
		return "dark"
	}
	return "light"
}

func markdownRenderer(style string, width int) (*glamour.TermRenderer, error) {
	key := style + ":" + strconv.Itoa(width)

	mdCache.Lock()
	defer mdCache.Unlock()
	if r, ok := mdCache.byKey[key]; ok {
		return r, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	mdCache.byKey[key] = r
	return r, nil
}

// renderMarkdown renders an item description for the detail pane. On any
// renderer failure the raw markdown is shown instead.
func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}
	r, err := markdownRenderer(markdownStyle(), width)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}
