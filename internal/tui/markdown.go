package tui

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"

	"github.com/idilsaglam/items/internal/ui"
)

var (
	mdRendererMu sync.Mutex
	// Renderers are cached per style and wrap width. WithAutoStyle is avoided
	// because its terminal background query can block.
	mdRenderers = map[string]*glamour.TermRenderer{}
)

func markdownStyle() string {
	if plainColors() {
		return "notty"
	}
	return "dark"
}

func renderer(width int) *glamour.TermRenderer {
	style := markdownStyle()
	key := style + ":" + strconv.Itoa(width)

	mdRendererMu.Lock()
	defer mdRendererMu.Unlock()
	if r := mdRenderers[key]; r != nil {
		return r
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	mdRenderers[key] = r
	return r
}

// renderBody shows a request or response body as a highlighted JSON block.
// Non-JSON bodies fall back to a plain code block.
func renderBody(body string, width int) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return ""
	}
	if width < 20 {
		width = 20
	}
	pretty := ui.PrettyJSON(body)
	lang := "json"
	if pretty == body && !strings.HasPrefix(body, "{") && !strings.HasPrefix(body, "[") {
		lang = "text"
	}
	r := renderer(width)
	if r == nil {
		return pretty
	}
	out, err := r.Render("```" + lang + "\n" + pretty + "\n```")
	if err != nil {
		return pretty
	}
	return strings.Trim(out, "\n")
}
