package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/idilsaglam/items/internal/api"
	"github.com/idilsaglam/items/internal/console"
	"github.com/idilsaglam/items/internal/model"
)

const maxNameWidth = 40

// Status prints the status line: errors to stderr, everything else to stdout.
func Status(s console.Status) {
	if s.Message == "" {
		return
	}
	if s.IsError {
		Fail(s.Message)
		return
	}
	OK(s.Message)
}

// ItemLines renders the collection in response order, one row per item.
func ItemLines(items []model.Item) []string {
	t := Current()
	header := fmt.Sprintf("%s  %s %d  %s %d",
		C(t.Title, "Items"),
		C(t.Accent, "Count"), len(items),
		C(t.Accent, "Total quantity"), totalQuantity(items),
	)
	lines := []string{header, ""}
	if len(items) == 0 {
		return append(lines, C(t.Muted, console.EmptyState))
	}

	maxQty := 0
	for _, it := range items {
		if it.Quantity > maxQty {
			maxQty = it.Quantity
		}
	}
	for _, it := range items {
		name := runewidth.FillRight(runewidth.Truncate(it.Name, maxNameWidth, "..."), maxNameWidth)
		lines = append(lines, fmt.Sprintf("%s %s %s %5d",
			C(dim, fmt.Sprintf("#%-4d", it.ID)),
			name,
			C(t.Muted, Bar(it.Quantity, maxQty, 12)),
			it.Quantity,
		))
	}
	return lines
}

func totalQuantity(items []model.Item) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

// ExchangeLines renders the request/response detail of one action.
func ExchangeLines(ex *api.Exchange) []string {
	if ex == nil {
		return nil
	}
	t := Current()
	statusColor := t.Success
	if ex.IsError {
		statusColor = t.Error
	}
	lines := []string{
		C(t.Title, ex.Title),
		"",
		C(t.Muted, "Method  ") + ex.Method,
		C(t.Muted, "URL     ") + ex.URL,
		C(t.Muted, "Status  ") + C(statusColor, fmt.Sprintf("%d %s", ex.Status, ex.StatusText)),
		"",
	}
	lines = append(lines, wrap(ex.Description, 72)...)
	if ex.RequestBody != "" {
		lines = append(lines, "", C(t.Accent, "Request body"))
		lines = append(lines, strings.Split(PrettyJSON(ex.RequestBody), "\n")...)
	}
	if ex.ResponseBody != "" {
		lines = append(lines, "", C(t.Accent, "Response body"))
		lines = append(lines, strings.Split(PrettyJSON(ex.ResponseBody), "\n")...)
	}
	return lines
}

// PrettyJSON indents s when it is JSON and returns it unchanged otherwise.
func PrettyJSON(s string) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(s), "", "  "); err != nil {
		return s
	}
	return buf.String()
}

func wrap(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	return append(lines, line)
}
