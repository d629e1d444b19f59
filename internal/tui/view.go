package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/items/internal/console"
)

func (m Model) View() string {
	if m.modal.visible() {
		return m.modal.view(m.width, m.height)
	}

	header := titleStyle.Render("Items Console")
	if m.origin != "" {
		header += mutedStyle.Render("  " + m.origin)
	}

	footer := m.footer()
	var body string
	if len(m.items) == 0 {
		body = mutedStyle.Render(console.EmptyState)
	} else {
		body = m.list.View()
	}

	content := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return panelStyle.Render(content)
}

// footer is everything under the list.
func (m Model) footer() string {
	var below []string
	if m.showExamples {
		below = append(below, panelStyle.Render(
			accentStyle.Render("Request examples")+"\n"+m.examplesJSON(),
		))
	}
	if m.form.open() {
		errMsg := ""
		if m.status.IsError && m.status.Message == console.MsgRequired {
			errMsg = m.status.Message
		}
		below = append(below, m.form.view(errMsg))
	}
	below = append(below, m.statusLine(), m.help.View(m.keys))
	return strings.Join(below, "\n")
}

// resizeList fits the list between the header and the footer so paging
// matches what View draws.
func (m *Model) resizeList() {
	// border (2) + header (1) + footer
	h := max(m.height-3-lipgloss.Height(m.footer()), 3)
	m.list.SetSize(max(m.width-4, 20), h)
}

func (m Model) statusLine() string {
	line := ""
	if m.status.Message != "" {
		sym := "✔ "
		if m.status.IsError {
			sym = "✖ "
		}
		line = statusStyle(m.status.IsError).Render(sym + m.status.Message)
	}
	if m.pending > 0 {
		line = fmt.Sprintf("%s %s", m.spinner.View(), line)
	}
	return line
}
