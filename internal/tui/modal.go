package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/idilsaglam/items/internal/api"
)

type modalState int

const (
	modalHidden modalState = iota
	modalVisible
)

const (
	modalMaxWidth = 96
	modalMinWidth = 30
	closeLabel    = "Close"
)

type rect struct{ x, y, w, h int }

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// exchangeModal shows the request/response of the latest action. Opening it
// again replaces the content; there is never more than one.
type exchangeModal struct {
	state    modalState
	exchange *api.Exchange
	viewport viewport.Model
	keys     modalKeyMap
	help     help.Model

	// last rendered box and where it sits on screen, for mouse hit-tests
	rendered string
	box      rect
	button   rect
}

type clipboardMsg struct{ err error }

func newExchangeModal() exchangeModal {
	return exchangeModal{
		viewport: viewport.New(0, 0),
		keys:     newModalKeyMap(),
		help:     help.New(),
	}
}

func (d exchangeModal) visible() bool { return d.state == modalVisible }

func (d *exchangeModal) show(ex *api.Exchange, width, height int) {
	d.state = modalVisible
	d.exchange = ex
	d.layout(width, height)
	d.viewport.GotoTop()
	d.render(width, height)
}

func (d *exchangeModal) hide() { d.state = modalHidden }

// layout sizes the viewport for the screen and refills it.
func (d *exchangeModal) layout(width, height int) {
	if d.exchange == nil {
		return
	}
	boxW := min(width-4, modalMaxWidth)
	boxW = max(boxW, modalMinWidth)
	inner := boxW - 4 // border + horizontal padding

	content := d.content(inner)
	// border (2) + button row (1) + one row of margin above and below
	vpH := min(lipgloss.Height(content), max(height-5, 3))
	d.viewport.Width = inner
	d.viewport.Height = vpH
	d.viewport.SetContent(content)
}

func (d exchangeModal) content(width int) string {
	ex := d.exchange
	label := func(s string) string { return mutedStyle.Render(fmt.Sprintf("%-8s", s)) }
	status := fmt.Sprintf("%d %s", ex.Status, ex.StatusText)

	parts := []string{
		xansi.Truncate(titleStyle.Render(ex.Title), width, "…"),
		"",
		label("Method") + ex.Method,
		xansi.Truncate(label("URL")+ex.URL, width, "…"),
		label("Status") + statusStyle(ex.IsError).Render(status),
		"",
		lipgloss.NewStyle().Width(width).Render(ex.Description),
	}
	if ex.RequestBody != "" {
		parts = append(parts, "", accentStyle.Render("Request body"), renderBody(ex.RequestBody, width))
	}
	if ex.ResponseBody != "" {
		parts = append(parts, "", accentStyle.Render("Response body"), renderBody(ex.ResponseBody, width))
	}
	return strings.Join(parts, "\n")
}

// render draws the box and records its geometry as lipgloss.Place will
// center it on a width x height screen.
func (d *exchangeModal) render(width, height int) {
	if d.exchange == nil {
		return
	}
	style := modalStyle
	if d.exchange.IsError {
		style = modalErrorStyle
	}
	button := buttonStyle.Render(closeLabel)
	d.help.Width = max(d.viewport.Width-lipgloss.Width(button)-2, 0)
	footer := button + "  " + d.help.ShortHelpView(d.keys.ShortHelp())
	d.rendered = style.Width(d.viewport.Width + 2).Render(d.viewport.View() + "\n" + footer)

	w, h := lipgloss.Width(d.rendered), lipgloss.Height(d.rendered)
	d.box = rect{x: max(width-w, 0) / 2, y: max(height-h, 0) / 2, w: w, h: h}
	// the button sits on the last content row, after the left border and padding
	d.button = rect{x: d.box.x + 2, y: d.box.y + h - 2, w: lipgloss.Width(button), h: 1}
}

func (d exchangeModal) view(width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, d.rendered)
}

// update handles input while the modal is visible. Everything is swallowed
// so nothing reaches the list underneath.
func (d exchangeModal) update(msg tea.Msg, width, height int) (exchangeModal, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, d.keys.Close):
			d.hide()
			return d, nil
		case key.Matches(msg, d.keys.Copy):
			body := d.exchange.ResponseBody
			return d, func() tea.Msg { return clipboardMsg{err: clipboard.WriteAll(body)} }
		case key.Matches(msg, d.keys.Up), key.Matches(msg, d.keys.Down):
			var cmd tea.Cmd
			d.viewport, cmd = d.viewport.Update(msg)
			d.render(width, height)
			return d, cmd
		}
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return d, nil
		}
		switch msg.Button {
		case tea.MouseButtonLeft:
			// overlay click or close button closes; clicks on the content do not
			if !d.box.contains(msg.X, msg.Y) || d.button.contains(msg.X, msg.Y) {
				d.hide()
			}
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
			var cmd tea.Cmd
			d.viewport, cmd = d.viewport.Update(msg)
			d.render(width, height)
			return d, cmd
		}
	}
	return d, nil
}
