package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/items/internal/console"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	nm := next.(Model)
	nm.resizeList()
	return nm, cmd
}

func (m Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		if m.modal.visible() {
			m.modal.layout(m.width, m.height)
			m.modal.render(m.width, m.height)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case actionMsg:
		return m.handleAction(msg.result)

	case refreshMsg:
		m.pending--
		r := msg.result
		if r.Listed {
			m.setItems(r.Items)
			m.examples = r.Examples
		}
		if r.Status.Message != "" {
			m.status = r.Status
		}
		return m, nil

	case clipboardMsg:
		if msg.err != nil {
			m.status = console.Status{Message: "Copy failed: " + msg.err.Error(), IsError: true}
		} else {
			m.status = console.Status{Message: "Response copied"}
		}
		return m, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// the modal sits on top of everything else
	if m.modal.visible() {
		var cmd tea.Cmd
		m.modal, cmd = m.modal.update(msg, m.width, m.height)
		return m, cmd
	}

	if m.form.open() {
		return m.updateForm(msg)
	}
	return m.updateList(msg)
}

// handleAction applies a finished action: status line, list, form, modal.
func (m Model) handleAction(r console.Result) (tea.Model, tea.Cmd) {
	m.pending--
	if r.Status.Message != "" {
		m.status = r.Status
	}
	if r.Listed {
		m.setItems(r.Items)
		m.examples = r.Examples
	}
	if r.ResetForm || (r.Refresh && m.form.mode == formEdit) {
		m.form.reset()
	}
	if r.Exchange != nil && m.diagnostics {
		m.modal.show(r.Exchange, m.width, m.height)
	}
	if r.Refresh {
		return m, m.refresh()
	}
	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			m.form.reset()
			return m, nil
		case "tab", "shift+tab", "down", "up":
			m.form.next()
			return m, nil
		case "enter":
			return m, m.submitForm()
		}
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(k, m.keys.Refresh):
			return m, m.listItems()
		case key.Matches(k, m.keys.Add):
			m.form.openAdd()
			return m, nil
		case key.Matches(k, m.keys.Edit):
			if it, ok := m.selected(); ok {
				m.form.openEdit(it)
			}
			return m, nil
		case key.Matches(k, m.keys.Delete):
			return m, m.deleteSelected()
		case key.Matches(k, m.keys.Examples):
			m.showExamples = !m.showExamples
			return m, nil
		case key.Matches(k, m.keys.Diagnose):
			return m, m.diagnose(k.String())
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}
