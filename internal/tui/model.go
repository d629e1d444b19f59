package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/idilsaglam/items/internal/api"
	"github.com/idilsaglam/items/internal/console"
	"github.com/idilsaglam/items/internal/model"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Options configure the interactive console.
type Options struct {
	Console *console.Console
	// Origin is only displayed in the header.
	Origin string
	// Diagnostics enables the exchange modal and the error triggers.
	Diagnostics bool
	Theme       string
}

// listItem adapts model.Item to bubbles/list.Item
type listItem struct{ model.Item }

func (i listItem) Title() string       { return i.Name }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.Name }

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	line := fmt.Sprintf("%s %s  %s",
		mutedStyle.Render(fmt.Sprintf("#%-4d", it.ID)),
		it.Name,
		accentStyle.Render(fmt.Sprintf("× %d", it.Quantity)),
	)
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprint(w, xansi.Truncate(prefix+line, max(m.Width(), 1), "…"))
}

// actionMsg carries the outcome of a user action.
type actionMsg struct{ result console.Result }

// refreshMsg carries the silent refetch that follows a mutation.
type refreshMsg struct{ result console.Result }

type Model struct {
	ctx         context.Context
	console     *console.Console
	origin      string
	diagnostics bool

	list     list.Model
	items    []model.Item
	examples map[string]any

	status  console.Status
	pending int
	spinner spinner.Model

	form         itemForm
	showExamples bool
	modal        exchangeModal

	keys keyMap
	help help.Model

	width, height int
}

func New(ctx context.Context, opt Options) Model {
	l := list.New(nil, itemDelegate{}, defaultWidth, defaultHeight)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(true)
	l.SetShowPagination(true)
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("item", "items")
	l.Styles.PaginationStyle = helpStyle
	l.DisableQuitKeybindings()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:         ctx,
		console:     opt.Console,
		origin:      opt.Origin,
		diagnostics: opt.Diagnostics,
		list:        l,
		pending:     1,
		spinner:     sp,
		form:        newItemForm(),
		modal:       newExchangeModal(),
		keys:        newKeyMap(opt.Diagnostics),
		help:        help.New(),
		width:       defaultWidth,
		height:      defaultHeight,
	}
	m.resizeList()
	return m
}

// Init loads the list on start. New already counts that load as pending,
// since Init cannot change the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.initialLoad(), m.spinner.Tick)
}

func (m Model) initialLoad() tea.Cmd { return m.run(m.console.List) }

// Items returns what is currently rendered.
func (m Model) Items() []model.Item { return m.items }

// Status returns the status line.
func (m Model) Status() console.Status { return m.status }

// ModalVisible reports the modal state.
func (m Model) ModalVisible() bool { return m.modal.visible() }

// Exchange is the content of the modal, stale once hidden.
func (m Model) Exchange() *api.Exchange { return m.modal.exchange }

func (m *Model) setItems(items []model.Item) {
	m.items = items
	li := make([]list.Item, 0, len(items))
	for _, it := range items {
		li = append(li, listItem{it})
	}
	m.list.SetItems(li)
}

func (m Model) selected() (model.Item, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.Item{}, false
	}
	return it.Item, true
}

// ---- commands: one request each ----

func (m *Model) act(fn func(context.Context) console.Result) tea.Cmd {
	m.pending++
	return m.run(fn)
}

func (m Model) run(fn func(context.Context) console.Result) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg { return actionMsg{result: fn(ctx)} }
}

func (m *Model) listItems() tea.Cmd {
	return m.act(m.console.List)
}

func (m *Model) refresh() tea.Cmd {
	m.pending++
	ctx, c := m.ctx, m.console
	return func() tea.Msg { return refreshMsg{result: c.Refresh(ctx)} }
}

func (m *Model) submitForm() tea.Cmd {
	name, qty := m.form.values()
	if _, err := console.ParseInput(name, qty); err != nil {
		m.status = console.Status{Message: console.MsgRequired, IsError: true}
		return nil
	}
	c := m.console
	if m.form.mode == formEdit {
		id := m.form.editID
		return m.act(func(ctx context.Context) console.Result { return c.Update(ctx, id, name, qty) })
	}
	return m.act(func(ctx context.Context) console.Result { return c.Add(ctx, name, qty) })
}

func (m *Model) deleteSelected() tea.Cmd {
	it, ok := m.selected()
	if !ok {
		return nil
	}
	c, id := m.console, it.ID
	return m.act(func(ctx context.Context) console.Result { return c.Delete(ctx, id) })
}

func (m *Model) diagnose(keyName string) tea.Cmd {
	i := int(keyName[0] - '1')
	if i < 0 || i >= len(api.Triggers) {
		return nil
	}
	c, t := m.console, api.Triggers[i]
	return m.act(func(ctx context.Context) console.Result { return c.Diagnose(ctx, t) })
}

func (m Model) examplesJSON() string {
	return strings.TrimSpace(console.ExamplesJSON(m.examples))
}
