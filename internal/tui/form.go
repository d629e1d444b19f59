package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/items/internal/model"
)

type formMode int

const (
	formClosed formMode = iota
	formAdd
	formEdit
)

const (
	fieldName = iota
	fieldQuantity
)

// itemForm is the add form and the inline editor: a name and a quantity input.
type itemForm struct {
	mode   formMode
	editID int // item being edited, formEdit only
	focus  int
	name   textinput.Model
	qty    textinput.Model
}

func newItemForm() itemForm {
	name := textinput.New()
	name.Prompt = "Name     > "
	name.Placeholder = "Marker"
	name.CharLimit = 200

	qty := textinput.New()
	qty.Prompt = "Quantity > "
	qty.Placeholder = "3"
	qty.CharLimit = 12

	return itemForm{name: name, qty: qty}
}

func (f itemForm) open() bool { return f.mode != formClosed }

func (f *itemForm) openAdd() {
	f.mode = formAdd
	f.editID = 0
	f.name.SetValue("")
	f.qty.SetValue("")
	f.focusField(fieldName)
}

func (f *itemForm) openEdit(it model.Item) {
	f.mode = formEdit
	f.editID = it.ID
	f.name.SetValue(it.Name)
	f.name.CursorEnd()
	f.qty.SetValue(strconv.Itoa(it.Quantity))
	f.qty.CursorEnd()
	f.focusField(fieldName)
}

// reset clears and closes the form.
func (f *itemForm) reset() {
	f.mode = formClosed
	f.editID = 0
	f.name.SetValue("")
	f.qty.SetValue("")
	f.name.Blur()
	f.qty.Blur()
}

func (f *itemForm) focusField(i int) {
	f.focus = i
	if i == fieldName {
		f.qty.Blur()
		f.name.Focus()
		return
	}
	f.name.Blur()
	f.qty.Focus()
}

func (f *itemForm) next() { f.focusField((f.focus + 1) % 2) }

func (f itemForm) values() (name, quantity string) {
	return f.name.Value(), f.qty.Value()
}

func (f itemForm) update(msg tea.Msg) (itemForm, tea.Cmd) {
	var cmd tea.Cmd
	if f.focus == fieldName {
		f.name, cmd = f.name.Update(msg)
	} else {
		f.qty, cmd = f.qty.Update(msg)
	}
	return f, cmd
}

func (f itemForm) view(errMsg string) string {
	title := "Add new item"
	if f.mode == formEdit {
		title = "Edit item #" + strconv.Itoa(f.editID)
	}
	if errMsg != "" {
		title += "  " + errorStyle.Render(errMsg)
	}
	hint := helpStyle.Render("tab: next field   enter: save   esc: cancel")
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), f.name.View(), f.qty.View(), hint))
}
