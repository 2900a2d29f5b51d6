package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"remindo/internal/config"
)

type keyMap struct {
	Up              key.Binding
	Down            key.Binding
	Add             key.Binding
	Edit            key.Binding
	Toggle          key.Binding
	Delete          key.Binding
	Theme           key.Binding
	FilterAll       key.Binding
	FilterPending   key.Binding
	FilterCompleted key.Binding
	CycleFilter     key.Binding
	Quit            key.Binding

	Confirm   key.Binding
	Cancel    key.Binding
	NextField key.Binding
	PrevField key.Binding
	PrioUp    key.Binding
	PrioDown  key.Binding
}

func newKeyMap(k config.Keymap) keyMap {
	return keyMap{
		Up:              binding("move up", k.Up, "up"),
		Down:            binding("move down", k.Down, "down"),
		Add:             binding("add", k.Add),
		Edit:            binding("edit", k.Edit),
		Toggle:          binding("complete/undo", k.Toggle),
		Delete:          binding("delete", k.Delete),
		Theme:           binding("theme", k.Theme),
		FilterAll:       binding("all", k.FilterAll),
		FilterPending:   binding("pending", k.FilterPend),
		FilterCompleted: binding("completed", k.FilterDone),
		CycleFilter:     binding("next filter", k.CycleFilter),
		Quit:            binding("quit", k.Quit, "ctrl+c"),
		Confirm:         binding("save", k.Confirm),
		Cancel:          binding("cancel", k.Cancel),
		NextField:       binding("next field", k.NextField),
		PrevField:       binding("prev field", "shift+tab"),
		PrioUp:          binding("priority", "right"),
		PrioDown:        binding("priority", "left"),
	}
}

// binding builds a key.Binding whose help shows the first key.
func binding(desc string, keys ...string) key.Binding {
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(keyLabel(keys[0]), desc),
	)
}

func keyLabel(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

func (k keyMap) listHelp() []key.Binding {
	return []key.Binding{k.Up, k.Add, k.Toggle, k.Edit, k.Delete, k.CycleFilter, k.Theme, k.Quit}
}

func (k keyMap) formHelp() []key.Binding {
	return []key.Binding{k.NextField, k.PrioDown, k.Confirm, k.Cancel}
}

func (k keyMap) alertHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys(k.Confirm.Keys()...), key.WithHelp(k.Confirm.Help().Key, "acknowledge")),
	}
}
