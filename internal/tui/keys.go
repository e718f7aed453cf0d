package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Toggle   key.Binding
	Enter    key.Binding
	Back     key.Binding
	Scratch  key.Binding
	Planner  key.Binding
	Shopping key.Binding
	Export   key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "arriba"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "abajo"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "anterior"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "siguiente"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("espacio", "marcar"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "continuar"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "volver"),
		),
		Scratch: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "empezar de cero"),
		),
		Planner: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "planificador"),
		),
		Shopping: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "lista de compras"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "exportar"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "salir"),
		),
	}
}

// screenHelp adapts the bindings relevant to one screen to help.KeyMap.
type screenHelp []key.Binding

func (h screenHelp) ShortHelp() []key.Binding  { return h }
func (h screenHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h} }
