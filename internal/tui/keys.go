package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines key bindings used across the TUI. Letter keys are avoided
// because both screens keep a text input focused.
type KeyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Quit     key.Binding
	ToggleAI key.Binding
	Logout   key.Binding
}

// DefaultKeyMap provides the default key bindings for the TUI.
var DefaultKeyMap = KeyMap{
	Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
	ShiftTab: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
	Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	ToggleAI: key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "toggle AI summary")),
	Logout:   key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "forget license")),
}
