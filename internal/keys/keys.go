// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the playground keybindings.
type KeyMap struct {
	// Theme
	Toggle    key.Binding
	Dark      key.Binding
	Light     key.Binding
	Clear     key.Binding
	FlipOS    key.Binding
	NextColor key.Binding
	Refetch   key.Binding

	// Layout
	Menu       key.Binding
	Sidebar    key.Binding
	MenuMode   key.Binding
	Reset      key.Binding
	CloseLayer key.Binding

	// General
	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle mode"),
		),
		Dark: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "dark mode"),
		),
		Light: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "light mode"),
		),
		Clear: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "follow OS"),
		),
		FlipOS: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "flip OS scheme"),
		),
		NextColor: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "next base color"),
		),
		Refetch: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "refetch profile"),
		),

		Menu: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "toggle menu"),
		),
		Sidebar: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "config sidebar"),
		),
		MenuMode: key.NewBinding(
			key.WithKeys("M"),
			key.WithHelp("M", "static/overlay menu"),
		),
		Reset: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "reset layout"),
		),
		CloseLayer: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close menu/sidebar"),
		),

		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Menu, k.Sidebar, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Dark, k.Light, k.Clear, k.FlipOS},          // Mode
		{k.NextColor, k.Refetch},                                // Palette
		{k.Menu, k.Sidebar, k.MenuMode, k.Reset, k.CloseLayer}, // Layout
		{k.Help, k.Quit},                                        // General
	}
}
