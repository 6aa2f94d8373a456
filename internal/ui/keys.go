package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Language   key.Binding
	Logout     key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding
	Escape     key.Binding
	Confirm    key.Binding

	// View switching
	ViewIngredients key.Binding
	ViewRecipes     key.Binding
	ViewFavorites   key.Binding
	ViewProfiles    key.Binding
	ViewScanner     key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Actions
	Add       key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Select    key.Binding
	Collapse  key.Binding
	Permanent key.Binding
	Generate  key.Binding
	History   key.Binding
	Favorite  key.Binding
	Templates key.Binding
	Refresh   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Language: key.NewBinding(
			key.WithKeys("L", "ctrl+l"),
			key.WithHelp("L", "Cycle language"),
		),
		Logout: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "Log out"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Cycle views"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Cycle views (reverse)"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close / cancel"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open / confirm"),
		),

		ViewIngredients: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Ingredients"),
		),
		ViewRecipes: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Recipes"),
		),
		ViewFavorites: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "Favorites"),
		),
		ViewProfiles: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "Profiles"),
		),
		ViewScanner: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "Scanner"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),

		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "Edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Delete"),
		),
		Select: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "Select / toggle"),
		),
		Collapse: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Collapse category / compact recipes"),
		),
		Permanent: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Toggle permanent"),
		),
		Generate: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Generate recipes"),
		),
		History: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "Generated/history"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Toggle favorite"),
		),
		Templates: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Profile templates"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "Reload"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ViewIngredients, k.ViewRecipes, k.ViewFavorites, k.ViewProfiles, k.ViewScanner},
		{k.Up, k.Down, k.Top, k.Bottom, k.Confirm, k.Escape},
		{k.Add, k.Edit, k.Delete, k.Select, k.Collapse, k.Permanent, k.Generate},
		{k.History, k.Favorite, k.Templates, k.Refresh},
		{k.CycleTheme, k.Language, k.Logout, k.Help, k.Quit},
	}
}
