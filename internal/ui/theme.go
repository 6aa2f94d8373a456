package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Status keys used for badges and row colors.
const (
	statusExpired   = "expired"
	statusExpiring  = "expiring"
	statusFresh     = "fresh"
	statusPermanent = "permanent"
	statusActive    = "active"
	statusInactive  = "inactive"
	statusFavorite  = "favorite"
	statusDemo      = "demo"
	statusBasic     = "basic"
	statusPremium   = "premium"
)

// Theme defines colors for the UI.
type Theme struct {
	Name string

	Background string
	Surface    string
	SurfaceAlt string

	SelectionBg   string
	SelectionText string

	Border      string
	BorderFocus string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	StatusColors map[string]string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Surface: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)),

		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		InfoText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),

		Banner: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Warning)).
			Foreground(lipgloss.Color(t.Background)).
			Bold(true).
			Padding(0, 1),

		statusColors: t.StatusColors,
		background:   t.Background,
		muted:        t.Muted,
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Surface lipgloss.Style

	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style
	Panel    lipgloss.Style
	Banner   lipgloss.Style

	statusColors map[string]string
	background   string
	muted        string
}

// StatusColor returns the color for status, falling back to the muted color.
func (s Styles) StatusColor(status string) string {
	if color := s.statusColors[status]; color != "" {
		return color
	}
	return s.muted
}

// StatusStyle returns a badge style for the given status.
func (s Styles) StatusStyle(status string) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.background)).
		Background(lipgloss.Color(s.StatusColor(status))).
		Padding(0, 1)
}

// StatusText returns a foreground-only style for the given status.
func (s Styles) StatusText(status string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(s.StatusColor(status)))
}

// WithBackground returns a copy of Styles whose text styles carry bgColor
// explicitly instead of inheriting the terminal background.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	out := s
	out.Surface = s.Surface.Background(bg)
	out.Text = s.Text.Background(bg)
	out.MutedText = s.MutedText.Background(bg)
	out.FaintText = s.FaintText.Background(bg)
	out.AccentText = s.AccentText.Background(bg)
	out.SuccessText = s.SuccessText.Background(bg)
	out.WarningText = s.WarningText.Background(bg)
	out.DangerText = s.DangerText.Background(bg)
	out.InfoText = s.InfoText.Background(bg)
	out.Header = s.Header.Background(bg)
	out.Logo = s.Logo.Background(bg)
	return out
}

const defaultThemeName = "Pantry"

var themes = map[string]Theme{
	"Pantry":   pantryTheme(),
	"Nightfox": nightfoxTheme(),
	"Kanagawa": kanagawaTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Pantry", "Nightfox", "Kanagawa", "Slate"}

// GetTheme returns a theme by name, Pantry when unknown.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[defaultThemeName]
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func pantryTheme() Theme {
	// Gruvbox dark palette: https://github.com/morhetz/gruvbox
	return Theme{
		Name: "Pantry",

		Background: "#1d2021", // bg0_h
		Surface:    "#282828", // bg0
		SurfaceAlt: "#3c3836", // bg1

		SelectionBg:   "#504945", // bg2
		SelectionText: "#fbf1c7", // fg0

		Border:      "#665c54", // bg3
		BorderFocus: "#d79921", // yellow

		Text:    "#ebdbb2", // fg
		Muted:   "#a89984", // gray
		Faint:   "#7c6f64", // bg4
		Accent:  "#fe8019", // orange
		Success: "#b8bb26", // green
		Warning: "#fabd2f", // yellow
		Danger:  "#fb4934", // red
		Info:    "#83a598", // blue

		StatusColors: map[string]string{
			statusExpired:   "#fb4934",
			statusExpiring:  "#fabd2f",
			statusFresh:     "#b8bb26",
			statusPermanent: "#83a598",
			statusActive:    "#8ec07c", // aqua
			statusInactive:  "#7c6f64",
			statusFavorite:  "#d3869b", // purple
			statusDemo:      "#a89984",
			statusBasic:     "#83a598",
			statusPremium:   "#fe8019",
		},
	}
}

func nightfoxTheme() Theme {
	// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name: "Nightfox",

		Background: "#131a24", // bg0
		Surface:    "#192330", // bg1
		SurfaceAlt: "#212e3f", // bg2

		SelectionBg:   "#2b3b51", // sel0
		SelectionText: "#cdcecf", // fg1

		Border:      "#39506d", // bg4
		BorderFocus: "#719cd6", // blue

		Text:    "#cdcecf",
		Muted:   "#738091",
		Faint:   "#71839b",
		Accent:  "#719cd6",
		Success: "#81b29a",
		Warning: "#dbc074",
		Danger:  "#c94f6d",
		Info:    "#63cdcf",

		StatusColors: map[string]string{
			statusExpired:   "#c94f6d",
			statusExpiring:  "#dbc074",
			statusFresh:     "#81b29a",
			statusPermanent: "#63cdcf",
			statusActive:    "#81b29a",
			statusInactive:  "#738091",
			statusFavorite:  "#9d79d6", // magenta
			statusDemo:      "#738091",
			statusBasic:     "#719cd6",
			statusPremium:   "#f4a261", // orange
		},
	}
}

func kanagawaTheme() Theme {
	// Kanagawa palette: https://github.com/rebelot/kanagawa.nvim
	return Theme{
		Name: "Kanagawa",

		Background: "#16161D", // sumiInk0
		Surface:    "#1F1F28", // sumiInk3
		SurfaceAlt: "#2A2A37", // sumiInk4

		SelectionBg:   "#2D4F67", // waveBlue1
		SelectionText: "#DCD7BA", // fujiWhite

		Border:      "#54546D", // sumiInk6
		BorderFocus: "#7E9CD8", // crystalBlue

		Text:    "#DCD7BA",
		Muted:   "#C8C093",
		Faint:   "#727169",
		Accent:  "#7E9CD8",
		Success: "#98BB6C",
		Warning: "#E6C384",
		Danger:  "#E46876",
		Info:    "#7FB4CA",

		StatusColors: map[string]string{
			statusExpired:   "#E46876",
			statusExpiring:  "#E6C384",
			statusFresh:     "#98BB6C",
			statusPermanent: "#7FB4CA",
			statusActive:    "#98BB6C",
			statusInactive:  "#727169",
			statusFavorite:  "#957FB8", // oniViolet
			statusDemo:      "#727169",
			statusBasic:     "#7E9CD8",
			statusPremium:   "#FFA066", // surimiOrange
		},
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name: "Slate",

		Background: "#020617", // slate-950
		Surface:    "#0f172a", // slate-900
		SurfaceAlt: "#1e293b", // slate-800

		SelectionBg:   "#0284c7", // sky-600
		SelectionText: "#f8fafc", // slate-50

		Border:      "#334155", // slate-700
		BorderFocus: "#38bdf8", // sky-400

		Text:    "#f1f5f9",
		Muted:   "#94a3b8",
		Faint:   "#64748b",
		Accent:  "#38bdf8",
		Success: "#22c55e",
		Warning: "#f59e0b",
		Danger:  "#ef4444",
		Info:    "#06b6d4",

		StatusColors: map[string]string{
			statusExpired:   "#dc2626", // red-600
			statusExpiring:  "#f59e0b", // amber-500
			statusFresh:     "#22c55e", // green-500
			statusPermanent: "#06b6d4", // cyan-500
			statusActive:    "#16a34a", // green-600
			statusInactive:  "#64748b", // slate-500
			statusFavorite:  "#e879f9", // fuchsia-400
			statusDemo:      "#64748b",
			statusBasic:     "#0ea5e9", // sky-500
			statusPremium:   "#f97316", // orange-500
		},
	}
}
