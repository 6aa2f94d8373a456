package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/kitchen/internal/i18n"
	"github.com/five82/kitchen/internal/kitchen"
	"github.com/five82/kitchen/internal/tier"
)

// renderHeader renders the status bar: user, tier, allowance, session
// lifetime and connection state.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	parts := []string{bg.Render("kitchenhelper", styles.Logo)}

	if m.user != nil {
		name := plainText(m.user.Username)
		if m.user.Emoji != "" {
			name = m.user.Emoji + " " + name
		}
		parts = append(parts, bg.Render(name, styles.Text.Bold(true)))
	}

	tierStatus := tierStatusKey(m.tierInfo.Tier)
	badge := styles.StatusStyle(tierStatus).Render(m.tierInfo.Name)
	if m.isAdmin() {
		badge += bg.Space() + styles.StatusStyle(statusPremium).Render("admin")
	}
	parts = append(parts, badge)

	if used := m.recipeUsage(); used != "" {
		parts = append(parts,
			bg.Render(i18n.T(m.lang, "nav.recipes")+":", styles.MutedText)+bg.Space()+
				bg.Render(used, styles.Text))
	}

	if exp, ok := m.auth.TokenExpiry(); ok && !compact {
		left := exp.Sub(m.now())
		style := styles.MutedText
		if left < 10*time.Minute {
			style = styles.WarningText
		}
		parts = append(parts, bg.Render("session "+humanizeDuration(left), style))
	}

	parts = append(parts, bg.Render(strings.ToUpper(m.lang), styles.FaintText))

	if ts := m.formatTimestamp(); ts != "" && !compact {
		parts = append(parts, bg.Render(ts, styles.MutedText))
	}

	if m.snapshot.IsOffline() {
		parts = append(parts, bg.Render("OFFLINE", styles.DangerText.Bold(true)))
	} else if err := m.snapshot.LastError; err != nil {
		maxErr := ternaryInt(compact, 40, 80)
		parts = append(parts,
			bg.Render("ERROR", styles.DangerText.Bold(true))+bg.Space()+
				bg.Render(truncate(classifyError(err), maxErr), styles.DangerText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// recipeUsage renders today's generations against the tier allowance.
func (m Model) recipeUsage() string {
	if m.user == nil {
		return ""
	}
	limit := m.tierInfo.Recipes.String()
	if m.user.DailyLimit > 0 && !m.tierInfo.Recipes.Unlimited {
		limit = fmt.Sprintf("%d", m.user.DailyLimit)
	}
	return fmt.Sprintf("%d/%s", m.user.DailyRecipeCount, limit)
}

func tierStatusKey(t tier.Tier) string {
	switch t {
	case tier.Basic:
		return statusBasic
	case tier.Premium:
		return statusPremium
	default:
		return statusDemo
	}
}

// formatTimestamp formats the last update time with relative indicator.
func (m Model) formatTimestamp() string {
	if m.lastUpdated.IsZero() {
		return ""
	}
	since := m.now().Sub(m.lastUpdated)
	ts := m.lastUpdated.Format("15:04:05")
	if since >= time.Minute {
		ts += " (" + humanizeDuration(since) + " ago)"
	}
	return ts
}

// classifyError shortens a background refresh error for the header.
func classifyError(err error) string {
	switch {
	case kitchen.IsNetwork(err):
		return "unreachable"
	case kitchen.IsSessionExpired(err):
		return "session expired"
	}
	if status := kitchen.StatusOf(err); status != 0 {
		return fmt.Sprintf("HTTP %d", status)
	}
	return err.Error()
}

// renderCommandBar renders the view tabs followed by the hints of the
// active view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	tabs := make([]string, 0, len(mainViews))
	for i, v := range mainViews {
		label := fmt.Sprintf("%d %s", i+1, i18n.T(m.lang, v.titleKey()))
		if v == m.currentView {
			tabs = append(tabs, bg.Render(label, styles.AccentText.Bold(true).Underline(true)))
			continue
		}
		tabs = append(tabs, bg.Render(label, styles.MutedText))
	}

	type cmd struct{ key, desc string }
	var commands []cmd
	switch {
	case m.detailOpen:
		commands = []cmd{{"j/k", "Scroll"}, {"esc", "Close"}}
		if m.currentView == ViewRecipes {
			commands = append(commands, cmd{"f", "Favorite"})
		}
	case m.currentView == ViewIngredients:
		commands = []cmd{{"a", "Add"}, {"e", "Edit"}, {"d", "Delete"}, {"space", "Select"}, {"c", "Fold"}, {"r", "Generate"}}
	case m.currentView == ViewRecipes:
		commands = []cmd{{"enter", "Open"}, {"f", "Favorite"}, {"h", ternary(m.recipes.showHistory, "Generated", "History")}}
	case m.currentView == ViewFavorites:
		commands = []cmd{{"enter", "Open"}, {"d", "Remove"}}
	case m.currentView == ViewProfiles:
		if m.profiles.showTemplates {
			commands = []cmd{{"enter", "Create"}, {"esc", "Back"}}
		} else {
			commands = []cmd{{"space", "Toggle"}, {"t", "Templates"}, {"d", "Delete"}}
		}
	case m.currentView == ViewScanner:
		if m.scanner.product != nil {
			commands = []cmd{{"a", "Add"}, {"esc", "Scan again"}}
		} else {
			commands = []cmd{{"enter", "Look up"}, {"esc", "Clear"}}
		}
	}
	commands = append(commands, cmd{"?", "More"})

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(
		bg.Join(tabs, "  ") + bg.Spaces(3) + bg.Join(segments, "  "))
}

// renderStatusLine renders the last action result.
func (m Model) renderStatusLine() string {
	if m.flash == "" {
		return ""
	}
	styles := m.theme.Styles()
	style := styles.MutedText
	if m.flashErr {
		style = styles.DangerText
	}
	return lipgloss.NewStyle().Width(m.width).Render(style.Render(truncate(m.flash, max(m.width-1, 1))))
}

func ternaryInt(cond bool, a, b int) int {
	if cond {
		return a
	}
	return b
}
