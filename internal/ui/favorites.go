package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/kitchen/internal/i18n"
)

func (m Model) handleFavoritesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	favs := m.snapshot.Favorites
	if m.keys.navigate(msg, &m.favorites.index, len(favs)) || len(favs) == 0 {
		return m, nil
	}
	current := favs[clampIndex(m.favorites.index, len(favs))]

	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.openDetail(favoriteRecipe(current))
	case key.Matches(msg, m.keys.Delete), key.Matches(msg, m.keys.Favorite):
		return m, m.removeFavoriteCmd(current.RecipeID, current.ID)
	}
	return m, nil
}

func (m Model) renderFavorites() string {
	favs := m.snapshot.Favorites
	if len(favs) == 0 {
		return m.renderEmpty(i18n.T(m.lang, "favorites.empty"))
	}

	styles := m.theme.Styles()
	head := styles.AccentText.Bold(true).Render(i18n.T(m.lang, "nav.favorites")) +
		styles.FaintText.Render("  "+m.tierInfo.Favorites.String())

	lines := make([]string, len(favs))
	for i, f := range favs {
		line := m.recipeLine(favoriteRecipe(f), true)
		if !f.AddedAt.IsZero() {
			line += styles.FaintText.Render("  " + f.AddedAt.Local().Format("2006-01-02"))
		}
		lines[i] = line
	}
	return head + "\n" + m.renderRows(lines, clampIndex(m.favorites.index, len(favs)), m.contentHeight()-1)
}
