package ui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/kitchen/internal/i18n"
	"github.com/five82/kitchen/internal/kitchen"
)

type recipeState struct {
	cursor      int
	showHistory bool
	history     []kitchen.Recipe
	// historyDone is set once a short page shows the history is exhausted.
	historyDone bool
	loading     bool
	generating  bool
}

type recipesMsg struct {
	list *kitchen.RecipeList
	err  error
}

type historyMsg struct {
	recipes []kitchen.Recipe
	offset  int
	err     error
}

// recipeList returns the rows of the recipes view.
func (m Model) recipeList() []kitchen.Recipe {
	if m.recipes.showHistory {
		return m.recipes.history
	}
	return m.snapshot.Recipes
}

func (m Model) currentRecipe() (kitchen.Recipe, bool) {
	list := m.recipeList()
	if len(list) == 0 {
		return kitchen.Recipe{}, false
	}
	return list[clampIndex(m.recipes.cursor, len(list))], true
}

func (m Model) isAdmin() bool {
	return m.user != nil && m.user.IsAdmin
}

// generate requests recipes for the selected pantry items with the active
// diet profiles applied.
func (m Model) generate() (tea.Model, tea.Cmd) {
	if m.recipes.generating {
		return m, nil
	}
	ids := make([]int64, 0, len(m.pantry.selected))
	for id := range m.pantry.selected {
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		m.setFlash(i18n.T(m.lang, "recipes.select"), true)
		return m, nil
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	if m.user != nil && !m.isAdmin() && !m.tierInfo.Recipes.Allows(m.user.DailyRecipeCount+1) {
		m.setFlash(fmt.Sprintf(i18n.T(m.lang, "recipes.remaining"), 0), true)
		return m, nil
	}

	req := kitchen.RecipeRequest{
		IngredientIDs: ids,
		DietProfiles:  m.snapshot.ActiveProfileTypes(),
		Language:      m.lang,
	}
	m.recipes.generating = true
	m.recipes.showHistory = false
	m.recipes.cursor = 0
	m.currentView = ViewRecipes
	m.setFlash(i18n.T(m.lang, "recipes.generating"), false)
	return m, m.generateCmd(req)
}

func (m Model) generateCmd(req kitchen.RecipeRequest) tea.Cmd {
	api, store, a := m.api, m.store, m.auth
	return m.call(func(ctx context.Context) tea.Msg {
		list, err := api.GenerateRecipes(ctx, req)
		if err != nil {
			return recipesMsg{err: err}
		}
		remaining := list.DailyCountRemaining
		store.SetRecipes(list.Recipes, &remaining)
		a.RefreshUser(ctx)
		return recipesMsg{list: list}
	})
}

func (m Model) handleRecipes(msg recipesMsg) (tea.Model, tea.Cmd) {
	m.recipes.generating = false
	if msg.err != nil {
		m.setError(msg.err)
		return m, nil
	}
	m.pantry.selected = make(map[int64]bool)
	m.recipes.cursor = 0
	m.loadUser()
	switch {
	case msg.list.Message != "":
		m.setFlash(plainText(msg.list.Message), false)
	case len(msg.list.Recipes) == 0:
		m.setFlash(i18n.T(m.lang, "recipes.empty"), false)
	default:
		m.setFlash(fmt.Sprintf(i18n.T(m.lang, "recipes.remaining"), msg.list.DailyCountRemaining), false)
	}
	return m, fetchSnapshotCmd(m.store)
}

func (m Model) historyCmd(offset int) tea.Cmd {
	api := m.api
	return m.call(func(ctx context.Context) tea.Msg {
		recipes, err := api.RecipeHistory(ctx, kitchen.PageRequest{Limit: HistoryPageSize, Offset: offset})
		return historyMsg{recipes: recipes, offset: offset, err: err}
	})
}

func (m Model) handleHistory(msg historyMsg) (tea.Model, tea.Cmd) {
	m.recipes.loading = false
	if msg.err != nil {
		m.setError(msg.err)
		return m, nil
	}
	if msg.offset == 0 {
		m.recipes.history = msg.recipes
		m.recipes.cursor = 0
	} else {
		m.recipes.history = append(m.recipes.history, msg.recipes...)
	}
	m.recipes.historyDone = len(msg.recipes) < HistoryPageSize
	return m, nil
}

func (m Model) handleRecipesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	list := m.recipeList()
	atEnd := m.recipes.cursor >= len(list)-1
	if m.keys.navigate(msg, &m.recipes.cursor, len(list)) {
		if m.recipes.showHistory && atEnd && key.Matches(msg, m.keys.Down) &&
			!m.recipes.historyDone && !m.recipes.loading {
			m.recipes.loading = true
			return m, m.historyCmd(len(m.recipes.history))
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.History):
		m.recipes.showHistory = !m.recipes.showHistory
		m.recipes.cursor = 0
		if m.recipes.showHistory {
			m.recipes.loading = true
			m.recipes.historyDone = false
			return m, m.historyCmd(0)
		}

	case key.Matches(msg, m.keys.Confirm):
		if r, ok := m.currentRecipe(); ok {
			m.openDetail(r)
		}

	case key.Matches(msg, m.keys.Favorite):
		return m.toggleFavorite()

	case key.Matches(msg, m.keys.Collapse):
		m.toggleCompactRecipes()

	case key.Matches(msg, m.keys.Generate):
		return m.generate()
	}
	return m, nil
}

// toggleCompactRecipes hides or shows the method text in recipe details.
func (m *Model) toggleCompactRecipes() {
	m.prefs.CompactRecipes = !m.prefs.CompactRecipes
	m.savePrefs()
}

// toggleFavorite adds or removes the current recipe from the favorites,
// respecting the tier's favorite limit.
func (m Model) toggleFavorite() (tea.Model, tea.Cmd) {
	recipe, ok := m.currentRecipe()
	if !ok || recipe.ID == 0 {
		return m, nil
	}
	if favID, ok := m.store.FavoriteID(recipe.ID); ok {
		return m, m.removeFavoriteCmd(recipe.ID, favID)
	}
	if !m.isAdmin() && !m.tierInfo.Favorites.Allows(len(m.snapshot.Favorites)+1) {
		m.setFlash(i18n.T(m.lang, "favorites.limit"), true)
		return m, nil
	}
	return m, m.addFavoriteCmd(recipe.ID)
}

func (m Model) addFavoriteCmd(recipeID int64) tea.Cmd {
	api, store, text := m.api, m.store, i18n.T(m.lang, "favorites.added")
	return m.call(func(ctx context.Context) tea.Msg {
		fav, err := api.AddFavorite(ctx, recipeID)
		if err != nil {
			return actionMsg{err: err}
		}
		store.MarkFavorite(recipeID, fav.ID)
		reloadFavorites(ctx, api, store)
		return actionMsg{text: text}
	})
}

func (m Model) removeFavoriteCmd(recipeID, favoriteID int64) tea.Cmd {
	api, store, text := m.api, m.store, i18n.T(m.lang, "favorites.removed")
	return m.call(func(ctx context.Context) tea.Msg {
		if err := api.RemoveFavorite(ctx, favoriteID); err != nil {
			return actionMsg{err: err}
		}
		if recipeID != 0 {
			store.MarkFavorite(recipeID, 0)
		}
		reloadFavorites(ctx, api, store)
		return actionMsg{text: text}
	})
}

func (m Model) renderRecipes() string {
	styles := m.theme.Styles()
	height := m.contentHeight() - 1

	title := i18n.T(m.lang, ternary(m.recipes.showHistory, "recipes.history", "recipes.generated"))
	head := styles.AccentText.Bold(true).Render(title)
	if m.snapshot.Remaining >= 0 && !m.recipes.showHistory {
		head += styles.FaintText.Render("  " + fmt.Sprintf(i18n.T(m.lang, "recipes.remaining"), m.snapshot.Remaining))
	}

	list := m.recipeList()
	switch {
	case m.recipes.generating:
		return head + "\n" + m.renderEmpty(i18n.T(m.lang, "recipes.generating"))
	case m.recipes.loading && len(list) == 0:
		return head + "\n" + m.renderEmpty(i18n.T(m.lang, "common.loading"))
	case len(list) == 0:
		return head + "\n" + m.renderEmpty(i18n.T(m.lang, "recipes.empty"))
	}

	lines := make([]string, len(list))
	for i, r := range list {
		lines[i] = m.recipeLine(r, m.store.IsFavorite(r.ID))
	}
	return head + "\n" + m.renderRows(lines, clampIndex(m.recipes.cursor, len(list)), height)
}

func (m Model) recipeLine(r kitchen.Recipe, favorite bool) string {
	styles := m.theme.Styles()
	star := ternary(favorite, styles.StatusText(statusFavorite).Render("★"), " ")
	meta := make([]string, 0, 3)
	if r.CookingTime != "" {
		meta = append(meta, plainText(r.CookingTime))
	}
	if r.Servings > 0 {
		meta = append(meta, fmt.Sprintf("%d×", r.Servings))
	}
	if r.Difficulty > 0 {
		meta = append(meta, strings.Repeat("●", min(r.Difficulty, 5)))
	}
	line := fmt.Sprintf(" %s %s", star, truncate(plainText(r.Name), 60))
	if len(meta) > 0 {
		line += "  " + styles.FaintText.Render(strings.Join(meta, " · "))
	}
	return line
}

// renderRecipeDetail renders the full recipe for the detail viewport.
func (m Model) renderRecipeDetail(r kitchen.Recipe) string {
	styles := m.theme.Styles()
	width := m.detail.Width
	if width <= 0 {
		width = 80
	}
	wrap := styles.Text.Width(width)

	var b strings.Builder
	b.WriteString(styles.Logo.Render(plainText(r.Name)))
	if m.store != nil && m.store.IsFavorite(r.ID) {
		b.WriteString(" " + styles.StatusStyle(statusFavorite).Render("★"))
	}
	b.WriteString("\n")

	var meta []string
	if r.CookingTime != "" {
		meta = append(meta, plainText(r.CookingTime))
	}
	if r.Servings > 0 {
		meta = append(meta, fmt.Sprintf("%d servings", r.Servings))
	}
	if r.Difficulty > 0 {
		meta = append(meta, fmt.Sprintf("difficulty %d", r.Difficulty))
	}
	if len(meta) > 0 {
		b.WriteString(styles.MutedText.Render(strings.Join(meta, " · ")))
		b.WriteString("\n")
	}

	if d := plainText(r.Description); d != "" {
		b.WriteString("\n")
		b.WriteString(wrap.Render(d))
		b.WriteString("\n")
	}

	if len(r.Ingredients) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.AccentText.Bold(true).Render(i18n.T(m.lang, "nav.ingredients")))
		b.WriteString("\n")
		for _, ing := range r.Ingredients {
			line := "• " + plainText(ing.Name)
			if ing.Amount != "" {
				line += styles.FaintText.Render("  " + plainText(ing.Amount))
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	if method := plainText(r.Method); method != "" && !m.prefs.CompactRecipes {
		b.WriteString("\n")
		b.WriteString(wrap.Render(method))
		b.WriteString("\n")
	}

	if n := r.NutritionPerServing; n != nil {
		b.WriteString("\n")
		b.WriteString(styles.InfoText.Render(formatNutrition(*n)))
		b.WriteString("\n")
	}

	if tips := plainText(r.LeftoverTips); tips != "" {
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Width(width).Render(tips))
		b.WriteString("\n")
	}
	return b.String()
}

func formatNutrition(n kitchen.Nutrition) string {
	s := fmt.Sprintf("%.0f kcal · P %.1fg · C %.1fg · F %.1fg", n.Calories, n.Protein, n.Carbs, n.Fat)
	if n.KE != nil {
		s += fmt.Sprintf(" · KE %.1f", *n.KE)
	}
	if n.BE != nil {
		s += fmt.Sprintf(" · BE %.1f", *n.BE)
	}
	return s
}

// favoriteRecipe returns the recipe carried by a favorite, or a stub named
// after its ID when the backend omitted it.
func favoriteRecipe(f kitchen.Favorite) kitchen.Recipe {
	if f.Recipe != nil {
		return *f.Recipe
	}
	return kitchen.Recipe{ID: f.RecipeID, Name: fmt.Sprintf("#%d", f.RecipeID)}
}
