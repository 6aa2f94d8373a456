package ui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/kitchen/internal/i18n"
	"github.com/five82/kitchen/internal/inventory"
	"github.com/five82/kitchen/internal/kitchen"
)

type pantryState struct {
	cursor   int
	selected map[int64]bool
	input    textinput.Model
	editing  bool
	// editID is the ingredient being edited; 0 while adding.
	editID   int64
	conflict *inventory.Conflict
}

func newPantryState(lang string) pantryState {
	in := textinput.New()
	in.Prompt = "+ "
	in.CharLimit = 200
	in.Placeholder = i18n.T(lang, "ingredients.add_prompt")
	return pantryState{selected: make(map[int64]bool), input: in}
}

// pantryRow is either a category header or an ingredient.
type pantryRow struct {
	header   bool
	category string
	count    int
	item     kitchen.Ingredient
}

// pantryRows groups the cached ingredients by category. Named categories
// sort first; collapsed categories contribute only their header.
func (m Model) pantryRows() []pantryRow {
	groups := make(map[string][]kitchen.Ingredient)
	for _, item := range m.snapshot.Ingredients {
		c := item.CategoryName()
		groups[c] = append(groups[c], item)
	}
	categories := make([]string, 0, len(groups))
	for c := range groups {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool {
		a, b := categories[i], categories[j]
		if (a == "") != (b == "") {
			return b == ""
		}
		return strings.ToLower(a) < strings.ToLower(b)
	})

	var rows []pantryRow
	for _, c := range categories {
		items := groups[c]
		sort.Slice(items, func(i, j int) bool {
			return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
		})
		rows = append(rows, pantryRow{header: true, category: c, count: len(items)})
		if m.prefs.IsCollapsed(c) {
			continue
		}
		for _, item := range items {
			rows = append(rows, pantryRow{category: c, item: item})
		}
	}
	return rows
}

func (m Model) currentPantryRow() (pantryRow, bool) {
	rows := m.pantryRows()
	if len(rows) == 0 {
		return pantryRow{}, false
	}
	return rows[clampIndex(m.pantry.cursor, len(rows))], true
}

func (m Model) handlePantryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.pantryRows()
	if m.keys.navigate(msg, &m.pantry.cursor, len(rows)) {
		return m, nil
	}
	row, ok := m.currentPantryRow()

	switch {
	case key.Matches(msg, m.keys.Add):
		m.pantry.conflict = nil
		return m.openPantryInput(0, "")

	case key.Matches(msg, m.keys.Edit):
		if c := m.pantry.conflict; c != nil && c.ExistingID != 0 {
			m.pantry.conflict = nil
			if item, found := m.selectIngredient(c.ExistingID); found {
				return m.openPantryInput(item.ID, formatIngredientInput(item))
			}
		}
		if ok && !row.header {
			return m.openPantryInput(row.item.ID, formatIngredientInput(row.item))
		}

	case key.Matches(msg, m.keys.Select):
		if !ok {
			return m, nil
		}
		if row.header {
			m.toggleCategory(row.category)
			return m, nil
		}
		if m.pantry.selected[row.item.ID] {
			delete(m.pantry.selected, row.item.ID)
		} else {
			m.pantry.selected[row.item.ID] = true
		}

	case key.Matches(msg, m.keys.Collapse):
		if ok {
			m.toggleCategory(row.category)
		}

	case key.Matches(msg, m.keys.Delete):
		if ok && !row.header {
			delete(m.pantry.selected, row.item.ID)
			return m, m.removeIngredientCmd(row.item.ID)
		}

	case key.Matches(msg, m.keys.Permanent):
		if ok && !row.header {
			permanent := !row.item.IsPermanent
			return m, m.updateIngredientCmd(row.item.ID, kitchen.IngredientPatch{IsPermanent: &permanent})
		}

	case key.Matches(msg, m.keys.Generate):
		return m.generate()
	}
	return m, nil
}

// toggleCategory collapses or expands a category and keeps the cursor on
// its header.
func (m *Model) toggleCategory(category string) {
	m.prefs.ToggleCollapsed(category)
	m.savePrefs()
	for i, r := range m.pantryRows() {
		if r.header && r.category == category {
			m.pantry.cursor = i
			return
		}
	}
}

// selectIngredient moves the cursor to the ingredient with id, expanding
// its category when needed.
func (m *Model) selectIngredient(id int64) (kitchen.Ingredient, bool) {
	for _, item := range m.snapshot.Ingredients {
		if item.ID != id {
			continue
		}
		if m.prefs.IsCollapsed(item.CategoryName()) {
			m.prefs.ToggleCollapsed(item.CategoryName())
			m.savePrefs()
		}
		for i, r := range m.pantryRows() {
			if !r.header && r.item.ID == id {
				m.pantry.cursor = i
			}
		}
		return item, true
	}
	return kitchen.Ingredient{}, false
}

func (m Model) openPantryInput(id int64, value string) (tea.Model, tea.Cmd) {
	m.pantry.editing = true
	m.pantry.editID = id
	m.pantry.input.SetValue(value)
	m.pantry.input.CursorEnd()
	cmd := m.pantry.input.Focus()
	return m, cmd
}

func (m Model) closePantryInput() Model {
	m.pantry.editing = false
	m.pantry.editID = 0
	m.pantry.input.SetValue("")
	m.pantry.input.Blur()
	return m
}

func (m Model) handlePantryInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.closePantryInput(), nil

	case "enter":
		in, err := parseIngredientInput(m.pantry.input.Value())
		if err != nil {
			m.setError(err)
			return m, nil
		}
		if in.Name == "" {
			m.setFlash(i18n.T(m.lang, "common.error")+inventory.ErrNameRequired.Error(), true)
			return m, nil
		}
		id := m.pantry.editID
		m = m.closePantryInput()
		if id == 0 {
			return m, m.addIngredientCmd(in)
		}
		patch := kitchen.IngredientPatch{Name: &in.Name, Category: in.Category, ExpiryDate: in.ExpiryDate}
		return m, m.updateIngredientCmd(id, patch)
	}

	var cmd tea.Cmd
	m.pantry.input, cmd = m.pantry.input.Update(msg)
	return m, cmd
}

// pantryMsg reports an add; a duplicate carries the conflict.
type pantryMsg struct {
	name string
	err  error
}

func (m Model) addIngredientCmd(in kitchen.IngredientInput) tea.Cmd {
	svc := m.inventory
	return m.call(func(ctx context.Context) tea.Msg {
		_, err := svc.Add(ctx, in)
		return pantryMsg{name: in.Name, err: err}
	})
}

func (m Model) updateIngredientCmd(id int64, patch kitchen.IngredientPatch) tea.Cmd {
	svc, text := m.inventory, i18n.T(m.lang, "ingredients.updated")
	return m.call(func(ctx context.Context) tea.Msg {
		_, err := svc.Update(ctx, id, patch)
		return actionMsg{text: text, err: err}
	})
}

func (m Model) removeIngredientCmd(id int64) tea.Cmd {
	svc, text := m.inventory, i18n.T(m.lang, "ingredients.deleted")
	return m.call(func(ctx context.Context) tea.Msg {
		return actionMsg{text: text, err: svc.Remove(ctx, id)}
	})
}

func (m Model) handlePantry(msg pantryMsg) (tea.Model, tea.Cmd) {
	var conflict *inventory.Conflict
	switch {
	case errors.As(msg.err, &conflict):
		m.pantry.conflict = conflict
		m.setFlash(fmt.Sprintf(i18n.T(m.lang, "ingredients.duplicate"), conflict.Name), true)
	case msg.err != nil:
		m.setError(msg.err)
	default:
		m.pantry.conflict = nil
		m.setFlash(i18n.T(m.lang, "ingredients.added")+": "+msg.name, false)
	}
	return m, fetchSnapshotCmd(m.store)
}

func (m Model) renderPantry() string {
	styles := m.theme.Styles()
	height := m.contentHeight()

	var input string
	if m.pantry.editing {
		input = m.pantry.input.View()
		height--
	}

	rows := m.pantryRows()
	if len(rows) == 0 {
		if input != "" {
			return input
		}
		return m.renderEmpty(i18n.T(m.lang, "ingredients.empty"))
	}

	now := m.now()
	lines := make([]string, len(rows))
	for i, r := range rows {
		if r.header {
			name := r.category
			if name == "" {
				name = i18n.T(m.lang, "ingredients.uncategorized")
			}
			marker := ternary(m.prefs.IsCollapsed(r.category), "▸", "▾")
			lines[i] = styles.AccentText.Bold(true).Render(fmt.Sprintf("%s %s", marker, name)) +
				styles.FaintText.Render(fmt.Sprintf(" (%d)", r.count))
			continue
		}
		check := ternary(m.pantry.selected[r.item.ID], "[x]", "[ ]")
		status := expiryStatus(r.item, now)
		line := fmt.Sprintf("  %s %s", check, plainText(r.item.Name))
		if expiry := formatExpiry(r.item); expiry != "" {
			line += "  " + styles.StatusText(status).Render(expiry)
		}
		if status == statusExpired || status == statusPermanent {
			line += " " + styles.StatusStyle(status).Render(status)
		}
		lines[i] = line
	}

	out := m.renderRows(lines, clampIndex(m.pantry.cursor, len(rows)), height)
	if input != "" {
		out = input + "\n" + out
	}
	return out
}
