package ui

import (
	"context"
	"fmt"
	"sort"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/kitchen/internal/i18n"
	"github.com/five82/kitchen/internal/kitchen"
)

type profileState struct {
	cursor         int
	showTemplates  bool
	templates      []string
	templateCursor int
}

type templatesMsg struct {
	names []string
	err   error
}

func (m Model) handleProfilesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.profiles.showTemplates {
		return m.handleTemplatesKey(msg)
	}

	profiles := m.snapshot.Profiles
	if m.keys.navigate(msg, &m.profiles.cursor, len(profiles)) {
		return m, nil
	}

	if key.Matches(msg, m.keys.Templates) {
		m.profiles.showTemplates = true
		m.profiles.templateCursor = 0
		return m, m.templatesCmd()
	}
	if len(profiles) == 0 {
		return m, nil
	}
	current := profiles[clampIndex(m.profiles.cursor, len(profiles))]

	switch {
	case key.Matches(msg, m.keys.Select), key.Matches(msg, m.keys.Confirm):
		active := !current.IsActive
		return m, m.updateProfileCmd(current.ID, kitchen.DietProfilePatch{IsActive: &active})
	case key.Matches(msg, m.keys.Delete):
		return m, m.deleteProfileCmd(current.ID)
	}
	return m, nil
}

func (m Model) handleTemplatesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	names := m.profiles.templates
	if m.keys.navigate(msg, &m.profiles.templateCursor, len(names)) {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Templates):
		m.profiles.showTemplates = false
	case key.Matches(msg, m.keys.Confirm):
		if len(names) == 0 {
			return m, nil
		}
		if !m.isAdmin() && !m.tierInfo.Profiles.Allows(len(m.snapshot.Profiles)+1) {
			m.setFlash(i18n.T(m.lang, "profiles.limit"), true)
			return m, nil
		}
		m.profiles.showTemplates = false
		return m, m.createProfileCmd(names[clampIndex(m.profiles.templateCursor, len(names))])
	}
	return m, nil
}

func (m Model) templatesCmd() tea.Cmd {
	api := m.api
	return m.call(func(ctx context.Context) tea.Msg {
		raw, err := api.ProfileTemplates(ctx)
		if err != nil {
			return templatesMsg{err: err}
		}
		return templatesMsg{names: templateNames(raw)}
	})
}

// templateNames lists the profile types offered by the templates endpoint.
// The response is keyed by profile type; an optional "templates" wrapper
// is unwrapped.
func templateNames(raw map[string]any) []string {
	if inner, ok := raw["templates"].(map[string]any); ok {
		raw = inner
	}
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m Model) handleTemplates(msg templatesMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.profiles.showTemplates = false
		m.setError(msg.err)
		return m, nil
	}
	m.profiles.templates = msg.names
	return m, nil
}

func (m Model) updateProfileCmd(id int64, patch kitchen.DietProfilePatch) tea.Cmd {
	api, store := m.api, m.store
	return m.call(func(ctx context.Context) tea.Msg {
		if _, err := api.UpdateDietProfile(ctx, id, patch); err != nil {
			return actionMsg{err: err}
		}
		reloadProfiles(ctx, api, store)
		return actionMsg{}
	})
}

func (m Model) createProfileCmd(profileType string) tea.Cmd {
	api, store, text := m.api, m.store, i18n.T(m.lang, "profiles.created")
	return m.call(func(ctx context.Context) tea.Msg {
		if _, err := api.CreateProfileFromTemplate(ctx, profileType); err != nil {
			return actionMsg{err: err}
		}
		reloadProfiles(ctx, api, store)
		return actionMsg{text: text}
	})
}

func (m Model) deleteProfileCmd(id int64) tea.Cmd {
	api, store := m.api, m.store
	return m.call(func(ctx context.Context) tea.Msg {
		if err := api.DeleteProfile(ctx, id); err != nil {
			return actionMsg{err: err}
		}
		reloadProfiles(ctx, api, store)
		return actionMsg{}
	})
}

func (m Model) renderProfiles() string {
	styles := m.theme.Styles()
	height := m.contentHeight() - 1

	if m.profiles.showTemplates {
		head := styles.AccentText.Bold(true).Render(i18n.T(m.lang, "profiles.templates"))
		if len(m.profiles.templates) == 0 {
			return head + "\n" + m.renderEmpty(i18n.T(m.lang, "common.loading"))
		}
		lines := make([]string, len(m.profiles.templates))
		for i, name := range m.profiles.templates {
			lines[i] = "  " + name
		}
		return head + "\n" + m.renderRows(lines, clampIndex(m.profiles.templateCursor, len(lines)), height)
	}

	profiles := m.snapshot.Profiles
	if len(profiles) == 0 {
		return m.renderEmpty(i18n.T(m.lang, "profiles.empty"))
	}
	head := styles.AccentText.Bold(true).Render(i18n.T(m.lang, "nav.profiles")) +
		styles.FaintText.Render(fmt.Sprintf("  %d/%s", len(profiles), m.tierInfo.Profiles))

	lines := make([]string, len(profiles))
	for i, p := range profiles {
		status := ternary(p.IsActive, statusActive, statusInactive)
		label := i18n.T(m.lang, "profiles."+status)
		lines[i] = fmt.Sprintf("  %s %s", styles.StatusStyle(status).Render(label), plainText(p.Name)) +
			styles.FaintText.Render("  "+p.ProfileType)
	}
	return head + "\n" + m.renderRows(lines, clampIndex(m.profiles.cursor, len(profiles)), height)
}
