package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/kitchen/internal/auth"
	"github.com/five82/kitchen/internal/i18n"
	"github.com/five82/kitchen/internal/kitchen"
)

type loginForm struct {
	identifier textinput.Model
	password   textinput.Model
	focus      int
	busy       bool
}

func newLoginForm(lang string) loginForm {
	id := textinput.New()
	id.CharLimit = 254
	id.Prompt = "› "

	pw := textinput.New()
	pw.CharLimit = 128
	pw.Prompt = "› "
	pw.EchoMode = textinput.EchoPassword
	pw.EchoCharacter = '•'

	f := loginForm{identifier: id, password: pw}
	f.relabel(lang)
	f.identifier.Focus()
	return f
}

func (f *loginForm) relabel(lang string) {
	f.identifier.Placeholder = i18n.T(lang, "login.identifier")
	f.password.Placeholder = i18n.T(lang, "login.password")
}

func (f *loginForm) reset() {
	f.identifier.SetValue("")
	f.password.SetValue("")
	f.busy = false
	f.setFocus(0)
}

func (f *loginForm) setFocus(i int) {
	f.focus = i
	if i == 0 {
		f.identifier.Focus()
		f.password.Blur()
		return
	}
	f.identifier.Blur()
	f.password.Focus()
}

type loginMsg struct {
	user *kitchen.User
	err  error
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.login.busy {
		return m, nil
	}

	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		m.login.setFocus(1 - m.login.focus)
		return m, nil

	case "esc":
		m.setFlash("", false)
		return m, nil

	case "ctrl+l":
		m.cycleLanguage()
		return m, nil

	case "enter":
		if m.login.focus == 0 && m.login.password.Value() == "" {
			m.login.setFocus(1)
			return m, nil
		}
		identifier := strings.TrimSpace(m.login.identifier.Value())
		password := m.login.password.Value()
		if identifier == "" || password == "" {
			m.setFlash(i18n.T(m.lang, "login.required"), true)
			return m, nil
		}
		m.login.busy = true
		m.setFlash(i18n.T(m.lang, "common.loading"), false)
		return m, m.loginCmd(identifier, password)
	}

	var cmd tea.Cmd
	if m.login.focus == 0 {
		m.login.identifier, cmd = m.login.identifier.Update(msg)
	} else {
		m.login.password, cmd = m.login.password.Update(msg)
	}
	return m, cmd
}

func (m Model) loginCmd(identifier, password string) tea.Cmd {
	a := m.auth
	return m.call(func(ctx context.Context) tea.Msg {
		user, err := a.Login(ctx, identifier, password)
		return loginMsg{user: user, err: err}
	})
}

func (m Model) handleLoginResult(msg loginMsg) (tea.Model, tea.Cmd) {
	m.login.busy = false
	if msg.err != nil {
		m.login.password.SetValue("")
		if errors.Is(msg.err, auth.ErrMissingCredentials) {
			m.setFlash(i18n.T(m.lang, "login.required"), true)
		} else {
			m.setError(msg.err)
		}
		return m, nil
	}
	m.setFlash("", false)
	return m.startSession()
}

func (m Model) renderLogin() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Logo.Render("kitchenhelper"))
	b.WriteString("\n")
	b.WriteString(styles.Text.Bold(true).Render(i18n.T(m.lang, "login.title")))
	b.WriteString("\n\n")
	b.WriteString(m.login.identifier.View())
	b.WriteString("\n")
	b.WriteString(m.login.password.View())
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render(i18n.T(m.lang, "login.submit")))
	b.WriteString(styles.FaintText.Render("  ·  ctrl+l " + strings.ToUpper(m.lang)))
	if m.flash != "" {
		b.WriteString("\n\n")
		if m.flashErr {
			b.WriteString(styles.DangerText.Render(m.flash))
		} else {
			b.WriteString(styles.MutedText.Render(m.flash))
		}
	}

	panel := styles.Panel.
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Padding(1, 3).
		Width(48).
		Render(b.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, panel)
}
