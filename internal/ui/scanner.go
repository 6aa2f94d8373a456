package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/kitchen/internal/i18n"
	"github.com/five82/kitchen/internal/inventory"
	"github.com/five82/kitchen/internal/kitchen"
)

type scannerState struct {
	input   textinput.Model
	product *kitchen.Product
	busy    bool
}

func newScannerState(lang string) scannerState {
	in := textinput.New()
	in.Prompt = "▮ "
	in.CharLimit = 20
	in.Placeholder = i18n.T(lang, "scanner.prompt")
	return scannerState{input: in}
}

type scanMsg struct {
	code    string
	product *kitchen.Product
	err     error
}

// handleScannerInput handles keys while the barcode field has focus.
// Digits belong to the field, so only tab and esc leave it.
func (m Model) handleScannerInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Tab):
		m.scanner.input.Blur()
		return m.switchView(m.offsetView(1))
	case key.Matches(msg, m.keys.ShiftTab):
		m.scanner.input.Blur()
		return m.switchView(m.offsetView(-1))
	case key.Matches(msg, m.keys.Escape):
		m.scanner.input.SetValue("")
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		if m.scanner.busy {
			return m, nil
		}
		code, err := inventory.NormalizeBarcode(m.scanner.input.Value())
		if err != nil {
			m.setFlash(i18n.T(m.lang, "scanner.invalid"), true)
			return m, nil
		}
		m.scanner.busy = true
		m.setFlash(i18n.T(m.lang, "common.loading"), false)
		return m, m.scanCmd(code)
	}

	var cmd tea.Cmd
	m.scanner.input, cmd = m.scanner.input.Update(msg)
	return m, cmd
}

// handleScannerResultKey handles keys while a found product is shown.
func (m Model) handleScannerResultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Add):
		if m.scanner.product == nil {
			return m, nil
		}
		product := *m.scanner.product
		m = m.resetScanner()
		cmd := m.scanner.input.Focus()
		return m, tea.Batch(m.addProductCmd(product), cmd)
	case key.Matches(msg, m.keys.Escape):
		m = m.resetScanner()
		cmd := m.scanner.input.Focus()
		return m, cmd
	}
	return m, nil
}

func (m Model) resetScanner() Model {
	m.scanner.product = nil
	m.scanner.input.SetValue("")
	return m
}

func (m Model) scanCmd(code string) tea.Cmd {
	svc := m.inventory
	return m.call(func(ctx context.Context) tea.Msg {
		product, err := svc.Scan(ctx, code)
		return scanMsg{code: code, product: product, err: err}
	})
}

func (m Model) handleScan(msg scanMsg) (tea.Model, tea.Cmd) {
	m.scanner.busy = false
	switch {
	case errors.Is(msg.err, inventory.ErrInvalidBarcode):
		m.setFlash(i18n.T(m.lang, "scanner.invalid"), true)
	case errors.Is(msg.err, inventory.ErrProductNotFound), kitchen.StatusOf(msg.err) == 404:
		m.setFlash(fmt.Sprintf(i18n.T(m.lang, "scanner.not_found"), msg.code), true)
	case msg.err != nil:
		m.setError(msg.err)
	default:
		m.scanner.product = msg.product
		m.scanner.input.Blur()
		m.setFlash(fmt.Sprintf(i18n.T(m.lang, "scanner.found"), m.productName(*msg.product)), false)
	}
	return m, nil
}

func (m Model) productName(p kitchen.Product) string {
	if name := plainText(p.LocalizedName(m.lang)); name != "" {
		return name
	}
	return i18n.T(m.lang, "scanner.unknown_product")
}

func (m Model) addProductCmd(product kitchen.Product) tea.Cmd {
	svc, lang := m.inventory, m.lang
	text := fmt.Sprintf(i18n.T(lang, "scanner.added"), m.productName(product))
	return m.call(func(ctx context.Context) tea.Msg {
		if _, err := svc.AddProduct(ctx, product, lang, nil); err != nil {
			var conflict *inventory.Conflict
			if errors.As(err, &conflict) {
				return pantryMsg{name: conflict.Name, err: err}
			}
			return actionMsg{err: err}
		}
		return actionMsg{text: text}
	})
}

func (m Model) renderScanner() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render(i18n.T(m.lang, "nav.scanner")))
	b.WriteString("\n\n")
	b.WriteString(m.scanner.input.View())
	b.WriteString("\n")

	if p := m.scanner.product; p != nil {
		b.WriteString("\n")
		b.WriteString(styles.Text.Bold(true).Render(m.productName(*p)))
		b.WriteString("\n")
		for _, row := range productRows(*p) {
			b.WriteString(styles.MutedText.Render(row[0]+": ") + plainText(row[1]))
			b.WriteString("\n")
		}
	}
	return styles.Panel.Render(b.String())
}

// productRows lists the non-empty product facts as label/value pairs.
func productRows(p kitchen.Product) [][2]string {
	rows := [][2]string{{"Barcode", p.Barcode}}
	add := func(label, value string) {
		if strings.TrimSpace(value) != "" {
			rows = append(rows, [2]string{label, value})
		}
	}
	add("Brand", p.Brands)
	add("Categories", p.Categories)
	add("Allergens", p.Allergens)
	if p.NutriscoreGrade != "" {
		add("Nutri-Score", strings.ToUpper(p.NutriscoreGrade))
	}
	if p.NovaGroup != nil {
		add("NOVA", fmt.Sprintf("%d", *p.NovaGroup))
	}
	return rows
}
