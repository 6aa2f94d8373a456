package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/kitchen/internal/kitchen"
)

func TestHumanizeDuration(t *testing.T) {
	cases := map[time.Duration]string{
		500 * time.Millisecond:       "now",
		42 * time.Second:             "42s",
		5 * time.Minute:              "5m",
		2 * time.Hour:                "2h",
		2*time.Hour + 15*time.Minute: "2h 15m",
		50 * time.Hour:               "2d",
	}
	for d, want := range cases {
		if got := humanizeDuration(d); got != want {
			t.Fatalf("humanizeDuration(%v) = %q, want %q", d, got, want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Kartoffelsalat", 8); got != "Karto..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("Brötchen", 8); got != "Brötchen" {
		t.Fatalf("truncate counted bytes: %q", got)
	}
	if got := truncate("abc", 0); got != "" {
		t.Fatalf("truncate zero = %q", got)
	}
	if got := truncateMiddle("abcdefghij", 5); got != "ab…ij" {
		t.Fatalf("truncateMiddle = %q", got)
	}
}

func TestParseIngredientInput(t *testing.T) {
	in, err := parseIngredientInput(" Milk , Dairy, 2026-10-20 ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if in.Name != "Milk" {
		t.Fatalf("name = %q", in.Name)
	}
	if in.Category == nil || *in.Category != "Dairy" {
		t.Fatalf("category = %v", in.Category)
	}
	if in.ExpiryDate == nil || in.ExpiryDate.Format(time.DateOnly) != "2026-10-20" {
		t.Fatalf("expiry = %v", in.ExpiryDate)
	}

	in, err = parseIngredientInput("Salt, 2027-01-01")
	if err != nil {
		t.Fatalf("parse date only: %v", err)
	}
	if in.Category != nil || in.ExpiryDate == nil {
		t.Fatalf("date-only input = %+v", in)
	}

	if _, err := parseIngredientInput("Eggs, Dairy, Fridge"); err == nil {
		t.Fatalf("expected error for second category")
	}

	in, err = parseIngredientInput("   ")
	if err != nil || in.Name != "" {
		t.Fatalf("blank input = %+v, %v", in, err)
	}
}

func TestFormatIngredientInputRoundTrips(t *testing.T) {
	category := "Vegetables"
	expiry := time.Date(2026, 11, 2, 0, 0, 0, 0, time.Local)
	item := kitchen.Ingredient{Name: "Carrot", Category: &category, ExpiryDate: &expiry}

	text := formatIngredientInput(item)
	if text != "Carrot, Vegetables, 2026-11-02" {
		t.Fatalf("format = %q", text)
	}
	in, err := parseIngredientInput(text)
	if err != nil || in.Name != "Carrot" || *in.Category != category || !in.ExpiryDate.Equal(expiry) {
		t.Fatalf("round trip = %+v, %v", in, err)
	}
}

func TestExpiryStatus(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) *time.Time {
		ts := now.Add(d)
		return &ts
	}
	cases := []struct {
		item kitchen.Ingredient
		want string
	}{
		{kitchen.Ingredient{IsPermanent: true, ExpiryDate: at(-time.Hour)}, statusPermanent},
		{kitchen.Ingredient{}, statusFresh},
		{kitchen.Ingredient{ExpiryDate: at(-time.Hour)}, statusExpired},
		{kitchen.Ingredient{ExpiryDate: at(24 * time.Hour)}, statusExpiring},
		{kitchen.Ingredient{ExpiryDate: at(10 * 24 * time.Hour)}, statusFresh},
	}
	for i, tc := range cases {
		if got := expiryStatus(tc.item, now); got != tc.want {
			t.Fatalf("case %d: expiryStatus = %q, want %q", i, got, tc.want)
		}
	}
}

func TestPlainTextStripsMarkup(t *testing.T) {
	got := plainText("<b>Pasta</b> &amp; <script>alert(1)</script>sauce<br>\x1b[31mred")
	if strings.Contains(got, "<") || strings.Contains(got, "\x1b") {
		t.Fatalf("plainText left markup: %q", got)
	}
	if !strings.HasPrefix(got, "Pasta & sauce\n") {
		t.Fatalf("plainText = %q", got)
	}
	if plainText("") != "" {
		t.Fatalf("plainText empty")
	}
}

func TestPlainTextDropsControlRunes(t *testing.T) {
	got := plainText("Soup\u009b31m\a\rstir\tslowly\nserve\x00\x7f")
	if got != "Soup31mstir\tslowly\nserve" {
		t.Fatalf("plainText = %q", got)
	}
	if got := plainText("a&#27;b&#7;c"); got != "abc" {
		t.Fatalf("plainText decoded control entity: %q", got)
	}
}

func TestTemplateNames(t *testing.T) {
	flat := map[string]any{"vegan": map[string]any{}, "diabetes": map[string]any{}}
	if got := templateNames(flat); strings.Join(got, ",") != "diabetes,vegan" {
		t.Fatalf("templateNames flat = %v", got)
	}
	wrapped := map[string]any{"templates": map[string]any{"keto": 1, "gluten_free": 2}}
	if got := templateNames(wrapped); strings.Join(got, ",") != "gluten_free,keto" {
		t.Fatalf("templateNames wrapped = %v", got)
	}
}

func TestWindowKeepsCursorVisible(t *testing.T) {
	start, end := window(15, 20, 5)
	if 15 < start || 15 >= end || end-start != 5 {
		t.Fatalf("window(15,20,5) = %d,%d", start, end)
	}
	start, end = window(0, 3, 10)
	if start != 0 || end != 3 {
		t.Fatalf("window short list = %d,%d", start, end)
	}
}

func TestNavigateClamps(t *testing.T) {
	keys := DefaultKeyMap()
	cursor := 0
	if !keys.navigate(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")}, &cursor, 3) || cursor != 0 {
		t.Fatalf("up at top moved cursor to %d", cursor)
	}
	keys.navigate(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("G")}, &cursor, 3)
	if cursor != 2 {
		t.Fatalf("bottom = %d", cursor)
	}
	keys.navigate(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")}, &cursor, 3)
	if cursor != 2 {
		t.Fatalf("down at bottom = %d", cursor)
	}
	if keys.navigate(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}, &cursor, 3) {
		t.Fatalf("x treated as navigation")
	}
}

func TestBridgeQueuesUntilAttached(t *testing.T) {
	b := NewBridge()
	b.Navigate(kitchen.PageEntry)
	b.IdleExpired()
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.pending) != 2 {
		t.Fatalf("pending = %d, want 2", len(b.pending))
	}
	if got, ok := b.pending[0].(pageMsg); !ok || kitchen.Page(got) != kitchen.PageEntry {
		t.Fatalf("first pending = %#v", b.pending[0])
	}
}
