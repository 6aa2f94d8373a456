package ui

import (
	"path/filepath"
	"testing"

	"github.com/five82/kitchen/internal/prefs"
)

func TestGetThemeFallsBackToPantry(t *testing.T) {
	if got := GetTheme("does-not-exist").Name; got != "Pantry" {
		t.Fatalf("GetTheme unknown = %q, want Pantry", got)
	}
	if got := GetTheme("Slate").Name; got != "Slate" {
		t.Fatalf("GetTheme(Slate) = %q", got)
	}
}

func TestNextThemeCycles(t *testing.T) {
	seen := map[string]bool{}
	name := ThemeNames()[0]
	for range ThemeNames() {
		if seen[name] {
			t.Fatalf("theme %q visited twice", name)
		}
		seen[name] = true
		name = NextTheme(name)
	}
	if name != ThemeNames()[0] {
		t.Fatalf("cycle ended at %q, want %q", name, ThemeNames()[0])
	}
	if got := NextTheme("unknown"); got != ThemeNames()[0] {
		t.Fatalf("NextTheme(unknown) = %q", got)
	}
}

func TestThemesDefineEveryStatus(t *testing.T) {
	statuses := []string{
		statusExpired, statusExpiring, statusFresh, statusPermanent,
		statusActive, statusInactive, statusFavorite,
		statusDemo, statusBasic, statusPremium,
	}
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		if th.Name != name {
			t.Fatalf("theme registered as %q is named %q", name, th.Name)
		}
		for _, s := range statuses {
			if th.StatusColors[s] == "" {
				t.Fatalf("theme %q has no color for %q", name, s)
			}
		}
	}
}

func TestStatusColorFallsBackToMuted(t *testing.T) {
	th := GetTheme("Pantry")
	styles := th.Styles()
	if got := styles.StatusColor("unknown"); got != th.Muted {
		t.Fatalf("StatusColor unknown = %q, want %q", got, th.Muted)
	}
	if got := styles.StatusColor(statusExpired); got != th.StatusColors[statusExpired] {
		t.Fatalf("StatusColor expired = %q", got)
	}
}

func TestDefaultPrefsThemeExists(t *testing.T) {
	p, err := prefs.Load(filepath.Join(t.TempDir(), "prefs.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := themes[p.Theme]; !ok {
		t.Fatalf("default prefs theme %q is not registered", p.Theme)
	}
}
