package i18n

import "testing"

func TestMatch(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"de", "de", true},
		{"de-AT", "de", true},
		{"fr_FR.UTF-8", "fr", true},
		{"en-GB", "en", true},
		{"", "", false},
		{"C", "", false},
		{"not a tag!", "", false},
	}
	for _, tc := range cases {
		got, ok := Match(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("Match(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestNormalizeDefaultsToGerman(t *testing.T) {
	if got := Normalize(""); got != Default {
		t.Fatalf("Normalize(\"\") = %q, want %q", got, Default)
	}
}

func TestT_FallsBackToGermanThenKey(t *testing.T) {
	// fr has no login.submit entry
	if got := T("fr", "login.submit"); got != translations["de"]["login.submit"] {
		t.Fatalf("T(fr, login.submit) = %q, want German fallback", got)
	}
	if got := T("en", "no.such.key"); got != "no.such.key" {
		t.Fatalf("T missing key = %q, want key", got)
	}
}

func TestMessage_FallsBackToEnglish(t *testing.T) {
	if got := Message("xx", KeyServerUnreachable); got != translations["en"][KeyServerUnreachable] {
		t.Fatalf("Message(xx) = %q, want English text", got)
	}
	if got := Message("de", KeyServerUnreachable); got != "Server nicht erreichbar. Bitte prüfe deine Verbindung." {
		t.Fatalf("Message(de) = %q", got)
	}
}

func TestNextCycles(t *testing.T) {
	seen := map[string]bool{}
	lang := Supported[0]
	for range Supported {
		seen[lang] = true
		lang = Next(lang)
	}
	if len(seen) != len(Supported) || lang != Supported[0] {
		t.Fatalf("Next did not cycle through all languages: %v", seen)
	}
	if Next("zz") != Supported[0] {
		t.Fatalf("Next(unknown) should restart at %q", Supported[0])
	}
}
