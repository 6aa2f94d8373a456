// Package i18n holds the translation tables and the locale lookup rules.
//
// UI strings fall back lang -> de -> key. The API client's user-facing
// error texts fall back to English instead.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Default is the UI language used when no preference is stored.
const Default = "de"

// Fallback is the language of API error messages when the preference has no entry.
const Fallback = "en"

// Supported lists the languages with translation tables, in matcher order.
var Supported = []string{"en", "de", "fr", "es", "it"}

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.German,
	language.French,
	language.Spanish,
	language.Italian,
})

// Match maps a user or system locale ("de-AT", "fr_FR.UTF-8") to one of
// Supported. It reports false when nothing matches.
func Match(pref string) (string, bool) {
	pref = strings.TrimSpace(pref)
	if i := strings.IndexByte(pref, '.'); i >= 0 {
		pref = pref[:i]
	}
	pref = strings.ReplaceAll(pref, "_", "-")
	if pref == "" || strings.EqualFold(pref, "C") || strings.EqualFold(pref, "POSIX") {
		return "", false
	}
	tag, err := language.Parse(pref)
	if err != nil {
		return "", false
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return "", false
	}
	return Supported[idx], true
}

// Normalize returns the matched language or Default.
func Normalize(pref string) string {
	if lang, ok := Match(pref); ok {
		return lang
	}
	return Default
}

// T translates key for lang with the UI fallback chain.
func T(lang, key string) string {
	if v, ok := lookup(lang, key); ok {
		return v
	}
	if v, ok := lookup(Default, key); ok {
		return v
	}
	return key
}

// Message translates an API error text, falling back to English.
func Message(lang, key string) string {
	if v, ok := lookup(lang, key); ok {
		return v
	}
	if v, ok := lookup(Fallback, key); ok {
		return v
	}
	return key
}

// Next cycles to the following supported language.
func Next(lang string) string {
	for i, l := range Supported {
		if l == lang {
			return Supported[(i+1)%len(Supported)]
		}
	}
	return Supported[0]
}

func lookup(lang, key string) (string, bool) {
	table, ok := translations[lang]
	if !ok {
		return "", false
	}
	v, ok := table[key]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
