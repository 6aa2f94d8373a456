package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/five82/kitchen/internal/kitchen"
)

func humanizeDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return "now"
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		h := int(d.Hours())
		if m := int(d.Minutes()) % 60; m > 0 {
			return fmt.Sprintf("%dh %dm", h, m)
		}
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dd", int(d.Hours())/24)
	}
}

// truncate shortens s to max runes with a trailing ellipsis.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

func truncateMiddle(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 || value == "" {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	keep := limit - 1 // room for ellipsis rune
	prefix := keep / 2
	suffix := keep - prefix
	return string(runes[:prefix]) + "…" + string(runes[len(runes)-suffix:])
}

func ternary(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}

// expiryStatus classifies an ingredient for coloring.
func expiryStatus(item kitchen.Ingredient, now time.Time) string {
	switch {
	case item.IsPermanent:
		return statusPermanent
	case item.ExpiryDate == nil:
		return statusFresh
	case item.Expired(now):
		return statusExpired
	case item.ExpiryDate.Sub(now) <= ExpiringWindow:
		return statusExpiring
	default:
		return statusFresh
	}
}

func formatExpiry(item kitchen.Ingredient) string {
	if item.ExpiryDate == nil {
		return ""
	}
	return item.ExpiryDate.Format(time.DateOnly)
}

// parseIngredientInput reads "name, category, YYYY-MM-DD". Only the name
// is required; a field that parses as a date is taken as the expiry.
func parseIngredientInput(raw string) (kitchen.IngredientInput, error) {
	var in kitchen.IngredientInput
	parts := strings.Split(raw, ",")
	in.Name = strings.TrimSpace(parts[0])
	for _, part := range parts[1:] {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if when, err := time.ParseInLocation(time.DateOnly, part, time.Local); err == nil {
			in.ExpiryDate = &when
			continue
		}
		if in.Category != nil {
			return in, fmt.Errorf("unexpected field %q", part)
		}
		category := part
		in.Category = &category
	}
	return in, nil
}

// formatIngredientInput renders item in the form parseIngredientInput reads.
func formatIngredientInput(item kitchen.Ingredient) string {
	parts := []string{item.Name}
	if c := item.CategoryName(); c != "" {
		parts = append(parts, c)
	}
	if e := formatExpiry(item); e != "" {
		parts = append(parts, e)
	}
	return strings.Join(parts, ", ")
}
