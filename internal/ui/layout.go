package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 100

	// LayoutDetailWidth is the minimum width to show the recipe detail beside the list.
	LayoutDetailWidth = 140
)

// Content limits.
const (
	// HistoryPageSize is the number of recipes fetched per history page.
	HistoryPageSize = 20

	// ExpiringWindow marks ingredients that expire within this window.
	ExpiringWindow = 72 * time.Hour
)

// Timing constants.
const (
	// DefaultUIInterval is the default UI refresh interval.
	DefaultUIInterval = time.Second

	// ActionTimeout bounds a single user-triggered API call.
	ActionTimeout = 45 * time.Second
)
