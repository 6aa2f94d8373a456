// Package app is the composition root of the kitchenhelper client.
//
// It loads the configuration, opens the persistent session store and the
// JSON log file, and wires the API client, auth adapter, pantry service,
// idle monitor and metrics registry together. Run starts the terminal UI;
// Login, Register, Logout, Whoami and ShoppingList are one-shot commands
// that share the same wiring.
//
// # Background refresh
//
// While the UI runs, a Refresher reloads the pantry, favorites, diet
// profiles and the user every minute. It does nothing without a stored
// session. Consecutive failures double the wait up to ten minutes; the
// shared state.Store records each failure so the header can show the
// client as offline.
//
// # Error handling
//
// Setup failures (unreadable config, store or log file) are returned from
// every entry point. Refresh failures are logged at debug level and never
// stop the UI.
package app
