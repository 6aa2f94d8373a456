// Package ui provides the Bubble Tea terminal interface of the KitchenHelper
// client.
//
// The root Model owns one view per area of the app: login, ingredients
// (the pantry), recipes, favorites, diet profiles and the barcode scanner.
// Views read a state.Snapshot that is refreshed on every tick and after
// every mutation; mutations run as tea.Cmds against the endpoint facade,
// the auth adapter and the inventory service, so the event loop never
// blocks on the network.
//
// Events that originate outside the program (the API client asking for
// the login page after a 401, idle warnings and expiry) reach the model
// through a Bridge. Any key or mouse event counts as activity for the idle
// monitor.
//
// Text supplied by the backend is passed through a strict bluemonday
// policy before rendering.
//
// Key bindings:
//
//   - tab / 1-5: switch views
//   - j/k, g/G: move
//   - a, e, d: add, edit, delete ingredients
//   - space: select an ingredient or toggle a profile
//   - c: fold a pantry category, or compact recipe details
//   - r: generate recipes from the selection
//   - f: toggle favorite
//   - T / L: cycle theme / language
//   - X: log out
//   - q or ctrl+c: quit
package ui
