// Package state holds the latest pantry, favorites and diet profile data
// shared between the background refresher and the UI.
//
// # Concurrency
//
// Store uses a readers-writer lock. Writers are the refresher goroutine and
// the UI after a mutation; readers are the UI render loop. Locks are held
// only while copying, never during network I/O.
//
// # Update semantics
//
// Each section is replaced as a whole. A failed refresh keeps the previous
// data and records the error:
//
//	store.UpdateIngredients(items, nil)   // replace, clear error
//	store.UpdateIngredients(nil, err)     // keep items, record err
//
// Snapshot returns deep copies, so callers may mutate what they receive.
//
// # Favorites cache
//
// Every favorites update rebuilds a recipe ID -> favorite ID index used by
// IsFavorite and FavoriteID. The index lets recipe lists show a favorite
// marker without one check request per recipe.
//
// The zero Store is ready to use.
package state
