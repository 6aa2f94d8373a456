package state

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/five82/kitchen/internal/kitchen"
)

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Ingredients []kitchen.Ingredient
	Favorites   []kitchen.Favorite
	Profiles    []kitchen.DietProfile
	Recipes     []kitchen.Recipe
	// Remaining is the daily generation allowance reported by the last
	// generate call; -1 when unknown.
	Remaining int

	HasIngredients      bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline returns true when the API has been unreachable for multiple refreshes.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// ActiveProfileTypes lists the types of active diet profiles, the form
// recipe generation expects.
func (s Snapshot) ActiveProfileTypes() []string {
	var names []string
	for _, p := range s.Profiles {
		if p.IsActive {
			names = append(names, p.ProfileType)
		}
	}
	return names
}

// FindIngredient returns the cached ingredient with the given name,
// compared case-insensitively.
func (s Snapshot) FindIngredient(name string) (kitchen.Ingredient, bool) {
	needle := strings.TrimSpace(name)
	for _, item := range s.Ingredients {
		if strings.EqualFold(strings.TrimSpace(item.Name), needle) {
			return item, true
		}
	}
	return kitchen.Ingredient{}, false
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu        sync.RWMutex
	snapshot  Snapshot
	favorites map[int64]int64
	remaining *int
}

// UpdateIngredients replaces the inventory. When err is non-nil the previous
// data is kept but the error is recorded for visibility.
func (s *Store) UpdateIngredients(items []kitchen.Ingredient, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.recordError(err) {
		return
	}
	s.snapshot.Ingredients = slices.Clone(items)
	s.snapshot.HasIngredients = true
	s.recordSuccess()
}

// UpdateFavorites replaces the favorites and rebuilds the favorite index.
func (s *Store) UpdateFavorites(items []kitchen.Favorite, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.recordError(err) {
		return
	}
	s.snapshot.Favorites = cloneFavorites(items)
	s.favorites = make(map[int64]int64, len(items))
	for _, f := range items {
		s.favorites[f.RecipeID] = f.ID
	}
	s.recordSuccess()
}

// UpdateProfiles replaces the diet profiles.
func (s *Store) UpdateProfiles(items []kitchen.DietProfile, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.recordError(err) {
		return
	}
	s.snapshot.Profiles = cloneProfiles(items)
	s.recordSuccess()
}

// SetRecipes stores the latest generated or history recipes.
func (s *Store) SetRecipes(recipes []kitchen.Recipe, remaining *int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Recipes = cloneRecipes(recipes)
	if remaining != nil {
		v := *remaining
		s.remaining = &v
	}
}

// MarkFavorite records a favorite added or removed outside a full reload.
// A zero favoriteID removes the mark.
func (s *Store) MarkFavorite(recipeID, favoriteID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.favorites == nil {
		s.favorites = map[int64]int64{}
	}
	if favoriteID == 0 {
		delete(s.favorites, recipeID)
		s.snapshot.Favorites = slices.DeleteFunc(s.snapshot.Favorites, func(f kitchen.Favorite) bool {
			return f.RecipeID == recipeID
		})
		return
	}
	s.favorites[recipeID] = favoriteID
}

// IsFavorite reports whether recipeID is a favorite.
func (s *Store) IsFavorite(recipeID int64) bool {
	_, ok := s.FavoriteID(recipeID)
	return ok
}

// FavoriteID returns the favorite ID for recipeID.
func (s *Store) FavoriteID(recipeID int64) (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.favorites[recipeID]
	return id, ok
}

// Reset drops all cached data, used on logout.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = Snapshot{}
	s.favorites = nil
	s.remaining = nil
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Ingredients = slices.Clone(s.snapshot.Ingredients)
	snap.Favorites = cloneFavorites(s.snapshot.Favorites)
	snap.Profiles = cloneProfiles(s.snapshot.Profiles)
	snap.Recipes = cloneRecipes(s.snapshot.Recipes)
	snap.Remaining = -1
	if s.remaining != nil {
		snap.Remaining = *s.remaining
	}
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func (s *Store) recordError(err error) bool {
	if err == nil {
		return false
	}
	s.snapshot.LastError = err
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures++
	return true
}

func (s *Store) recordSuccess() {
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

func cloneFavorites(items []kitchen.Favorite) []kitchen.Favorite {
	if len(items) == 0 {
		return nil
	}
	dup := make([]kitchen.Favorite, len(items))
	for i, f := range items {
		dup[i] = f
		if f.Recipe != nil {
			r := cloneRecipe(*f.Recipe)
			dup[i].Recipe = &r
		}
	}
	return dup
}

func cloneProfiles(items []kitchen.DietProfile) []kitchen.DietProfile {
	if len(items) == 0 {
		return nil
	}
	dup := make([]kitchen.DietProfile, len(items))
	for i, p := range items {
		dup[i] = p
		if p.Settings != nil {
			dup[i].Settings = make(map[string]any, len(p.Settings))
			for k, v := range p.Settings {
				dup[i].Settings[k] = v
			}
		}
	}
	return dup
}

func cloneRecipes(items []kitchen.Recipe) []kitchen.Recipe {
	if len(items) == 0 {
		return nil
	}
	dup := make([]kitchen.Recipe, len(items))
	for i, r := range items {
		dup[i] = cloneRecipe(r)
	}
	return dup
}

func cloneRecipe(r kitchen.Recipe) kitchen.Recipe {
	r.UsedIngredients = slices.Clone(r.UsedIngredients)
	r.Ingredients = slices.Clone(r.Ingredients)
	if r.NutritionPerServing != nil {
		n := *r.NutritionPerServing
		r.NutritionPerServing = &n
	}
	return r
}
