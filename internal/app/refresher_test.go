package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/five82/kitchen/internal/kitchen"
	"github.com/five82/kitchen/internal/state"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := time.Minute

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, time.Minute},
		{"negative failures", -1, time.Minute},
		{"one failure", 1, 2 * time.Minute},
		{"two failures", 2, 4 * time.Minute},
		{"three failures", 3, 8 * time.Minute},
		{"four failures capped", 4, 10 * time.Minute}, // Would be 16m, capped to 10m
		{"many failures capped", 40, 10 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

type fakeAuth struct {
	authenticated bool
	refreshed     int
}

func (f *fakeAuth) IsAuthenticated() bool { return f.authenticated }

func (f *fakeAuth) RefreshUser(context.Context) (*kitchen.User, bool) {
	f.refreshed++
	return &kitchen.User{ID: 1}, true
}

type fakePantry struct {
	store *state.Store
	calls int
}

func (f *fakePantry) Reload(context.Context) error {
	f.calls++
	f.store.UpdateIngredients([]kitchen.Ingredient{{ID: 1, Name: "Rice"}}, nil)
	return nil
}

type fakeAPI struct {
	favoritesErr error
}

func (f *fakeAPI) Favorites(context.Context) (*kitchen.FavoriteList, error) {
	if f.favoritesErr != nil {
		return nil, f.favoritesErr
	}
	return &kitchen.FavoriteList{Favorites: []kitchen.Favorite{{ID: 3, RecipeID: 9}}}, nil
}

func (f *fakeAPI) Profiles(context.Context, *bool) (*kitchen.DietProfileList, error) {
	return &kitchen.DietProfileList{Profiles: []kitchen.DietProfile{{ID: 4, ProfileType: "vegan", IsActive: true}}}, nil
}

func newTestRefresher(authenticated bool, api *fakeAPI) (*Refresher, *fakeAuth, *fakePantry) {
	store := &state.Store{}
	a := &fakeAuth{authenticated: authenticated}
	p := &fakePantry{store: store}
	return &Refresher{Auth: a, Pantry: p, API: api, Store: store}, a, p
}

func TestRefreshSkipsWithoutSession(t *testing.T) {
	r, a, p := newTestRefresher(false, &fakeAPI{})
	if err := r.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if p.calls != 0 || a.refreshed != 0 {
		t.Fatalf("refresh ran without a session: pantry %d user %d", p.calls, a.refreshed)
	}
}

func TestRefreshFillsStore(t *testing.T) {
	r, a, _ := newTestRefresher(true, &fakeAPI{})
	if err := r.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	snap := r.Store.Snapshot()
	if len(snap.Ingredients) != 1 || len(snap.Favorites) != 1 || len(snap.Profiles) != 1 {
		t.Fatalf("snapshot = %+v", snap)
	}
	if !r.Store.IsFavorite(9) {
		t.Fatalf("favorite index not rebuilt")
	}
	if a.refreshed != 1 {
		t.Fatalf("user refreshed %d times", a.refreshed)
	}
}

func TestRefreshKeepsGoingAfterFailure(t *testing.T) {
	boom := errors.New("favorites down")
	r, a, _ := newTestRefresher(true, &fakeAPI{favoritesErr: boom})

	err := r.Refresh(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("Refresh error = %v, want %v", err, boom)
	}
	snap := r.Store.Snapshot()
	if len(snap.Profiles) != 1 {
		t.Fatalf("profiles not refreshed after favorites failure")
	}
	if a.refreshed != 1 {
		t.Fatalf("user not refreshed after failure")
	}
}

func TestStartRefresherStopsWithContext(t *testing.T) {
	r, _, _ := newTestRefresher(true, &fakeAPI{})
	ctx, cancel := context.WithCancel(context.Background())
	StartRefresher(ctx, r, 10*time.Millisecond)

	deadline := time.Now().Add(2 * time.Second)
	for len(r.Store.Snapshot().Ingredients) == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("refresher never ran")
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
}
