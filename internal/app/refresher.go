package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/five82/kitchen/internal/kitchen"
	"github.com/five82/kitchen/internal/state"
)

const (
	defaultRefreshInterval = time.Minute
	maxBackoff             = 10 * time.Minute
)

// Refresher keeps the shared store in step with the backend while the user
// is signed in.
type Refresher struct {
	Auth interface {
		IsAuthenticated() bool
		RefreshUser(ctx context.Context) (*kitchen.User, bool)
	}
	Pantry interface {
		Reload(ctx context.Context) error
	}
	API interface {
		Favorites(ctx context.Context) (*kitchen.FavoriteList, error)
		Profiles(ctx context.Context, active *bool) (*kitchen.DietProfileList, error)
	}
	Store  *state.Store
	Logger *slog.Logger
}

// StartRefresher launches a background goroutine that refreshes the store
// at interval, backing off while the backend fails. It returns immediately.
func StartRefresher(ctx context.Context, r *Refresher, interval time.Duration) {
	if interval <= 0 {
		interval = defaultRefreshInterval
	}
	go func() {
		failures := 0
		for {
			select {
			case <-ctx.Done():
				return
			case <-time.After(calculateBackoff(failures, interval)):
			}
			if err := r.Refresh(ctx); err != nil && !errors.Is(err, context.Canceled) {
				failures++
				continue
			}
			failures = 0
		}
	}()
}

// Refresh fetches the pantry, favorites, profiles and user once. It does
// nothing without a session; the first error is returned after every fetch
// has been tried.
func (r *Refresher) Refresh(ctx context.Context) error {
	if !r.Auth.IsAuthenticated() {
		return nil
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var errs []error
	if err := r.Pantry.Reload(ctx); err != nil {
		errs = append(errs, err)
	}

	favorites, err := r.API.Favorites(ctx)
	if err != nil {
		r.Store.UpdateFavorites(nil, err)
		errs = append(errs, err)
	} else {
		r.Store.UpdateFavorites(favorites.Favorites, nil)
	}

	profiles, err := r.API.Profiles(ctx, nil)
	if err != nil {
		r.Store.UpdateProfiles(nil, err)
		errs = append(errs, err)
	} else {
		r.Store.UpdateProfiles(profiles.Profiles, nil)
	}

	r.Auth.RefreshUser(ctx)

	if len(errs) > 0 {
		logger.DebugContext(ctx, "refresh failed",
			slog.Int("errors", len(errs)),
			slog.String("error", errs[0].Error()),
		)
		return errs[0]
	}
	return nil
}

// calculateBackoff doubles the interval per consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
