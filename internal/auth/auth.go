// Package auth owns the login, registration and logout lifecycle on top of
// the kitchen API client.
package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/five82/kitchen/internal/kitchen"
	"github.com/five82/kitchen/internal/session"
	"github.com/five82/kitchen/internal/tier"
)

// ErrMissingCredentials is returned when an identifier or password is blank.
var ErrMissingCredentials = errors.New("identifier and password are required")

// ErrNoToken is returned when the backend accepted a login without a token.
var ErrNoToken = errors.New("login response carried no access token")

// API is the subset of the endpoint facade the adapter drives.
type API interface {
	Login(ctx context.Context, emailOrUsername, password string) (*kitchen.Token, error)
	Register(ctx context.Context, email, username, password string) (*kitchen.User, error)
	Logout(ctx context.Context) error
	SendVerificationEmail(ctx context.Context, email string) error
	Me(ctx context.Context) (*kitchen.User, error)
	UpdateMe(ctx context.Context, update kitchen.UserUpdate) (*kitchen.User, error)
	Transport() kitchen.Transport
}

// Adapter tracks whether the user is authenticated and moves between the
// anonymous and authenticated states.
type Adapter struct {
	api     API
	session *session.Session
	nav     kitchen.Navigator
	logger  *slog.Logger
}

// New builds an Adapter. A nil navigator or logger is replaced by a no-op.
func New(api API, sess *session.Session, nav kitchen.Navigator, logger *slog.Logger) *Adapter {
	if nav == nil {
		nav = kitchen.NavigatorFunc(func(kitchen.Page) {})
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Adapter{api: api, session: sess, nav: nav, logger: logger}
}

// IsAuthenticated reports whether a session credential is stored. With
// cookie transport the cached user stands in for the credential.
func (a *Adapter) IsAuthenticated() bool {
	if a.api.Transport() == kitchen.TransportCookie {
		return a.session.HasUser()
	}
	return a.session.HasToken()
}

// Login exchanges credentials for a token, stores it and caches the user.
func (a *Adapter) Login(ctx context.Context, identifier, password string) (*kitchen.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	token, err := a.api.Login(ctx, identifier, password)
	if err != nil {
		return nil, err
	}
	if token.AccessToken != "" {
		if err := a.session.SetToken(token.AccessToken); err != nil {
			return nil, fmt.Errorf("store token: %w", err)
		}
	} else if a.api.Transport() == kitchen.TransportBearer {
		return nil, ErrNoToken
	}

	user, err := a.api.Me(ctx)
	if err != nil {
		if !kitchen.IsSessionExpired(err) {
			a.discard(ctx)
		}
		return nil, err
	}
	if err := a.session.SaveUser(user); err != nil {
		a.discard(ctx)
		return nil, fmt.Errorf("store user: %w", err)
	}
	a.logger.InfoContext(ctx, "logged in", slog.Int64("user_id", user.ID))
	return user, nil
}

// Register creates the account and logs in. The verification email is
// best-effort.
func (a *Adapter) Register(ctx context.Context, email, username, password string) (*kitchen.User, error) {
	if _, err := a.api.Register(ctx, email, username, password); err != nil {
		return nil, err
	}
	user, err := a.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	bestEffort(ctx, a.logger, "send verification email", func(ctx context.Context) error {
		return a.api.SendVerificationEmail(ctx, email)
	})
	return user, nil
}

// Logout tells the backend when it can, then always drops the local session
// and returns to the entry page.
func (a *Adapter) Logout(ctx context.Context) {
	bestEffort(ctx, a.logger, "server logout", a.api.Logout)
	a.discard(ctx)
	a.nav.Navigate(kitchen.PageEntry)
}

// RequireAuth guards authenticated views.
func (a *Adapter) RequireAuth() bool {
	if a.IsAuthenticated() {
		return true
	}
	a.nav.Navigate(kitchen.PageEntry)
	return false
}

// RedirectIfAuthenticated guards the login and registration views.
func (a *Adapter) RedirectIfAuthenticated() bool {
	if !a.IsAuthenticated() {
		return false
	}
	a.nav.Navigate(kitchen.PageMain)
	return true
}

// RefreshUser re-fetches the user. On failure the cached copy is kept and
// ok is false.
func (a *Adapter) RefreshUser(ctx context.Context) (*kitchen.User, bool) {
	user, err := a.api.Me(ctx)
	if err != nil {
		a.logger.DebugContext(ctx, "refresh user failed", slog.String("error", err.Error()))
		return nil, false
	}
	if err := a.session.SaveUser(user); err != nil {
		a.logger.WarnContext(ctx, "store refreshed user failed", slog.String("error", err.Error()))
		return nil, false
	}
	return user, true
}

// UpdateProfile sends a partial update and caches the result.
func (a *Adapter) UpdateProfile(ctx context.Context, update kitchen.UserUpdate) (*kitchen.User, error) {
	user, err := a.api.UpdateMe(ctx, update)
	if err != nil {
		return nil, err
	}
	if err := a.session.SaveUser(user); err != nil {
		return nil, fmt.Errorf("store user: %w", err)
	}
	return user, nil
}

// CurrentUser returns the cached user snapshot.
func (a *Adapter) CurrentUser() (*kitchen.User, bool) {
	var user kitchen.User
	if !a.session.LoadUser(&user) {
		return nil, false
	}
	return &user, true
}

// TierInfo describes the current user's tier; demo when unknown.
func (a *Adapter) TierInfo() tier.Descriptor {
	user, ok := a.CurrentUser()
	if !ok {
		return tier.Describe(tier.Demo)
	}
	return tier.Lookup(user.SubscriptionTier)
}

// TokenExpiry reads the exp claim of the stored token. The signature is not
// checked; the value is only displayed.
func (a *Adapter) TokenExpiry() (time.Time, bool) {
	raw := a.session.Token()
	if raw == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func (a *Adapter) discard(ctx context.Context) {
	if err := a.session.Clear(); err != nil {
		a.logger.ErrorContext(ctx, "clear session failed", slog.String("error", err.Error()))
	}
}
