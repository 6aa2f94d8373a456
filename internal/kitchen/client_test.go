package kitchen

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/five82/kitchen/internal/session"
	"github.com/five82/kitchen/internal/store"
)

type recordingNavigator struct {
	calls atomic.Int32
	last  atomic.Int32
}

func (n *recordingNavigator) Navigate(p Page) {
	n.calls.Add(1)
	n.last.Store(int32(p))
}

type countingRecorder struct {
	requests atomic.Int32
	expired  atomic.Int32
	status   atomic.Int32
}

func (r *countingRecorder) ObserveRequest(_ string, status int, _ time.Duration) {
	r.requests.Add(1)
	r.status.Store(int32(status))
}

func (r *countingRecorder) SessionExpired() { r.expired.Add(1) }

func newTestClient(t *testing.T, baseURL string, sess *session.Session, nav Navigator) *Client {
	t.Helper()
	if sess == nil {
		sess = session.New(store.NewMemory())
	}
	c, err := NewClient(Options{BaseURL: baseURL, Session: sess, Navigator: nav})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return c
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestParseBaseURL_Normalizes(t *testing.T) {
	got, err := parseBaseURL(" http://example.com:8000/api/?x=1#frag ")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if got != "http://example.com:8000/api" {
		t.Fatalf("parseBaseURL = %q, want http://example.com:8000/api", got)
	}

	for _, raw := range []string{"", "   ", "/api", "example.com"} {
		if _, err := parseBaseURL(raw); err == nil {
			t.Fatalf("parseBaseURL(%q) returned nil error", raw)
		}
	}
}

func TestNewClient_RejectsUnknownTransport(t *testing.T) {
	_, err := NewClient(Options{BaseURL: "http://127.0.0.1:8000/api", Transport: "carrier-pigeon"})
	if err == nil {
		t.Fatal("NewClient returned nil error for unknown transport")
	}
}

func TestRequest_AttachesBearerTokenAndHeaders(t *testing.T) {
	t.Parallel()

	var gotAuth, gotType, gotAccept, gotRequestID, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		gotAccept = r.Header.Get("Accept")
		gotRequestID = r.Header.Get("X-Request-ID")
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(server.Close)

	sess := session.New(store.NewMemory())
	if err := sess.SetToken("T"); err != nil {
		t.Fatalf("SetToken returned error: %v", err)
	}
	c := newTestClient(t, server.URL+"/api", sess, nil)

	var out struct {
		OK bool `json:"ok"`
	}
	if err := c.Get(testContext(t), "/ingredients/", &out); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !out.OK {
		t.Fatalf("decoded payload = %#v, want ok=true", out)
	}
	if gotAuth != "Bearer T" {
		t.Fatalf("Authorization = %q, want %q", gotAuth, "Bearer T")
	}
	if gotType != "application/json" || gotAccept != "application/json" {
		t.Fatalf("content headers = %q/%q, want application/json", gotType, gotAccept)
	}
	if gotRequestID == "" {
		t.Fatal("X-Request-ID header missing")
	}
	if gotPath != "/api/ingredients/" {
		t.Fatalf("path = %q, want /api/ingredients/", gotPath)
	}
}

func TestRequest_OmitsAuthorizationWithoutToken(t *testing.T) {
	t.Parallel()

	var sawAuth atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Header["Authorization"]; ok {
			sawAuth.Store(true)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server.URL, nil, nil)
	if err := c.Post(testContext(t), "/auth/logout", struct{}{}, nil); err != nil {
		t.Fatalf("Post returned error: %v", err)
	}
	if sawAuth.Load() {
		t.Fatal("Authorization header sent without a stored token")
	}
}

func TestRequest_CookieTransportNeverSendsBearer(t *testing.T) {
	t.Parallel()

	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(server.Close)

	sess := session.New(store.NewMemory())
	_ = sess.SetToken("T")
	c, err := NewClient(Options{BaseURL: server.URL, Session: sess, Transport: TransportCookie})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if c.http.Jar == nil {
		t.Fatal("cookie transport did not install a cookie jar")
	}
	if err := c.Get(testContext(t), "/users/me", nil); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("Authorization = %q, want none in cookie transport", gotAuth)
	}
}

func TestRequest_UnauthorizedClearsSessionAndNavigatesOnce(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Could not validate credentials","id":7}`))
	}))
	t.Cleanup(server.Close)

	sess := session.New(store.NewMemory())
	_ = sess.SetToken("T")
	_ = sess.SaveUser(User{ID: 1, Username: "ada"})
	nav := &recordingNavigator{}
	rec := &countingRecorder{}
	c, err := NewClient(Options{BaseURL: server.URL, Session: sess, Navigator: nav, Metrics: rec})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	var out struct {
		ID int `json:"id"`
	}
	err = c.Get(testContext(t), "/users/me", &out)
	if !IsSessionExpired(err) {
		t.Fatalf("Get error = %v, want session expired", err)
	}
	if err.Error() != "Session expired. Please login again." {
		t.Fatalf("message = %q", err.Error())
	}
	if StatusOf(err) != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", StatusOf(err))
	}
	if out.ID != 0 {
		t.Fatalf("401 body was decoded into out: %#v", out)
	}
	if sess.HasToken() || sess.HasUser() {
		t.Fatal("session not cleared after 401")
	}
	if nav.calls.Load() != 1 || Page(nav.last.Load()) != PageEntry {
		t.Fatalf("navigation calls = %d last = %d, want 1 to entry", nav.calls.Load(), nav.last.Load())
	}
	if rec.expired.Load() != 1 {
		t.Fatalf("session expiry count = %d, want 1", rec.expired.Load())
	}
}

func TestRequest_UnauthorizedMessageFollowsLocale(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	sess := session.New(store.NewMemory())
	_ = sess.SetLocale("de")
	_ = sess.SetToken("T")
	c := newTestClient(t, server.URL, sess, nil)

	err := c.Get(testContext(t), "/ingredients/", nil)
	if err == nil || err.Error() != "Sitzung abgelaufen. Bitte erneut anmelden." {
		t.Fatalf("error = %v, want german session expired text", err)
	}
	if sess.Locale() != "de" {
		t.Fatalf("locale = %q, want de to survive the logout", sess.Locale())
	}
}

func TestRequest_NoContentSkipsParsing(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server.URL, nil, nil)
	out := map[string]any{"untouched": true}
	if err := c.Delete(testContext(t), "/ingredients/4", &out); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if out["untouched"] != true || len(out) != 1 {
		t.Fatalf("out modified on 204: %#v", out)
	}
}

func TestRequest_ErrorDetail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{name: "string detail", status: http.StatusBadRequest, body: `{"detail":"Ingredient already exists"}`, want: "Ingredient already exists"},
		{name: "no detail", status: http.StatusInternalServerError, body: `{"error":"boom"}`, want: "Request failed with status 500"},
		{name: "not json", status: http.StatusBadGateway, body: `<html>bad gateway</html>`, want: "Request failed with status 502"},
		{name: "empty detail", status: http.StatusNotFound, body: `{"detail":""}`, want: "Request failed with status 404"},
		{name: "structured message", status: http.StatusConflict, body: `{"detail":{"message":"Duplicate","existing_id":9}}`, want: "Duplicate"},
		{name: "structured list", status: http.StatusUnprocessableEntity, body: `{"detail":[{"loc":["body","name"]}]}`, want: `[{"loc":["body","name"]}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			sess := session.New(store.NewMemory())
			_ = sess.SetToken("T")
			c := newTestClient(t, server.URL, sess, nil)

			err := c.Post(testContext(t), "/ingredients/", map[string]string{"name": "Salt"}, nil)
			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("error = %v, want *Error", err)
			}
			if apiErr.Kind != KindRequestFailed || apiErr.Status != tt.status {
				t.Fatalf("kind/status = %s/%d, want request_failed/%d", apiErr.Kind, apiErr.Status, tt.status)
			}
			if apiErr.Message != tt.want {
				t.Fatalf("message = %q, want %q", apiErr.Message, tt.want)
			}
			if !sess.HasToken() {
				t.Fatal("non-401 error cleared the session")
			}
		})
	}
}

func TestRequest_NetworkFailureIsLocalized(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	base := server.URL
	server.Close()

	tests := []struct {
		locale string
		want   string
	}{
		{locale: "", want: "Server not reachable. Please check your connection."},
		{locale: "de", want: "Server nicht erreichbar. Bitte prüfe deine Verbindung."},
		{locale: "xx", want: "Server not reachable. Please check your connection."},
	}
	for _, tt := range tests {
		sess := session.New(store.NewMemory())
		if tt.locale != "" {
			_ = sess.SetLocale(tt.locale)
		}
		_ = sess.SetToken("T")
		rec := &countingRecorder{}
		c, err := NewClient(Options{BaseURL: base, Session: sess, Metrics: rec})
		if err != nil {
			t.Fatalf("NewClient returned error: %v", err)
		}

		err = c.Get(testContext(t), "/ingredients/", nil)
		if !IsNetwork(err) {
			t.Fatalf("locale %q: error = %v, want network error", tt.locale, err)
		}
		if err.Error() != tt.want {
			t.Fatalf("locale %q: message = %q, want %q", tt.locale, err.Error(), tt.want)
		}
		if errors.Unwrap(err) == nil {
			t.Fatalf("locale %q: underlying transport error not kept", tt.locale)
		}
		if !sess.HasToken() {
			t.Fatalf("locale %q: network failure cleared the session", tt.locale)
		}
		if rec.requests.Load() != 1 || rec.status.Load() != 0 {
			t.Fatalf("locale %q: recorder = %d/%d, want one observation with status 0", tt.locale, rec.requests.Load(), rec.status.Load())
		}
	}
}

func TestRequest_CanceledContextIsNotNetworkError(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(server.Close)
	t.Cleanup(func() { close(release) })

	c := newTestClient(t, server.URL, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := c.Get(ctx, "/recipes/history", nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if IsNetwork(err) {
		t.Fatal("cancellation classified as network error")
	}
}

func TestRequest_RejectsRelativeGarbagePath(t *testing.T) {
	c := newTestClient(t, "http://127.0.0.1:8000/api", nil, nil)
	if err := c.Get(context.Background(), "ingredients", nil); err == nil {
		t.Fatal("Get accepted a path without leading slash")
	}
}

func TestRequest_DecodeFailureIsWrapped(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server.URL, nil, nil)
	var out map[string]any
	err := c.Get(testContext(t), "/users/me", &out)
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("error = %v, want decode response failure", err)
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if apiErr.Kind != KindRequestFailed || apiErr.Status != http.StatusOK {
		t.Fatalf("error = %+v, want request failed with status 200", apiErr)
	}
	if apiErr.Unwrap() == nil {
		t.Fatalf("decode error not kept")
	}
}

func TestDownload_ReturnsRawBodyAndHonorsUnauthorized(t *testing.T) {
	t.Parallel()

	var gotAuth string
	var unauthorized atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if unauthorized.Load() {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4 raw"))
	}))
	t.Cleanup(server.Close)

	sess := session.New(store.NewMemory())
	_ = sess.SetToken("T")
	nav := &recordingNavigator{}
	c := newTestClient(t, server.URL, sess, nav)

	data, err := c.Download(testContext(t), http.MethodGet, "/recipes/3/export/pdf", nil)
	if err != nil {
		t.Fatalf("Download returned error: %v", err)
	}
	if string(data) != "%PDF-1.4 raw" {
		t.Fatalf("Download body = %q", data)
	}
	if gotAuth != "Bearer T" {
		t.Fatalf("Authorization = %q, want Bearer T", gotAuth)
	}

	unauthorized.Store(true)
	if _, err := c.Download(testContext(t), http.MethodGet, "/recipes/3/export/pdf", nil); !IsSessionExpired(err) {
		t.Fatalf("Download error = %v, want session expired", err)
	}
	if sess.HasToken() || nav.calls.Load() != 1 {
		t.Fatalf("401 on download: token=%v navigations=%d", sess.HasToken(), nav.calls.Load())
	}
}
