package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"holidaze/internal/auth"
	"holidaze/internal/cache"
	"holidaze/internal/holidaze"
	"holidaze/internal/ratelimiter"
	"holidaze/internal/session"

	"go.uber.org/zap"
)

func newTestApplication(t *testing.T, upstreamURL string) *application {
	t.Helper()

	client, err := holidaze.New(upstreamURL, "test-api-key")
	if err != nil {
		t.Fatalf("upstream client: %v", err)
	}

	cfg := config{
		addr: ":0",
		env:  "test",
		auth: authConfig{
			basic: basicConfig{user: "admin", pass: "admin"},
			token: tokenConfig{secret: "test-secret", exp: time.Hour, iss: "holidaze"},
		},
		rateLimiter: ratelimiter.Config{
			RequestsPerTimeFrame: 100,
			TimeFrame:            time.Second,
			Enabled:              false,
		},
	}

	return &application{
		config:        cfg,
		logger:        zap.NewNop().Sugar(),
		upstream:      client,
		snapshots:     cache.New(nil),
		sessions:      session.NewStore(filepath.Join(t.TempDir(), "session.json")),
		authenticator: auth.NewJWTAuthenticator("test-secret", "holidaze", "holidaze", time.Hour),
		rateLimiter:   ratelimiter.NewFixedWindowLimiter(100, time.Second),
	}
}

// signIn stores a session and mints a matching gateway token, skipping the
// login round-trip.
func signIn(t *testing.T, app *application, name, upstreamToken string) string {
	t.Helper()

	err := app.sessions.SignIn(session.Identity{
		ID:    "usr-1",
		Name:  name,
		Email: name + "@stud.noroff.no",
		Token: upstreamToken,
	})
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}

	token, err := app.authenticator.GenerateToken(name)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

func executeRequest(req *http.Request, mux http.Handler) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// upstreamEnvelope mirrors the wire shape the Noroff API wraps every payload
// in.
func upstreamEnvelope(t *testing.T, w http.ResponseWriter, status int, data any, meta *holidaze.ListMeta) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]any{"data": data, "meta": meta}); err != nil {
		t.Fatalf("encode upstream response: %v", err)
	}
}

func decodeJSONBody(r *http.Request, dest any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dest)
}

func decodeData[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()

	var env struct {
		Data T `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return env.Data
}
