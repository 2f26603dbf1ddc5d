package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"holidaze/internal/holidaze"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthUpstream(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		require.NoError(t, decodeJSONBody(r, &creds))

		if creds.Password != "correct-horse" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"errors":[{"message":"Invalid email or password"}]}`))
			return
		}

		upstreamEnvelope(t, w, http.StatusOK, holidaze.Credentials{
			ID:          "usr-1",
			Name:        "ola_nordmann",
			Email:       creds.Email,
			AccessToken: "upstream-token",
		}, nil)
	})
	mux.HandleFunc("POST /auth/register", func(w http.ResponseWriter, r *http.Request) {
		var req holidaze.RegisterRequest
		require.NoError(t, decodeJSONBody(r, &req))
		upstreamEnvelope(t, w, http.StatusCreated, holidaze.Profile{
			Name:         req.Name,
			Email:        req.Email,
			VenueManager: req.VenueManager,
		}, nil)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLogin(t *testing.T) {
	srv := newAuthUpstream(t)
	app := newTestApplication(t, srv.URL)
	mux := app.mount()

	rr := executeRequest(jsonRequest(t, http.MethodPost, "/v1/auth/login", LoginPayload{
		Email:    "ola_nordmann@stud.noroff.no",
		Password: "correct-horse",
	}), mux)
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decodeData[LoginResponse](t, rr)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "ola_nordmann", resp.Name)

	// The session gate now recognizes the token.
	identity, ok := app.sessions.Current()
	require.True(t, ok)
	assert.Equal(t, "ola_nordmann", identity.Name)
	assert.Equal(t, "upstream-token", identity.Token)

	req := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	rr = executeRequest(req, mux)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ola_nordmann")
	assert.NotContains(t, rr.Body.String(), "upstream-token")
}

func TestLoginBadCredentials(t *testing.T) {
	srv := newAuthUpstream(t)
	app := newTestApplication(t, srv.URL)
	mux := app.mount()

	rr := executeRequest(jsonRequest(t, http.MethodPost, "/v1/auth/login", LoginPayload{
		Email:    "ola_nordmann@stud.noroff.no",
		Password: "wrong-password",
	}), mux)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	_, ok := app.sessions.Current()
	assert.False(t, ok, "a failed login must not create a session")
}

func TestLoginRejectsNonNoroffEmail(t *testing.T) {
	srv := newAuthUpstream(t)
	app := newTestApplication(t, srv.URL)
	mux := app.mount()

	rr := executeRequest(jsonRequest(t, http.MethodPost, "/v1/auth/login", LoginPayload{
		Email:    "ola@example.com",
		Password: "correct-horse",
	}), mux)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLoginEchoesReturnTo(t *testing.T) {
	srv := newAuthUpstream(t)
	app := newTestApplication(t, srv.URL)
	mux := app.mount()

	// A protected request from an anonymous caller reports where to come
	// back to.
	rr := executeRequest(httptest.NewRequest(http.MethodGet, "/v1/profiles/ola_nordmann/bookings", nil), mux)
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), `"return_to":"/v1/profiles/ola_nordmann/bookings"`)

	rr = executeRequest(jsonRequest(t, http.MethodPost, "/v1/auth/login", LoginPayload{
		Email:    "ola_nordmann@stud.noroff.no",
		Password: "correct-horse",
		ReturnTo: "/v1/profiles/ola_nordmann/bookings",
	}), mux)
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decodeData[LoginResponse](t, rr)
	assert.Equal(t, "/v1/profiles/ola_nordmann/bookings", resp.ReturnTo)
}

func TestLoginDropsForeignReturnTo(t *testing.T) {
	srv := newAuthUpstream(t)
	app := newTestApplication(t, srv.URL)
	mux := app.mount()

	for _, returnTo := range []string{"https://evil.example/", "//evil.example/path"} {
		rr := executeRequest(jsonRequest(t, http.MethodPost, "/v1/auth/login", LoginPayload{
			Email:    "ola_nordmann@stud.noroff.no",
			Password: "correct-horse",
			ReturnTo: returnTo,
		}), mux)
		require.Equal(t, http.StatusOK, rr.Code)

		resp := decodeData[LoginResponse](t, rr)
		assert.Empty(t, resp.ReturnTo)
	}
}

func TestRegister(t *testing.T) {
	srv := newAuthUpstream(t)
	app := newTestApplication(t, srv.URL)
	mux := app.mount()

	rr := executeRequest(jsonRequest(t, http.MethodPost, "/v1/auth/register", RegisterUserPayload{
		Name:         "kari_nordmann",
		Email:        "kari_nordmann@stud.noroff.no",
		Password:     "super-secret",
		VenueManager: true,
	}), mux)
	require.Equal(t, http.StatusCreated, rr.Code)

	profile := decodeData[holidaze.Profile](t, rr)
	assert.Equal(t, "kari_nordmann", profile.Name)
	assert.True(t, profile.VenueManager)

	// Registering does not sign the user in.
	_, ok := app.sessions.Current()
	assert.False(t, ok)
}

func TestRegisterValidation(t *testing.T) {
	srv := newAuthUpstream(t)
	app := newTestApplication(t, srv.URL)
	mux := app.mount()

	tests := []struct {
		name    string
		payload RegisterUserPayload
	}{
		{
			name:    "non-student email",
			payload: RegisterUserPayload{Name: "kari", Email: "kari@gmail.com", Password: "super-secret"},
		},
		{
			name:    "short password",
			payload: RegisterUserPayload{Name: "kari", Email: "kari@stud.noroff.no", Password: "short"},
		},
		{
			name:    "missing name",
			payload: RegisterUserPayload{Email: "kari@stud.noroff.no", Password: "super-secret"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := executeRequest(jsonRequest(t, http.MethodPost, "/v1/auth/register", tt.payload), mux)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestLogout(t *testing.T) {
	srv := newAuthUpstream(t)
	app := newTestApplication(t, srv.URL)
	token := signIn(t, app, "ola_nordmann", "upstream-token")
	mux := app.mount()

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := executeRequest(req, mux)
	require.Equal(t, http.StatusNoContent, rr.Code)

	_, ok := app.sessions.Current()
	assert.False(t, ok)

	// The token outlives the session but no longer resolves.
	req = httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr = executeRequest(req, mux)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestTokenFromAnotherUserRejected(t *testing.T) {
	srv := newAuthUpstream(t)
	app := newTestApplication(t, srv.URL)

	stale := signIn(t, app, "ola_nordmann", "upstream-token")
	// A second sign-in replaces the single stored identity.
	_ = signIn(t, app, "kari_nordmann", "other-token")
	mux := app.mount()

	req := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+stale)
	rr := executeRequest(req, mux)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
