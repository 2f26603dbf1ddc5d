package main

import (
	"net/http"
	"strings"

	"holidaze/internal/cache"
	"holidaze/internal/holidaze"
	"holidaze/internal/session"
)

type RegisterUserPayload struct {
	Name         string `json:"name" validate:"required,min=3,max=30"`
	Email        string `json:"email" validate:"required,email,noroffemail"`
	Password     string `json:"password" validate:"required,min=8,max=72"`
	VenueManager bool   `json:"venue_manager"`
}

// RegisterUser godoc
//
//	@Summary		Register an account
//	@Description	Creates the account upstream. Only stud.noroff.no addresses are accepted. Registration does not sign the user in.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		RegisterUserPayload	true	"Account details"
//	@Success		201		{object}	holidaze.Profile
//	@Failure		400		{object}	ErrorResponse
//	@Router			/auth/register [post]
func (app *application) registerUserHandler(w http.ResponseWriter, r *http.Request) {
	var payload RegisterUserPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	profile, err := app.upstream.Register(r.Context(), holidaze.RegisterRequest{
		Name:         payload.Name,
		Email:        payload.Email,
		Password:     payload.Password,
		VenueManager: payload.VenueManager,
	})
	if err != nil {
		app.upstreamErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, profile); err != nil {
		app.internalServerError(w, r, err)
	}
}

type LoginPayload struct {
	Email    string `json:"email" validate:"required,email,noroffemail"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	ReturnTo string `json:"return_to,omitempty" validate:"omitempty,max=512"`
}

type LoginResponse struct {
	Token        string `json:"token"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	VenueManager bool   `json:"venue_manager"`
	ReturnTo     string `json:"return_to,omitempty"`
}

// Login godoc
//
//	@Summary		Sign in
//	@Description	Authenticates against upstream, stores the session and returns a bearer token for this service. A return_to path supplied in the request is echoed back so clients can resume the interrupted action.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		LoginPayload	true	"Credentials"
//	@Success		200		{object}	LoginResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse	"Invalid credentials"
//	@Router			/auth/login [post]
func (app *application) loginHandler(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	creds, err := app.upstream.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		app.upstreamErrorResponse(w, r, err)
		return
	}

	if err := app.sessions.SignIn(session.Identity{
		ID:    creds.ID,
		Name:  creds.Name,
		Email: creds.Email,
		Token: creds.AccessToken,
	}); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	token, err := app.authenticator.GenerateToken(creds.Name)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	resp := LoginResponse{
		Token:        token,
		Name:         creds.Name,
		Email:        creds.Email,
		VenueManager: creds.VenueManager,
		ReturnTo:     sanitizeReturnTo(payload.ReturnTo),
	}

	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

// Logout godoc
//
//	@Summary		Sign out
//	@Description	Drops the stored session and its cached profile. The gateway token becomes unusable because its subject no longer has a session.
//	@Tags			Auth
//	@Produce		json
//	@Success		204
//	@Failure		401	{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/auth/logout [post]
func (app *application) logoutHandler(w http.ResponseWriter, r *http.Request) {
	identity := getIdentityFromContext(r)

	app.snapshots.Invalidate(r.Context(), cache.ProfilePrefix+identity.Name)

	if err := app.sessions.SignOut(); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CurrentUser godoc
//
//	@Summary		Who am I
//	@Description	Returns the identity bound to the active session.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	session.Identity
//	@Failure		401	{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/auth/me [get]
func (app *application) currentUserHandler(w http.ResponseWriter, r *http.Request) {
	identity := getIdentityFromContext(r)

	// The upstream token stays server-side.
	identity.Token = ""

	if err := app.jsonResponse(w, http.StatusOK, identity); err != nil {
		app.internalServerError(w, r, err)
	}
}

// sanitizeReturnTo keeps only same-origin paths. Anything that could send
// the client to another host is dropped.
func sanitizeReturnTo(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return ""
	}
	return raw
}
