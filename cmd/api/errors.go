package main

import (
	"errors"
	"net/http"
	"strings"

	"holidaze/internal/holidaze"
)

func (app *application) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("internal error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusInternalServerError, "the server encountered a problem")
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("bad request", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusBadRequest, err.Error())
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("not found", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusNotFound, "not found")
}

func (app *application) unauthorizedErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("unauthorized", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusUnauthorized, "unauthorized")
}

func (app *application) unauthorizedBasicErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("unauthorized basic error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	w.Header().Set("WWW-Authenticate", `Basic realm="restricted", charset="UTF-8"`)
	writeJSONError(w, http.StatusUnauthorized, "unauthorized")
}

// signInRequiredResponse answers a protected request from an anonymous
// caller. The requested path is echoed back so the client can return the
// user there after a successful sign-in.
func (app *application) signInRequiredResponse(w http.ResponseWriter, r *http.Request) {
	type envelope struct {
		Success  bool   `json:"success"`
		Message  string `json:"message"`
		Status   int    `json:"status"`
		ReturnTo string `json:"return_to"`
	}

	writeJSON(w, http.StatusUnauthorized, &envelope{
		Success:  false,
		Message:  "please sign in to continue",
		Status:   http.StatusUnauthorized,
		ReturnTo: r.URL.RequestURI(),
	})
}

func (app *application) forbiddenResponse(w http.ResponseWriter, r *http.Request) {
	app.logger.Warnw("forbidden", "method", r.Method, "path", r.URL.Path)

	writeJSONError(w, http.StatusForbidden, "forbidden")
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request, retryAfter string) {
	app.logger.Warnw("rate limit exceeded", "method", r.Method, "path", r.URL.Path)

	w.Header().Set("Retry-After", retryAfter)
	writeJSONError(w, http.StatusTooManyRequests, "rate limit exceeded, retry after: "+retryAfter)
}

// upstreamErrorResponse translates a failed upstream call into the uniform
// error envelope. Transport failures (status 0) become a retry-suggesting
// 503; an upstream 401 means the stored token was rejected and the caller
// must re-authenticate.
func (app *application) upstreamErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *holidaze.APIError
	if !errors.As(err, &apiErr) {
		app.internalServerError(w, r, err)
		return
	}

	switch {
	case apiErr.Status == 0:
		app.logger.Errorw("upstream unreachable", "method", r.Method, "path", r.URL.Path, "error", err.Error())
		writeJSONError(w, http.StatusServiceUnavailable, "Network error. Please try again.")
	case apiErr.Status == http.StatusUnauthorized:
		app.logger.Warnw("upstream rejected token", "method", r.Method, "path", r.URL.Path)
		writeJSONError(w, http.StatusUnauthorized, "your session has expired, please sign in again")
	default:
		app.logger.Warnw("upstream error", "method", r.Method, "path", r.URL.Path, "status", apiErr.Status, "error", err.Error())
		writeJSONError(w, apiErr.Status, strings.Join(apiErr.Messages, "; "))
	}
}
