// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	repository "github.com/mergington/activities/internal/adapters/repository"
)

// Registration sub-routes under /activities/{name}/.
const (
	actionSignup     = "signup"
	actionUnregister = "unregister"
)

// RegistrationHandler handles signup and unregister requests.
type RegistrationHandler struct {
	deps Dependencies
}

// NewRegistrationHandler creates a new registration handler.
func NewRegistrationHandler(deps Dependencies) *RegistrationHandler {
	return &RegistrationHandler{deps: deps}
}

// HandleRegistration handles POST /activities/{name}/signup and
// POST /activities/{name}/unregister requests. The activity name is the
// URL-decoded path segment and may contain spaces; the email arrives as
// an opaque query parameter with no format validation.
func (h *RegistrationHandler) HandleRegistration(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/activities/")
	idx := strings.LastIndex(rest, "/")
	if idx <= 0 {
		http.NotFound(w, r)
		return
	}
	activity, action := rest[:idx], rest[idx+1:]
	email := r.URL.Query().Get("email")

	switch action {
	case actionSignup:
		if err := h.deps.Signup(r.Context(), activity, email); err != nil {
			writeRegistrationError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{
			Message: fmt.Sprintf("Signed up %s for %s", email, activity),
		})
	case actionUnregister:
		if err := h.deps.Unregister(r.Context(), activity, email); err != nil {
			writeRegistrationError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{
			Message: fmt.Sprintf("Unregistered %s from %s", email, activity),
		})
	default:
		http.NotFound(w, r)
	}
}

// writeRegistrationError translates store errors into the wire contract:
// unknown activity -> 404, membership conflicts -> 400.
func writeRegistrationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeDetail(w, http.StatusNotFound, "Activity not found")
	case errors.Is(err, repository.ErrAlreadySignedUp):
		writeDetail(w, http.StatusBadRequest, "Student is already signed up")
	case errors.Is(err, repository.ErrNotSignedUp):
		writeDetail(w, http.StatusBadRequest, "Student is not signed up for this activity")
	default:
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
	}
}
