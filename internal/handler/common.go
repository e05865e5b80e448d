package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/yourorg/rentledger/internal/security/auth"
	"github.com/yourorg/rentledger/internal/security/middleware"
	"github.com/yourorg/rentledger/internal/store"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// requestDateLayout is the wire format for dates in request and response bodies
const requestDateLayout = "2006-01-02"

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// requestClaims returns the validated token claims, or nil for an
// unauthenticated request
func requestClaims(r *http.Request) *auth.Claims {
	return middleware.ClaimsFromContext(r.Context())
}

// requestSession resolves the caller's portfolio database session from the
// token claims. A missing session is an auth failure, not a server error,
// because every registered user has a provisioned database.
func requestSession(r *http.Request, sessions *store.SessionManager) (*store.Session, *auth.Claims, error) {
	claims := requestClaims(r)
	if claims == nil {
		return nil, nil, errUnauthenticated
	}
	session, err := sessions.Get(r.Context(), claims.Username)
	if err != nil {
		return nil, claims, err
	}
	return session, claims, nil
}

var errUnauthenticated = &authError{}

type authError struct{}

func (e *authError) Error() string { return "missing authentication" }

// parseBodyDate parses an optional yyyy-mm-dd field, returning the zero time
// for an empty string
func parseBodyDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(requestDateLayout, value)
}

// formatBodyDate renders a date for a response body, empty for the zero time
func formatBodyDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(requestDateLayout)
}
