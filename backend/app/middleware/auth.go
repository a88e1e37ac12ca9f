package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	jwtutil "riseabove/backend/app/jwt"
	"riseabove/backend/app/session"
)

// Auth gates handlers on a logged-in user: the session user for browser
// flows, or a bearer token for API clients.
type Auth struct{ Signer *jwtutil.Signer }

func (a *Auth) currentUser(r *http.Request) (uint, bool) {
	if s := session.FromContext(r.Context()); s != nil {
		if id, ok := s.UserID(); ok {
			return id, true
		}
	}
	authz := r.Header.Get("Authorization")
	if a.Signer == nil || !strings.HasPrefix(authz, "Bearer ") {
		return 0, false
	}
	claims, err := a.Signer.Parse(strings.TrimPrefix(authz, "Bearer "))
	if err != nil {
		return 0, false
	}
	return claims.UserID, true
}

// RequireLogin redirects anonymous page requests to /login.
func (a *Auth) RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := a.currentUser(r)
		if !ok {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), id)))
	})
}

// RequireUser rejects anonymous API requests with 401 and a JSON error.
func (a *Auth) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := a.currentUser(r)
		if !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Not logged in"})
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), id)))
	})
}
