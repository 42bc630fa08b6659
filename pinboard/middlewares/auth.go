// pinboard/middlewares/auth.go
package middlewares

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"pinboard/pinboard/services/auth"

	"github.com/google/uuid"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the caller proven by the token cookie.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// AuthMiddleware gates a route on a valid token. The cookie is tried first; an
// Authorization: Bearer header is accepted for non-browser clients, and also
// when a stale cookie is still around.
func AuthMiddleware(issuer *auth.TokenIssuer, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokens := tokensFromRequest(r, cookieName)
			if len(tokens) == 0 {
				unauthorized(w, "Unauthorized")
				return
			}
			for _, tokenStr := range tokens {
				claims, userID, err := issuer.Parse(tokenStr)
				if err != nil {
					continue
				}
				ctx := WithIdentity(r.Context(), Identity{UserID: userID, Email: claims.Email})
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			unauthorized(w, "Invalid token")
		})
	}
}

func tokensFromRequest(r *http.Request, cookieName string) []string {
	var tokens []string
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		tokens = append(tokens, c.Value)
	}
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		if t := strings.TrimSpace(parts[1]); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]any{"success": false, "message": msg})
}
