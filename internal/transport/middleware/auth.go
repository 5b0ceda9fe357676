package middleware

import (
	"net/http"
	"strings"

	"github.com/heartmarshall/parla-dictionary/internal/auth"
	"github.com/heartmarshall/parla-dictionary/pkg/ctxutil"
)

type tokenValidator interface {
	ValidateAccessToken(token string) (auth.Claims, error)
}

// Auth rejects requests without a valid bearer token. On success the user
// ID, dictionary session key and raw token are stored in the context; the
// token is forwarded when the backend is called on the user's behalf.
func Auth(validator tokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			claims, err := validator.ValidateAccessToken(token)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := ctxutil.WithUserID(r.Context(), claims.UserID)
			ctx = ctxutil.WithSessionKey(ctx, claims.SessionKey())
			ctx = ctxutil.WithAccessToken(ctx, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}
