package middleware

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"roamly/pkg/token"
)

const ClaimsKey contextKey = "auth_claims"

// Authenticate gates a route on a valid bearer token and stores the verified
// claims in the request context.
func Authenticate(tokens *token.Manager) func(httprouter.Handle) httprouter.Handle {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			tokenString := tokens.Extract(r)
			claims, err := tokens.Verify(tokenString)
			if err != nil {
				message := "Invalid or expired token"
				if err == token.ErrNoToken {
					message = "Authentication required"
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"` + message + `"}`))
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next(w, r.WithContext(ctx), ps)
		}
	}
}

// ClaimsFrom returns the verified claims stored by Authenticate, or nil.
func ClaimsFrom(ctx context.Context) *token.Claims {
	if v := ctx.Value(ClaimsKey); v != nil {
		if claims, ok := v.(*token.Claims); ok {
			return claims
		}
	}
	return nil
}
