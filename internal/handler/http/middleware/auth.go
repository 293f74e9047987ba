package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/luisfsill/Ponto-Digital/internal/domain/auth"
	"github.com/luisfsill/Ponto-Digital/internal/handler/http/response"
	"github.com/luisfsill/Ponto-Digital/internal/pkg/jwt"
)

type TokenRevocationChecker interface {
	IsTokenRevoked(token string) bool
}

// AuthRequired accepts only non-revoked access tokens. It must run after
// jwtauth.Verifier.
func AuthRequired(revoked TokenRevocationChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != jwt.TokenTypeAccess {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if revoked != nil && revoked.IsTokenRevoked(jwtauth.TokenFromHeader(r)) {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// UserID returns the user_id claim of the verified token.
func UserID(r *http.Request) string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return ""
	}
	id, _ := claims["user_id"].(string)
	return id
}
