package middleware

import (
	"net/http"

	"github.com/luisfsill/Ponto-Digital/internal/domain/user"
)

func AdminOnly(next http.Handler) http.Handler {
	return RequireRole(user.RoleAdmin)(next)
}
