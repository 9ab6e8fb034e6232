package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stafftrack/timeclock-backend-go/internal/domain/user"
	"github.com/stafftrack/timeclock-backend-go/internal/handler/http/response"
)

func requireRole(next http.Handler, allowed ...user.Role) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}

		role, _ := claims["role"].(string)
		for _, a := range allowed {
			if user.Role(role) == a {
				next.ServeHTTP(w, r)
				return
			}
		}
		response.Forbidden(w, "Insufficient permissions")
	})
}

// ManagerOnly allows managers and admins.
func ManagerOnly(next http.Handler) http.Handler {
	return requireRole(next, user.RoleManager, user.RoleAdmin)
}

// AdminOnly allows admins.
func AdminOnly(next http.Handler) http.Handler {
	return requireRole(next, user.RoleAdmin)
}
