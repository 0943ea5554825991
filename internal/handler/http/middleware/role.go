package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/umairahsan10/crm-backend-go/internal/handler/http/response"
)

// RequireHR restricts review and correction endpoints to HR staff.
func RequireHR(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Forbidden(w, "HR access required")
			return
		}

		role, ok := claims["role"].(string)
		if !ok {
			response.Forbidden(w, "HR access required")
			return
		}

		if role != "hr" && role != "admin" {
			response.Forbidden(w, "HR access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
