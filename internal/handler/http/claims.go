package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
)

// employeeIDFromToken pulls the caller's employee identity out of the
// verified token. Handlers never trust identity fields from the body.
func employeeIDFromToken(r *http.Request) string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return ""
	}
	id, _ := claims["employee_id"].(string)
	return id
}
