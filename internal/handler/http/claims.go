package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
)

// claimUserID extracts the authenticated user id from the verified
// token on the request context.
func claimUserID(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}
	return userID, nil
}
