package middleware

import (
	"context"

	"github.com/go-chi/jwtauth/v5"
)

// Claims is the typed view of an access token.
type Claims struct {
	UserID    string
	Email     string
	CompanyID string
	Role      string
	IsAdmin   bool
}

func ClaimsFromContext(ctx context.Context) Claims {
	_, raw, err := jwtauth.FromContext(ctx)
	if err != nil || raw == nil {
		return Claims{}
	}

	var c Claims
	c.UserID, _ = raw["user_id"].(string)
	c.Email, _ = raw["email"].(string)
	c.CompanyID, _ = raw["company_id"].(string)
	c.Role, _ = raw["role"].(string)
	c.IsAdmin, _ = raw["is_admin"].(bool)
	return c
}
