package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/handler/http/response"
)

type companyIDKey struct{}

// UserLookup resolves the current company of a user.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (user.User, error)
}

// RequireCompany makes the caller's company id available through CompanyID.
// The claim is used when present. Tokens issued before the admin registered a
// company carry none, so the user row is consulted instead.
func RequireCompany(users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims.UserID == "" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			companyID := claims.CompanyID
			if companyID == "" {
				u, err := users.GetByID(r.Context(), claims.UserID)
				if err != nil {
					if errors.Is(err, user.ErrUserNotFound) {
						response.HandleError(w, auth.ErrInvalidToken)
						return
					}
					slog.Error("Failed to resolve company of user", "user_id", claims.UserID, "error", err)
					response.HandleError(w, err)
					return
				}
				if u.CompanyID != nil {
					companyID = *u.CompanyID
				}
			}

			if companyID == "" {
				response.HandleError(w, user.ErrCompanyIDRequired)
				return
			}

			ctx := context.WithValue(r.Context(), companyIDKey{}, companyID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CompanyID returns the id stored by RequireCompany, or "".
func CompanyID(ctx context.Context) string {
	id, _ := ctx.Value(companyIDKey{}).(string)
	return id
}
