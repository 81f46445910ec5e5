package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/edutech/studify/internal/app/auth"
	"github.com/edutech/studify/internal/app/models"
	"github.com/edutech/studify/internal/pkg/apperrors"
	pkgauth "github.com/edutech/studify/internal/pkg/auth"
)

// principalKey is the gin context key the resolved principal is stored
// under.
const principalKey = "principal"

// principalLoader re-resolves the account behind a token subject.
type principalLoader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// Authenticate verifies the bearer token and reloads the account from the
// store on every request, so role changes and deactivations take effect
// immediately instead of surviving inside old tokens.
func Authenticate(jwtService *pkgauth.JWTService, users principalLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := pkgauth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			HandleAPIError(c, apperrors.NewCustomError(apperrors.ErrTokenInvalid, "missing or malformed bearer token"))
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			if errors.Is(err, pkgauth.ErrExpiredToken) {
				HandleAPIError(c, apperrors.NewCustomError(apperrors.ErrTokenExpired, "token expired"))
			} else {
				HandleAPIError(c, apperrors.NewCustomError(apperrors.ErrTokenInvalid, "invalid token"))
			}
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			HandleAPIError(c, apperrors.NewCustomError(apperrors.ErrTokenInvalid, "account no longer exists"))
			return
		}
		if !user.IsActive {
			HandleAPIError(c, apperrors.NewCustomError(apperrors.ErrAccountDisabled, "account is disabled"))
			return
		}

		c.Set(principalKey, auth.Principal{
			UserID:   user.ID,
			Username: user.Username,
			Role:     user.Role,
			Active:   user.IsActive,
		})
		c.Next()
	}
}

// PrincipalFrom returns the principal resolved for this request. Handlers
// behind Authenticate can rely on it being present.
func PrincipalFrom(c *gin.Context) auth.Principal {
	value, ok := c.Get(principalKey)
	if !ok {
		return auth.Principal{}
	}
	principal, _ := value.(auth.Principal)
	return principal
}

// RequireRoles rejects requests whose principal holds none of the given
// roles. Fine-grained ownership checks still happen in the services; this
// only fences whole route groups.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := PrincipalFrom(c)
		for _, role := range roles {
			if principal.Role == role {
				c.Next()
				return
			}
		}
		HandleAPIError(c, apperrors.NewForbiddenError("you don't have permission for this action"))
	}
}
