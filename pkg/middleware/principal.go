package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"freiplatz/internal/access"
	"freiplatz/internal/logging"
	"freiplatz/pkg/utils"
)

const contextPrincipal = "principal"

type PrincipalResolver interface {
	Resolve(ctx context.Context, userID uuid.UUID, role string) (*access.Principal, error)
}

// PrincipalMiddleware builds the access.Principal once per request. It runs
// after JWTAuthMiddleware.
func PrincipalMiddleware(resolver PrincipalResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := uuid.Parse(c.GetString(ContextUserID))
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		principal, err := resolver.Resolve(c.Request.Context(), userID, c.GetString(ContextRole))
		if err != nil {
			if errors.Is(err, utils.ErrUnauthorized) {
				utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			} else {
				logging.Ctx(c.Request.Context()).Error().Err(err).Msg("resolve principal")
				utils.RespondError(c, http.StatusInternalServerError, "Internal server error")
			}
			c.Abort()
			return
		}

		c.Set(contextPrincipal, principal)
		c.Next()
	}
}

// PrincipalFrom returns the principal set by PrincipalMiddleware, or nil.
func PrincipalFrom(c *gin.Context) *access.Principal {
	v, ok := c.Get(contextPrincipal)
	if !ok {
		return nil
	}
	p, _ := v.(*access.Principal)
	return p
}
