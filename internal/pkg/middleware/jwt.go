package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/mashaweer/mashaweer/internal/pkg/constants"
	jwtpkg "github.com/mashaweer/mashaweer/internal/pkg/jwt"
	"github.com/mashaweer/mashaweer/internal/pkg/models"
	"github.com/mashaweer/mashaweer/internal/utils"
)

// JWTAuthMiddleware authenticates driver requests with a Bearer token.
// WebSocket clients cannot set headers, so a "token" query parameter is accepted too.
func JWTAuthMiddleware(config models.JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, ok := extractToken(c)
			if !ok {
				return utils.UnauthorizedResponse(c, "Authorization header is required")
			}

			identity, err := jwtpkg.ParseIdentity(tokenString, config.Secret)
			if err != nil {
				return utils.UnauthorizedResponse(c, "Invalid token")
			}
			if identity.Role != constants.RoleDriver {
				return utils.UnauthorizedResponse(c, "Invalid token: driver role required")
			}

			c.Set(constants.ContextDriverID, identity.DriverID.String())
			c.Set(constants.ContextMSISDN, identity.MSISDN)
			c.Set(constants.ContextRole, identity.Role)
			SetDriverID(c, identity.DriverID.String())

			return next(c)
		}
	}
}

func extractToken(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}

	if token := c.QueryParam("token"); token != "" {
		return token, true
	}
	return "", false
}

// DriverID returns the authenticated driver id set by JWTAuthMiddleware
func DriverID(c echo.Context) string {
	id, _ := c.Get(constants.ContextDriverID).(string)
	return id
}
