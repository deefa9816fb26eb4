package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/storyweave/backend/internal/models"
)

const claimsKey = "user"

// JWTAuth checks for a valid JWT and stores the claims in the context.
// Requests without a valid token are rejected.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := parseToken(c, secret)
			if err != nil {
				return err
			}
			if claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
			}
			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// OptionalJWTAuth extracts the viewer identity when a valid token is
// present and lets the request through anonymously otherwise. Public
// reads use this so per-viewer fields can be populated.
func OptionalJWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := parseToken(c, secret)
			if err == nil && claims != nil {
				c.Set(claimsKey, claims)
			}
			return next(c)
		}
	}
}

// ViewerID returns the authenticated user id, or "" for anonymous
// requests.
func ViewerID(c echo.Context) string {
	if claims, ok := c.Get(claimsKey).(*models.JwtCustomClaims); ok {
		return claims.UserID
	}
	return ""
}

func parseToken(c echo.Context, secret string) (*models.JwtCustomClaims, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, nil
	}

	// Expecting "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
	}

	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}
	return claims, nil
}
