package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// SessionCookie is the cookie carrying the session JWT. No Max-Age is ever
// set on it: sessions are non-persistent and end with the browser.
const SessionCookie = "mh_session"

// Session validates the session JWT from the cookie (or a bearer header for
// API clients) and injects the identity claims into the request context.
func Session(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := sessionToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing session")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
			}

			c.Set("user_id", claims["sub"])
			c.Set("email", claims["email"])
			c.Set("name", claims["name"])

			return next(c)
		}
	}
}

// sessionToken extracts the raw JWT from the session cookie or, failing that,
// from a bearer Authorization header.
func sessionToken(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}

// HasSession reports whether the request carries a valid session, without
// failing the request. Used by pages that merely redirect signed-in users.
func HasSession(c echo.Context, jwtSecret string) bool {
	token := sessionToken(c)
	if token == "" {
		return false
	}
	tkn, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	return err == nil && tkn.Valid
}
