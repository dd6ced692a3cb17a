package middleware

import (
	"net/http"

	"github.com/Hariom1711/travelbuddy/internal/auth"
	"github.com/Hariom1711/travelbuddy/internal/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SessionKey is where the authenticated *auth.Session is stored on the echo context
const SessionKey = "session"

// SessionReader is the part of auth.Provider the middleware needs
type SessionReader interface {
	CurrentSession(r *http.Request) (*auth.Session, error)
}

// RequireSession rejects API requests without a valid session with 401 JSON
func RequireSession(sessions SessionReader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, err := sessions.CurrentSession(c.Request())
			if err != nil {
				logger.FromEcho(c).Debug("Rejected unauthenticated API request", zap.Error(err))
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
			}

			c.Set(SessionKey, session)
			logger.FromEcho(c).Debug("Session validated", zap.Uint("user_id", session.UserID))
			return next(c)
		}
	}
}

// RequirePageSession redirects page requests without a valid session to the sign-in page
func RequirePageSession(sessions SessionReader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, err := sessions.CurrentSession(c.Request())
			if err != nil {
				return c.Redirect(http.StatusFound, "/auth/signin")
			}

			c.Set(SessionKey, session)
			return next(c)
		}
	}
}

// SessionFrom returns the session stored by RequireSession or RequirePageSession
func SessionFrom(c echo.Context) (*auth.Session, bool) {
	session, ok := c.Get(SessionKey).(*auth.Session)
	return session, ok && session != nil
}
