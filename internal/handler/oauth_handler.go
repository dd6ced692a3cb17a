package handler

import (
	"errors"

	"github.com/Hariom1711/travelbuddy/internal/auth"
	"github.com/Hariom1711/travelbuddy/internal/logger"
	"github.com/labstack/echo/v4"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"go.uber.org/zap"
)

// withProvider exposes the :provider path param the way gothic looks it up
func withProvider(c echo.Context) (string, bool) {
	provider := c.Param("provider")
	if _, err := goth.GetProvider(provider); err != nil {
		return provider, false
	}

	q := c.Request().URL.Query()
	q.Set("provider", provider)
	c.Request().URL.RawQuery = q.Encode()
	return provider, true
}

// OAuthBegin handles GET /auth/oauth/:provider
func (h *Handler) OAuthBegin(c echo.Context) error {
	provider, ok := withProvider(c)
	if !ok {
		logger.FromEcho(c).Warn("OAuth provider not configured", zap.String("provider", provider))
		return redirect(c, "/auth/error?error=Configuration")
	}

	gothic.BeginAuthHandler(c.Response(), c.Request())
	return nil
}

// OAuthCallback handles GET /auth/oauth/:provider/callback
func (h *Handler) OAuthCallback(c echo.Context) error {
	log := logger.FromEcho(c)

	provider, ok := withProvider(c)
	if !ok {
		log.Warn("OAuth provider not configured", zap.String("provider", provider))
		return redirect(c, "/auth/error?error=Configuration")
	}

	gothUser, err := gothic.CompleteUserAuth(c.Response(), c.Request())
	if err != nil {
		log.Warn("OAuth callback failed", zap.String("provider", provider), zap.Error(err))
		return redirect(c, "/auth/error?error=OAuthCallback")
	}

	user, created, err := h.auth.CompleteFederated(c.Request().Context(), auth.IdentityFromGoth(gothUser))
	if err != nil {
		if errors.Is(err, auth.ErrAccountNotLinked) {
			return redirect(c, "/auth/error?error=OAuthAccountNotLinked")
		}
		log.Error("Failed to complete federated sign-in", zap.String("provider", provider), zap.Error(err))
		return redirect(c, "/auth/error?error=OAuthCallback")
	}

	if _, _, err := h.startSession(c, user); err != nil {
		log.Error("Failed to issue session", zap.Error(err))
		return redirect(c, "/auth/error?error=Configuration")
	}

	if created {
		return redirect(c, "/profile/setup")
	}
	return redirect(c, "/dashboard")
}
