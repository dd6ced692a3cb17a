package auth

import (
	"net/http"

	"github.com/Hariom1711/travelbuddy/internal/config"
	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/google"
	"go.uber.org/zap"
)

// ProviderGoogle is the only federated provider configured today
const ProviderGoogle = "google"

// InitProviders configures gothic's state store and registers the providers
// whose credentials are present. It returns the enabled provider names.
func InitProviders(cfg config.AuthConfig, secure bool, log *zap.Logger) []string {
	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	gothic.Store = store

	var enabled []string
	var providers []goth.Provider

	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" {
		providers = append(providers, google.New(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleCallbackURL, "email", "profile"))
		enabled = append(enabled, ProviderGoogle)
	} else {
		log.Warn("Google sign-in disabled: GOOGLE_CLIENT_ID or GOOGLE_CLIENT_SECRET not set")
	}

	if len(providers) > 0 {
		goth.UseProviders(providers...)
	}
	return enabled
}

// IdentityFromGoth converts a completed goth user into an Identity
func IdentityFromGoth(u goth.User) Identity {
	name := u.Name
	if name == "" {
		name = u.NickName
	}
	return Identity{
		Provider:          u.Provider,
		ProviderAccountID: u.UserID,
		Email:             u.Email,
		Name:              name,
		Image:             u.AvatarURL,
	}
}
