package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Hariom1711/travelbuddy/internal/jwtutil"
	"github.com/Hariom1711/travelbuddy/internal/model"
)

// Session is the authenticated principal carried by a request
type Session struct {
	UserID    uint      `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Image     string    `json:"image,omitempty"`
	ExpiresAt time.Time `json:"expires"`
}

// IssueSession signs a session token for user
func (p *Provider) IssueSession(user *model.User) (string, time.Time, error) {
	id := jwtutil.Identity{
		UserID: user.ID,
		Email:  user.Email,
	}
	if user.Name != nil {
		id.Name = *user.Name
	}
	if user.Image != nil {
		id.Picture = *user.Image
	}

	token, expires, err := p.tokens.GenerateToken(id)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("issue session: %w", err)
	}
	return token, expires, nil
}

// CurrentSession reads the session from the cookie, falling back to a Bearer
// header when the cookie is missing or no longer valid
func (p *Provider) CurrentSession(r *http.Request) (*Session, error) {
	tokens := p.tokensFromRequest(r)
	if len(tokens) == 0 {
		return nil, ErrNoSession
	}

	var lastErr error
	for _, token := range tokens {
		s, err := p.sessionFromToken(token)
		if err == nil {
			return s, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func (p *Provider) sessionFromToken(token string) (*Session, error) {
	claims, err := p.tokens.ValidateToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	s := &Session{
		UserID: userID,
		Email:  claims.Email,
		Name:   claims.Name,
		Image:  claims.Picture,
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, nil
}

// tokensFromRequest returns the cookie token then the Bearer token, skipping absent ones
func (p *Provider) tokensFromRequest(r *http.Request) []string {
	var tokens []string
	if cookie, err := r.Cookie(p.cfg.CookieName); err == nil && cookie.Value != "" {
		tokens = append(tokens, cookie.Value)
	}

	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		if token := strings.TrimSpace(parts[1]); token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// SetSessionCookie writes the session token as an HttpOnly cookie
func (p *Provider) SetSessionCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     p.cfg.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(time.Until(expires).Seconds()),
		HttpOnly: true,
		Secure:   p.cfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie
func (p *Provider) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     p.cfg.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   p.cfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// IsSessionError reports whether err means the caller is not signed in
func IsSessionError(err error) bool {
	return errors.Is(err, ErrNoSession) || errors.Is(err, ErrInvalidSession)
}
