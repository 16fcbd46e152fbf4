package session

import (
	"context"
	"net/http"
	"strings"

	"github.com/yukikurage/disaster-relief-api/internal/models"
)

// CredentialVerifier checks a username/password pair against the credential store.
type CredentialVerifier interface {
	VerifyCredentials(ctx context.Context, username, password string) (*models.User, error)
}

// CookieOptions controls how the session cookie is written.
type CookieOptions struct {
	Name   string
	Path   string
	Secure bool
}

// Provider ties credential verification, token minting, and cookie transport together.
type Provider struct {
	verifier CredentialVerifier
	tokens   *TokenManager
	cookie   CookieOptions
}

// NewProvider creates a new Provider.
func NewProvider(verifier CredentialVerifier, tokens *TokenManager, cookie CookieOptions) *Provider {
	if cookie.Path == "" {
		cookie.Path = "/"
	}
	return &Provider{
		verifier: verifier,
		tokens:   tokens,
		cookie:   cookie,
	}
}

// Login verifies the credentials and mints a session. Credential errors from the
// verifier are returned unchanged.
func (p *Provider) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := p.verifier.VerifyCredentials(ctx, username, password)
	if err != nil {
		return nil, err
	}

	return p.tokens.Issue(Identity{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}

// CurrentIdentity returns the identity in the request's session token, or Anonymous.
func (p *Provider) CurrentIdentity(r *http.Request) Identity {
	claims, err := p.claims(r)
	if err != nil {
		return Anonymous
	}
	return claims.Identity()
}

// RequireAuthenticated is CurrentIdentity that fails for anonymous callers.
func (p *Provider) RequireAuthenticated(r *http.Request) (Identity, error) {
	identity := p.CurrentIdentity(r)
	if err := identity.Require(); err != nil {
		return Anonymous, err
	}
	return identity, nil
}

// Refresh reissues the session when the request's token is past half its
// lifetime. It returns nil when no renewal is due.
func (p *Provider) Refresh(r *http.Request) (*Session, error) {
	claims, err := p.claims(r)
	if err != nil || !p.tokens.NeedsRenewal(claims) {
		return nil, nil
	}
	return p.tokens.Issue(claims.Identity())
}

// WriteCookie stores the session token in the response.
func (p *Provider) WriteCookie(w http.ResponseWriter, s *Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     p.cookie.Name,
		Value:    s.Token,
		Path:     p.cookie.Path,
		Expires:  s.ExpiresAt,
		MaxAge:   int(p.tokens.TTL().Seconds()),
		HttpOnly: true,
		Secure:   p.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Logout expires the session cookie. Calling it without a session is a no-op
// for the client.
func (p *Provider) Logout(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     p.cookie.Name,
		Value:    "",
		Path:     p.cookie.Path,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   p.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (p *Provider) claims(r *http.Request) (*Claims, error) {
	token := tokenFromRequest(r, p.cookie.Name)
	if token == "" {
		return nil, ErrInvalidToken
	}
	return p.tokens.Parse(token)
}

// tokenFromRequest reads the session cookie, falling back to a bearer token.
func tokenFromRequest(r *http.Request, cookieName string) string {
	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}

	return ""
}
