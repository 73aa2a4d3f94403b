package user

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

type (
	OAuthUserInfo struct {
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
		Name          string `json:"name"`
	}

	OAuthProvider interface {
		AuthCodeURL(state string) string
		Exchange(ctx context.Context, code string) (OAuthUserInfo, error)
	}

	googleProvider struct {
		config *oauth2.Config
	}
)

// NewGoogleProvider returns nil when the client is not configured so the
// OAuth routes answer with ErrOAuthNotConfigured.
func NewGoogleProvider(clientID, clientSecret, redirectURL string) OAuthProvider {
	if clientID == "" || clientSecret == "" {
		return nil
	}
	return &googleProvider{config: &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Endpoint:     endpoints.Google,
		Scopes:       []string{"openid", "email", "profile"},
	}}
}

func (g *googleProvider) AuthCodeURL(state string) string {
	return g.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

func (g *googleProvider) Exchange(ctx context.Context, code string) (OAuthUserInfo, error) {
	token, err := g.config.Exchange(ctx, code)
	if err != nil {
		return OAuthUserInfo{}, fmt.Errorf("exchange oauth code: %w", err)
	}

	resp, err := g.config.Client(ctx, token).Get(googleUserInfoURL)
	if err != nil {
		return OAuthUserInfo{}, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return OAuthUserInfo{}, fmt.Errorf("userinfo returned %s", resp.Status)
	}

	var info OAuthUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return OAuthUserInfo{}, fmt.Errorf("decode userinfo: %w", err)
	}
	return info, nil
}
