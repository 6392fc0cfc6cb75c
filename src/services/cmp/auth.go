package cmp

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/oauth2/clientcredentials"
)

// tokens are refreshed this long before their declared expiry
const tokenExpiryBuffer = 5 * time.Minute

// tokenCache holds one credential's access token. It is constructor-owned
// state, never a package global, so lifetime and test isolation stay with
// the caller.
type tokenCache struct {
	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
}

// tokenProvider fetches an access token via the client-credentials grant.
type tokenProvider interface {
	FetchToken(ctx context.Context) (string, time.Time, error)
}

// oauthProvider performs the grant against the CMP token endpoint using a
// form-encoded POST.
type oauthProvider struct {
	conf *clientcredentials.Config
}

func newOAuthProvider(tokenURL, clientID, clientSecret string) *oauthProvider {
	return &oauthProvider{conf: &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}}
}

func (p *oauthProvider) FetchToken(ctx context.Context) (string, time.Time, error) {
	tok, err := p.conf.Token(ctx)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("cmp token fetch failed: %w", err)
	}
	return tok.AccessToken, tok.Expiry, nil
}

// get returns a cached token or fetches a new one. Concurrent callers may
// double-fetch during a refresh; that is a wasted call, not a bug — the
// mutex only guards the cache fields, never the network round trip.
func (c *tokenCache) get(ctx context.Context, provider tokenProvider) (string, error) {
	c.mu.Lock()
	if c.accessToken != "" && time.Now().Before(c.expiresAt.Add(-tokenExpiryBuffer)) {
		token := c.accessToken
		c.mu.Unlock()
		return token, nil
	}
	c.mu.Unlock()

	token, expiresAt, err := provider.FetchToken(ctx)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.accessToken = token
	c.expiresAt = expiresAt
	c.mu.Unlock()
	return token, nil
}

// invalidate drops the cached token eagerly, used when CMP answers 401.
func (c *tokenCache) invalidate() {
	c.mu.Lock()
	c.accessToken = ""
	c.expiresAt = time.Time{}
	c.mu.Unlock()
}
