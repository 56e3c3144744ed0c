package api

import (
	"context"
	"net/http"

	"github.com/me/smecert/internal/token"
	"github.com/me/smecert/pkg/model"
)

// Credentials are the login form fields for POST /token/.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration are the account fields for POST /users/.
type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// Login trades credentials for a token pair and persists it through the
// token source. The session controller follows up with Me to build a session.
func (c *Client) Login(ctx context.Context, creds Credentials) (token.Pair, error) {
	var pair token.Pair
	if err := c.post(ctx, "/token/", creds, &pair); err != nil {
		return token.Pair{}, err
	}
	if err := c.tokens.Set(pair); err != nil {
		return token.Pair{}, err
	}
	return pair, nil
}

// Refresh trades a refresh token for a new access token. The call goes out
// without an Authorization header and without the 401-retry path: a failed
// refresh must surface, not recurse.
func (c *Client) Refresh(ctx context.Context, refresh string) (string, error) {
	req := struct {
		Refresh string `json:"refresh"`
	}{Refresh: refresh}
	var resp struct {
		Access string `json:"access"`
	}

	anon := &Client{
		baseURL:    c.baseURL,
		httpClient: c.httpClient,
		tokens:     token.NewMemorySource(token.Pair{}),
		logger:     c.logger,
	}
	if err := anon.do(ctx, http.MethodPost, "/token/refresh/", req, &resp, 1); err != nil {
		return "", err
	}
	return resp.Access, nil
}

// Register creates an account. It does not touch the token source; the
// caller decides whether to send the user to the login page.
func (c *Client) Register(ctx context.Context, reg Registration) (*model.User, error) {
	var u model.User
	if err := c.post(ctx, "/users/", reg, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Me fetches the current user profile.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var u model.User
	if err := c.get(ctx, "/users/me/", &u); err != nil {
		return nil, err
	}
	u.Role = model.ParseRole(string(u.Role))
	return &u, nil
}
