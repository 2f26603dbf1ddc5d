package holidaze

import (
	"context"
	"net/http"
)

// Login exchanges credentials for the upstream access token. The _holidaze
// flag asks the upstream to include the venueManager capability in the
// response.
func (c *Client) Login(ctx context.Context, email, password string) (Credentials, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}

	var creds Credentials
	if _, err := c.do(ctx, http.MethodPost, "/auth/login?_holidaze=true", "", body, &creds); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}

// Register creates an upstream account. Activation and credential storage
// are owned by the upstream service.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (Profile, error) {
	var profile Profile
	if _, err := c.do(ctx, http.MethodPost, "/auth/register", "", req, &profile); err != nil {
		return Profile{}, err
	}
	return profile, nil
}
