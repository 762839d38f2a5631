package api

import (
	"context"
	"net/http"
	"resizer/internal/core/domain"
)

func (c *Client) SignUp(ctx context.Context, form domain.SignupForm) (int, error) {
	status, _, err := c.do(ctx, http.MethodPost, "/users/signup", "", form, "Error in creating account")

	return status, err
}

// LogIn returns the raw login response body, which the session store
// persists as-is.
func (c *Client) LogIn(ctx context.Context, form domain.LoginForm) ([]byte, error) {
	_, body, err := c.do(ctx, http.MethodPost, "/users/login", "", form, "Login failed")
	if err != nil {
		return nil, err
	}

	return body, nil
}
