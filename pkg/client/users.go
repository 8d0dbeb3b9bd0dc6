package client

import (
	"context"

	"vaultkeep/internal/api"
	"vaultkeep/internal/core"
	"vaultkeep/internal/service"
)

// Register creates a new account. No authentication is required.
func (c *Client) Register(ctx context.Context, req service.CreateUserRequest) (*core.User, string, error) {
	var user core.User
	transaction, err := c.post(ctx, c.url().
		setPath(api.RegisterRoute).
		build(), req, &user)
	if err != nil {
		return nil, transaction, err
	}
	return &user, transaction, nil
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (*service.TokenResponse, string, error) {
	payload := map[string]string{
		"username": username,
		"password": password,
	}
	var token service.TokenResponse
	transaction, err := c.post(ctx, c.url().
		setPath(api.LoginRoute).
		build(), payload, &token)
	if err != nil {
		return nil, transaction, err
	}
	return &token, transaction, nil
}

// ListUsersOptions controls sorting and filtering of the user listing.
type ListUsersOptions struct {
	SortBy   string
	SortType string
	Filters  map[string]string
}

func (c *Client) ListUsers(ctx context.Context, opts ListUsersOptions) ([]core.User, string, error) {
	ub := c.url().
		setPath(api.ListUsersRoute).
		setQuery("sort_by", opts.SortBy).
		setQuery("sort_type", opts.SortType)
	for field, value := range opts.Filters {
		ub.setQuery(field, value)
	}

	var users []core.User
	transaction, err := c.get(ctx, ub.build(), &users)
	return users, transaction, err
}

// Me returns the verified claims of the calling token.
func (c *Client) Me(ctx context.Context) (*core.Principal, string, error) {
	var principal core.Principal
	transaction, err := c.get(ctx, c.url().
		setPath(api.CurrentMeRoute).
		build(), &principal)
	if err != nil {
		return nil, transaction, err
	}
	return &principal, transaction, nil
}

func (c *Client) GetUser(ctx context.Context, id string) (*core.User, string, error) {
	var user core.User
	transaction, err := c.get(ctx, c.url().
		setPath(api.GetUserRoute).
		setPathParam("id", id).
		build(), &user)
	if err != nil {
		return nil, transaction, err
	}
	return &user, transaction, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, upd core.UserUpdate) (string, error) {
	return c.put(ctx, c.url().
		setPath(api.UpdateUserRoute).
		setPathParam("id", id).
		build(), upd, nil)
}

func (c *Client) DeleteUser(ctx context.Context, id string) (string, error) {
	return c.delete(ctx, c.url().
		setPath(api.DeleteUserRoute).
		setPathParam("id", id).
		build(), nil)
}
