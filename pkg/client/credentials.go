package client

import (
	"context"

	"vaultkeep/internal/api"
	"vaultkeep/internal/core"
)

func (c *Client) CreateCredential(ctx context.Context, userID string, entry core.CredentialUpdate) (*core.Credential, string, error) {
	var created core.Credential
	transaction, err := c.post(ctx, c.url().
		setPath(api.CreateCredentialRoute).
		setPathParam("user_id", userID).
		build(), entry, &created)
	if err != nil {
		return nil, transaction, err
	}
	return &created, transaction, nil
}

// ListCredentials lists the user's vault entries. A non-empty search term
// narrows the result to titles containing it.
func (c *Client) ListCredentials(ctx context.Context, userID, search string) ([]core.Credential, string, error) {
	var creds []core.Credential
	transaction, err := c.get(ctx, c.url().
		setPath(api.ListCredentialsRoute).
		setPathParam("user_id", userID).
		setQuery("search", search).
		build(), &creds)
	return creds, transaction, err
}

func (c *Client) GetCredential(ctx context.Context, userID, credentialID string) (*core.Credential, string, error) {
	var cred core.Credential
	transaction, err := c.get(ctx, c.url().
		setPath(api.GetCredentialRoute).
		setPathParam("user_id", userID).
		setPathParam("credential_id", credentialID).
		build(), &cred)
	if err != nil {
		return nil, transaction, err
	}
	return &cred, transaction, nil
}

func (c *Client) UpdateCredential(ctx context.Context, userID, credentialID string, upd core.CredentialUpdate) (string, error) {
	return c.put(ctx, c.url().
		setPath(api.UpdateCredentialRoute).
		setPathParam("user_id", userID).
		setPathParam("credential_id", credentialID).
		build(), upd, nil)
}

func (c *Client) DeleteCredential(ctx context.Context, userID, credentialID string) (string, error) {
	return c.delete(ctx, c.url().
		setPath(api.DeleteCredentialRoute).
		setPathParam("user_id", userID).
		setPathParam("credential_id", credentialID).
		build(), nil)
}
