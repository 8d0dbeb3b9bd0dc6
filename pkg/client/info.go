package client

import (
	"context"
	"net/http"

	"vaultkeep/internal/api"
	"vaultkeep/internal/buildinfo"
)

func (c *Client) Info(
	ctx context.Context,
) (*buildinfo.Info, string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.url().
		setPath(api.AboutRoute).
		build(), nil)
	if err != nil {
		return nil, "", err
	}
	var info buildinfo.Info
	transaction, err := c.do(req, &info)
	return &info, transaction, err
}
