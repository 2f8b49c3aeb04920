package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/artistx/internal/shared"
	"github.com/urfave/cli/v3"
)

type authStatus struct {
	Authenticated bool      `json:"authenticated"`
	TokenURL      string    `json:"token_url"`
	ExpiresAt     time.Time `json:"expires_at,omitzero"`
	Error         string    `json:"error,omitempty"`
}

// AuthStatus requests a fresh client-credentials token and reports when it expires.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if r.auth == nil {
		return fmt.Errorf("%w: auth session not initialized", shared.ErrServiceUnavailable)
	}

	r.logger.Info("checking auth status")

	status := authStatus{TokenURL: r.config.Catalog.TokenURL}
	_, err := r.auth.Acquire(ctx)
	if err != nil {
		status.Error = err.Error()
	} else if expiry, ok := r.auth.Expiry(); ok {
		status.Authenticated = true
		status.ExpiresAt = expiry
	}

	if cmd.Bool("json") {
		if werr := r.writeJSON(status, true); werr != nil {
			return werr
		}
		return err
	}

	if err != nil {
		r.writePlain("✗ Not authenticated\n")
		return err
	}

	r.writePlain("✓ Authenticated\n")
	r.writePlain("Token endpoint: %s\n", status.TokenURL)
	if !status.ExpiresAt.IsZero() {
		r.writePlain("Expires: %s (in %s)\n", status.ExpiresAt.Format(time.RFC3339), time.Until(status.ExpiresAt).Round(time.Second))
	}
	return nil
}
