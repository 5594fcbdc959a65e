package cli

import (
	"context"
	"fmt"
	"strings"
)

func (c *Cli) runDelete(ctx context.Context, args []string) error {
	confirmed := len(args) > 0 && (args[0] == "--yes" || args[0] == "-yes")
	if !confirmed {
		answer, err := c.io.ReadInput("Delete account? It can be restored within 30 days. Type 'yes' to confirm: ")
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !strings.EqualFold(answer, "yes") {
			c.io.Println("Cancelled")
			return nil
		}
	}

	if _, err := c.session(ctx); err != nil {
		return err
	}

	if _, err := c.api.DeleteAccount(ctx); err != nil {
		return err
	}

	c.io.Println("✓ Account deleted")
	c.io.Println("Run 'activator restore' to restore it.")

	return nil
}

func (c *Cli) runRestore(ctx context.Context) error {
	if _, err := c.session(ctx); err != nil {
		return err
	}

	resp, err := c.api.RestoreAccount(ctx)
	if err != nil {
		return err
	}

	c.io.Println("✓ Account restored")
	c.printProfile(resp.Profile)

	return nil
}
