package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/activator/internal/client/storage"
	"github.com/iudanet/activator/internal/license"
	"github.com/iudanet/activator/pkg/api"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Device Status ===")

	deviceID, err := c.store.DeviceID(ctx)
	if err != nil {
		return fmt.Errorf("failed to load device id: %w", err)
	}
	c.io.Printf("Device ID: %s\n", deviceID)

	cred, err := c.store.GetCredential(ctx)
	if errors.Is(err, storage.ErrCredentialNotFound) {
		c.io.Println("Credential: none")
		c.io.Println("Run 'activator check' to get one.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load credential: %w", err)
	}

	switch {
	case cred.ExpiresAt == 0:
		c.io.Println("Credential: stored (renewed by server)")
	case cred.Expired(c.now()):
		c.io.Println("Credential: expired, it will be renewed on next request")
	default:
		expiresAt := time.Unix(cred.ExpiresAt, 0)
		c.io.Printf("Credential expires: %s\n", expiresAt.Format(time.RFC3339))
	}

	return nil
}

func (c *Cli) runCheck(ctx context.Context) error {
	deviceID, err := c.store.DeviceID(ctx)
	if err != nil {
		return fmt.Errorf("failed to load device id: %w", err)
	}

	resp, err := c.checkRegistration(ctx, deviceID)
	if err != nil {
		return err
	}

	c.io.Printf("Status: %s\n", resp.Status)
	if resp.Status == api.StatusDeleted {
		c.io.Println("This device has no active profile. Run 'activator redeem' or 'activator restore'.")
		return nil
	}
	c.printProfile(resp.Profile)

	return nil
}

func (c *Cli) runRedeem(ctx context.Context, args []string) error {
	var key string
	if len(args) > 0 {
		key = args[0]
	} else {
		var err error
		key, err = c.io.ReadSecret("License key: ")
		if err != nil {
			return fmt.Errorf("failed to read license key: %w", err)
		}
	}

	key = license.NormalizeKey(key)
	if key == "" {
		return fmt.Errorf("license key cannot be empty")
	}

	deviceID, err := c.session(ctx)
	if err != nil {
		return err
	}

	resp, err := c.api.Redeem(ctx, deviceID, key)
	if err != nil {
		return err
	}

	switch resp.Status {
	case api.StatusCreated:
		c.io.Println("✓ Device registered!")
	case api.StatusDeleted:
		c.io.Println("This device was registered before and its account is deleted.")
		c.io.Println("Run 'activator restore' to restore it.")
		return nil
	default:
		c.io.Println("✓ Device is already registered with this key.")
	}
	c.printProfile(resp.Profile)

	return nil
}

func (c *Cli) runVerify(ctx context.Context) error {
	deviceID, err := c.session(ctx)
	if err != nil {
		return err
	}

	resp, err := c.api.VerifyCredential(ctx, deviceID)
	if err != nil {
		return err
	}

	c.io.Printf("Credential: %s\n", resp.Status)
	c.printProfile(resp.Profile)

	return nil
}

func (c *Cli) runRefresh(ctx context.Context) error {
	deviceID, err := c.store.DeviceID(ctx)
	if err != nil {
		return fmt.Errorf("failed to load device id: %w", err)
	}

	resp, err := c.api.RefreshCredential(ctx, deviceID)
	if err != nil {
		return err
	}

	if err := c.store.SaveCredential(ctx, &storage.Credential{Token: resp.Credential, ExpiresAt: resp.ExpiresAt}); err != nil {
		return fmt.Errorf("failed to save credential: %w", err)
	}

	c.io.Printf("✓ Credential refreshed, expires %s\n", time.Unix(resp.ExpiresAt, 0).Format(time.RFC3339))

	return nil
}
