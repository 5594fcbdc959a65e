package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/iudanet/activator/pkg/api"
)

func (c *Cli) runProfile(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "update" {
		return c.runProfileUpdate(ctx, args[1:])
	}
	if len(args) > 0 && args[0] != "show" {
		return fmt.Errorf("unknown profile command: %s", args[0])
	}

	if _, err := c.session(ctx); err != nil {
		return err
	}

	resp, err := c.api.GetProfile(ctx)
	if err != nil {
		return err
	}

	c.io.Println("=== Profile ===")
	c.printProfile(resp.Profile)

	return nil
}

func (c *Cli) runProfileUpdate(ctx context.Context, args []string) error {
	var patch api.ProfilePatch

	fs := flag.NewFlagSet("profile update", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&patch.FirstName, "first-name", "", "first name")
	fs.StringVar(&patch.LastName, "last-name", "", "last name")
	fs.StringVar(&patch.BirthDate, "birth-date", "", "birth date, DD/MM/YYYY HH:MM:SS")
	fs.StringVar(&patch.PlaceOfBirth, "place-of-birth", "", "place of birth")
	fs.StringVar(&patch.Email, "email", "", "email")
	fs.StringVar(&patch.Phone, "phone", "", "phone")
	fs.StringVar(&patch.School, "school", "", "school")
	fs.StringVar(&patch.Address, "address", "", "address")
	userInfo := fs.String("user-info", "", "positional '#'-joined profile string")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("invalid profile flags: %w", err)
	}

	req := api.UpdateProfileRequest{UserInfo: *userInfo}
	if patch != (api.ProfilePatch{}) {
		req.Profile = &patch
	}
	if req.Profile == nil && req.UserInfo == "" {
		return fmt.Errorf("nothing to update")
	}

	if _, err := c.session(ctx); err != nil {
		return err
	}

	resp, err := c.api.UpdateProfile(ctx, req)
	if err != nil {
		return err
	}

	c.io.Println("✓ Profile saved")
	c.printProfile(resp.Profile)

	return nil
}

func (c *Cli) runContract(ctx context.Context) error {
	if _, err := c.session(ctx); err != nil {
		return err
	}

	resp, err := c.api.GetContract(ctx)
	if err != nil {
		return err
	}

	contract := resp.Contract
	c.io.Println("=== Contract ===")
	c.io.Printf("License key: %s\n", contract.SoldToken)
	c.io.Printf("Start:       %s\n", time.Unix(contract.StartDate, 0).UTC().Format(time.RFC3339))
	c.io.Printf("Expires:     %s\n", time.Unix(contract.ExpiringDate, 0).UTC().Format(time.RFC3339))
	if c.now().Unix() > contract.ExpiringDate {
		c.io.Println("⚠️  Contract has expired")
	}

	return nil
}
