// Package cli реализует команды клиента устройства.
package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/activator/internal/client/iocli"
	"github.com/iudanet/activator/internal/client/storage"
	"github.com/iudanet/activator/pkg/api"
)

// API описывает запросы клиента к серверу активации
type API interface {
	SetCredential(token string)
	CheckRegistration(ctx context.Context, deviceID string) (*api.RegistrationStatusResponse, error)
	Redeem(ctx context.Context, deviceID, soldToken string) (*api.RedeemResponse, error)
	VerifyCredential(ctx context.Context, deviceID string) (*api.ProfileResponse, error)
	RefreshCredential(ctx context.Context, deviceID string) (*api.CredentialResponse, error)
	GetProfile(ctx context.Context) (*api.ProfileResponse, error)
	UpdateProfile(ctx context.Context, req api.UpdateProfileRequest) (*api.ProfileResponse, error)
	GetContract(ctx context.Context) (*api.ContractResponse, error)
	DeleteAccount(ctx context.Context) (*api.DeleteAccountResponse, error)
	RestoreAccount(ctx context.Context) (*api.RestoreAccountResponse, error)
}

// Cli выполняет команды клиента
type Cli struct {
	io    iocli.IO
	api   API
	store storage.DeviceStorage
	now   func() time.Time
}

// New создает Cli
func New(io iocli.IO, apiClient API, store storage.DeviceStorage) *Cli {
	return &Cli{
		io:    io,
		api:   apiClient,
		store: store,
		now:   time.Now,
	}
}

// Run выполняет команду с аргументами
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "status":
		return c.runStatus(ctx)
	case "check":
		return c.runCheck(ctx)
	case "redeem":
		return c.runRedeem(ctx, args)
	case "verify":
		return c.runVerify(ctx)
	case "refresh":
		return c.runRefresh(ctx)
	case "profile":
		return c.runProfile(ctx, args)
	case "contract":
		return c.runContract(ctx)
	case "delete":
		return c.runDelete(ctx, args)
	case "restore":
		return c.runRestore(ctx)
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

// CredentialRenewed сохраняет credential, продленный сервером
func (c *Cli) CredentialRenewed(ctx context.Context, token string) {
	if err := c.store.SaveCredential(ctx, &storage.Credential{Token: token}); err != nil {
		c.io.Printf("Warning: failed to save renewed credential: %v\n", err)
	}
}

// session загружает device id и credential; при отсутствии credential
// получает его проверкой регистрации
func (c *Cli) session(ctx context.Context) (string, error) {
	deviceID, err := c.store.DeviceID(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load device id: %w", err)
	}

	cred, err := c.store.GetCredential(ctx)
	switch {
	case err == nil:
		c.api.SetCredential(cred.Token)
		return deviceID, nil
	case errors.Is(err, storage.ErrCredentialNotFound):
		if _, err := c.checkRegistration(ctx, deviceID); err != nil {
			return "", err
		}
		return deviceID, nil
	default:
		return "", fmt.Errorf("failed to load credential: %w", err)
	}
}

// checkRegistration запрашивает статус устройства и сохраняет выданный credential
func (c *Cli) checkRegistration(ctx context.Context, deviceID string) (*api.RegistrationStatusResponse, error) {
	resp, err := c.api.CheckRegistration(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	if err := c.store.SaveCredential(ctx, &storage.Credential{Token: resp.Credential, ExpiresAt: resp.ExpiresAt}); err != nil {
		return nil, fmt.Errorf("failed to save credential: %w", err)
	}

	return resp, nil
}

func (c *Cli) printProfile(p *api.Profile) {
	if p == nil {
		return
	}
	c.io.Printf("First name:     %s\n", p.FirstName)
	c.io.Printf("Last name:      %s\n", p.LastName)
	c.io.Printf("Birth date:     %s\n", p.BirthDate)
	c.io.Printf("Place of birth: %s\n", p.PlaceOfBirth)
	c.io.Printf("Email:          %s\n", p.Email)
	c.io.Printf("Phone:          %s\n", p.Phone)
	c.io.Printf("School:         %s\n", p.School)
	c.io.Printf("Address:        %s\n", p.Address)
	c.io.Printf("User type:      %d\n", p.UserType)
}

// PrintUsage печатает справку по командам
func PrintUsage(io iocli.IO) {
	io.Println("Activator Client")
	io.Println()
	io.Println("Usage:")
	io.Println("  activator [OPTIONS] COMMAND")
	io.Println()
	io.Println("Options:")
	io.Println("  --version                    Show version information")
	io.Println("  --server URL                 Server URL (default: http://localhost:8080)")
	io.Println("  --db PATH                    Path to local database (default: activator-client.db)")
	io.Println()
	io.Println("Commands:")
	io.Println("  status                       Show local device id and credential")
	io.Println("  check                        Check registration and get a new credential")
	io.Println("  redeem [KEY]                 Register this device with a license key")
	io.Println("  verify                       Verify the stored credential")
	io.Println("  refresh                      Get a new credential for a registered device")
	io.Println("  profile                      Show profile")
	io.Println("  profile update [FLAGS]       Update profile fields")
	io.Println("  contract                     Show license contract")
	io.Println("  delete [--yes]               Delete account (can be restored for 30 days)")
	io.Println("  restore                      Restore deleted account")
	io.Println()
	io.Println("Examples:")
	io.Println("  activator redeem")
	io.Println("  activator profile update --first-name John --email john@example.com")
	io.Println("  activator profile update --user-info 'John##01/01/1990 00:00:00##e@x.com####'")
}
