// Package api содержит HTTP клиент сервиса активации.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/iudanet/activator/internal/crypto"
	"github.com/iudanet/activator/pkg/api"
)

// Error ошибка, возвращенная сервером
type Error struct {
	Status     string // стабильный код ошибки, например INVALID_TOKEN
	Message    string
	StatusCode int
}

func (e *Error) Error() string {
	if e.Status == "" {
		return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("server error (%d %s): %s", e.StatusCode, e.Status, e.Message)
}

// StatusOf возвращает код ошибки сервера или пустую строку
func StatusOf(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return ""
}

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	onRenew    func(token string)
	baseURL    string
	credential string
	mu         sync.RWMutex
}

// Option настраивает Client
type Option func(*Client)

// WithHTTPClient задает собственный http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRenewHandler задает callback для продленного сервером credential
func WithRenewHandler(fn func(token string)) Option {
	return func(c *Client) {
		c.onRenew = fn
	}
}

// NewClient создает новый API клиент
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SetCredential задает credential для защищенных запросов
func (c *Client) SetCredential(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.credential = token
}

// Credential возвращает текущий credential
func (c *Client) Credential() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.credential
}

// CheckRegistration проверяет регистрацию устройства и получает credential.
// Полученный credential сразу используется клиентом.
func (c *Client) CheckRegistration(ctx context.Context, deviceID string) (*api.RegistrationStatusResponse, error) {
	hash, err := crypto.HashDeviceID(deviceID)
	if err != nil {
		return nil, err
	}

	var resp api.RegistrationStatusResponse
	path := fmt.Sprintf("/api/v1/devices/%s/registration/%s", url.PathEscape(deviceID), hash)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("check registration request failed: %w", err)
	}

	c.SetCredential(resp.Credential)
	return &resp, nil
}

// Redeem погашает проданный ключ для устройства текущего credential
func (c *Client) Redeem(ctx context.Context, deviceID, soldToken string) (*api.RedeemResponse, error) {
	var resp api.RedeemResponse
	req := api.RedeemRequest{DeviceID: deviceID, SoldToken: soldToken}
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/registration", req, &resp); err != nil {
		return nil, fmt.Errorf("redeem request failed: %w", err)
	}
	return &resp, nil
}

// VerifyCredential проверяет текущий credential на сервере
func (c *Client) VerifyCredential(ctx context.Context, deviceID string) (*api.ProfileResponse, error) {
	var resp api.ProfileResponse
	req := api.VerifyRequest{DeviceID: deviceID, Credential: c.Credential()}
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/credential/verify", req, &resp); err != nil {
		return nil, fmt.Errorf("verify credential request failed: %w", err)
	}
	return &resp, nil
}

// RefreshCredential получает новый credential для зарегистрированного устройства
func (c *Client) RefreshCredential(ctx context.Context, deviceID string) (*api.CredentialResponse, error) {
	hash, err := crypto.HashDeviceID(deviceID)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("deviceId", deviceID)
	query.Set("deviceIdHash", hash)

	var resp api.CredentialResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/credential/refresh?"+query.Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("refresh credential request failed: %w", err)
	}

	c.SetCredential(resp.Credential)
	return &resp, nil
}

// GetProfile возвращает профиль устройства
func (c *Client) GetProfile(ctx context.Context) (*api.ProfileResponse, error) {
	var resp api.ProfileResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/profile", nil, &resp); err != nil {
		return nil, fmt.Errorf("get profile request failed: %w", err)
	}
	return &resp, nil
}

// UpdateProfile обновляет профиль устройства
func (c *Client) UpdateProfile(ctx context.Context, req api.UpdateProfileRequest) (*api.ProfileResponse, error) {
	var resp api.ProfileResponse
	if err := c.doRequest(ctx, http.MethodPut, "/api/v1/profile", req, &resp); err != nil {
		return nil, fmt.Errorf("update profile request failed: %w", err)
	}
	return &resp, nil
}

// GetContract возвращает контракт устройства
func (c *Client) GetContract(ctx context.Context) (*api.ContractResponse, error) {
	var resp api.ContractResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/contract", nil, &resp); err != nil {
		return nil, fmt.Errorf("get contract request failed: %w", err)
	}
	return &resp, nil
}

// DeleteAccount архивирует профиль устройства
func (c *Client) DeleteAccount(ctx context.Context) (*api.DeleteAccountResponse, error) {
	var resp api.DeleteAccountResponse
	if err := c.doRequest(ctx, http.MethodDelete, "/api/v1/account", nil, &resp); err != nil {
		return nil, fmt.Errorf("delete account request failed: %w", err)
	}
	return &resp, nil
}

// RestoreAccount восстанавливает архивированный профиль
func (c *Client) RestoreAccount(ctx context.Context) (*api.RestoreAccountResponse, error) {
	var resp api.RestoreAccountResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/account/restore", nil, &resp); err != nil {
		return nil, fmt.Errorf("restore account request failed: %w", err)
	}
	return &resp, nil
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Credential(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Сервер продлил просроченный credential
	if renewed := resp.Header.Get(api.HeaderNewAuthToken); renewed != "" {
		c.SetCredential(renewed)
		if c.onRenew != nil {
			c.onRenew(renewed)
		}
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Status != "" {
			return &Error{StatusCode: resp.StatusCode, Status: errResp.Status, Message: errResp.Message}
		}
		return &Error{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
