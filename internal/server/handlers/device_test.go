package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/activator/internal/credential"
	"github.com/iudanet/activator/internal/crypto"
	"github.com/iudanet/activator/internal/models"
	"github.com/iudanet/activator/internal/server/service"
	"github.com/iudanet/activator/pkg/api"
)

func hashOf(t *testing.T, deviceID string) string {
	t.Helper()

	hash, err := crypto.HashDeviceID(deviceID)
	require.NoError(t, err)
	return hash
}

func TestDeviceHandler_CheckRegistration(t *testing.T) {
	tests := []struct {
		name       string
		profileErr error
		wantStatus string
		wantInfo   bool
	}{
		{name: "registered device", wantStatus: api.StatusRegistered, wantInfo: true},
		{name: "device without profile", profileErr: service.ErrUserNotFound, wantStatus: api.StatusDeleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issuer, _ := newTestIssuer(t)
			directory := &DirectoryMock{
				ProfileFunc: func(ctx context.Context, deviceID string) (*models.User, error) {
					if tt.profileErr != nil {
						return nil, tt.profileErr
					}
					return testUser(deviceID), nil
				},
			}
			handler := NewDeviceHandler(setupTestLogger(), directory, issuer, newCountingRecorder())

			req := httptest.NewRequest(http.MethodGet, "/api/v1/devices/dev-1/registration/x", nil)
			req = withURLParams(req, map[string]string{"deviceId": "dev-1", "deviceIdHash": hashOf(t, "dev-1")})
			w := httptest.NewRecorder()

			handler.CheckRegistration(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			var resp api.RegistrationStatusResponse
			decodeBody(t, w, &resp)
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.NotEmpty(t, resp.Credential)

			// Выданный credential проверяется и привязан к устройству
			result := issuer.Verify(resp.Credential)
			assert.Equal(t, credential.OutcomeValid, result.Outcome)
			assert.Equal(t, "dev-1", result.DeviceID)

			if tt.wantInfo {
				assert.Equal(t, "John", resp.Profile.FirstName)
				assert.Contains(t, resp.UserInfo, "John#last name#")
			} else {
				assert.Nil(t, resp.Profile)
				assert.Empty(t, resp.UserInfo)
			}
		})
	}
}

func TestDeviceHandler_CheckRegistration_AccessDenied(t *testing.T) {
	issuer, _ := newTestIssuer(t)
	directory := &DirectoryMock{}
	handler := NewDeviceHandler(setupTestLogger(), directory, issuer, newCountingRecorder())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = withURLParams(req, map[string]string{"deviceId": "dev-1", "deviceIdHash": hashOf(t, "dev-2")})
	w := httptest.NewRecorder()

	handler.CheckRegistration(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var resp api.ErrorResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, api.StatusAccessDenied, resp.Status)
	assert.Empty(t, directory.ProfileCalls())
}

func TestDeviceHandler_CheckRegistration_InvalidDeviceID(t *testing.T) {
	issuer, _ := newTestIssuer(t)
	handler := NewDeviceHandler(setupTestLogger(), &DirectoryMock{}, issuer, newCountingRecorder())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = withURLParams(req, map[string]string{"deviceId": "dev 1", "deviceIdHash": "abc"})
	w := httptest.NewRecorder()

	handler.CheckRegistration(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeviceHandler_VerifyCredential(t *testing.T) {
	issuer, clock := newTestIssuer(t)
	foreign, err := credential.NewIssuer([]byte("ffffffffffffffffffffffffffffffff"), time.Hour)
	require.NoError(t, err)

	valid, _, err := issuer.Issue("dev-1")
	require.NoError(t, err)
	forged, _, err := foreign.Issue("dev-1")
	require.NoError(t, err)

	tests := []struct {
		name        string
		req         api.VerifyRequest
		advance     time.Duration
		profileErr  error
		wantCode    int
		wantStatus  string
		wantRenewed bool
	}{
		{
			name:       "valid credential",
			req:        api.VerifyRequest{DeviceID: "dev-1", Credential: valid},
			wantCode:   http.StatusOK,
			wantStatus: api.StatusValid,
		},
		{
			name:       "missing credential",
			req:        api.VerifyRequest{DeviceID: "dev-1"},
			wantCode:   http.StatusUnauthorized,
			wantStatus: api.StatusNoCredential,
		},
		{
			name:       "foreign signature",
			req:        api.VerifyRequest{DeviceID: "dev-1", Credential: forged},
			wantCode:   http.StatusUnauthorized,
			wantStatus: api.StatusInvalid,
		},
		{
			name:       "credential of another device",
			req:        api.VerifyRequest{DeviceID: "dev-2", Credential: valid},
			wantCode:   http.StatusUnauthorized,
			wantStatus: api.StatusInvalid,
		},
		{
			name:       "unknown profile",
			req:        api.VerifyRequest{DeviceID: "dev-1", Credential: valid},
			profileErr: service.ErrUserNotFound,
			wantCode:   http.StatusNotFound,
			wantStatus: "USER_NOT_FOUND",
		},
		{
			name:        "expired credential is renewed",
			req:         api.VerifyRequest{DeviceID: "dev-1", Credential: valid},
			advance:     2 * time.Hour,
			wantCode:    http.StatusOK,
			wantStatus:  api.StatusValid,
			wantRenewed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			directory := &DirectoryMock{
				ProfileFunc: func(ctx context.Context, deviceID string) (*models.User, error) {
					if tt.profileErr != nil {
						return nil, tt.profileErr
					}
					return testUser(deviceID), nil
				},
			}
			recorder := newCountingRecorder()
			handler := NewDeviceHandler(setupTestLogger(), directory, issuer, recorder)

			clock.Advance(tt.advance)
			defer clock.Advance(-tt.advance)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/credential/verify", jsonBody(t, tt.req))
			w := httptest.NewRecorder()

			handler.VerifyCredential(w, req)

			assert.Equal(t, tt.wantCode, w.Code)

			var resp struct {
				Status string `json:"status"`
			}
			decodeBody(t, w, &resp)
			assert.Equal(t, tt.wantStatus, resp.Status)

			renewed := w.Header().Get(api.HeaderNewAuthToken)
			if tt.wantRenewed {
				require.NotEmpty(t, renewed)
				assert.Equal(t, credential.OutcomeValid, issuer.Verify(renewed).Outcome)
				assert.Equal(t, 1, recorder.renewals)
				assert.Equal(t, 1, recorder.outcomes["expired"])
			} else {
				assert.Empty(t, renewed)
			}
		})
	}
}

func TestDeviceHandler_VerifyCredential_InvalidJSON(t *testing.T) {
	issuer, _ := newTestIssuer(t)
	handler := NewDeviceHandler(setupTestLogger(), &DirectoryMock{}, issuer, newCountingRecorder())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/credential/verify", nil)
	req.Body = http.NoBody
	w := httptest.NewRecorder()

	handler.VerifyCredential(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeviceHandler_RefreshCredential(t *testing.T) {
	issuer, _ := newTestIssuer(t)

	tests := []struct {
		name       string
		deviceID   string
		hash       string
		profileErr error
		wantCode   int
	}{
		{name: "success", deviceID: "dev-1", hash: hashOf(t, "dev-1"), wantCode: http.StatusOK},
		{name: "wrong proof", deviceID: "dev-1", hash: hashOf(t, "dev-2"), wantCode: http.StatusUnauthorized},
		{name: "missing proof", deviceID: "dev-1", wantCode: http.StatusUnauthorized},
		{name: "unknown device", deviceID: "dev-1", hash: hashOf(t, "dev-1"), profileErr: service.ErrUserNotFound, wantCode: http.StatusNotFound},
		{name: "store unavailable", deviceID: "dev-1", hash: hashOf(t, "dev-1"), profileErr: &service.Error{Kind: service.KindTransient, Status: "STORE_UNAVAILABLE", Err: errors.New("busy")}, wantCode: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			directory := &DirectoryMock{
				ProfileFunc: func(ctx context.Context, deviceID string) (*models.User, error) {
					if tt.profileErr != nil {
						return nil, tt.profileErr
					}
					return testUser(deviceID), nil
				},
			}
			handler := NewDeviceHandler(setupTestLogger(), directory, issuer, newCountingRecorder())

			query := url.Values{"deviceId": {tt.deviceID}, "deviceIdHash": {tt.hash}}
			req := httptest.NewRequest(http.MethodGet, "/api/v1/credential/refresh?"+query.Encode(), nil)
			w := httptest.NewRecorder()

			handler.RefreshCredential(w, req)

			require.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode != http.StatusOK {
				return
			}

			var resp api.CredentialResponse
			decodeBody(t, w, &resp)
			assert.Equal(t, "dev-1", issuer.Verify(resp.Credential).DeviceID)
			assert.Equal(t, "John", resp.Profile.FirstName)
			assert.NotZero(t, resp.ExpiresAt)
		})
	}
}
