package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/activator/internal/credential"
	"github.com/iudanet/activator/internal/server/handlers"
	"github.com/iudanet/activator/pkg/api"
)

type stubRecorder struct {
	outcomes []string
	renewals int
}

func (s *stubRecorder) Verification(outcome string) {
	s.outcomes = append(s.outcomes, outcome)
}

func (s *stubRecorder) Renewal() {
	s.renewals++
}

func TestAuthMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	secret := []byte("0123456789abcdef0123456789abcdef")

	now := time.Now()
	clock := func() time.Time { return now }

	issuer, err := credential.NewIssuer(secret, time.Hour, credential.WithClock(clock))
	require.NoError(t, err)

	// Credential, выпущенный два часа назад, уже просрочен
	past, err := credential.NewIssuer(secret, time.Hour, credential.WithClock(func() time.Time {
		return now.Add(-2 * time.Hour)
	}))
	require.NoError(t, err)

	valid, _, err := issuer.Issue("dev-1")
	require.NoError(t, err)
	expired, _, err := past.Issue("dev-1")
	require.NoError(t, err)

	tests := []struct {
		name         string
		headers      map[string]string
		expectedCode int
		wantStatus   string
		wantRenewed  bool
	}{
		{
			name:         "bearer credential",
			headers:      map[string]string{"Authorization": "Bearer " + valid},
			expectedCode: http.StatusOK,
		},
		{
			name:         "x-auth-token credential",
			headers:      map[string]string{api.HeaderAuthToken: valid},
			expectedCode: http.StatusOK,
		},
		{
			name:         "expired credential is renewed",
			headers:      map[string]string{api.HeaderAuthToken: expired},
			expectedCode: http.StatusOK,
			wantRenewed:  true,
		},
		{
			name:         "missing credential",
			headers:      map[string]string{},
			expectedCode: http.StatusUnauthorized,
			wantStatus:   api.StatusNoCredential,
		},
		{
			name:         "invalid header format",
			headers:      map[string]string{"Authorization": "Token " + valid},
			expectedCode: http.StatusUnauthorized,
			wantStatus:   api.StatusInvalid,
		},
		{
			name:         "tampered credential",
			headers:      map[string]string{"Authorization": "Bearer " + valid + "x"},
			expectedCode: http.StatusUnauthorized,
			wantStatus:   api.StatusInvalid,
		},
		{
			name:         "garbage credential",
			headers:      map[string]string{api.HeaderAuthToken: "not-a-token"},
			expectedCode: http.StatusUnauthorized,
			wantStatus:   api.StatusInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := &stubRecorder{}

			var gotDevice string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotDevice, _ = handlers.GetDeviceID(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			handler := AuthMiddleware(logger, issuer, recorder)(next)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)

			if tt.expectedCode != http.StatusOK {
				var resp api.ErrorResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Equal(t, tt.wantStatus, resp.Status)
				assert.Empty(t, gotDevice)
				return
			}

			assert.Equal(t, "dev-1", gotDevice)

			renewed := w.Header().Get(api.HeaderNewAuthToken)
			if !tt.wantRenewed {
				assert.Empty(t, renewed)
				assert.Zero(t, recorder.renewals)
				return
			}

			require.NotEmpty(t, renewed)
			assert.Equal(t, 1, recorder.renewals)
			assert.Equal(t, []string{"expired"}, recorder.outcomes)

			result := issuer.Verify(renewed)
			assert.Equal(t, credential.OutcomeValid, result.Outcome)
			assert.Equal(t, "dev-1", result.DeviceID)
		})
	}
}
