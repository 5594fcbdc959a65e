package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/activator/internal/credential"
	"github.com/iudanet/activator/internal/models"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func setupTestLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelError, // Only show errors in tests
	}
	handler := slog.NewTextHandler(os.Stdout, opts)
	return slog.New(handler)
}

// testClock управляемые часы для credential
type testClock struct {
	t  time.Time
	mu sync.Mutex
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestIssuer(t *testing.T) (*credential.Issuer, *testClock) {
	t.Helper()

	clock := &testClock{t: time.Now()}
	issuer, err := credential.NewIssuer(testSecret, time.Hour, credential.WithClock(clock.Now))
	require.NoError(t, err)

	return issuer, clock
}

// countingRecorder считает проверки и продления credential
type countingRecorder struct {
	outcomes map[string]int
	renewals int
	mu       sync.Mutex
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{outcomes: make(map[string]int)}
}

func (c *countingRecorder) Verification(outcome string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.outcomes[outcome]++
}

func (c *countingRecorder) Renewal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.renewals++
}

func testUser(deviceID string) *models.User {
	user := models.NewUser(deviceID, models.UserTypeStandard, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	user.FirstName = "John"
	return user
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()

	body, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(body)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(w.Body).Decode(v))
}

// withDevice добавляет device_id в контекст, как это делает AuthMiddleware
func withDevice(req *http.Request, deviceID string) *http.Request {
	return req.WithContext(WithDeviceID(req.Context(), deviceID))
}

// withURLParams добавляет chi параметры маршрута
func withURLParams(req *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}
