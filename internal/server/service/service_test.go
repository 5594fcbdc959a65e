package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iudanet/activator/internal/models"
	"github.com/iudanet/activator/internal/server/metrics"
	"github.com/iudanet/activator/internal/server/storage/sqlite"
)

// testClock управляемые часы для тестов
type testClock struct {
	t time.Time
}

func (c *testClock) Now() time.Time {
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestClock() *testClock {
	return &testClock{t: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupTestStore(t *testing.T) *sqlite.Storage {
	t.Helper()

	s, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}

func provisionToken(t *testing.T, s *sqlite.Storage, key string) {
	t.Helper()

	require.NoError(t, s.SaveSoldToken(context.Background(), &models.SoldToken{
		Key:         key,
		Sold:        true,
		GeneratedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}))
}

type fixture struct {
	store        *sqlite.Storage
	clock        *testClock
	metrics      *metrics.Metrics
	registration *Registration
	directory    *Directory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := setupTestStore(t)
	clock := newTestClock()
	m := metrics.New()

	return &fixture{
		store:        store,
		clock:        clock,
		metrics:      m,
		registration: NewRegistration(store, testLogger(), m, WithClock(clock.Now)),
		directory:    NewDirectory(store, testLogger(), WithClock(clock.Now)),
	}
}
