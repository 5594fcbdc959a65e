// Package service implements device registration and the profile directory
// on top of the transactional store.
package service

import (
	"time"
)

// DefaultRetention срок, в течение которого архивированный профиль можно восстановить
const DefaultRetention = 30 * 24 * time.Hour

// Recorder принимает события для метрик
type Recorder interface {
	Redemption(outcome string)
	ZeroRowConsume()
}

type settings struct {
	now       func() time.Time
	retention time.Duration
}

func newSettings(opts []Option) settings {
	s := settings{
		now:       time.Now,
		retention: DefaultRetention,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Option настраивает сервисы пакета
type Option func(*settings)

// WithClock подменяет источник времени (для тестов)
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		s.now = now
	}
}

// WithRetention задает окно восстановления архивированного профиля
func WithRetention(d time.Duration) Option {
	return func(s *settings) {
		s.retention = d
	}
}

type nopRecorder struct{}

func (nopRecorder) Redemption(string) {}
func (nopRecorder) ZeroRowConsume()   {}
