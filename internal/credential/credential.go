// Package credential issues and verifies device session credentials.
//
// A credential is an HS256 JWT whose only application claim is the device
// id. It is stateless: nothing is persisted, verification relies on the
// signature and the expiry. Verify distinguishes a credential that is merely
// expired (signature still valid) from one that is invalid, so callers can
// decide deliberately whether to renew it.
package credential

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iudanet/activator/internal/crypto"
)

const (
	// DefaultTTL срок действия credential для выдачи и продления
	DefaultTTL = 7 * 24 * time.Hour
	// DefaultIssuer значение iss в выдаваемых токенах
	DefaultIssuer = "activator"

	signingKeyInfo = "activator credential signing v1"
)

// Outcome результат проверки credential
type Outcome int

const (
	// OutcomeInvalid подпись неверна, формат поврежден или отсутствуют claims
	OutcomeInvalid Outcome = iota
	// OutcomeValid подпись верна и срок действия не истек
	OutcomeValid
	// OutcomeExpiredButSigned подпись верна, но срок действия истек
	OutcomeExpiredButSigned
)

// String returns the outcome name used in logs.
func (o Outcome) String() string {
	switch o {
	case OutcomeValid:
		return "valid"
	case OutcomeExpiredButSigned:
		return "expired"
	default:
		return "invalid"
	}
}

// Claims представляет JWT claims credential
type Claims struct {
	DeviceID string `json:"device_id"`
	jwt.RegisteredClaims
}

// Result is the outcome of Verify. DeviceID is set only for OutcomeValid
// and OutcomeExpiredButSigned.
type Result struct {
	ExpiresAt time.Time
	Err       error
	DeviceID  string
	Outcome   Outcome
}

// Issuer creates and verifies credentials with a process-wide signing key.
type Issuer struct {
	now    func() time.Time
	issuer string
	key    []byte
	ttl    time.Duration
}

// Option настраивает Issuer
type Option func(*Issuer)

// WithClock подменяет источник времени (используется в тестах)
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) {
		i.now = now
	}
}

// WithIssuer задает значение iss
func WithIssuer(issuer string) Option {
	return func(i *Issuer) {
		i.issuer = issuer
	}
}

// NewIssuer creates an Issuer. The signing key is derived from secret,
// which must be at least crypto.MinSecretLen bytes long.
func NewIssuer(secret []byte, ttl time.Duration, opts ...Option) (*Issuer, error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("credential ttl must be positive, got %s", ttl)
	}

	key, err := crypto.DeriveSigningKey(secret, signingKeyInfo)
	if err != nil {
		return nil, fmt.Errorf("failed to derive credential key: %w", err)
	}

	i := &Issuer{
		key:    key,
		ttl:    ttl,
		issuer: DefaultIssuer,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}

	return i, nil
}

// TTL returns the validity window of issued credentials.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue creates a signed credential for deviceID.
func (i *Issuer) Issue(deviceID string) (string, time.Time, error) {
	if deviceID == "" {
		return "", time.Time{}, errors.New("device id cannot be empty")
	}

	now := i.now()
	expiresAt := now.Add(i.ttl)

	claims := Claims{
		DeviceID: deviceID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign credential: %w", err)
	}

	// Возвращаем время с точностью NumericDate, чтобы совпадало с exp в токене
	return signed, claims.ExpiresAt.Time, nil
}

// Verify checks the signature and the expiry of a credential.
//
// An expired credential is reported as OutcomeExpiredButSigned only when its
// signature and issuer are valid; every other failure is OutcomeInvalid.
func (i *Issuer) Verify(tokenString string) Result {
	if tokenString == "" {
		return Result{Outcome: OutcomeInvalid, Err: errors.New("empty credential")}
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return i.key, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)

	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired) && !errors.Is(err, jwt.ErrTokenSignatureInvalid):
		// Подпись проверяется до claims, значит payload не подделан
		if claims.DeviceID == "" || claims.Issuer != i.issuer {
			return Result{Outcome: OutcomeInvalid, Err: errors.New("credential claims are invalid")}
		}
		return Result{
			Outcome:   OutcomeExpiredButSigned,
			DeviceID:  claims.DeviceID,
			ExpiresAt: claims.ExpiresAt.Time,
			Err:       err,
		}
	default:
		return Result{Outcome: OutcomeInvalid, Err: fmt.Errorf("failed to parse credential: %w", err)}
	}

	if claims.DeviceID == "" {
		return Result{Outcome: OutcomeInvalid, Err: errors.New("credential has no device id")}
	}
	if claims.Issuer != i.issuer {
		return Result{Outcome: OutcomeInvalid, Err: fmt.Errorf("unexpected credential issuer %q", claims.Issuer)}
	}

	return Result{
		Outcome:   OutcomeValid,
		DeviceID:  claims.DeviceID,
		ExpiresAt: claims.ExpiresAt.Time,
	}
}
