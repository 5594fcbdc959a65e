package crypto

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	// MinSecretLen минимальная длина секрета из конфигурации
	MinSecretLen = 32
	// SigningKeyLen длина производного ключа подписи в байтах
	SigningKeyLen = 32
)

// DeriveSigningKey выводит ключ подписи из секрета конфигурации через HKDF-SHA256
// info разделяет назначения ключей: разные info дают независимые ключи
func DeriveSigningKey(secret []byte, info string) ([]byte, error) {
	if len(secret) < MinSecretLen {
		return nil, fmt.Errorf("secret must be at least %d bytes, got %d", MinSecretLen, len(secret))
	}

	reader := hkdf.New(sha256.New, secret, nil, []byte(info))

	key := make([]byte, SigningKeyLen)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("failed to derive signing key: %w", err)
	}

	return key, nil
}
