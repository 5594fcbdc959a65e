package crypto

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"
)

// HashDeviceID хеширует идентификатор устройства с использованием SHA256
// Клиент присылает этот хеш вместе с deviceId как легкую проверку,
// что он владеет исходным значением (не криптографическая аутентификация)
func HashDeviceID(deviceID string) (string, error) {
	if deviceID == "" {
		return "", fmt.Errorf("device id cannot be empty")
	}

	hash := sha256.Sum256([]byte(deviceID))

	// Возвращаем hex-encoded строку
	return hex.EncodeToString(hash[:]), nil
}

// VerifyDeviceID проверяет, что hashedID является SHA256 от deviceID
// Сравнение выполняется за постоянное время, регистр hex не важен
func VerifyDeviceID(deviceID, hashedID string) error {
	if hashedID == "" {
		return fmt.Errorf("hashed device id cannot be empty")
	}

	computedHash, err := HashDeviceID(deviceID)
	if err != nil {
		return fmt.Errorf("failed to compute device id hash: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(computedHash), []byte(strings.ToLower(hashedID))) != 1 {
		return fmt.Errorf("device id hash mismatch")
	}

	return nil
}
