// Package license содержит правила формата проданных ключей.
//
// Формат ключа неявно кодирует категорию пользователя: от длины ключа
// зависит UserType профиля, который создается при регистрации.
// Правило является бизнес-контрактом с процессом выпуска ключей.
package license

import (
	"strings"

	"github.com/iudanet/activator/internal/models"
)

const (
	// StandardKeyLen длина ключа стандартной категории
	StandardKeyLen = 10
	// ShortKeyLen длина ключа категории UserTypeShort
	ShortKeyLen = 8
)

// NormalizeKey приводит ключ к каноническому виду (без пробелов, верхний регистр)
func NormalizeKey(key string) string {
	return strings.ToUpper(strings.TrimSpace(key))
}

// Classify returns the user category encoded by the key length.
// Keys of length 10 map to UserTypeStandard, length 8 to UserTypeShort,
// anything else falls back to UserTypeStandard.
func Classify(key string) models.UserType {
	switch len(NormalizeKey(key)) {
	case StandardKeyLen:
		return models.UserTypeStandard
	case ShortKeyLen:
		return models.UserTypeShort
	default:
		return models.UserTypeStandard
	}
}
