package models

import "time"

// ContractValidity срок действия контракта (фиксированная политика)
const ContractValidity = 365 * 24 * time.Hour

// SoldToken представляет проданный лицензионный ключ
type SoldToken struct {
	GeneratedAt time.Time `json:"generated_at"` // время генерации ключа
	Key         string    `json:"key"`          // ключ в верхнем регистре
	Code        string    `json:"code"`         // метка партии (опционально)
	Sold        bool      `json:"sold"`         // продан ли ключ
	Consumed    bool      `json:"consumed"`     // использован ли ключ для регистрации
}

// Contract связывает устройство с использованным ключом
type Contract struct {
	StartDate    time.Time  `json:"start_date"`              // начало действия
	ExpiringDate time.Time  `json:"expiring_date"`           // окончание действия
	DeletionDate *time.Time `json:"deletion_date,omitempty"` // время удаления (если удален)
	DeviceID     string     `json:"device_id"`               // уникальный идентификатор устройства
	SoldTokenKey string     `json:"sold_token_key"`          // уникальный ключ
	Deleted      bool       `json:"deleted"`                 // флаг удаления
}

// NewContract creates a binding that starts at start and lasts ContractValidity.
func NewContract(deviceID, key string, start time.Time) *Contract {
	return &Contract{
		DeviceID:     deviceID,
		SoldTokenKey: key,
		StartDate:    start,
		ExpiringDate: start.Add(ContractValidity),
	}
}

// ExpiredAt reports whether the contract is past its expiring date at now.
func (c *Contract) ExpiredAt(now time.Time) bool {
	return now.After(c.ExpiringDate)
}
