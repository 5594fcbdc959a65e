// Package api описывает JSON контракт HTTP API сервиса активации.
// Используется сервером и клиентом устройства.
package api

// Статусы ответов
const (
	StatusRegistered = "REGISTERED"
	StatusDeleted    = "DELETED"
	StatusCreated    = "CREATED"
	StatusValid      = "VALID"
	StatusSaved      = "SAVED"

	StatusAccessDenied = "ACCESS_DENIED"
	StatusNoCredential = "NO_CREDENTIAL"
	StatusInvalid      = "INVALID"
	StatusBadRequest   = "BAD_REQUEST"
)

// Заголовки credential
const (
	// HeaderAuthToken альтернативный заголовок для credential
	HeaderAuthToken = "X-Auth-Token"
	// HeaderNewAuthToken содержит продленный credential
	HeaderNewAuthToken = "X-New-Auth-Token"
	// HeaderRequestID идентификатор запроса
	HeaderRequestID = "X-Request-ID"
)

// Profile представляет профиль устройства
type Profile struct {
	DeviceID     string `json:"deviceId"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	BirthDate    string `json:"birthDate"` // DD/MM/YYYY HH:MM:SS
	PlaceOfBirth string `json:"placeOfBirth"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	School       string `json:"school"`
	Address      string `json:"address"`
	UserType     int    `json:"userType"`
}

// ProfilePatch частичное обновление профиля: пустые поля не меняются
type ProfilePatch struct {
	FirstName    string `json:"firstName,omitempty"`
	LastName     string `json:"lastName,omitempty"`
	BirthDate    string `json:"birthDate,omitempty"`
	PlaceOfBirth string `json:"placeOfBirth,omitempty"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	School       string `json:"school,omitempty"`
	Address      string `json:"address,omitempty"`
}

// RegistrationStatusResponse ответ на проверку регистрации устройства
type RegistrationStatusResponse struct {
	Profile    *Profile `json:"profile,omitempty"`
	Status     string   `json:"status"`
	Credential string   `json:"credential"`
	ExpiresAt  int64    `json:"expiresAt"` // unix seconds
	UserInfo   string   `json:"userInfo,omitempty"`
}

// RedeemRequest запрос на погашение проданного ключа
type RedeemRequest struct {
	DeviceID  string `json:"deviceId,omitempty" validate:"omitempty,deviceid"`
	SoldToken string `json:"soldToken" validate:"required,max=64"`
}

// RedeemResponse ответ на погашение ключа
type RedeemResponse struct {
	Profile  *Profile `json:"profile,omitempty"`
	Status   string   `json:"status"`
	UserInfo string   `json:"userInfo,omitempty"`
}

// VerifyRequest запрос на проверку credential
type VerifyRequest struct {
	DeviceID   string `json:"deviceId" validate:"required,deviceid"`
	Credential string `json:"credential"`
}

// ProfileResponse ответ с профилем
type ProfileResponse struct {
	Profile  *Profile `json:"profile"`
	Status   string   `json:"status"`
	UserInfo string   `json:"userInfo"`
}

// CredentialResponse ответ с новым credential
type CredentialResponse struct {
	Profile    *Profile `json:"profile"`
	Credential string   `json:"credential"`
	UserInfo   string   `json:"userInfo"`
	ExpiresAt  int64    `json:"expiresAt"` // unix seconds
}

// UpdateProfileRequest обновление профиля в legacy ("#") или структурном виде
// Если задан profile, userInfo игнорируется
type UpdateProfileRequest struct {
	Profile  *ProfilePatch `json:"profile,omitempty"`
	UserInfo string        `json:"userInfo,omitempty"`
}

// Contract представляет контракт устройства
type Contract struct {
	DeletionDate *int64 `json:"deletionDate,omitempty"`
	DeviceID     string `json:"deviceId"`
	SoldToken    string `json:"soldToken"`
	StartDate    int64  `json:"startDate"`    // unix seconds
	ExpiringDate int64  `json:"expiringDate"` // unix seconds
	Deleted      bool   `json:"deleted"`
}

// ContractResponse ответ с контрактом
type ContractResponse struct {
	Contract Contract `json:"contract"`
}

// DeleteAccountResponse ответ на удаление аккаунта
type DeleteAccountResponse struct {
	Deleted bool `json:"deleted"`
}

// RestoreAccountResponse ответ на восстановление аккаунта
type RestoreAccountResponse struct {
	Profile  *Profile `json:"profile"`
	UserInfo string   `json:"userInfo"`
	Restored bool     `json:"restored"`
}

// HealthResponse ответ health check
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Status  string `json:"status"`            // стабильный код ошибки
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}
