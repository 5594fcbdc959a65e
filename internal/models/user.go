package models

import "time"

// UserType классификация пользователя, выводится из формата sold token
type UserType int

const (
	// UserTypeStandard тип по умолчанию (ключи длиной 10 и нестандартные)
	UserTypeStandard UserType = 1
	// UserTypeShort тип для ключей длиной 8
	UserTypeShort UserType = 2
)

// User представляет профиль устройства
type User struct {
	CreatedAt    time.Time `json:"created_at"`     // время создания
	BirthDate    time.Time `json:"birth_date"`     // дата рождения
	DeviceID     string    `json:"device_id"`      // уникальный идентификатор устройства
	FirstName    string    `json:"first_name"`     // имя
	LastName     string    `json:"last_name"`      // фамилия
	PlaceOfBirth string    `json:"place_of_birth"` // место рождения
	Email        string    `json:"email"`          // email
	Phone        string    `json:"phone"`          // телефон
	School       string    `json:"school"`         // учебное заведение
	Address      string    `json:"address"`        // адрес (коммуна)
	UserType     UserType  `json:"user_type"`      // неизменяемый после создания
}

// ArchivedUser представляет профиль после удаления аккаунта (soft delete)
type ArchivedUser struct {
	ArchivedAt time.Time `json:"archived_at"` // время архивации
	User
}

// NewUser создает профиль с placeholder значениями.
// Клиент заполняет реальные данные позже через обновление профиля.
func NewUser(deviceID string, userType UserType, createdAt time.Time) *User {
	return &User{
		DeviceID:     deviceID,
		FirstName:    "first name",
		LastName:     "last name",
		BirthDate:    time.Date(2005, time.January, 1, 15, 30, 5, 0, time.UTC),
		PlaceOfBirth: "Alger",
		Email:        "example",
		Phone:        "0500000000",
		School:       "school",
		Address:      "البلدية",
		UserType:     userType,
		CreatedAt:    createdAt,
	}
}

// Archive returns the archived copy of the profile.
func (u *User) Archive(archivedAt time.Time) *ArchivedUser {
	return &ArchivedUser{
		User:       *u,
		ArchivedAt: archivedAt,
	}
}

// Restore returns the live profile stored in the archive.
func (a *ArchivedUser) Restore() *User {
	u := a.User
	return &u
}
