package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// LegacySeparator разделитель полей в строковом формате профиля
	LegacySeparator = "#"
	// BirthDateLayout формат даты рождения DD/MM/YYYY HH:MM:SS
	BirthDateLayout = "02/01/2006 15:04:05"
)

// ProfilePatch содержит частичное обновление профиля.
// Пустые поля не изменяют текущие значения.
type ProfilePatch struct {
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
	BirthDate    string `json:"birth_date,omitempty" validate:"omitempty,datetime=02/01/2006 15:04:05"`
	PlaceOfBirth string `json:"place_of_birth,omitempty"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	School       string `json:"school,omitempty"`
	Address      string `json:"address,omitempty"`
}

// ParseLegacyPatch parses the positional "#"-joined update string:
// first, last, birth date, place, email, phone, school, address.
// Missing trailing fields are empty; fields past the address are ignored.
func ParseLegacyPatch(userInfo string) ProfilePatch {
	fields := strings.Split(userInfo, LegacySeparator)
	at := func(i int) string {
		if i < len(fields) {
			return strings.TrimSpace(fields[i])
		}
		return ""
	}

	return ProfilePatch{
		FirstName:    at(0),
		LastName:     at(1),
		BirthDate:    at(2),
		PlaceOfBirth: at(3),
		Email:        at(4),
		Phone:        at(5),
		School:       at(6),
		Address:      at(7),
	}
}

// IsEmpty reports whether the patch carries no field at all.
func (p ProfilePatch) IsEmpty() bool {
	return p == ProfilePatch{}
}

// Apply overwrites the non-empty fields of the patch onto u.
// UserType, DeviceID and CreatedAt are never touched.
func (p ProfilePatch) Apply(u *User) error {
	if p.BirthDate != "" {
		birthDate, err := time.ParseInLocation(BirthDateLayout, p.BirthDate, time.UTC)
		if err != nil {
			return fmt.Errorf("invalid birth date %q: %w", p.BirthDate, err)
		}
		u.BirthDate = birthDate
	}

	overwrite(&u.FirstName, p.FirstName)
	overwrite(&u.LastName, p.LastName)
	overwrite(&u.PlaceOfBirth, p.PlaceOfBirth)
	overwrite(&u.Email, p.Email)
	overwrite(&u.Phone, p.Phone)
	overwrite(&u.School, p.School)
	overwrite(&u.Address, p.Address)

	return nil
}

func overwrite(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

// FormatBirthDate форматирует дату рождения; нулевая дата дает пустую строку
func FormatBirthDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(BirthDateLayout)
}

// FormatLegacy encodes the profile as the "#"-joined string expected by
// existing clients: first, last, birth date, place, email, phone, school,
// address, type.
func FormatLegacy(u *User) string {
	return strings.Join([]string{
		u.FirstName,
		u.LastName,
		FormatBirthDate(u.BirthDate),
		u.PlaceOfBirth,
		u.Email,
		u.Phone,
		u.School,
		u.Address,
		strconv.Itoa(int(u.UserType)),
	}, LegacySeparator)
}
