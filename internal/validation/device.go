package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// DeviceIDPattern определяет допустимый формат идентификатора устройства
// Латинские буквы, цифры и символы . _ : - ; длина 1-128 символов
var DeviceIDPattern = regexp.MustCompile(`^[a-zA-Z0-9._:-]{1,128}$`)

// TokenKeyPattern определяет формат нормализованного ключа (верхний регистр)
var TokenKeyPattern = regexp.MustCompile(`^[A-Z0-9]{1,64}$`)

const (
	// MaxDeviceIDLen максимальная длина идентификатора устройства
	MaxDeviceIDLen = 128
	// MaxTokenKeyLen максимальная длина ключа
	MaxTokenKeyLen = 64
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// ValidateDeviceID проверяет, что идентификатор устройства соответствует требованиям
func ValidateDeviceID(deviceID string) error {
	if deviceID == "" {
		return fmt.Errorf("device id cannot be empty")
	}

	if len(deviceID) > MaxDeviceIDLen {
		return fmt.Errorf("device id must not exceed %d characters", MaxDeviceIDLen)
	}

	if !DeviceIDPattern.MatchString(deviceID) {
		return fmt.Errorf("device id can only contain letters, numbers, '.', '_', ':' and '-'")
	}

	return nil
}

// ValidateTokenKey проверяет нормализованный ключ
func ValidateTokenKey(key string) error {
	if key == "" {
		return fmt.Errorf("sold token cannot be empty")
	}

	if len(key) > MaxTokenKeyLen {
		return fmt.Errorf("sold token must not exceed %d characters", MaxTokenKeyLen)
	}

	if !TokenKeyPattern.MatchString(key) {
		return fmt.Errorf("sold token can only contain letters and numbers")
	}

	return nil
}

// Struct validates request structs using `validate` tags.
// Besides the built-in tags it understands "deviceid".
func Struct(v any) error {
	err := structValidator().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// В сообщениях используем имена полей из json тегов
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return field.Name
			}
			return name
		})
		_ = validate.RegisterValidation("deviceid", func(fl validator.FieldLevel) bool {
			return ValidateDeviceID(fl.Field().String()) == nil
		})
	})
	return validate
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "deviceid":
		return fmt.Sprintf("%s is not a valid device id", fe.Field())
	case "max":
		return fmt.Sprintf("%s must not exceed %s characters", fe.Field(), fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must match DD/MM/YYYY HH:MM:SS", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
	}
}
