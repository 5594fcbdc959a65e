package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/iudanet/activator/internal/credential"
	"github.com/iudanet/activator/internal/models"
	"github.com/iudanet/activator/internal/server/service"
	"github.com/iudanet/activator/pkg/api"
)

// contextKey тип для ключей контекста
type contextKey string

// DeviceIDKey ключ для хранения device_id в контексте
const DeviceIDKey contextKey = "device_id"

// WithDeviceID возвращает контекст с device_id аутентифицированного устройства
func WithDeviceID(ctx context.Context, deviceID string) context.Context {
	return context.WithValue(ctx, DeviceIDKey, deviceID)
}

// GetDeviceID извлекает device_id из контекста запроса
func GetDeviceID(ctx context.Context) (string, bool) {
	deviceID, ok := ctx.Value(DeviceIDKey).(string)
	return deviceID, ok
}

//go:generate moq -out directory_mock_test.go . Directory

// Directory определяет операции с профилями, нужные обработчикам
type Directory interface {
	Profile(ctx context.Context, deviceID string) (*models.User, error)
	Contract(ctx context.Context, deviceID string) (*models.Contract, error)
	Update(ctx context.Context, deviceID string, patch models.ProfilePatch) (*models.User, error)
	Archive(ctx context.Context, deviceID string) (*models.ArchivedUser, error)
	Restore(ctx context.Context, deviceID string) (*models.User, error)
}

// Registrar погашает проданные ключи
type Registrar interface {
	Redeem(ctx context.Context, deviceID, key string) (*service.RedeemResult, error)
}

// CredentialIssuer выпускает и проверяет credential устройств
type CredentialIssuer interface {
	Issue(deviceID string) (string, time.Time, error)
	Verify(token string) credential.Result
}

// CredentialRecorder учитывает проверки и продления credential
type CredentialRecorder interface {
	Verification(outcome string)
	Renewal()
}

// sendJSON отправляет JSON ответ
func sendJSON(w http.ResponseWriter, r *http.Request, data any, statusCode int) {
	render.Status(r, statusCode)
	render.JSON(w, r, data)
}

// sendError отправляет JSON ответ с ошибкой
func sendError(w http.ResponseWriter, r *http.Request, statusCode int, status, message string) {
	resp := api.ErrorResponse{
		Status:  status,
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	sendJSON(w, r, resp, statusCode)
}

// sendServiceError переводит ошибку сервиса в HTTP ответ
func sendServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	statusCode := HTTPStatus(err)
	message := err.Error()

	if statusCode >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed", slog.Any("error", err))
		// Детали внутренних ошибок клиенту не раскрываем
		message = http.StatusText(statusCode)
	}

	sendError(w, r, statusCode, service.StatusOf(err), message)
}

// HTTPStatus returns the status code for a service error.
func HTTPStatus(err error) int {
	switch service.KindOf(err) {
	case service.KindValidation, service.KindConflict:
		return http.StatusBadRequest
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindAuth:
		return http.StatusUnauthorized
	case service.KindTransient:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON разбирает тело запроса, отвечая 400 при ошибке
func decodeJSON(w http.ResponseWriter, r *http.Request, logger *slog.Logger, v any) bool {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		logger.WarnContext(r.Context(), "failed to decode request", slog.Any("error", err))
		sendError(w, r, http.StatusBadRequest, api.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// requireDeviceID извлекает device_id, установленный AuthMiddleware
func requireDeviceID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (string, bool) {
	deviceID, ok := GetDeviceID(r.Context())
	if !ok || deviceID == "" {
		logger.ErrorContext(r.Context(), "device id not found in context")
		sendError(w, r, http.StatusUnauthorized, api.StatusNoCredential, "no credential")
		return "", false
	}
	return deviceID, true
}

// toProfile формирует структурный профиль для ответа
func toProfile(u *models.User) *api.Profile {
	if u == nil {
		return nil
	}
	return &api.Profile{
		DeviceID:     u.DeviceID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		BirthDate:    models.FormatBirthDate(u.BirthDate),
		PlaceOfBirth: u.PlaceOfBirth,
		Email:        u.Email,
		Phone:        u.Phone,
		School:       u.School,
		Address:      u.Address,
		UserType:     int(u.UserType),
	}
}

func toContract(c *models.Contract) api.Contract {
	contract := api.Contract{
		DeviceID:     c.DeviceID,
		SoldToken:    c.SoldTokenKey,
		StartDate:    c.StartDate.Unix(),
		ExpiringDate: c.ExpiringDate.Unix(),
		Deleted:      c.Deleted,
	}
	if c.DeletionDate != nil {
		deleted := c.DeletionDate.Unix()
		contract.DeletionDate = &deleted
	}
	return contract
}

func isNotFound(err error) bool {
	return errors.Is(err, service.ErrUserNotFound)
}
