package handlers

import (
	"log/slog"
	"net/http"

	"github.com/iudanet/activator/internal/models"
	"github.com/iudanet/activator/internal/server/service"
	"github.com/iudanet/activator/internal/validation"
	"github.com/iudanet/activator/pkg/api"
)

// RegistrationHandler обрабатывает погашение проданных ключей
type RegistrationHandler struct {
	logger    *slog.Logger
	registrar Registrar
}

// NewRegistrationHandler создает handler регистрации
func NewRegistrationHandler(logger *slog.Logger, registrar Registrar) *RegistrationHandler {
	return &RegistrationHandler{
		logger:    logger,
		registrar: registrar,
	}
}

// Redeem обрабатывает POST /api/v1/registration
// Связывает проданный ключ с устройством из credential
func (h *RegistrationHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	deviceID, ok := requireDeviceID(w, r, h.logger)
	if !ok {
		return
	}

	var req api.RedeemRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	if err := validation.Struct(req); err != nil {
		sendError(w, r, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	// deviceId в теле допускается только совпадающий с credential
	if req.DeviceID != "" && req.DeviceID != deviceID {
		h.logger.WarnContext(ctx, "device id does not match credential",
			slog.String("device_id", deviceID))
		sendError(w, r, http.StatusUnauthorized, api.StatusAccessDenied, "device id does not match credential")
		return
	}

	result, err := h.registrar.Redeem(ctx, deviceID, req.SoldToken)
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}

	switch {
	case result.Outcome == service.OutcomeCreated:
		sendJSON(w, r, api.RedeemResponse{
			Status:   api.StatusCreated,
			Profile:  toProfile(result.User),
			UserInfo: models.FormatLegacy(result.User),
		}, http.StatusCreated)
	case result.Archived:
		sendJSON(w, r, api.RedeemResponse{Status: api.StatusDeleted}, http.StatusOK)
	default:
		sendJSON(w, r, api.RedeemResponse{
			Status:   api.StatusRegistered,
			Profile:  toProfile(result.User),
			UserInfo: models.FormatLegacy(result.User),
		}, http.StatusOK)
	}
}
