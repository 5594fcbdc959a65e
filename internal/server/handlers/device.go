package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iudanet/activator/internal/credential"
	"github.com/iudanet/activator/internal/crypto"
	"github.com/iudanet/activator/internal/models"
	"github.com/iudanet/activator/internal/validation"
	"github.com/iudanet/activator/pkg/api"
)

// DeviceHandler обрабатывает проверку устройства и выдачу credential
type DeviceHandler struct {
	logger    *slog.Logger
	directory Directory
	issuer    CredentialIssuer
	recorder  CredentialRecorder
}

// NewDeviceHandler создает handler для операций с credential
func NewDeviceHandler(logger *slog.Logger, directory Directory, issuer CredentialIssuer, recorder CredentialRecorder) *DeviceHandler {
	return &DeviceHandler{
		logger:    logger,
		directory: directory,
		issuer:    issuer,
		recorder:  recorder,
	}
}

// CheckRegistration обрабатывает GET /api/v1/devices/{deviceId}/registration/{deviceIdHash}
// Проверяет владение идентификатором и выдает credential
func (h *DeviceHandler) CheckRegistration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	deviceID := chi.URLParam(r, "deviceId")
	if !h.proveDevice(w, r, deviceID, chi.URLParam(r, "deviceIdHash")) {
		return
	}

	token, expiresAt, err := h.issuer.Issue(deviceID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue credential", slog.Any("error", err))
		sendError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		return
	}

	resp := api.RegistrationStatusResponse{
		Status:     api.StatusRegistered,
		Credential: token,
		ExpiresAt:  expiresAt.Unix(),
	}

	user, err := h.directory.Profile(ctx, deviceID)
	switch {
	case err == nil:
		resp.Profile = toProfile(user)
		resp.UserInfo = models.FormatLegacy(user)
	case isNotFound(err):
		// Устройство без живого профиля: удалено или еще не зарегистрировано
		resp.Status = api.StatusDeleted
	default:
		sendServiceError(w, r, h.logger, err)
		return
	}

	h.logger.InfoContext(ctx, "registration checked",
		slog.String("device_id", deviceID),
		slog.String("status", resp.Status))

	sendJSON(w, r, resp, http.StatusOK)
}

// VerifyCredential обрабатывает POST /api/v1/credential/verify
func (h *DeviceHandler) VerifyCredential(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.VerifyRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	if req.Credential == "" {
		sendError(w, r, http.StatusUnauthorized, api.StatusNoCredential, "no credential, access denied")
		return
	}

	if err := validation.Struct(req); err != nil {
		sendError(w, r, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	result := h.issuer.Verify(req.Credential)
	h.recorder.Verification(result.Outcome.String())

	if result.Outcome == credential.OutcomeInvalid || result.DeviceID != req.DeviceID {
		h.logger.WarnContext(ctx, "credential rejected",
			slog.String("device_id", req.DeviceID),
			slog.Any("error", result.Err))
		sendError(w, r, http.StatusUnauthorized, api.StatusInvalid, "invalid credential")
		return
	}

	if result.Outcome == credential.OutcomeExpiredButSigned {
		if !h.renew(w, r, req.DeviceID) {
			return
		}
	}

	user, err := h.directory.Profile(ctx, req.DeviceID)
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}

	resp := api.ProfileResponse{
		Status:   api.StatusValid,
		Profile:  toProfile(user),
		UserInfo: models.FormatLegacy(user),
	}

	sendJSON(w, r, resp, http.StatusOK)
}

// RefreshCredential обрабатывает GET /api/v1/credential/refresh?deviceId=&deviceIdHash=
// Выдает новый credential зарегистрированному устройству
func (h *DeviceHandler) RefreshCredential(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := r.URL.Query()
	deviceID := query.Get("deviceId")
	if !h.proveDevice(w, r, deviceID, query.Get("deviceIdHash")) {
		return
	}

	user, err := h.directory.Profile(ctx, deviceID)
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}

	token, expiresAt, err := h.issuer.Issue(deviceID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue credential", slog.Any("error", err))
		sendError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		return
	}

	h.logger.InfoContext(ctx, "credential refreshed", slog.String("device_id", deviceID))

	resp := api.CredentialResponse{
		Credential: token,
		ExpiresAt:  expiresAt.Unix(),
		Profile:    toProfile(user),
		UserInfo:   models.FormatLegacy(user),
	}

	sendJSON(w, r, resp, http.StatusOK)
}

// proveDevice проверяет формат идентификатора и доказательство владения им
func (h *DeviceHandler) proveDevice(w http.ResponseWriter, r *http.Request, deviceID, hash string) bool {
	if err := validation.ValidateDeviceID(deviceID); err != nil {
		sendError(w, r, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return false
	}

	if err := crypto.VerifyDeviceID(deviceID, hash); err != nil {
		h.logger.WarnContext(r.Context(), "device proof mismatch", slog.String("device_id", deviceID))
		sendError(w, r, http.StatusUnauthorized, api.StatusAccessDenied, "access denied")
		return false
	}

	return true
}

// renew выпускает новый credential и передает его в заголовке ответа
func (h *DeviceHandler) renew(w http.ResponseWriter, r *http.Request, deviceID string) bool {
	token, _, err := h.issuer.Issue(deviceID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to renew credential", slog.Any("error", err))
		sendError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		return false
	}

	w.Header().Set(api.HeaderNewAuthToken, token)
	h.recorder.Renewal()
	h.logger.InfoContext(r.Context(), "credential renewed", slog.String("device_id", deviceID))

	return true
}
