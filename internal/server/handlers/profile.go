package handlers

import (
	"log/slog"
	"net/http"

	"github.com/iudanet/activator/internal/models"
	"github.com/iudanet/activator/pkg/api"
)

// ProfileHandler обрабатывает чтение и обновление профиля
type ProfileHandler struct {
	logger    *slog.Logger
	directory Directory
}

// NewProfileHandler создает handler профиля
func NewProfileHandler(logger *slog.Logger, directory Directory) *ProfileHandler {
	return &ProfileHandler{
		logger:    logger,
		directory: directory,
	}
}

// Get обрабатывает GET /api/v1/profile
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	deviceID, ok := requireDeviceID(w, r, h.logger)
	if !ok {
		return
	}

	user, err := h.directory.Profile(r.Context(), deviceID)
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}

	sendJSON(w, r, api.ProfileResponse{
		Status:   api.StatusRegistered,
		Profile:  toProfile(user),
		UserInfo: models.FormatLegacy(user),
	}, http.StatusOK)
}

// Update обрабатывает PUT /api/v1/profile
// Принимает legacy строку userInfo или структурный profile
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	deviceID, ok := requireDeviceID(w, r, h.logger)
	if !ok {
		return
	}

	var req api.UpdateProfileRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	var patch models.ProfilePatch
	if req.Profile != nil {
		patch = models.ProfilePatch(*req.Profile)
	} else {
		patch = models.ParseLegacyPatch(req.UserInfo)
	}

	user, err := h.directory.Update(r.Context(), deviceID, patch)
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}

	sendJSON(w, r, api.ProfileResponse{
		Status:   api.StatusSaved,
		Profile:  toProfile(user),
		UserInfo: models.FormatLegacy(user),
	}, http.StatusOK)
}
