package handlers

import (
	"log/slog"
	"net/http"

	"github.com/iudanet/activator/internal/models"
	"github.com/iudanet/activator/pkg/api"
)

// AccountHandler обрабатывает удаление, восстановление аккаунта и контракт
type AccountHandler struct {
	logger    *slog.Logger
	directory Directory
}

// NewAccountHandler создает handler аккаунта
func NewAccountHandler(logger *slog.Logger, directory Directory) *AccountHandler {
	return &AccountHandler{
		logger:    logger,
		directory: directory,
	}
}

// Delete обрабатывает DELETE /api/v1/account
// Профиль переносится в архив и может быть восстановлен в течение срока хранения
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deviceID, ok := requireDeviceID(w, r, h.logger)
	if !ok {
		return
	}

	if _, err := h.directory.Archive(r.Context(), deviceID); err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}

	sendJSON(w, r, api.DeleteAccountResponse{Deleted: true}, http.StatusOK)
}

// Restore обрабатывает POST /api/v1/account/restore
func (h *AccountHandler) Restore(w http.ResponseWriter, r *http.Request) {
	deviceID, ok := requireDeviceID(w, r, h.logger)
	if !ok {
		return
	}

	user, err := h.directory.Restore(r.Context(), deviceID)
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}

	sendJSON(w, r, api.RestoreAccountResponse{
		Restored: true,
		Profile:  toProfile(user),
		UserInfo: models.FormatLegacy(user),
	}, http.StatusOK)
}

// Contract обрабатывает GET /api/v1/contract
func (h *AccountHandler) Contract(w http.ResponseWriter, r *http.Request) {
	deviceID, ok := requireDeviceID(w, r, h.logger)
	if !ok {
		return
	}

	contract, err := h.directory.Contract(r.Context(), deviceID)
	if err != nil {
		sendServiceError(w, r, h.logger, err)
		return
	}

	sendJSON(w, r, api.ContractResponse{Contract: toContract(contract)}, http.StatusOK)
}
