package middleware

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/iudanet/activator/pkg/api"
)

// writeError отправляет JSON ответ с ошибкой
func writeError(w http.ResponseWriter, r *http.Request, statusCode int, status, message string) {
	render.Status(r, statusCode)
	render.JSON(w, r, api.ErrorResponse{
		Status:  status,
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
