package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/iudanet/activator/internal/credential"
	"github.com/iudanet/activator/internal/server/handlers"
	"github.com/iudanet/activator/pkg/api"
)

// CredentialVerifier проверяет credential и выпускает продленный
type CredentialVerifier interface {
	Issue(deviceID string) (string, time.Time, error)
	Verify(token string) credential.Result
}

// AuthMiddleware создает middleware для проверки credential устройства
//
// Credential берется из заголовка Authorization (Bearer) или X-Auth-Token.
// Просроченный, но корректно подписанный credential принимается: запрос
// выполняется от имени устройства из credential, а новый credential
// возвращается в заголовке X-New-Auth-Token.
func AuthMiddleware(logger *slog.Logger, verifier CredentialVerifier, recorder handlers.CredentialRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token, ok := extractCredential(r)
			if !ok {
				logger.WarnContext(ctx, "invalid Authorization header format")
				writeError(w, r, http.StatusUnauthorized, api.StatusInvalid, "invalid credential format")
				return
			}
			if token == "" {
				logger.WarnContext(ctx, "missing credential")
				writeError(w, r, http.StatusUnauthorized, api.StatusNoCredential, "no credential, access denied")
				return
			}

			result := verifier.Verify(token)
			recorder.Verification(result.Outcome.String())

			switch result.Outcome {
			case credential.OutcomeValid:
			case credential.OutcomeExpiredButSigned:
				renewed, _, err := verifier.Issue(result.DeviceID)
				if err != nil {
					logger.ErrorContext(ctx, "failed to renew credential", slog.Any("error", err))
					writeError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
					return
				}
				w.Header().Set(api.HeaderNewAuthToken, renewed)
				recorder.Renewal()
				logger.InfoContext(ctx, "credential renewed", slog.String("device_id", result.DeviceID))
			default:
				logger.WarnContext(ctx, "invalid credential", slog.Any("error", result.Err))
				writeError(w, r, http.StatusUnauthorized, api.StatusInvalid, "invalid credential")
				return
			}

			logger.DebugContext(ctx, "device authenticated", slog.String("device_id", result.DeviceID))

			// Передаем запрос дальше с device_id в контексте
			next.ServeHTTP(w, r.WithContext(handlers.WithDeviceID(ctx, result.DeviceID)))
		})
	}
}

// extractCredential возвращает credential из заголовков запроса
// ok = false если Authorization задан в неверном формате
func extractCredential(r *http.Request) (string, bool) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		// Ожидаем формат: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", false
		}
		return strings.TrimSpace(parts[1]), true
	}

	return strings.TrimSpace(r.Header.Get(api.HeaderAuthToken)), true
}
