package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/luisfsill/Ponto-Digital/internal/domain/auth"
	"github.com/luisfsill/Ponto-Digital/internal/domain/geofence"
	"github.com/luisfsill/Ponto-Digital/internal/domain/record"
	"github.com/luisfsill/Ponto-Digital/internal/domain/user"
	"github.com/luisfsill/Ponto-Digital/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrRefreshTokenCookieNotFound),
		errors.Is(err, auth.ErrRefreshTokenCookieEmpty):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrOAuthStateMismatch),
		errors.Is(err, auth.ErrOAuthStateCookieNotFound):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, auth.ErrNotAdmin):
		Forbidden(w, err.Error())

	// User and device errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrDeviceNotFound):
		NotFound(w, "Device not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrDeviceBoundToOther):
		Conflict(w, "Dispositivo já vinculado a outro usuário")
	case errors.Is(err, user.ErrDeviceNotRecognized):
		Forbidden(w, "Dispositivo não reconhecido")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrAdminEmailRequired):
		ValidationError(w, map[string]string{"email": err.Error()})
	case errors.Is(err, user.ErrNoUpdatableFields),
		errors.Is(err, geofence.ErrNoUpdatableFields):
		BadRequest(w, err.Error(), nil)

	// Geofence errors
	case errors.Is(err, geofence.ErrOutsideAllowedArea):
		Forbidden(w, "Você está fora da área permitida para registro de ponto")
	case errors.Is(err, geofence.ErrOutsideTargetGeofence):
		Forbidden(w, "Você está fora da área do local escaneado")
	case errors.Is(err, geofence.ErrGeofenceNotFound):
		NotFound(w, "Local não encontrado ou inativo")

	// Record errors
	case errors.Is(err, record.ErrRecordNotFound):
		NotFound(w, "Record not found")
	case errors.Is(err, record.ErrNoRecordsSelected),
		errors.Is(err, record.ErrEmptyImport):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, record.ErrInvalidDateRange):
		ValidationError(w, map[string]string{"start_date": err.Error()})

	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
