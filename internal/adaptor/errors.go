package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"laundry-service/internal/usecase"
	"laundry-service/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps service sentinels to status codes. Unexpected
// errors are reported as 500 with their message, like every other failure.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, detail(err, usecase.ErrValidation, "Validation failed"), nil)

	case errors.Is(err, usecase.ErrUnauthenticated):
		log.Warn(operation+" failed - unauthenticated", zap.Error(err))
		utils.ResponseUnauthorized(w, detail(err, usecase.ErrUnauthenticated, "Not authorized"))

	case errors.Is(err, usecase.ErrNotOwner):
		log.Warn(operation+" failed - not owner", zap.Error(err))
		utils.ResponseUnauthorized(w, "Not authorized")

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, "Access denied")

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, detail(err, usecase.ErrNotFound, "Not found"))

	case errors.Is(err, usecase.ErrConflict):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, detail(err, usecase.ErrConflict, "Conflict"))

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, err.Error())
	}
}

// detail strips the "<sentinel>: " prefix added by fmt.Errorf("%w: ...")
// and capitalises the rest for display.
func detail(err, sentinel error, fallback string) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
	if msg == "" || msg == sentinel.Error() {
		return fallback
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

func decodeFailed(w http.ResponseWriter) {
	utils.ResponseBadRequest(w, "Invalid request body", nil)
}
