package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Nkwochamaureen/Skillhub-connect-backend/services"
	"github.com/Nkwochamaureen/Skillhub-connect-backend/utils"
)

// HandleServiceError maps domain errors to HTTP responses. Bodies carry a
// fixed message; the wrapped cause only reaches the log.
func HandleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if err == nil {
		return
	}

	var writeErr error
	switch {
	case services.IsAbsentPrincipal(err):
		writeErr = utils.WriteUnauthorized(w, "")

	case services.IsValidationError(err):
		writeErr = utils.WriteBadRequest(w, "Invalid request", services.GetErrorDetails(err))

	case services.IsProviderError(err):
		logger.Warn("identity provider error", zap.Error(err))
		writeErr = utils.WriteJSON(w, http.StatusBadGateway, utils.MessageResponse{Message: "Identity provider unavailable"})

	case services.IsStoreError(err):
		logger.Error("store error", zap.Error(err))
		writeErr = utils.WriteInternalServerError(w, "")

	case services.IsInternalError(err):
		logger.Error("internal server error", zap.Error(err))
		writeErr = utils.WriteInternalServerError(w, "")

	default:
		logger.Error("unhandled error type",
			zap.Error(err),
			zap.String("error_type", string(services.GetErrorType(err))))
		writeErr = utils.WriteInternalServerError(w, "")
	}

	if writeErr != nil {
		logger.Error("failed to write error response", zap.Error(writeErr))
	}
}
