package adaptor

import (
	"errors"
	"net/http"
	"net/url"

	"fleet-admin/internal/fleetapi"
	"fleet-admin/internal/seatlayout"
	"fleet-admin/internal/usecase"
	"fleet-admin/pkg/utils"

	"go.uber.org/zap"
)

// writeServiceError maps a service error to a status code and writes the
// envelope. Client mistakes are logged at Warn, everything else at Error.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var dup *seatlayout.DuplicateLabelError
	var apiErr *fleetapi.APIError
	var urlErr *url.Error

	switch {
	case errors.As(err, &dup):
		log.Warn(operation+" failed - duplicate label", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), map[string]any{
			"label":     dup.Label,
			"positions": dup.Positions,
		})

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrValidation), seatlayout.IsValidation(err):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, seatlayout.ErrConfirmationRequired):
		log.Info(operation+" needs confirmation", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), map[string]bool{"confirm_required": true})

	case errors.Is(err, usecase.ErrConflict):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrInvalidCredentials):
		log.Warn(operation+" failed - unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, err.Error())

	case errors.Is(err, usecase.ErrAccountInactive):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case errors.As(err, &apiErr):
		writeUpstreamError(w, log, apiErr, operation)

	case errors.As(err, &urlErr):
		log.Error(operation+" failed - fleet API unreachable", zap.Error(err))
		utils.ResponseBadGateway(w, "Fleet API unreachable")

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// writeUpstreamError passes client errors from the remote fleet API through
// and reports everything else as a bad gateway.
func writeUpstreamError(w http.ResponseWriter, log *zap.Logger, apiErr *fleetapi.APIError, operation string) {
	log.Warn(operation+" failed upstream",
		zap.Int("upstream_status", apiErr.StatusCode),
		zap.String("upstream_message", apiErr.Message))

	switch apiErr.StatusCode {
	case http.StatusNotFound:
		utils.ResponseNotFound(w, apiErr.Message)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		utils.ResponseBadRequest(w, apiErr.Message, nil)
	case http.StatusConflict:
		utils.ResponseConflict(w, apiErr.Message, nil)
	default:
		utils.ResponseBadGateway(w, apiErr.Message)
	}
}
