package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"avon-hello/campaign"
	"avon-hello/logger"
	"avon-hello/pricing"
	"avon-hello/repository"
	"avon-hello/service"
)

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrCustomerNotFound),
		errors.Is(err, repository.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrValidation),
		errors.Is(err, campaign.ErrInvalidCounter),
		errors.Is(err, pricing.ErrMalformedLine),
		errors.Is(err, service.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrBackupNotConfigured):
		return http.StatusServiceUnavailable
	case errors.Is(err, service.ErrBackupUnsupported):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// writeError logs err under op and answers with the mapped status
func writeError(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error("❌ "+op+": request failed", zap.Int("status", status), zap.Error(err))
	} else {
		logger.Warn("⚠️ "+op+": request rejected", zap.Int("status", status), zap.Error(err))
	}
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, op string, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("❌ "+op+": Error encoding response", zap.Error(err))
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, op string, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		logger.Warn("❌ "+op+": Failed to decode request body", zap.Error(err))
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return false
	}
	return true
}

// pathID parses the {id} path segment
func pathID(w http.ResponseWriter, r *http.Request, op string) (int64, bool) {
	idStr := r.PathValue("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		logger.Warn("❌ "+op+": Invalid id", zap.String("id", idStr))
		http.Error(w, "invalid id parameter", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
