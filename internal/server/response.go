package server

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/dhananjayyy09/Deadlock-Prevention/pkg/errors"
	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/scenario"
	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/snapshot"
)

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorResponse is the standard error envelope.
type errorResponse struct {
	Error string         `json:"error"`
	Code  apperrors.Code `json:"code,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code apperrors.Code, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, Code: code})
}

// writeErr maps err onto the envelope, classifying it by its error code.
func writeErr(w http.ResponseWriter, err error) {
	code := classify(err)
	writeError(w, statusFor(code), code, apperrors.UserMessage(err))
}

// classify resolves an error code for err. Malformed composite keys and
// unknown scenario names carry no code of their own and are mapped here;
// everything else without a code is internal.
func classify(err error) apperrors.Code {
	var keyErr *snapshot.MalformedKeyError
	if errors.As(err, &keyErr) {
		return apperrors.ErrCodeInvalidKey
	}
	if errors.Is(err, scenario.ErrUnknownScenario) {
		return apperrors.ErrCodeScenarioNotFound
	}
	var storeErr *apperrors.StoreUnavailableError
	if errors.As(err, &storeErr) {
		return storeErr.Code()
	}
	if code := apperrors.GetCode(err); code != "" {
		return code
	}
	return apperrors.ErrCodeInternal
}

// statusFor maps error codes onto HTTP status codes: validation failures are
// 400, lookups that found nothing are 404, everything else is on the server.
func statusFor(code apperrors.Code) int {
	switch code {
	case apperrors.ErrCodeInvalidInput,
		apperrors.ErrCodeInvalidSnapshot,
		apperrors.ErrCodeInvalidKey,
		apperrors.ErrCodeInvalidGraph,
		apperrors.ErrCodeInvalidFormat,
		apperrors.ErrCodeInvalidConfig,
		apperrors.ErrCodeInvalidName:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound,
		apperrors.ErrCodeScenarioNotFound,
		apperrors.ErrCodeSnapshotNotFound,
		apperrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
