package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/goliatone/go-sitecms/internal/auth"
	"github.com/goliatone/go-sitecms/internal/checkout"
	"github.com/goliatone/go-sitecms/internal/metagen"
	"github.com/goliatone/go-sitecms/internal/settings"
	"github.com/goliatone/go-sitecms/internal/transfer"
)

// maxBodyBytes bounds request bodies; snapshots are the largest payloads.
const maxBodyBytes = 10 << 20

var errBodyRequired = errors.New("http: request body is required")

type errorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Issues  map[string]string `json:"issues,omitempty"`
}

type badRequestError struct{ err error }

func (e badRequestError) Error() string { return e.err.Error() }

func (e badRequestError) Unwrap() error { return e.err }

func joinPath(base, suffix string) string {
	trimmedBase := strings.TrimSpace(base)
	trimmedSuffix := strings.TrimSpace(suffix)
	if trimmedBase == "" {
		if trimmedSuffix == "" {
			return "/"
		}
		return "/" + strings.Trim(trimmedSuffix, "/")
	}
	baseClean := "/" + strings.Trim(trimmedBase, "/")
	if trimmedSuffix == "" {
		return baseClean
	}
	return baseClean + "/" + strings.Trim(trimmedSuffix, "/")
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	if r == nil || r.Body == nil {
		return nil, badRequestError{errBodyRequired}
	}
	defer r.Body.Close()
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, badRequestError{err}
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, badRequestError{errBodyRequired}
	}
	return raw, nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, target any) error {
	raw, err := readBody(w, r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return badRequestError{err}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

// writeErrorMessage keeps the mapped status but replaces the message with a
// user facing one.
func writeErrorMessage(w http.ResponseWriter, err error, message string) {
	status, payload := mapError(err)
	if message != "" {
		payload.Message = message
	}
	writeJSON(w, status, payload)
}

func writeAuthError(w http.ResponseWriter, _ *http.Request, err error) {
	code := "unauthorized"
	if auth.StatusFor(err) == http.StatusForbidden {
		code = "forbidden"
	}
	writeJSON(w, auth.StatusFor(err), errorResponse{Error: code, Message: err.Error()})
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	var validationErr *settings.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusUnprocessableEntity, errorResponse{
			Error:   "validation_failed",
			Message: err.Error(),
			Issues:  validationErr.Issues,
		}
	}

	var importErr *transfer.ImportError
	if errors.As(err, &importErr) && importErr.Stage == transfer.StageValidate {
		return http.StatusUnprocessableEntity, errorResponse{Error: "validation_failed", Message: err.Error()}
	}

	var notFound *settings.NotFoundError
	if errors.As(err, &notFound) || errors.Is(err, settings.ErrUnknownModule) {
		return http.StatusNotFound, errorResponse{Error: "not_found", Message: err.Error()}
	}

	if errors.Is(err, auth.ErrMissingToken) || errors.Is(err, auth.ErrInvalidToken) {
		return http.StatusUnauthorized, errorResponse{Error: "unauthorized", Message: err.Error()}
	}
	if errors.Is(err, auth.ErrForbidden) {
		return http.StatusForbidden, errorResponse{Error: "forbidden", Message: err.Error()}
	}

	var badRequest badRequestError
	var parseErr *transfer.ParseError
	var configErr *checkout.ConfigurationError
	var verifyErr *checkout.VerificationError
	if errors.As(err, &badRequest) ||
		errors.As(err, &parseErr) ||
		errors.As(err, &configErr) ||
		errors.As(err, &verifyErr) ||
		errors.Is(err, settings.ErrInvalidPayload) ||
		errors.Is(err, settings.ErrKeyRequired) ||
		errors.Is(err, settings.ErrRecordIDRequired) ||
		errors.Is(err, checkout.ErrInvalidAmount) {
		return http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()}
	}

	var gatewayErr *checkout.GatewayError
	if errors.As(err, &gatewayErr) || errors.Is(err, metagen.ErrEmptyResult) {
		return http.StatusBadGateway, errorResponse{Error: "upstream_failed", Message: err.Error()}
	}

	var storeErr *settings.StoreUnavailableError
	if errors.As(err, &storeErr) {
		return http.StatusInternalServerError, errorResponse{Error: "store_unavailable", Message: err.Error()}
	}

	return http.StatusInternalServerError, errorResponse{Error: "internal_error", Message: err.Error()}
}
