// Package http exposes sift over HTTP and provides a plain HTTP fetcher.
// The server wraps a chi router with CORS, request logging and Prometheus
// metrics. Failures are reported as {"success": false, "error": "..."}.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/fwojciec/sift"
)

// codes maps sift error codes to HTTP status codes.
var codes = map[string]int{
	sift.EINVALID:      http.StatusBadRequest,
	sift.EUNAUTHORIZED: http.StatusUnauthorized,
	sift.ENOTFOUND:     http.StatusNotFound,
	sift.ECONFIG:       http.StatusInternalServerError,
	sift.EPROVIDER:     http.StatusInternalServerError,
	sift.EINTERNAL:     http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for a sift error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Error writes err as a JSON failure. Internal errors are logged since their
// detail is hidden from the client.
func Error(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	code, message := sift.ErrorCode(err), sift.ErrorMessage(err)

	if code == sift.EINTERNAL && logger != nil {
		logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}

	writeJSON(w, ErrorStatusCode(code), errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return sift.Errorf(sift.EINVALID, "Invalid request body")
	}
	return nil
}
