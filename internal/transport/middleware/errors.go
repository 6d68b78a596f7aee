package middleware

import (
	"encoding/json"
	"net/http"
)

// Error codes shared with the REST layer's error body.
const (
	codeUnauthorized = "E005"
	codeNotAnAdmin   = "E006"
	codeRateLimited  = "E011"
	codeInternal     = "E999"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorBody{Error: errorDetail{Code: code, Message: message}}) //nolint:errcheck
}
