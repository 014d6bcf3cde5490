package gateway

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the body of every error the gateway itself produces.
type ErrorResponse struct {
	Error string `json:"error"`
}

// JSONError writes a JSON error response with the given status code.
func JSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: msg})
}
