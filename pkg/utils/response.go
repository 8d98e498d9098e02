package utils

import (
	"encoding/json"
	"net/http"

	"crm-backend/internal/apperrors"
)

// JSON writes a JSON response with the given status
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error writes a JSON error body with the given status
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// ErrorFrom maps a taxonomy error to its HTTP status and writes it.
// The message is surfaced verbatim.
func ErrorFrom(w http.ResponseWriter, err error) {
	Error(w, apperrors.HTTPStatus(err), err.Error())
}

// Success writes the standard success envelope for delete operations
func Success(w http.ResponseWriter, message string) {
	JSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": message})
}
