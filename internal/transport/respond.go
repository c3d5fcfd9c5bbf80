package transport

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the JSON body of every failed request.
type ErrorBody struct {
	Error string `json:"error"`
}

// MessageDatabaseError is returned for every store failure, whatever the cause.
const MessageDatabaseError = "Database error"

// writeServiceError logs the cause and writes the uniform store failure
// response. The item service exposes a single error kind, so every error
// maps to 500.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	s.logger.Error("database error",
		"op", op,
		"request_id", RequestIDFromContext(r.Context()),
		"error", err,
	)
	writeError(w, http.StatusInternalServerError, MessageDatabaseError)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorBody{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
