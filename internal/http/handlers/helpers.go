package handlers

import (
	"encoding/json"
	"net/http"
)

// apiResponse is the envelope every /api endpoint answers with. Logical
// failures still travel as HTTP 200; callers branch on the success field.
type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeData(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: data})
}

func writeMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Message: message})
}

func writeFailure(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusOK, apiResponse{Success: false, Error: err.Error()})
}
