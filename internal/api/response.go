package api

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope every endpoint returns. Data is present only on
// success.
type Response struct {
	IsSuccess     bool        `json:"is_success"`
	OfficialEmail string      `json:"official_email"`
	Data          interface{} `json:"data,omitempty"`
}

func (s *Server) success(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, Response{IsSuccess: true, OfficialEmail: s.email, Data: data})
}

func (s *Server) failure(w http.ResponseWriter, status int) {
	writeJSON(w, status, Response{IsSuccess: false, OfficialEmail: s.email})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
