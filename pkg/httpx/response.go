package httpx

import (
	"encoding/json"
	"net/http"
)

// MsgResponse is the error/acknowledgement envelope every endpoint uses:
// a single human-readable msg field.
type MsgResponse struct {
	Msg string `json:"msg"`
}

// WriteJSON writes a JSON response with the given status code. It sets
// Content-Type and no-store cache headers; most of what this API returns is
// per-user data or tokens.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteMsg writes the standard {"msg": ...} envelope.
func WriteMsg(w http.ResponseWriter, code int, msg string) {
	WriteJSON(w, code, MsgResponse{Msg: msg})
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
