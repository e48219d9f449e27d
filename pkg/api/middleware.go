package api

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
)

// Content types the document endpoints negotiate between. The binary wire
// form is opt-in per request; everything else gets the typed JSON view.
const (
	wireContentType = "application/x-yad"
	jsonContentType = "application/json"
)

// requireAPIKey rejects any request whose X-API-Key header does not match
// the configured key. The comparison is constant time so response latency
// does not reveal how much of a guessed key was correct.
func requireAPIKey(key string) func(http.Handler) http.Handler {
	want := []byte(key)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get("X-API-Key")
			if got == "" {
				respondError(w, http.StatusUnauthorized, "Missing X-API-Key header")
				return
			}
			if subtle.ConstantTimeCompare([]byte(got), want) != 1 {
				respondError(w, http.StatusUnauthorized, "Invalid API key")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// sendsWire reports whether the request body carries the binary wire form.
func sendsWire(r *http.Request) bool {
	return r.Header.Get("Content-Type") == wireContentType
}

// wantsWire reports whether the caller asked for the binary wire form back.
func wantsWire(r *http.Request) bool {
	return r.Header.Get("Accept") == wireContentType
}

// respondOK wraps data in the success envelope.
func respondOK(w http.ResponseWriter, data interface{}) {
	writeEnvelope(w, http.StatusOK, APIResponse{Success: true, Data: data})
}

// respondError wraps a message in the error envelope.
func respondError(w http.ResponseWriter, status int, message string) {
	writeEnvelope(w, status, APIResponse{Success: false, Error: message})
}

func writeEnvelope(w http.ResponseWriter, status int, body APIResponse) {
	w.Header().Set("Content-Type", jsonContentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// respondRaw writes a pre-rendered document body in the negotiated content
// type, bypassing the envelope.
func respondRaw(w http.ResponseWriter, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
