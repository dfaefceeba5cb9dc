package api

import (
	"encoding/json"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Failures never carry an error body of their own shape: every operation
// answers with its usual response struct, success=false and the message set,
// under a generic client-error status. The failure kind is not distinguished
// at the transport level.
const failureStatus = http.StatusBadRequest
