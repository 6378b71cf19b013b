package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// userIDFromRequest resolves the acting user from the x-user-id header
// or the unsigned token_<id>_<timestamp> bearer token the frontend
// stores. Returns "" when neither is present; handlers decide whether
// that is a 401. Identity is always resolved here and passed down
// explicitly, never inferred deeper in the stack.
func userIDFromRequest(r *http.Request) string {
	if id := r.Header.Get("x-user-id"); id != "" {
		return id
	}

	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		token := strings.TrimPrefix(auth, "Bearer ")
		parts := strings.Split(token, "_")
		if len(parts) >= 2 && parts[0] == "token" {
			return parts[1]
		}
	}

	return ""
}
