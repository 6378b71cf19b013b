package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/xavierca1/ansluta-crm/internal/entity"
	"github.com/xavierca1/ansluta-crm/internal/infra/integration/google"
)

// GoogleHandler connects an account to Google Calendar: hands out the
// consent URL and stores the tokens once the user comes back with a code.
type GoogleHandler struct {
	Users  entity.UserRepositoryInterface
	Client *google.Client
}

func NewGoogleHandler(users entity.UserRepositoryInterface, client *google.Client) *GoogleHandler {
	return &GoogleHandler{Users: users, Client: client}
}

func (h *GoogleHandler) HandleAuthURL(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"auth_url": h.Client.AuthURL()})
}

func (h *GoogleHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromRequest(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	user, err := h.Users.FindByID(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Code == "" {
		writeError(w, http.StatusBadRequest, "Authorization code is required")
		return
	}

	tokens, err := h.Client.ExchangeCode(r.Context(), req.Code)
	if err != nil {
		log.Printf("❌ [GOOGLE] Token exchange failed for user %s: %v", user.ID, err)
		writeError(w, http.StatusBadGateway, "Failed to connect Google account")
		return
	}

	// Google only returns a refresh token on the first consent. Keep the
	// stored one when the response omits it.
	refreshToken := tokens.RefreshToken
	if refreshToken == "" {
		refreshToken = user.GoogleRefreshToken
	}

	if err := h.Users.UpdateGoogleTokens(r.Context(), user.ID, tokens.AccessToken, refreshToken); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save Google connection")
		return
	}

	log.Printf("✅ [GOOGLE] Calendar connected for user %s", user.ID)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "Google Calendar connected successfully",
		"connected": true,
	})
}

// HandleStatus reports whether the account has a Google connection.
func (h *GoogleHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromRequest(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	user, err := h.Users.FindByID(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{
		"connected": user.GoogleAccessToken != "",
	})
}
