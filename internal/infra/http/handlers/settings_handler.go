package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/xavierca1/ansluta-crm/internal/entity"
)

// SettingsHandler covers the account screens: profile, password and the
// per-user SMTP account used for outgoing invites.
type SettingsHandler struct {
	Users entity.UserRepositoryInterface
}

func NewSettingsHandler(users entity.UserRepositoryInterface) *SettingsHandler {
	return &SettingsHandler{Users: users}
}

func (h *SettingsHandler) requireUser(w http.ResponseWriter, r *http.Request) *entity.User {
	userID := userIDFromRequest(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return nil
	}

	user, err := h.Users.FindByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return nil
		}
		writeError(w, http.StatusInternalServerError, "Failed to fetch account")
		return nil
	}
	return user
}

func (h *SettingsHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	user := h.requireUser(w, r)
	if user == nil {
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

func (h *SettingsHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := h.requireUser(w, r)
	if user == nil {
		return
	}

	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == "" || req.Email == "" {
		writeError(w, http.StatusBadRequest, "Name and email are required")
		return
	}

	user.Name = req.Name
	user.Email = req.Email
	if err := h.Users.UpdateProfile(r.Context(), user.ID, req.Name, req.Email); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Profile updated successfully",
		"user":    user,
	})
}

func (h *SettingsHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	user := h.requireUser(w, r)
	if user == nil {
		return
	}

	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "Current and new password are required")
		return
	}
	if user.Password != req.CurrentPassword {
		writeError(w, http.StatusUnauthorized, "Current password is incorrect")
		return
	}
	if len(req.NewPassword) < 6 {
		writeError(w, http.StatusBadRequest, "New password must be at least 6 characters")
		return
	}

	if err := h.Users.UpdatePassword(r.Context(), user.ID, req.NewPassword); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to change password")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Password changed successfully"})
}

// HandleGetSMTPSettings never returns the stored password, only whether
// one is set.
func (h *SettingsHandler) HandleGetSMTPSettings(w http.ResponseWriter, r *http.Request) {
	user := h.requireUser(w, r)
	if user == nil {
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"smtp_email":   user.SMTPEmail,
		"smtp_host":    user.SMTPHost,
		"smtp_port":    user.SMTPPort,
		"smtp_secure":  user.SMTPSecure,
		"has_password": user.SMTPPassword != "",
		"configured":   user.HasSMTPSettings(),
	})
}

func (h *SettingsHandler) HandleUpdateSMTPSettings(w http.ResponseWriter, r *http.Request) {
	user := h.requireUser(w, r)
	if user == nil {
		return
	}

	var req struct {
		SMTPEmail    string `json:"smtp_email"`
		SMTPPassword string `json:"smtp_password"`
		SMTPHost     string `json:"smtp_host"`
		SMTPPort     int    `json:"smtp_port"`
		SMTPSecure   *bool  `json:"smtp_secure"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.SMTPEmail == "" || req.SMTPPassword == "" {
		writeError(w, http.StatusBadRequest, "SMTP email and password are required")
		return
	}
	if req.SMTPHost == "" {
		req.SMTPHost = "smtp.gmail.com"
	}
	if req.SMTPPort == 0 {
		req.SMTPPort = 587
	}

	user.SMTPEmail = req.SMTPEmail
	user.SMTPPassword = req.SMTPPassword
	user.SMTPHost = req.SMTPHost
	user.SMTPPort = req.SMTPPort
	if req.SMTPSecure != nil {
		user.SMTPSecure = *req.SMTPSecure
	}

	if err := h.Users.UpdateSMTPSettings(r.Context(), user); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save SMTP settings")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "SMTP settings saved successfully"})
}
