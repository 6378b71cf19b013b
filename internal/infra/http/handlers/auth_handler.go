package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/xavierca1/ansluta-crm/internal/entity"
	"github.com/xavierca1/ansluta-crm/internal/usecase"
)

type AuthHandler struct {
	Users    entity.UserRepositoryInterface
	Producer usecase.VerificationPublisher
}

func NewAuthHandler(users entity.UserRepositoryInterface, producer usecase.VerificationPublisher) *AuthHandler {
	return &AuthHandler{Users: users, Producer: producer}
}

type SignupRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SigninRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Username, email and password are required")
		return
	}

	user := entity.NewUser(req.Username, req.Name, req.Email, req.Password)

	if err := h.Users.Create(r.Context(), user); err != nil {
		if errors.Is(err, entity.ErrUserAlreadyExists) {
			writeError(w, http.StatusConflict, "Username or email already taken")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	// Verification email goes out async through the queue.
	payload := usecase.VerificationPayload{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Token:  user.VerificationToken,
	}
	if err := h.Producer.PublishVerification(r.Context(), payload); err != nil {
		log.Printf("⚠️ [AUTH] Account %s created but verification email not queued: %v", user.ID, err)
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Account created. Check your email for the verification link.",
		"user":    user,
	})
}

func (h *AuthHandler) HandleSignin(w http.ResponseWriter, r *http.Request) {
	var req SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := h.Users.FindByUsernameOrEmail(r.Context(), req.Username)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	// Plaintext comparison, the contract the existing frontend uses.
	if user.Password != req.Password {
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	if !user.EmailVerified {
		writeJSON(w, http.StatusForbidden, map[string]interface{}{
			"error":                "Please verify your email address before signing in.",
			"requires_verification": true,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Sign in successful!",
		"token":   fmt.Sprintf("token_%s_%d", user.ID, time.Now().UnixMilli()),
		"user":    user,
	})
}

func (h *AuthHandler) HandleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Token == "" {
		writeError(w, http.StatusBadRequest, "Verification token is required")
		return
	}

	user, err := h.Users.VerifyEmail(r.Context(), req.Token)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid or expired verification token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Email verified successfully!",
		"user":    user,
	})
}
