package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("username or email already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// User is the CRM account owner. Passwords are stored as-is and the
// session token is an unsigned token_<id>_<timestamp> string. That is
// the contract the existing frontend depends on.
type User struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Password      string `json:"-"`
	EmailVerified bool   `json:"email_verified"`

	// Per-account SMTP settings used for outgoing invites
	SMTPEmail    string `json:"smtp_email,omitempty"`
	SMTPPassword string `json:"-"`
	SMTPHost     string `json:"smtp_host,omitempty"`
	SMTPPort     int    `json:"smtp_port,omitempty"`
	SMTPSecure   bool   `json:"smtp_secure"`

	// Google Calendar connection
	GoogleAccessToken  string `json:"-"`
	GoogleRefreshToken string `json:"-"`

	VerificationToken string    `json:"-"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func NewUser(username, name, email, password string) *User {
	return &User{
		ID:                uuid.New().String(),
		Username:          username,
		Name:              name,
		Email:             email,
		Password:          password,
		VerificationToken: uuid.New().String(),
		SMTPHost:          "smtp.gmail.com",
		SMTPPort:          587,
		SMTPSecure:        true,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}
}

// HasSMTPSettings reports whether the account can send its own mail.
func (u *User) HasSMTPSettings() bool {
	return u.SMTPEmail != "" && u.SMTPPassword != ""
}

type UserRepositoryInterface interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByUsernameOrEmail(ctx context.Context, login string) (*User, error)
	UpdateProfile(ctx context.Context, id, name, email string) error
	UpdatePassword(ctx context.Context, id, password string) error
	UpdateSMTPSettings(ctx context.Context, user *User) error
	UpdateGoogleTokens(ctx context.Context, id, accessToken, refreshToken string) error
	VerifyEmail(ctx context.Context, token string) (*User, error)
}
