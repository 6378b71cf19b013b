package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/lib/pq"

	"github.com/xavierca1/ansluta-crm/internal/entity"
)

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

const userColumns = `
	id, username, name, email, password, email_verified,
	COALESCE(smtp_email, ''), COALESCE(smtp_password, ''), COALESCE(smtp_host, ''),
	COALESCE(smtp_port, 0), COALESCE(smtp_secure, TRUE),
	COALESCE(google_access_token, ''), COALESCE(google_refresh_token, ''),
	COALESCE(verification_token, ''), created_at, updated_at
`

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (
			id, username, name, email, password, email_verified,
			smtp_host, smtp_port, smtp_secure, verification_token, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.DB.ExecContext(ctx, query,
		user.ID, user.Username, user.Name, user.Email, user.Password, user.EmailVerified,
		user.SMTPHost, user.SMTPPort, user.SMTPSecure, user.VerificationToken,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return entity.ErrUserAlreadyExists
		}
		log.Printf("❌ [DB] Failed to create user: %v", err)
		return err
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)

	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrUserNotFound
	}
	return user, err
}

// FindByUsernameOrEmail resolves the signin login field, which accepts
// either value.
func (r *UserRepository) FindByUsernameOrEmail(ctx context.Context, login string) (*entity.User, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1 OR email = $1 LIMIT 1`, login)

	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrUserNotFound
	}
	return user, err
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id, name, email string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET name = $2, email = $3, updated_at = NOW() WHERE id = $1`, id, name, email)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return requireRow(res, entity.ErrUserNotFound)
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, password string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET password = $2, updated_at = NOW() WHERE id = $1`, id, password)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return requireRow(res, entity.ErrUserNotFound)
}

func (r *UserRepository) UpdateSMTPSettings(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET
			smtp_email = $2, smtp_password = $3, smtp_host = $4,
			smtp_port = $5, smtp_secure = $6, updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.DB.ExecContext(ctx, query,
		user.ID, user.SMTPEmail, user.SMTPPassword, user.SMTPHost, user.SMTPPort, user.SMTPSecure)
	if err != nil {
		return fmt.Errorf("failed to update smtp settings: %w", err)
	}
	return requireRow(res, entity.ErrUserNotFound)
}

func (r *UserRepository) UpdateGoogleTokens(ctx context.Context, id, accessToken, refreshToken string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET google_access_token = $2, google_refresh_token = $3, updated_at = NOW() WHERE id = $1`,
		id, accessToken, refreshToken)
	if err != nil {
		return fmt.Errorf("failed to update google tokens: %w", err)
	}
	return requireRow(res, entity.ErrUserNotFound)
}

// VerifyEmail flips the flag for the matching token and returns the
// verified user.
func (r *UserRepository) VerifyEmail(ctx context.Context, token string) (*entity.User, error) {
	query := `
		UPDATE users SET email_verified = TRUE, verification_token = NULL, updated_at = NOW()
		WHERE verification_token = $1
		RETURNING ` + userColumns

	user, err := scanUser(r.DB.QueryRowContext(ctx, query, token))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrUserNotFound
	}
	return user, err
}

func scanUser(row rowScanner) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID, &user.Username, &user.Name, &user.Email, &user.Password, &user.EmailVerified,
		&user.SMTPEmail, &user.SMTPPassword, &user.SMTPHost,
		&user.SMTPPort, &user.SMTPSecure,
		&user.GoogleAccessToken, &user.GoogleRefreshToken,
		&user.VerificationToken, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
