package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Alijeyrad/interiora_backend/internal/service/admin"
	"github.com/Alijeyrad/interiora_backend/pkg/authorize"
	"github.com/Alijeyrad/interiora_backend/pkg/database"
)

const adminColumns = `id, email, password_hash, role, failed_login_attempts, locked_until, last_login_at, created_at`

// AdminRepo implements admin.UserStore.
type AdminRepo struct {
	db querier
}

func NewAdminRepo(db *sql.DB) *AdminRepo {
	return &AdminRepo{db: db}
}

func (r *AdminRepo) GetAdminByEmail(ctx context.Context, email string) (admin.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+adminColumns+` FROM admin_users WHERE lower(email) = lower($1)`, email)
	u, err := scanAdmin(row)
	if errors.Is(err, sql.ErrNoRows) {
		return admin.User{}, admin.ErrUserNotFound
	}
	if err != nil {
		return admin.User{}, fmt.Errorf("get admin: %w", err)
	}
	return u, nil
}

func (r *AdminRepo) CreateAdmin(ctx context.Context, u admin.User) (admin.User, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO admin_users (id, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING `+adminColumns, u.ID, u.Email, u.PasswordHash, u.Role)

	out, err := scanAdmin(row)
	if database.IsUniqueViolation(err) {
		return admin.User{}, admin.ErrEmailTaken
	}
	if err != nil {
		return admin.User{}, fmt.Errorf("insert admin: %w", err)
	}
	return out, nil
}

// RecordFailedLogin locks the account and resets the counter once the
// threshold is reached, in one statement.
func (r *AdminRepo) RecordFailedLogin(ctx context.Context, id uuid.UUID, maxAttempts int, lockUntil time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE admin_users SET
			failed_login_attempts = CASE WHEN failed_login_attempts + 1 >= $2 THEN 0 ELSE failed_login_attempts + 1 END,
			locked_until          = CASE WHEN failed_login_attempts + 1 >= $2 THEN $3 ELSE locked_until END,
			updated_at            = now()
		WHERE id = $1`, id, maxAttempts, lockUntil)
	if err != nil {
		return fmt.Errorf("record failed login: %w", err)
	}
	return nil
}

func (r *AdminRepo) RecordSuccessfulLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE admin_users
		SET failed_login_attempts = 0, locked_until = NULL, last_login_at = $2, updated_at = now()
		WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("record login: %w", err)
	}
	return nil
}

func (r *AdminRepo) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE admin_users SET password_hash = $2, updated_at = now() WHERE id = $1`, id, hash)
	if err != nil {
		return fmt.Errorf("update password hash: %w", err)
	}
	return nil
}

func scanAdmin(s scanner) (admin.User, error) {
	var (
		u                   admin.User
		role                string
		lockedUntil, lastAt sql.NullTime
	)
	if err := s.Scan(&u.ID, &u.Email, &u.PasswordHash, &role, &u.FailedLoginAttempts, &lockedUntil, &lastAt, &u.CreatedAt); err != nil {
		return admin.User{}, err
	}
	u.Role = authorize.Role(role)
	if lockedUntil.Valid {
		u.LockedUntil = &lockedUntil.Time
	}
	if lastAt.Valid {
		u.LastLoginAt = &lastAt.Time
	}
	return u, nil
}
