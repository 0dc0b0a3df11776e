package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// ResetTokenRepo stores password-reset tokens. Only SHA-256 hashes
// of tokens are persisted; tokens are single use and expire.
type ResetTokenRepo struct{ db *sql.DB }

func NewResetTokenRepo(db *sql.DB) *ResetTokenRepo { return &ResetTokenRepo{db: db} }

// ErrResetInvalid covers every way a reset token can be unusable:
// unknown, expired, or already consumed. Callers surface one generic
// message for all three so the endpoint leaks nothing.
var ErrResetInvalid = errors.New("invalid reset token")

// Store saves a hashed reset token for a user.
func (r *ResetTokenRepo) Store(ctx context.Context, userID uint64, tokenHash string, expiresAt time.Time) error {
	if r.db == nil {
		return ErrUnavailable
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO password_resets (user_id, token_hash, expires_at) VALUES (?,?,?)`,
		userID, tokenHash, expiresAt.UTC())
	return err
}

// Consume validates a hashed token and marks it used, returning the
// owning user id. The used_at guard in the UPDATE makes consumption
// atomic: a token can only ever be spent once.
func (r *ResetTokenRepo) Consume(ctx context.Context, tokenHash string) (uint64, error) {
	if r.db == nil {
		return 0, ErrUnavailable
	}
	var userID uint64
	var expiresAt time.Time
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, expires_at FROM password_resets
         WHERE token_hash = ? AND used_at IS NULL LIMIT 1`,
		tokenHash).Scan(&userID, &expiresAt)
	if err == sql.ErrNoRows {
		return 0, ErrResetInvalid
	}
	if err != nil {
		return 0, err
	}
	if time.Now().UTC().After(expiresAt) {
		return 0, ErrResetInvalid
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE password_resets SET used_at = UTC_TIMESTAMP()
         WHERE token_hash = ? AND used_at IS NULL`, tokenHash)
	if err != nil {
		return 0, err
	}
	if n, err := res.RowsAffected(); err != nil || n == 0 {
		return 0, ErrResetInvalid
	}
	return userID, nil
}
