package db

import (
	"context"
	"time"

	"github.com/aryasaputra/gokey/internal/identity/entity"
	"github.com/aryasaputra/gokey/internal/pkg/goerror"
)

func (s *DB) UpdateUserStatus(ctx context.Context, id int64, oldStatus, newStatus entity.UserStatus) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateUserStatus")
	defer func() { s.endSpan(span, err) }()

	query := `
		UPDATE identity_users
		SET status = $1, updated_at = now()
		WHERE id = $2 AND status = $3`

	tag, err := s.conn.Exec(ctx, query, newStatus, id, oldStatus)
	if err != nil {
		return s.mapError(err)
	}

	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

// IncrementOTPAttempts bumps the failed-attempt counter and returns the new
// value. The increment and the read happen in one statement so concurrent
// failures cannot observe the same count.
func (s *DB) IncrementOTPAttempts(ctx context.Context, id int64) (_ int32, err error) {
	ctx, span := s.startSpan(ctx, "IncrementOTPAttempts")
	defer func() { s.endSpan(span, err) }()

	query := `
		UPDATE identity_otps
		SET attempts = attempts + 1
		WHERE id = $1
		RETURNING attempts`

	var attempts int32
	if err = s.conn.QueryRow(ctx, query, id).Scan(&attempts); err != nil {
		return 0, s.mapError(err)
	}

	return attempts, nil
}

// ConsumeOTP marks the code as used. Consuming an already consumed code is a
// no-op.
func (s *DB) ConsumeOTP(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "ConsumeOTP")
	defer func() { s.endSpan(span, err) }()

	query := `
		UPDATE identity_otps
		SET consumed = TRUE, consumed_at = now()
		WHERE id = $1 AND NOT consumed`

	_, err = s.conn.Exec(ctx, query, id)
	return s.mapError(err)
}

// InvalidateOTP retires a code without consuming it, e.g. when delivery of the
// plaintext failed and the stored hash must not stay redeemable.
func (s *DB) InvalidateOTP(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "InvalidateOTP")
	defer func() { s.endSpan(span, err) }()

	query := `
		UPDATE identity_otps
		SET superseded_at = now()
		WHERE id = $1 AND superseded_at IS NULL`

	_, err = s.conn.Exec(ctx, query, id)
	return s.mapError(err)
}

// PurgeOTPs deletes retired code rows created before the horizon. Active rows
// are never touched.
func (s *DB) PurgeOTPs(ctx context.Context, olderThan time.Time) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "PurgeOTPs")
	defer func() { s.endSpan(span, err) }()

	query := `
		DELETE FROM identity_otps
		WHERE created_at < $1
		  AND (consumed OR superseded_at IS NOT NULL OR expires_at < $1)`

	tag, err := s.conn.Exec(ctx, query, olderThan)
	if err != nil {
		return 0, s.mapError(err)
	}

	return tag.RowsAffected(), nil
}
