package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aryasaputra/gokey/internal/identity/entity"
	"github.com/jackc/pgx/v5"
)

// NewRegistration stores the user row and its credential row atomically.
func (s *DB) NewRegistration(ctx context.Context, user entity.NewUser, hash string) (err error) {
	ctx, span := s.startSpan(ctx, "NewRegistration")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rolback", "error", rErr)
		}
	}()

	createUser := `
		INSERT INTO identity_users (id, email, mobile_number, full_name, status)
		VALUES ($1, $2, $3, $4, $5)`

	if _, err := tx.Exec(ctx, createUser,
		user.ID, user.Email, user.MobileNumber, user.FullName, user.Status,
	); err != nil {
		return s.mapError(err)
	}

	createCredential := `
		INSERT INTO identity_user_credentials (user_id, password)
		VALUES ($1, $2)`

	if _, err := tx.Exec(ctx, createCredential, user.ID, hash); err != nil {
		return s.mapError(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return s.mapError(err)
	}

	return nil
}

// UpsertOTP supersedes any active code for the identifier and purpose, then
// stores the new one. Both happen in one transaction so the partial unique
// index on active codes is never violated.
func (s *DB) UpsertOTP(ctx context.Context, in entity.NewOTP) (err error) {
	ctx, span := s.startSpan(ctx, "UpsertOTP")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rolback", "error", rErr)
		}
	}()

	supersede := `
		UPDATE identity_otps
		SET superseded_at = now()
		WHERE identifier = $1 AND purpose = $2 AND NOT consumed AND superseded_at IS NULL`

	if _, err := tx.Exec(ctx, supersede, in.Identifier, in.Purpose); err != nil {
		return s.mapError(err)
	}

	create := `
		INSERT INTO identity_otps (id, identifier, purpose, code_hash, expires_at)
		VALUES ($1, $2, $3, $4, $5)`

	if _, err := tx.Exec(ctx, create,
		in.ID, in.Identifier, in.Purpose, in.CodeHash, in.ExpiresAt,
	); err != nil {
		return s.mapError(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return s.mapError(err)
	}

	return nil
}
