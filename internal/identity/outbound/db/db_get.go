package db

import (
	"context"

	"github.com/aryasaputra/gokey/internal/identity/entity"
)

func (s *DB) GetUserLoginInfo(ctx context.Context, email string) (_ *entity.UserLoginInfo, err error) {
	ctx, span := s.startSpan(ctx, "GetUserLoginInfo")
	defer func() { s.endSpan(span, err) }()

	query := `
		SELECT u.id, u.email, u.status, c.password
		FROM identity_users u
		JOIN identity_user_credentials c ON c.user_id = u.id
		WHERE u.email = $1`

	var info entity.UserLoginInfo
	err = s.conn.QueryRow(ctx, query, email).
		Scan(&info.ID, &info.Email, &info.Status, &info.Password)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &info, nil
}

func (s *DB) GetUserByID(ctx context.Context, id int64) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByID")
	defer func() { s.endSpan(span, err) }()

	query := `
		SELECT id, email, mobile_number, full_name, status, created_at, updated_at
		FROM identity_users
		WHERE id = $1`

	var user entity.User
	err = s.conn.QueryRow(ctx, query, id).
		Scan(&user.ID, &user.Email, &user.MobileNumber, &user.FullName, &user.Status,
			&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &user, nil
}

// GetUserByIdentifier resolves a user by email or mobile number.
func (s *DB) GetUserByIdentifier(ctx context.Context, identifier string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByIdentifier")
	defer func() { s.endSpan(span, err) }()

	query := `
		SELECT id, email, mobile_number, full_name, status, created_at, updated_at
		FROM identity_users
		WHERE email = $1 OR mobile_number = $1`

	var user entity.User
	err = s.conn.QueryRow(ctx, query, identifier).
		Scan(&user.ID, &user.Email, &user.MobileNumber, &user.FullName, &user.Status,
			&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &user, nil
}

// GetActiveOTP returns the single non-consumed, non-superseded code for the
// identifier and purpose, regardless of expiry. Expiry is judged by the caller
// so that an expired code can still produce a distinct outcome.
func (s *DB) GetActiveOTP(ctx context.Context, identifier string, purpose entity.OTPPurpose) (_ *entity.OTP, err error) {
	ctx, span := s.startSpan(ctx, "GetActiveOTP")
	defer func() { s.endSpan(span, err) }()

	query := `
		SELECT id, identifier, purpose, code_hash, attempts, consumed,
		       consumed_at, superseded_at, created_at, expires_at
		FROM identity_otps
		WHERE identifier = $1 AND purpose = $2 AND NOT consumed AND superseded_at IS NULL
		ORDER BY created_at DESC
		LIMIT 1`

	var otp entity.OTP
	err = s.conn.QueryRow(ctx, query, identifier, purpose).
		Scan(&otp.ID, &otp.Identifier, &otp.Purpose, &otp.CodeHash, &otp.Attempts,
			&otp.Consumed, &otp.ConsumedAt, &otp.SupersededAt, &otp.CreatedAt, &otp.ExpiresAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &otp, nil
}
