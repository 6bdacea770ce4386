package entity

import (
	"errors"
	"time"
)

var (
	// ErrOTPNotFound indicates no active code exists for the identifier and purpose.
	ErrOTPNotFound = errors.New("identity: no active code")

	// ErrOTPExpired indicates the active code is past its expiry.
	ErrOTPExpired = errors.New("identity: code expired")

	// ErrOTPLocked indicates the active code has used up its attempt budget.
	ErrOTPLocked = errors.New("identity: code locked out")

	// ErrOTPMismatch indicates the submitted code does not match.
	ErrOTPMismatch = errors.New("identity: code mismatch")
)

// OTP is a stored one-time code. Only the keyed hash of the code is persisted.
type OTP struct {
	ID           int64
	Identifier   string
	Purpose      OTPPurpose
	CodeHash     string
	Attempts     int32
	Consumed     bool
	ConsumedAt   *time.Time
	SupersededAt *time.Time
	CreatedAt    time.Time
	ExpiresAt    time.Time
}

// NewOTP is the payload for storing a freshly issued code.
type NewOTP struct {
	ID         int64
	Identifier string
	Purpose    OTPPurpose
	CodeHash   string
	ExpiresAt  time.Time
}
