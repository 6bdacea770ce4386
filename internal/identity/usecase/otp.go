package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aryasaputra/gokey/internal/identity/entity"
	"github.com/aryasaputra/gokey/internal/pkg/goerror"
	"github.com/aryasaputra/gokey/internal/pkg/idempotency"
)

// issueOTP generates, stores, and delivers a fresh code for the identifier.
// Storing happens before delivery; if delivery fails the stored row is retired
// so an undeliverable code can never be redeemed.
func (s *Usecase) issueOTP(ctx context.Context, identifier string, purpose entity.OTPPurpose) error {
	code, err := s.codegen.Generate(s.cfg.GetInt("modules.identity.otp_length"))
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate code", "error", err)
		return goerror.NewServer(err)
	}

	codeHash, err := s.hmac.Hash(code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash code", "error", err)
		return goerror.NewServer(err)
	}

	newOTP := entity.NewOTP{
		ID:         s.uid.Generate(),
		Identifier: identifier,
		Purpose:    purpose,
		CodeHash:   string(codeHash),
		ExpiresAt:  s.clock.Now().Add(s.cfg.GetMinute("modules.identity.otp_ttl_minutes")),
	}

	if err := s.repoDB.UpsertOTP(ctx, newOTP); err != nil {
		slog.ErrorContext(ctx, "failed to repo upsert code", "identifier", identifier, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoNotify.SendOTP(ctx, identifier, code, purpose); err != nil {
		slog.ErrorContext(ctx, "failed to deliver code", "identifier", identifier, "error", err)

		if invErr := s.repoDB.InvalidateOTP(ctx, newOTP.ID); invErr != nil {
			slog.ErrorContext(ctx, "failed to invalidate undelivered code",
				"otp_id", newOTP.ID, "error", invErr)
		}

		return goerror.NewUnavailable(err, "could not deliver the code, try again later")
	}

	return nil
}

// issueOTPOnce wraps issueOTP with the redis idempotency guard, keyed on
// identifier and purpose. Rapid repeats within the guard window are rejected
// instead of sending another message.
func (s *Usecase) issueOTPOnce(ctx context.Context, identifier string, purpose entity.OTPPurpose) error {
	key := fmt.Sprintf("otp:%d:%s", purpose, identifier)

	err := s.idemp.Exec(ctx, key, func(ctx context.Context) error {
		return s.issueOTP(ctx, identifier, purpose)
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, idempotency.ErrAlreadyInProgress),
		errors.Is(err, idempotency.ErrAlreadyCompleted),
		errors.Is(err, idempotency.ErrAlreadyFailed):
		slog.WarnContext(ctx, "code issuance throttled", "identifier", identifier)
		return goerror.NewBusiness("a code was sent recently, wait before retrying", goerror.CodeTooManyRequest)
	default:
		return err
	}
}

// verifyOTP applies the verification policy for the active code of the
// identifier and purpose. Checks run in a fixed order: existence, expiry,
// lockout, then comparison. The lockout check precedes comparison so a locked
// code rejects even the correct value. On match the code is consumed, so a
// replay finds no active code.
func (s *Usecase) verifyOTP(ctx context.Context, identifier string, purpose entity.OTPPurpose, code string) error {
	active, err := s.repoDB.GetActiveOTP(ctx, identifier, purpose)
	if errors.Is(err, goerror.ErrNotFound) {
		return entity.ErrOTPNotFound
	}
	if err != nil {
		return err
	}

	if s.clock.Now().After(active.ExpiresAt) {
		return entity.ErrOTPExpired
	}

	maxAttempts := s.cfg.GetInt32("modules.identity.otp_max_attempts")
	if active.Attempts >= maxAttempts {
		return entity.ErrOTPLocked
	}

	if !s.hmac.Verify(active.CodeHash, code) {
		attempts, err := s.repoDB.IncrementOTPAttempts(ctx, active.ID)
		if err != nil {
			return err
		}

		if attempts >= maxAttempts {
			return entity.ErrOTPLocked
		}

		return entity.ErrOTPMismatch
	}

	return s.repoDB.ConsumeOTP(ctx, active.ID)
}

// otpError translates a verifyOTP outcome into the user-facing error. Each
// outcome keeps its own status so clients can tell "request a new code" from
// "try again" from "stop trying".
func (s *Usecase) otpError(ctx context.Context, identifier string, err error) error {
	switch {
	case errors.Is(err, entity.ErrOTPNotFound):
		slog.WarnContext(ctx, "no active code", "identifier", identifier)
		return goerror.NewBusiness("no active code, request a new one", goerror.CodeNotFound)

	case errors.Is(err, entity.ErrOTPExpired):
		slog.WarnContext(ctx, "code expired", "identifier", identifier)
		return goerror.NewBusiness("code has expired, request a new one", goerror.CodeUnauthorized)

	case errors.Is(err, entity.ErrOTPLocked):
		slog.WarnContext(ctx, "code locked out", "identifier", identifier)
		return goerror.NewBusiness("too many failed attempts, request a new code", goerror.CodeTooManyRequest)

	case errors.Is(err, entity.ErrOTPMismatch):
		slog.WarnContext(ctx, "code mismatch", "identifier", identifier)
		return goerror.NewBusiness("incorrect code", goerror.CodeUnauthorized)

	default:
		slog.ErrorContext(ctx, "failed to verify code", "identifier", identifier, "error", err)
		return goerror.NewServer(err)
	}
}
