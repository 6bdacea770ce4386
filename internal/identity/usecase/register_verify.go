package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/aryasaputra/gokey/internal/identity/entity"
	"github.com/aryasaputra/gokey/internal/pkg/goerror"
)

type RegisterVerifyInput struct {
	Identifier string `validate:"required"`
	Code       string `validate:"required,numeric"`
}

func (s *Usecase) RegisterVerify(ctx context.Context, in RegisterVerifyInput) error {
	ctx, span := s.startSpan(ctx, "RegisterVerify")
	defer span.End()

	in.Identifier = strings.TrimSpace(strings.ToLower(in.Identifier))

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	user, err := s.repoDB.GetUserByIdentifier(ctx, in.Identifier)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "identifier", in.Identifier)
		return goerror.NewBusiness("no active code, request a new one", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user", "identifier", in.Identifier, "error", err)
		return goerror.NewServer(err)
	}

	// A second verify after success is a no-op.
	if user.Status == entity.UserStatusActive {
		return nil
	}

	if user.Status != entity.UserStatusUnverified {
		return s.ensureUserStatusAllowed(ctx, user.ID, user.Status)
	}

	if err := s.verifyOTP(ctx, user.MobileNumber, entity.OTPPurposeRegistration, in.Code); err != nil {
		return s.otpError(ctx, in.Identifier, err)
	}

	if err := s.repoDB.UpdateUserStatus(ctx, user.ID,
		entity.UserStatusUnverified, entity.UserStatusActive); err != nil {
		slog.ErrorContext(ctx, "failed to repo activate user", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishUserVerified(ctx, UserVerifiedEvent{
		UserID: user.ID,
		Email:  user.Email,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish user verified", "user_id", user.ID, "error", err)
	}

	return nil
}
