package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/aryasaputra/gokey/internal/identity/entity"
	"github.com/aryasaputra/gokey/internal/pkg/goerror"
)

type LoginOTPInput struct {
	Identifier string `validate:"required"`
	Code       string `validate:"required,numeric"`
}

func (s *Usecase) LoginOTP(ctx context.Context, in LoginOTPInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "LoginOTP")
	defer span.End()

	in.Identifier = strings.TrimSpace(strings.ToLower(in.Identifier))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	user, err := s.repoDB.GetUserByIdentifier(ctx, in.Identifier)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "identifier", in.Identifier)
		return nil, goerror.NewBusiness("no active code, request a new one", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user", "identifier", in.Identifier, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.ensureUserStatusAllowed(ctx, user.ID, user.Status); err != nil {
		return nil, err
	}

	if err := s.verifyOTP(ctx, in.Identifier, entity.OTPPurposeLogin, in.Code); err != nil {
		return nil, s.otpError(ctx, in.Identifier, err)
	}

	token, err := s.jwt.Generate(user.ID, user.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access jwt token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &LoginOutput{AccessToken: token}, nil
}
