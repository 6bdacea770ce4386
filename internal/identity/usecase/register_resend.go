package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/aryasaputra/gokey/internal/identity/entity"
	"github.com/aryasaputra/gokey/internal/pkg/goerror"
)

type RegisterResendInput struct {
	Identifier string `validate:"required"`
}

// RegisterResend issues a fresh registration code, superseding any active one.
// It reports success for unknown identifiers so the endpoint cannot be used to
// probe which accounts exist.
func (s *Usecase) RegisterResend(ctx context.Context, in RegisterResendInput) error {
	ctx, span := s.startSpan(ctx, "RegisterResend")
	defer span.End()

	in.Identifier = strings.TrimSpace(strings.ToLower(in.Identifier))

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	user, err := s.repoDB.GetUserByIdentifier(ctx, in.Identifier)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "resend for unknown identifier", "identifier", in.Identifier)
		return nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user", "identifier", in.Identifier, "error", err)
		return goerror.NewServer(err)
	}

	if user.Status != entity.UserStatusUnverified {
		slog.WarnContext(ctx, "resend for non-pending account",
			"user_id", user.ID, "status", user.Status.String())
		return nil
	}

	return s.issueOTPOnce(ctx, user.MobileNumber, entity.OTPPurposeRegistration)
}
