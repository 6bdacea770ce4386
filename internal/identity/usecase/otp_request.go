package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/aryasaputra/gokey/internal/identity/entity"
	"github.com/aryasaputra/gokey/internal/pkg/goerror"
)

type OTPRequestInput struct {
	Identifier string `validate:"required"`
}

// OTPRequest issues a login code for an existing active account. Like
// RegisterResend it reports success for unknown identifiers to avoid account
// enumeration.
func (s *Usecase) OTPRequest(ctx context.Context, in OTPRequestInput) error {
	ctx, span := s.startSpan(ctx, "OTPRequest")
	defer span.End()

	in.Identifier = strings.TrimSpace(strings.ToLower(in.Identifier))

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	user, err := s.repoDB.GetUserByIdentifier(ctx, in.Identifier)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "login code for unknown identifier", "identifier", in.Identifier)
		return nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user", "identifier", in.Identifier, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.ensureUserStatusAllowed(ctx, user.ID, user.Status); err != nil {
		return err
	}

	return s.issueOTPOnce(ctx, in.Identifier, entity.OTPPurposeLogin)
}
