package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/aryasaputra/gokey/internal/identity/entity"
	"github.com/aryasaputra/gokey/internal/pkg/goerror"
)

type RegisterInput struct {
	Email        string `validate:"required,email"`
	MobileNumber string `validate:"required,mobile"`
	Password     string `validate:"required,password"`
	FullName     string `validate:"required,min=5,max=100,alphaspace"`
}

func (s *Usecase) Register(ctx context.Context, in RegisterInput) error {
	ctx, span := s.startSpan(ctx, "Register")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.MobileNumber = strings.TrimSpace(in.MobileNumber)
	in.FullName = strings.TrimSpace(in.FullName)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	for _, identifier := range []string{in.Email, in.MobileNumber} {
		user, err := s.repoDB.GetUserByIdentifier(ctx, identifier)
		if err == nil {
			switch user.Status {
			case entity.UserStatusActive:
				return goerror.NewBusiness("account already registered", goerror.CodeConflict)
			case entity.UserStatusUnverified:
				return goerror.NewBusiness("account not verified", goerror.CodeConflict)
			case entity.UserStatusInactive:
				return goerror.NewBusiness("account deactivated", goerror.CodeConflict)
			default:
				return goerror.NewBusiness("account not allowed", goerror.CodeForbidden)
			}
		}
		if !errors.Is(err, goerror.ErrNotFound) {
			slog.ErrorContext(ctx, "failed to repo get user", "identifier", identifier, "error", err)
			return goerror.NewServer(err)
		}
	}

	hashedPassword, err := s.bcrypt.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return goerror.NewServer(err)
	}

	newUser := entity.NewUser{
		ID:           s.uid.Generate(),
		Email:        in.Email,
		MobileNumber: in.MobileNumber,
		FullName:     in.FullName,
		Status:       entity.UserStatusUnverified,
	}

	if err := s.repoDB.NewRegistration(ctx, newUser, string(hashedPassword)); err != nil {
		slog.ErrorContext(ctx, "failed to repo user registration", "email", newUser.Email, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishUserRegistered(ctx, UserRegisteredEvent{
		UserID:       newUser.ID,
		Email:        newUser.Email,
		MobileNumber: newUser.MobileNumber,
		FullName:     newUser.FullName,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish user registered", "user_id", newUser.ID, "error", err)
	}

	return s.issueOTP(ctx, in.MobileNumber, entity.OTPPurposeRegistration)
}
