package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aryasaputra/gokey/internal/identity/entity"
	"github.com/aryasaputra/gokey/internal/pkg/goerror"
	"github.com/aryasaputra/gokey/internal/pkg/jwt"
)

type ProfileOutput struct {
	ID           int64
	Email        string
	MobileNumber string
	FullName     string
	Status       entity.UserStatus
	CreatedAt    time.Time
}

// Profile returns the account behind the authenticated token.
func (s *Usecase) Profile(ctx context.Context) (*ProfileOutput, error) {
	ctx, span := s.startSpan(ctx, "Profile")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	user, err := s.repoDB.GetUserByID(ctx, clm.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user behind token no longer exists", "user_id", clm.UserID)
		return nil, goerror.NewBusiness("account not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ProfileOutput{
		ID:           user.ID,
		Email:        user.Email,
		MobileNumber: user.MobileNumber,
		FullName:     user.FullName,
		Status:       user.Status,
		CreatedAt:    user.CreatedAt,
	}, nil
}
