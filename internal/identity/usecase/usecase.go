package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/aryasaputra/gokey/internal/identity/entity"
	"github.com/aryasaputra/gokey/internal/pkg/clock"
	"github.com/aryasaputra/gokey/internal/pkg/config"
	"github.com/aryasaputra/gokey/internal/pkg/goerror"
	"github.com/aryasaputra/gokey/internal/pkg/goroutine"
	"github.com/aryasaputra/gokey/internal/pkg/hash"
	"github.com/aryasaputra/gokey/internal/pkg/idempotency"
	"github.com/aryasaputra/gokey/internal/pkg/instrument"
	"github.com/aryasaputra/gokey/internal/pkg/jwt"
	"github.com/aryasaputra/gokey/internal/pkg/otp"
	"github.com/aryasaputra/gokey/internal/pkg/uid"
	"github.com/aryasaputra/gokey/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type UserRegisteredEvent struct {
	UserID       int64
	Email        string
	MobileNumber string
	FullName     string
}

type UserVerifiedEvent struct {
	UserID int64
	Email  string
}

type repoMessaging interface {
	PublishUserRegistered(ctx context.Context, msg UserRegisteredEvent) error
	PublishUserVerified(ctx context.Context, msg UserVerifiedEvent) error
}

type repoNotify interface {
	SendOTP(ctx context.Context, identifier, code string, purpose entity.OTPPurpose) error
}

type repoDB interface {
	GetUserLoginInfo(ctx context.Context, email string) (*entity.UserLoginInfo, error)
	GetUserByID(ctx context.Context, id int64) (*entity.User, error)
	GetUserByIdentifier(ctx context.Context, identifier string) (*entity.User, error)
	GetActiveOTP(ctx context.Context, identifier string, purpose entity.OTPPurpose) (*entity.OTP, error)

	NewRegistration(ctx context.Context, user entity.NewUser, hash string) error
	UpsertOTP(ctx context.Context, in entity.NewOTP) error

	UpdateUserStatus(ctx context.Context, id int64, oldStatus, newStatus entity.UserStatus) error
	IncrementOTPAttempts(ctx context.Context, id int64) (int32, error)
	ConsumeOTP(ctx context.Context, id int64) error
	InvalidateOTP(ctx context.Context, id int64) error
	PurgeOTPs(ctx context.Context, olderThan time.Time) (int64, error)
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	repoNotify    repoNotify
	idemp         idempotency.Idempotency
	validator     validator.Validator
	cfg           config.Config
	hmac          hash.Hash
	bcrypt        hash.Hash
	uid           uid.NumberID
	codegen       otp.Generator
	clock         clock.Clocker
	jwt           jwt.JWT
	ins           instrument.Instrumentation
	goroutine     *goroutine.Manager
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	RepoNotify    repoNotify
	Idempotency   idempotency.Idempotency
	Validator     validator.Validator
	Config        config.Config
	HMAC          hash.Hash
	Bcrypt        hash.Hash
	UID           uid.NumberID
	CodeGen       otp.Generator
	Clock         clock.Clocker
	JWT           jwt.JWT
	Instrument    instrument.Instrumentation
	Goroutine     *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		repoNotify:    dep.RepoNotify,
		idemp:         dep.Idempotency,
		validator:     dep.Validator,
		cfg:           dep.Config,
		hmac:          dep.HMAC,
		bcrypt:        dep.Bcrypt,
		uid:           dep.UID,
		codegen:       dep.CodeGen,
		clock:         dep.Clock,
		jwt:           dep.JWT,
		ins:           dep.Instrument,
		goroutine:     dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("identity.usecase").Start(ctx, name)
}

func (s *Usecase) ensureUserStatusAllowed(ctx context.Context, userID int64, status entity.UserStatus) error {
	switch status.Ensure() {
	case entity.UserStatusUnverified:
		slog.WarnContext(ctx, "user account is unverified", "user_id", userID)
		return goerror.NewBusiness("account not verified", goerror.CodeForbidden)

	case entity.UserStatusBanned:
		slog.WarnContext(ctx, "user account is banned", "user_id", userID)
		return goerror.NewBusiness("account is banned", goerror.CodeForbidden)

	case entity.UserStatusInactive:
		slog.WarnContext(ctx, "user account is deactivated", "user_id", userID)
		return goerror.NewBusiness("account is deactivated", goerror.CodeForbidden)

	case entity.UserStatusActive:
		return nil

	default:
		slog.WarnContext(ctx, "user account status is unrecognized", "user_id", userID)
		return goerror.NewBusiness("account status is unrecognized", goerror.CodeForbidden)
	}
}
