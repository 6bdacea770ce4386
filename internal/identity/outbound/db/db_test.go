package db_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aryasaputra/gokey/internal/identity/entity"
	"github.com/aryasaputra/gokey/internal/identity/outbound/db"
	"github.com/aryasaputra/gokey/internal/pkg/dbmigrate"
	"github.com/aryasaputra/gokey/internal/pkg/goerror"
	"github.com/aryasaputra/gokey/internal/pkg/instrument"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// newTestDB starts a disposable Postgres container, runs migrations, and
// returns a repository bound to it. Skipped when Docker is unavailable.
func newTestDB(t *testing.T) *db.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()

	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("gokey"),
		tcpostgres.WithUsername("gokey"),
		tcpostgres.WithPassword("gokey"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	if err != nil {
		t.Skipf("could not start postgres container (is Docker running?): %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(ctr); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	if err := dbmigrate.Run(ctx, dsn); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("failed to open pool: %v", err)
	}
	t.Cleanup(pool.Close)

	return db.NewDB(pool, instrument.NewNoop())
}

func TestDBUsers(t *testing.T) {
	s := newTestDB(t)
	ctx := context.Background()

	user := entity.NewUser{
		ID:           1001,
		Email:        "arya@example.com",
		MobileNumber: "+628123456789",
		FullName:     "Arya Saputra",
		Status:       entity.UserStatusUnverified,
	}

	t.Run("RegistrationAndLookups", func(t *testing.T) {
		if err := s.NewRegistration(ctx, user, "bcrypt-hash"); err != nil {
			t.Fatalf("unexpected registration error: %v", err)
		}

		byEmail, err := s.GetUserByIdentifier(ctx, "arya@example.com")
		if err != nil {
			t.Fatalf("unexpected lookup error: %v", err)
		}
		byMobile, err := s.GetUserByIdentifier(ctx, "+628123456789")
		if err != nil {
			t.Fatalf("unexpected lookup error: %v", err)
		}
		if byEmail.ID != byMobile.ID || byEmail.ID != 1001 {
			t.Fatalf("expected both identifiers to resolve the same user")
		}

		info, err := s.GetUserLoginInfo(ctx, "arya@example.com")
		if err != nil {
			t.Fatalf("unexpected login info error: %v", err)
		}
		if info.Password != "bcrypt-hash" {
			t.Fatalf("unexpected stored credential: %q", info.Password)
		}
	})

	t.Run("DuplicateEmailConflicts", func(t *testing.T) {
		dup := user
		dup.ID = 1002
		dup.MobileNumber = "+628999999999"

		err := s.NewRegistration(ctx, dup, "bcrypt-hash")
		if !errors.Is(err, goerror.ErrConflict) {
			t.Fatalf("expected conflict, got %v", err)
		}

		// The failed transaction must not leave a credential row behind.
		if _, err := s.GetUserByID(ctx, 1002); !errors.Is(err, goerror.ErrNotFound) {
			t.Fatalf("expected rollback, got %v", err)
		}
	})

	t.Run("StatusTransitionGuard", func(t *testing.T) {
		if err := s.UpdateUserStatus(ctx, 1001, entity.UserStatusUnverified, entity.UserStatusActive); err != nil {
			t.Fatalf("unexpected status update error: %v", err)
		}

		// Repeating the transition from the old status must not match.
		err := s.UpdateUserStatus(ctx, 1001, entity.UserStatusUnverified, entity.UserStatusActive)
		if !errors.Is(err, goerror.ErrNotFound) {
			t.Fatalf("expected not-found for stale transition, got %v", err)
		}
	})
}

func TestDBOTPs(t *testing.T) {
	s := newTestDB(t)
	ctx := context.Background()

	const identifier = "+628123456789"
	expiry := time.Now().Add(5 * time.Minute)

	t.Run("UpsertSupersedesActive", func(t *testing.T) {
		first := entity.NewOTP{
			ID: 1, Identifier: identifier, Purpose: entity.OTPPurposeLogin,
			CodeHash: "hash-1", ExpiresAt: expiry,
		}
		second := entity.NewOTP{
			ID: 2, Identifier: identifier, Purpose: entity.OTPPurposeLogin,
			CodeHash: "hash-2", ExpiresAt: expiry,
		}

		if err := s.UpsertOTP(ctx, first); err != nil {
			t.Fatalf("unexpected upsert error: %v", err)
		}
		if err := s.UpsertOTP(ctx, second); err != nil {
			t.Fatalf("unexpected second upsert error: %v", err)
		}

		active, err := s.GetActiveOTP(ctx, identifier, entity.OTPPurposeLogin)
		if err != nil {
			t.Fatalf("unexpected get error: %v", err)
		}
		if active.ID != 2 || active.CodeHash != "hash-2" {
			t.Fatalf("expected the fresh row to be active, got %+v", active)
		}
	})

	t.Run("PurposesAreIsolated", func(t *testing.T) {
		reg := entity.NewOTP{
			ID: 3, Identifier: identifier, Purpose: entity.OTPPurposeRegistration,
			CodeHash: "hash-reg", ExpiresAt: expiry,
		}
		if err := s.UpsertOTP(ctx, reg); err != nil {
			t.Fatalf("unexpected upsert error: %v", err)
		}

		login, err := s.GetActiveOTP(ctx, identifier, entity.OTPPurposeLogin)
		if err != nil {
			t.Fatalf("unexpected get error: %v", err)
		}
		if login.ID != 2 {
			t.Fatalf("expected login code untouched, got %+v", login)
		}
	})

	t.Run("IncrementReturnsNewCount", func(t *testing.T) {
		n1, err := s.IncrementOTPAttempts(ctx, 2)
		if err != nil {
			t.Fatalf("unexpected increment error: %v", err)
		}
		n2, err := s.IncrementOTPAttempts(ctx, 2)
		if err != nil {
			t.Fatalf("unexpected increment error: %v", err)
		}
		if n1 != 1 || n2 != 2 {
			t.Fatalf("expected 1 then 2, got %d then %d", n1, n2)
		}
	})

	t.Run("ConsumeIsIdempotent", func(t *testing.T) {
		if err := s.ConsumeOTP(ctx, 2); err != nil {
			t.Fatalf("unexpected consume error: %v", err)
		}
		if err := s.ConsumeOTP(ctx, 2); err != nil {
			t.Fatalf("expected repeated consume to be a no-op, got %v", err)
		}

		_, err := s.GetActiveOTP(ctx, identifier, entity.OTPPurposeLogin)
		if !errors.Is(err, goerror.ErrNotFound) {
			t.Fatalf("expected no active login code, got %v", err)
		}
	})

	t.Run("InvalidateRetiresRow", func(t *testing.T) {
		if err := s.InvalidateOTP(ctx, 3); err != nil {
			t.Fatalf("unexpected invalidate error: %v", err)
		}

		_, err := s.GetActiveOTP(ctx, identifier, entity.OTPPurposeRegistration)
		if !errors.Is(err, goerror.ErrNotFound) {
			t.Fatalf("expected no active registration code, got %v", err)
		}
	})

	t.Run("PurgeDeletesRetiredRows", func(t *testing.T) {
		purged, err := s.PurgeOTPs(ctx, time.Now().Add(time.Hour))
		if err != nil {
			t.Fatalf("unexpected purge error: %v", err)
		}
		if purged == 0 {
			t.Fatalf("expected retired rows to be purged")
		}
	})
}
