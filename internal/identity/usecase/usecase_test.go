package usecase_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aryasaputra/gokey/internal/identity/entity"
	"github.com/aryasaputra/gokey/internal/identity/usecase"
	"github.com/aryasaputra/gokey/internal/pkg/config"
	"github.com/aryasaputra/gokey/internal/pkg/goerror"
	"github.com/aryasaputra/gokey/internal/pkg/hash"
	"github.com/aryasaputra/gokey/internal/pkg/idempotency"
	"github.com/aryasaputra/gokey/internal/pkg/instrument"
	"github.com/aryasaputra/gokey/internal/pkg/jwt"
	"github.com/aryasaputra/gokey/internal/pkg/otp"
	"github.com/aryasaputra/gokey/internal/pkg/validator"
)

const testConfigYAML = `
modules:
  identity:
    otp_length: 6
    otp_ttl_minutes: 5
    otp_max_attempts: 3
    otp_purge_interval_minutes: 0
    otp_purge_horizon_hours: 0
`

// memDB is an in-memory repository holding users, credentials and codes.
type memDB struct {
	mu     sync.Mutex
	users  []entity.User
	logins map[string]entity.UserLoginInfo
	otps   []*entity.OTP
}

func newMemDB() *memDB {
	return &memDB{logins: make(map[string]entity.UserLoginInfo)}
}

func (m *memDB) GetUserLoginInfo(_ context.Context, email string) (*entity.UserLoginInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	info, ok := m.logins[email]
	if !ok {
		return nil, goerror.ErrNotFound
	}

	return &info, nil
}

func (m *memDB) GetUserByID(_ context.Context, id int64) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.users {
		if m.users[i].ID == id {
			u := m.users[i]
			return &u, nil
		}
	}

	return nil, goerror.ErrNotFound
}

func (m *memDB) GetUserByIdentifier(_ context.Context, identifier string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.users {
		if m.users[i].Email == identifier || m.users[i].MobileNumber == identifier {
			u := m.users[i]
			return &u, nil
		}
	}

	return nil, goerror.ErrNotFound
}

func (m *memDB) GetActiveOTP(_ context.Context, identifier string, purpose entity.OTPPurpose) (*entity.OTP, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var found *entity.OTP
	for _, o := range m.otps {
		if o.Identifier != identifier || o.Purpose != purpose || o.Consumed || o.SupersededAt != nil {
			continue
		}
		if found == nil || o.CreatedAt.After(found.CreatedAt) {
			found = o
		}
	}
	if found == nil {
		return nil, goerror.ErrNotFound
	}

	cp := *found

	return &cp, nil
}

func (m *memDB) NewRegistration(_ context.Context, user entity.NewUser, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.users = append(m.users, entity.User{
		ID:           user.ID,
		Email:        user.Email,
		MobileNumber: user.MobileNumber,
		FullName:     user.FullName,
		Status:       user.Status,
	})
	m.logins[user.Email] = entity.UserLoginInfo{
		ID:       user.ID,
		Email:    user.Email,
		Status:   user.Status,
		Password: passwordHash,
	}

	return nil
}

func (m *memDB) UpsertOTP(_ context.Context, in entity.NewOTP) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for _, o := range m.otps {
		if o.Identifier == in.Identifier && o.Purpose == in.Purpose && !o.Consumed && o.SupersededAt == nil {
			at := now
			o.SupersededAt = &at
		}
	}

	m.otps = append(m.otps, &entity.OTP{
		ID:         in.ID,
		Identifier: in.Identifier,
		Purpose:    in.Purpose,
		CodeHash:   in.CodeHash,
		CreatedAt:  now,
		ExpiresAt:  in.ExpiresAt,
	})

	return nil
}

func (m *memDB) UpdateUserStatus(_ context.Context, id int64, oldStatus, newStatus entity.UserStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.users {
		if m.users[i].ID == id && m.users[i].Status == oldStatus {
			m.users[i].Status = newStatus
			if info, ok := m.logins[m.users[i].Email]; ok {
				info.Status = newStatus
				m.logins[m.users[i].Email] = info
			}

			return nil
		}
	}

	return goerror.ErrNotFound
}

func (m *memDB) IncrementOTPAttempts(_ context.Context, id int64) (int32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, o := range m.otps {
		if o.ID == id {
			o.Attempts++
			return o.Attempts, nil
		}
	}

	return 0, goerror.ErrNotFound
}

func (m *memDB) ConsumeOTP(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, o := range m.otps {
		if o.ID == id && !o.Consumed {
			now := time.Now()
			o.Consumed = true
			o.ConsumedAt = &now
		}
	}

	return nil
}

func (m *memDB) InvalidateOTP(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, o := range m.otps {
		if o.ID == id && o.SupersededAt == nil {
			now := time.Now()
			o.SupersededAt = &now
		}
	}

	return nil
}

func (m *memDB) PurgeOTPs(_ context.Context, olderThan time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var kept []*entity.OTP
	var purged int64
	for _, o := range m.otps {
		retired := o.Consumed || o.SupersededAt != nil || o.ExpiresAt.Before(olderThan)
		if o.CreatedAt.Before(olderThan) && retired {
			purged++
			continue
		}
		kept = append(kept, o)
	}
	m.otps = kept

	return purged, nil
}

type fakeNotify struct {
	mu       sync.Mutex
	fail     bool
	sends    int
	lastTo   string
	lastCode string
}

func (f *fakeNotify) SendOTP(_ context.Context, identifier, code string, _ entity.OTPPurpose) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail {
		return errors.New("gateway unreachable")
	}
	f.sends++
	f.lastTo = identifier
	f.lastCode = code

	return nil
}

type fakeMessaging struct {
	mu         sync.Mutex
	registered []usecase.UserRegisteredEvent
	verified   []usecase.UserVerifiedEvent
}

func (f *fakeMessaging) PublishUserRegistered(_ context.Context, msg usecase.UserRegisteredEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registered = append(f.registered, msg)

	return nil
}

func (f *fakeMessaging) PublishUserVerified(_ context.Context, msg usecase.UserVerifiedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verified = append(f.verified, msg)

	return nil
}

// fakeIdemp runs the wrapped function directly unless err is set.
type fakeIdemp struct {
	err  error
	keys []string
}

func (f *fakeIdemp) Acquire(context.Context, string, time.Duration) (idempotency.State, error) {
	return idempotency.StateNone, nil
}

func (f *fakeIdemp) MarkCompleted(context.Context, string, time.Duration) error { return nil }

func (f *fakeIdemp) MarkFailed(context.Context, string, time.Duration) error { return nil }

func (f *fakeIdemp) Exec(ctx context.Context, key string, fn func(context.Context) error, _ ...idempotency.Option) error {
	f.keys = append(f.keys, key)
	if f.err != nil {
		return f.err
	}

	return fn(ctx)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

type fakeUID struct{ next int64 }

func (f *fakeUID) Generate() int64 {
	f.next++
	return f.next
}

type fakeJWT struct{ err error }

func (f *fakeJWT) Generate(uid int64, email string) (string, error) {
	if f.err != nil {
		return "", f.err
	}

	return "token-for-" + email, nil
}

func (f *fakeJWT) Verify(string) (jwt.Claims, error) {
	return jwt.Claims{}, nil
}

type testEnv struct {
	uc     *usecase.Usecase
	db     *memDB
	notify *fakeNotify
	msg    *fakeMessaging
	idemp  *fakeIdemp
	clock  *fakeClock
	bcrypt hash.Hash
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfigYAML))
	if err != nil {
		t.Fatalf("failed to build config: %v", err)
	}
	t.Cleanup(func() { _ = cfg.Close() })

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	env := &testEnv{
		db:     newMemDB(),
		notify: &fakeNotify{},
		msg:    &fakeMessaging{},
		idemp:  &fakeIdemp{},
		clock:  &fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)},
		bcrypt: hash.NewBcrypt(4, ""),
	}

	env.uc = usecase.New(usecase.Dependency{
		RepoDB:        env.db,
		RepoMessaging: env.msg,
		RepoNotify:    env.notify,
		Idempotency:   env.idemp,
		Validator:     v10,
		Config:        cfg,
		HMAC:          hash.NewHMACSHA256("test-secret"),
		Bcrypt:        env.bcrypt,
		UID:           &fakeUID{},
		CodeGen:       otp.NewNumeric(),
		Clock:         env.clock,
		JWT:           &fakeJWT{},
		Instrument:    instrument.NewNoop(),
	})

	return env
}

// seedActiveUser registers and activates an account directly in the store.
func (e *testEnv) seedActiveUser(t *testing.T, id int64, email, mobile, password string) {
	t.Helper()

	hashed, err := e.bcrypt.Hash(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	if err := e.db.NewRegistration(context.Background(), entity.NewUser{
		ID:           id,
		Email:        email,
		MobileNumber: mobile,
		FullName:     "Seeded User",
		Status:       entity.UserStatusActive,
	}, string(hashed)); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
}

func statusCodeOf(t *testing.T, err error) int {
	t.Helper()

	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected a structured error, got %T: %v", err, err)
	}

	return gerr.StatusCode()
}

func messageOf(t *testing.T, err error) string {
	t.Helper()

	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected a structured error, got %T: %v", err, err)
	}

	return gerr.Msg()
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		env := newTestEnv(t)
		env.seedActiveUser(t, 1, "arya@example.com", "+15551230001", "s3cret-password")

		// Act
		out, err := env.uc.Login(ctx, usecase.LoginInput{
			Email:    "Arya@Example.com",
			Password: "s3cret-password",
		})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.AccessToken != "token-for-arya@example.com" {
			t.Fatalf("unexpected token: %q", out.AccessToken)
		}
	})

	t.Run("UnknownEmailAndWrongPasswordAreIndistinguishable", func(t *testing.T) {
		// Arrange
		env := newTestEnv(t)
		env.seedActiveUser(t, 1, "arya@example.com", "+15551230001", "s3cret-password")

		// Act
		_, errUnknown := env.uc.Login(ctx, usecase.LoginInput{
			Email:    "nobody@example.com",
			Password: "s3cret-password",
		})
		_, errWrongPass := env.uc.Login(ctx, usecase.LoginInput{
			Email:    "arya@example.com",
			Password: "not-the-password",
		})

		// Assert
		if messageOf(t, errUnknown) != messageOf(t, errWrongPass) {
			t.Fatalf("messages differ: %q vs %q", messageOf(t, errUnknown), messageOf(t, errWrongPass))
		}
		if statusCodeOf(t, errUnknown) != statusCodeOf(t, errWrongPass) {
			t.Fatalf("status codes differ")
		}
	})

	t.Run("UnverifiedAccountRejected", func(t *testing.T) {
		// Arrange
		env := newTestEnv(t)
		hashed, _ := env.bcrypt.Hash("s3cret-password")
		_ = env.db.NewRegistration(ctx, entity.NewUser{
			ID: 7, Email: "new@example.com", MobileNumber: "+15551230007",
			FullName: "Brand New", Status: entity.UserStatusUnverified,
		}, string(hashed))

		// Act
		_, err := env.uc.Login(ctx, usecase.LoginInput{
			Email:    "new@example.com",
			Password: "s3cret-password",
		})

		// Assert
		if statusCodeOf(t, err) != 403 {
			t.Fatalf("expected 403, got %d", statusCodeOf(t, err))
		}
	})
}

func TestOTPRequestAndLoginOTP(t *testing.T) {
	ctx := context.Background()

	t.Run("HappyPath", func(t *testing.T) {
		// Arrange
		env := newTestEnv(t)
		env.seedActiveUser(t, 1, "arya@example.com", "+15551230001", "s3cret-password")

		// Act
		if err := env.uc.OTPRequest(ctx, usecase.OTPRequestInput{Identifier: "+15551230001"}); err != nil {
			t.Fatalf("unexpected request error: %v", err)
		}
		out, err := env.uc.LoginOTP(ctx, usecase.LoginOTPInput{
			Identifier: "+15551230001",
			Code:       env.notify.lastCode,
		})

		// Assert
		if err != nil {
			t.Fatalf("unexpected verify error: %v", err)
		}
		if out.AccessToken == "" {
			t.Fatalf("expected a token")
		}
		if len(env.notify.lastCode) != 6 {
			t.Fatalf("expected a 6-digit code, got %q", env.notify.lastCode)
		}
	})

	t.Run("UnknownIdentifierSilentlySucceeds", func(t *testing.T) {
		// Arrange
		env := newTestEnv(t)

		// Act
		err := env.uc.OTPRequest(ctx, usecase.OTPRequestInput{Identifier: "+15559990000"})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if env.notify.sends != 0 {
			t.Fatalf("expected no delivery for unknown identifier")
		}
	})

	t.Run("ThrottledByIdempotencyGuard", func(t *testing.T) {
		// Arrange
		env := newTestEnv(t)
		env.seedActiveUser(t, 1, "arya@example.com", "+15551230001", "s3cret-password")
		env.idemp.err = idempotency.ErrAlreadyInProgress

		// Act
		err := env.uc.OTPRequest(ctx, usecase.OTPRequestInput{Identifier: "+15551230001"})

		// Assert
		if statusCodeOf(t, err) != 429 {
			t.Fatalf("expected 429, got %d", statusCodeOf(t, err))
		}
	})

	t.Run("NoActiveCode", func(t *testing.T) {
		// Arrange
		env := newTestEnv(t)
		env.seedActiveUser(t, 1, "arya@example.com", "+15551230001", "s3cret-password")

		// Act
		_, err := env.uc.LoginOTP(ctx, usecase.LoginOTPInput{
			Identifier: "+15551230001",
			Code:       "123456",
		})

		// Assert
		if statusCodeOf(t, err) != 404 {
			t.Fatalf("expected 404, got %d", statusCodeOf(t, err))
		}
	})

	t.Run("ExpiredCode", func(t *testing.T) {
		// Arrange
		env := newTestEnv(t)
		env.seedActiveUser(t, 1, "arya@example.com", "+15551230001", "s3cret-password")
		if err := env.uc.OTPRequest(ctx, usecase.OTPRequestInput{Identifier: "+15551230001"}); err != nil {
			t.Fatalf("unexpected request error: %v", err)
		}
		env.clock.Advance(6 * time.Minute)

		// Act
		_, err := env.uc.LoginOTP(ctx, usecase.LoginOTPInput{
			Identifier: "+15551230001",
			Code:       env.notify.lastCode,
		})

		// Assert
		if statusCodeOf(t, err) != 401 {
			t.Fatalf("expected 401, got %d", statusCodeOf(t, err))
		}
		if !strings.Contains(messageOf(t, err), "expired") {
			t.Fatalf("expected expiry message, got %q", messageOf(t, err))
		}
	})

	t.Run("MismatchThenLockout", func(t *testing.T) {
		// Arrange: max_attempts is 3.
		env := newTestEnv(t)
		env.seedActiveUser(t, 1, "arya@example.com", "+15551230001", "s3cret-password")
		if err := env.uc.OTPRequest(ctx, usecase.OTPRequestInput{Identifier: "+15551230001"}); err != nil {
			t.Fatalf("unexpected request error: %v", err)
		}
		wrong := "000000"
		if wrong == env.notify.lastCode {
			wrong = "000001"
		}

		// Act + Assert: two mismatches report incorrect, the third locks.
		for i := 0; i < 2; i++ {
			_, err := env.uc.LoginOTP(ctx, usecase.LoginOTPInput{Identifier: "+15551230001", Code: wrong})
			if statusCodeOf(t, err) != 401 {
				t.Fatalf("attempt %d: expected 401, got %d", i+1, statusCodeOf(t, err))
			}
		}
		_, err := env.uc.LoginOTP(ctx, usecase.LoginOTPInput{Identifier: "+15551230001", Code: wrong})
		if statusCodeOf(t, err) != 429 {
			t.Fatalf("expected 429 on lockout, got %d", statusCodeOf(t, err))
		}

		// The correct code is also rejected once locked.
		_, err = env.uc.LoginOTP(ctx, usecase.LoginOTPInput{Identifier: "+15551230001", Code: env.notify.lastCode})
		if statusCodeOf(t, err) != 429 {
			t.Fatalf("expected 429 for correct code after lockout, got %d", statusCodeOf(t, err))
		}
	})

	t.Run("LastAllowedAttemptSucceeds", func(t *testing.T) {
		// Arrange: two failures leave one attempt, which must still work.
		env := newTestEnv(t)
		env.seedActiveUser(t, 1, "arya@example.com", "+15551230001", "s3cret-password")
		if err := env.uc.OTPRequest(ctx, usecase.OTPRequestInput{Identifier: "+15551230001"}); err != nil {
			t.Fatalf("unexpected request error: %v", err)
		}
		wrong := "000000"
		if wrong == env.notify.lastCode {
			wrong = "000001"
		}
		for i := 0; i < 2; i++ {
			_, _ = env.uc.LoginOTP(ctx, usecase.LoginOTPInput{Identifier: "+15551230001", Code: wrong})
		}

		// Act
		out, err := env.uc.LoginOTP(ctx, usecase.LoginOTPInput{
			Identifier: "+15551230001",
			Code:       env.notify.lastCode,
		})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.AccessToken == "" {
			t.Fatalf("expected a token")
		}
	})

	t.Run("ConsumedCodeCannotBeReplayed", func(t *testing.T) {
		// Arrange
		env := newTestEnv(t)
		env.seedActiveUser(t, 1, "arya@example.com", "+15551230001", "s3cret-password")
		if err := env.uc.OTPRequest(ctx, usecase.OTPRequestInput{Identifier: "+15551230001"}); err != nil {
			t.Fatalf("unexpected request error: %v", err)
		}
		code := env.notify.lastCode
		if _, err := env.uc.LoginOTP(ctx, usecase.LoginOTPInput{Identifier: "+15551230001", Code: code}); err != nil {
			t.Fatalf("unexpected first verify error: %v", err)
		}

		// Act
		_, err := env.uc.LoginOTP(ctx, usecase.LoginOTPInput{Identifier: "+15551230001", Code: code})

		// Assert
		if statusCodeOf(t, err) != 404 {
			t.Fatalf("expected 404 on replay, got %d", statusCodeOf(t, err))
		}
	})

	t.Run("NewRequestSupersedesOldCode", func(t *testing.T) {
		// Arrange
		env := newTestEnv(t)
		env.seedActiveUser(t, 1, "arya@example.com", "+15551230001", "s3cret-password")
		if err := env.uc.OTPRequest(ctx, usecase.OTPRequestInput{Identifier: "+15551230001"}); err != nil {
			t.Fatalf("unexpected request error: %v", err)
		}
		oldCode := env.notify.lastCode
		if err := env.uc.OTPRequest(ctx, usecase.OTPRequestInput{Identifier: "+15551230001"}); err != nil {
			t.Fatalf("unexpected second request error: %v", err)
		}
		newCode := env.notify.lastCode

		// Act
		_, errOld := env.uc.LoginOTP(ctx, usecase.LoginOTPInput{Identifier: "+15551230001", Code: oldCode})
		out, errNew := env.uc.LoginOTP(ctx, usecase.LoginOTPInput{Identifier: "+15551230001", Code: newCode})

		// Assert
		if oldCode != newCode && statusCodeOf(t, errOld) != 401 {
			t.Fatalf("expected old code rejected with 401, got %d", statusCodeOf(t, errOld))
		}
		if errNew != nil {
			t.Fatalf("unexpected error for fresh code: %v", errNew)
		}
		if out.AccessToken == "" {
			t.Fatalf("expected a token")
		}
	})
}

func TestRegisterFlow(t *testing.T) {
	ctx := context.Background()

	registerInput := usecase.RegisterInput{
		Email:        "arya@example.com",
		MobileNumber: "+15551230001",
		FullName:     "Arya Saputra",
		Password:     "s3cret-password",
	}

	t.Run("RegisterVerifyActivates", func(t *testing.T) {
		// Arrange
		env := newTestEnv(t)

		// Act
		if err := env.uc.Register(ctx, registerInput); err != nil {
			t.Fatalf("unexpected register error: %v", err)
		}
		if err := env.uc.RegisterVerify(ctx, usecase.RegisterVerifyInput{
			Identifier: "arya@example.com",
			Code:       env.notify.lastCode,
		}); err != nil {
			t.Fatalf("unexpected verify error: %v", err)
		}

		// Assert
		user, err := env.db.GetUserByIdentifier(ctx, "arya@example.com")
		if err != nil {
			t.Fatalf("user not stored: %v", err)
		}
		if user.Status != entity.UserStatusActive {
			t.Fatalf("expected active status, got %s", user.Status)
		}
		if env.notify.lastTo != "+15551230001" {
			t.Fatalf("expected delivery to the mobile number, got %q", env.notify.lastTo)
		}
		if len(env.msg.registered) != 1 || len(env.msg.verified) != 1 {
			t.Fatalf("expected one registered and one verified event, got %d/%d",
				len(env.msg.registered), len(env.msg.verified))
		}
	})

	t.Run("VerifyTwiceIsIdempotent", func(t *testing.T) {
		// Arrange
		env := newTestEnv(t)
		if err := env.uc.Register(ctx, registerInput); err != nil {
			t.Fatalf("unexpected register error: %v", err)
		}
		code := env.notify.lastCode
		if err := env.uc.RegisterVerify(ctx, usecase.RegisterVerifyInput{
			Identifier: "arya@example.com", Code: code,
		}); err != nil {
			t.Fatalf("unexpected first verify error: %v", err)
		}

		// Act
		err := env.uc.RegisterVerify(ctx, usecase.RegisterVerifyInput{
			Identifier: "arya@example.com", Code: code,
		})

		// Assert
		if err != nil {
			t.Fatalf("expected second verify to be a no-op, got %v", err)
		}
	})

	t.Run("DuplicateRegistrationRejected", func(t *testing.T) {
		// Arrange
		env := newTestEnv(t)
		if err := env.uc.Register(ctx, registerInput); err != nil {
			t.Fatalf("unexpected register error: %v", err)
		}

		// Act
		err := env.uc.Register(ctx, registerInput)

		// Assert
		if statusCodeOf(t, err) != 409 {
			t.Fatalf("expected 409, got %d", statusCodeOf(t, err))
		}
	})

	t.Run("DeliveryFailureRollsBackCode", func(t *testing.T) {
		// Arrange
		env := newTestEnv(t)
		env.notify.fail = true

		// Act
		err := env.uc.Register(ctx, registerInput)

		// Assert
		if statusCodeOf(t, err) != 503 {
			t.Fatalf("expected 503, got %d", statusCodeOf(t, err))
		}
		if _, err := env.db.GetActiveOTP(ctx, "+15551230001", entity.OTPPurposeRegistration); !errors.Is(err, goerror.ErrNotFound) {
			t.Fatalf("expected no active code after failed delivery, got %v", err)
		}
	})

	t.Run("ResendSupersedes", func(t *testing.T) {
		// Arrange
		env := newTestEnv(t)
		if err := env.uc.Register(ctx, registerInput); err != nil {
			t.Fatalf("unexpected register error: %v", err)
		}

		// Act
		if err := env.uc.RegisterResend(ctx, usecase.RegisterResendInput{
			Identifier: "arya@example.com",
		}); err != nil {
			t.Fatalf("unexpected resend error: %v", err)
		}

		// Assert
		if env.notify.sends != 2 {
			t.Fatalf("expected two deliveries, got %d", env.notify.sends)
		}
		if err := env.uc.RegisterVerify(ctx, usecase.RegisterVerifyInput{
			Identifier: "arya@example.com",
			Code:       env.notify.lastCode,
		}); err != nil {
			t.Fatalf("unexpected verify error with fresh code: %v", err)
		}
	})

	t.Run("ResendForUnknownIdentifierSilentlySucceeds", func(t *testing.T) {
		// Arrange
		env := newTestEnv(t)

		// Act
		err := env.uc.RegisterResend(ctx, usecase.RegisterResendInput{Identifier: "ghost@example.com"})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if env.notify.sends != 0 {
			t.Fatalf("expected no delivery")
		}
	})
}
