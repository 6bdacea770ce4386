package identity

import (
	"context"

	"github.com/aryasaputra/gokey/internal/identity/inbound"
	"github.com/aryasaputra/gokey/internal/identity/outbound/db"
	"github.com/aryasaputra/gokey/internal/identity/outbound/mq"
	"github.com/aryasaputra/gokey/internal/identity/outbound/notify"
	"github.com/aryasaputra/gokey/internal/identity/usecase"
	"github.com/aryasaputra/gokey/internal/pkg/clock"
	"github.com/aryasaputra/gokey/internal/pkg/config"
	"github.com/aryasaputra/gokey/internal/pkg/goroutine"
	"github.com/aryasaputra/gokey/internal/pkg/hash"
	"github.com/aryasaputra/gokey/internal/pkg/idempotency"
	"github.com/aryasaputra/gokey/internal/pkg/instrument"
	"github.com/aryasaputra/gokey/internal/pkg/jwt"
	"github.com/aryasaputra/gokey/internal/pkg/mail"
	"github.com/aryasaputra/gokey/internal/pkg/messaging"
	"github.com/aryasaputra/gokey/internal/pkg/otp"
	"github.com/aryasaputra/gokey/internal/pkg/router"
	"github.com/aryasaputra/gokey/internal/pkg/sms"
	"github.com/aryasaputra/gokey/internal/pkg/uid"
	"github.com/aryasaputra/gokey/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Dependency struct {
	Ctx         context.Context            `validate:"required"`
	DBConn      *pgxpool.Pool              `validate:"required"`
	CacheConn   *redis.Client              `validate:"required"`
	Goroutine   *goroutine.Manager         `validate:"required"`
	Router      *router.Router             `validate:"required"`
	Idempotency idempotency.Idempotency    `validate:"required"`
	Messaging   messaging.Publisher        `validate:"required"`
	Mail        mail.Mail                  `validate:"required"`
	SMS         *sms.Gateway               `validate:"required"`
	Config      config.Config              `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	UID         uid.NumberID               `validate:"required"`
	HMAC        hash.Hash                  `validate:"required"`
	Bcrypt      hash.Hash                  `validate:"required"`
	Clock       clock.Clocker              `validate:"required"`
	CodeGen     otp.Generator              `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
	JWT         jwt.JWT                    `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	dbAuth := db.NewDB(dep.DBConn, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)
	repoNotify := notify.NewNotify(dep.Mail, dep.SMS, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:        dbAuth,
		RepoMessaging: repoMsg,
		RepoNotify:    repoNotify,
		Idempotency:   dep.Idempotency,
		Validator:     dep.Validator,
		Config:        dep.Config,
		HMAC:          dep.HMAC,
		Bcrypt:        dep.Bcrypt,
		UID:           dep.UID,
		CodeGen:       dep.CodeGen,
		Clock:         dep.Clock,
		JWT:           dep.JWT,
		Instrument:    dep.Instrument,
		Goroutine:     dep.Goroutine,
	})

	uc.StartOTPPurge(dep.Ctx)

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
