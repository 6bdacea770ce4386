package app

import (
	"context"
	"net/http"

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

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	hmac      hash.Hash
	bcrypt    hash.Hash
	uid       uid.NumberID
	uuid      uid.StringID
	codegen   otp.Generator
	jwt       jwt.JWT

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	idemp     idempotency.Idempotency
	mail      mail.Mail
	sms       *sms.Gateway
	messaging messaging.Publisher

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initMail()
	app.initSMS()
	app.initMessaging()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
