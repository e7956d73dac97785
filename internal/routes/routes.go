package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/dialpass/dialpass/internal/audit"
	"github.com/dialpass/dialpass/internal/config"
	"github.com/dialpass/dialpass/internal/identity"
	"github.com/dialpass/dialpass/internal/ledger"
	"github.com/dialpass/dialpass/internal/middleware"
	"github.com/dialpass/dialpass/internal/notification"
	"github.com/dialpass/dialpass/internal/signup"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Trail  *audit.Dispatcher
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	// Plain text access log in desired format: [HH:MM:SS] 200 -  145ms METHOD /path
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	// Health
	RegisterHealthRoutes(app, d)

	// Services and handlers
	var identityRepo identity.Repository
	if d.DB != nil {
		identityRepo = identity.NewPostgresRepository(d.DB)
	} else {
		identityRepo = identity.NewMemoryRepository()
	}
	identitySvc := identity.NewService(identityRepo, d.Cfg.BcryptCost)

	var codeLedger ledger.Ledger
	if d.DB != nil {
		codeLedger = ledger.NewPostgresLedger(d.DB)
	} else {
		codeLedger = ledger.NewInMemory()
	}

	trail := d.Trail
	if trail == nil {
		// Dev fallback owns its dispatcher, so flush it when the app stops.
		fallback := audit.NewDispatcher(audit.NewLogRecorder(d.Logger), d.Logger)
		app.Hooks().OnShutdown(func() error {
			fallback.Close()
			return nil
		})
		trail = fallback
	}

	notifier := notification.NewLoggerNotifier(d.Logger)
	signupSvc := signup.NewService(identitySvc, codeLedger, trail, notifier, d.Cfg.CodeTTL)
	signupHandler := signup.NewHandler(signupSvc)

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	rateLimiter := middleware.CodeRateLimit(d.Cache, d.Cfg.CodeRatePerMin)
	RegisterSignupRoutes(api, signupHandler, rateLimiter)

	return nil
}
