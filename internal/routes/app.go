package routes

import (
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/google/uuid"

	"hoagiehub/config"
	"hoagiehub/internal/controllers"
	"hoagiehub/internal/middleware"
	"hoagiehub/internal/services"
)

// Deps is everything the HTTP layer needs from the rest of the program.
type Deps struct {
	Config   config.Config
	Users    *services.UserService
	Hoagies  *services.HoagieService
	Comments *services.CommentService
	Tokens   middleware.TokenParser

	// AccessLog receives one line per request. Nil means stdout.
	AccessLog io.Writer
}

// NewApp builds the fiber app with every route mounted under /v1.
func NewApp(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Hoagie Hub API",
		ErrorHandler: controllers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		Output: d.AccessLog,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: d.Config.CORSOrigins,
		AllowMethods: "GET,HEAD,PUT,PATCH,POST,DELETE",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Health
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })

	v1 := app.Group("/v1")
	v1.Get("/", controllers.Health)

	// Swagger API document
	v1.Get("/docs/*", swagger.HandlerDefault)

	v1.Use(middleware.JWTUidOnly(d.Tokens))
	v1.Use(middleware.RequestContext(requestTimeout(d.Config)))

	SetupRoutesUser(v1, d)
	SetupRoutesHoagie(v1, d)
	CommentRoutes(v1, d)

	return app
}

func requestTimeout(cfg config.Config) time.Duration {
	if cfg.RequestTimeout <= 0 {
		return 5 * time.Second
	}
	return cfg.RequestTimeout
}

// limit returns the rate limiter of a named bucket.
func limit(cfg config.Config, bucket string) fiber.Handler {
	limits := cfg.RateLimits
	if limits == nil {
		limits = config.DefaultRateLimits()
	}
	window := cfg.RateWindow
	if window <= 0 {
		window = time.Minute
	}
	return middleware.RateLimit(bucket, limits[bucket], window)
}
