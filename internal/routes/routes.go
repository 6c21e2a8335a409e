// Package routes wires HTTP paths to handlers and applies the auth and
// rate limit middleware.
package routes

import (
	"time"

	"catatuang/internal/handlers"
	"catatuang/internal/logger"
	"catatuang/internal/middleware"
	"catatuang/internal/services/auth"
	"catatuang/internal/services/category"
	"catatuang/internal/services/transaction"
	"catatuang/internal/services/user"
	"catatuang/internal/services/wallet"
	"catatuang/internal/services/wallettype"
	"catatuang/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// Dependencies holds the services the API is built from.
type Dependencies struct {
	Auth         auth.Service
	Users        user.Service
	Categories   category.Service
	WalletTypes  wallettype.Service
	Wallets      wallet.Service
	Transactions transaction.Service
	HealthChecks map[string]handlers.HealthCheck
	Logger       *logger.Logger

	// AuthRateLimit caps register and login attempts per IP per minute.
	// Zero disables the limiter.
	AuthRateLimit int
}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}

	authHandler := handlers.NewAuthHandler(deps.Auth, deps.Users)
	categoryHandler := handlers.NewCategoryHandler(deps.Categories)
	walletTypeHandler := handlers.NewWalletTypeHandler(deps.WalletTypes)
	walletHandler := handlers.NewWalletHandler(deps.Wallets)
	transactionHandler := handlers.NewTransactionHandler(deps.Transactions)

	app.Get("/health", handlers.NewHealthHandler(deps.HealthChecks).Check)

	api := app.Group("/api")

	// Public endpoints
	throttle := authLimiter(deps.AuthRateLimit)
	api.Post("/register", throttle, authHandler.Register)
	api.Post("/login", throttle, authHandler.Login)

	authMiddleware := middleware.NewAuthMiddleware(deps.Auth, log)
	protected := api.Group("", authMiddleware.Handler)

	protected.Post("/logout", authHandler.Logout)
	protected.Get("/profile", authHandler.Profile)
	protected.Put("/profile", authHandler.UpdateProfile)

	categories := protected.Group("/categories")
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/:id", categoryHandler.Get)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	walletTypes := protected.Group("/wallet-types")
	walletTypes.Get("/", walletTypeHandler.List)
	walletTypes.Post("/", walletTypeHandler.Create)
	walletTypes.Get("/:id", walletTypeHandler.Get)
	walletTypes.Put("/:id", walletTypeHandler.Update)
	walletTypes.Delete("/:id", walletTypeHandler.Delete)

	wallets := protected.Group("/wallets")
	wallets.Get("/", walletHandler.List)
	wallets.Post("/", walletHandler.Create)
	wallets.Get("/:id", walletHandler.Get)
	wallets.Put("/:id", walletHandler.Update)
	wallets.Delete("/:id", walletHandler.Delete)

	transactions := protected.Group("/transactions")
	transactions.Get("/", transactionHandler.List)
	transactions.Post("/", transactionHandler.Create)
	transactions.Get("/:id", transactionHandler.Get)
	transactions.Put("/:id", transactionHandler.Update)
	transactions.Delete("/:id", transactionHandler.Delete)

	protected.Get("/transactions-summary", transactionHandler.Summary)
}

func authLimiter(max int) fiber.Handler {
	if max <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return utils.Fail(c, fiber.StatusTooManyRequests, "Too many requests. Please try again later.")
		},
	})
}
