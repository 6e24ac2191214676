package fx

import (
	"context"

	"github.com/bielborgesc/piggino/config"
	"github.com/bielborgesc/piggino/internal/logger"
	"github.com/bielborgesc/piggino/internal/middleware"
	"github.com/bielborgesc/piggino/internal/routes"

	"github.com/gin-gonic/gin"

	"go.uber.org/fx"
)

// ServerModule fornece a configuração do servidor HTTP
var ServerModule = fx.Module("server",
	fx.Provide(
		newRouter,
	),
	fx.Invoke(
		setupRoutes,
	),
)

func newRouter() *gin.Engine {
	return gin.Default()
}

func setupRoutes(
	lc fx.Lifecycle,
	cfg *config.Config,
	router *gin.Engine,
	handler *routes.Handler,
	jwtSvc *middleware.JwtService,
	authRateLimiter *middleware.RateLimiter,
) {
	router.Use(middleware.CORS())

	public := router.Group("/api")
	public.Use(middleware.RateLimit(authRateLimiter))
	{
		public.POST("/auth/register", handler.Register)
		public.POST("/auth/login", handler.Login)
		public.POST("/auth/google", handler.GoogleLogin)
	}

	userRateLimiter := middleware.NewRateLimiter(cfg.RateLimit.UserRequests, cfg.RateLimit.Window)

	private := router.Group("/api")
	private.Use(middleware.AuthMiddleware(jwtSvc))
	private.Use(middleware.RateLimitByUser(userRateLimiter))
	{
		users := private.Group("/users")
		{
			users.GET("/me", handler.GetProfile)
			users.PATCH("/me", handler.UpdateUserName)
			users.PATCH("/me/password", handler.UpdateUserPassword)
			users.DELETE("/me", handler.DeleteUser)
		}

		categories := private.Group("/categories")
		{
			categories.POST("", handler.CreateCategory)
			categories.GET("", handler.GetCategories)
			categories.GET("/:id", handler.GetCategory)
			categories.PATCH("/:id", handler.UpdateCategory)
			categories.DELETE("/:id", handler.DeleteCategory)
		}

		sources := private.Group("/financial-sources")
		{
			sources.POST("", handler.CreateFinancialSource)
			sources.GET("", handler.GetFinancialSources)
			sources.GET("/:id", handler.GetFinancialSource)
			sources.PATCH("/:id", handler.UpdateFinancialSource)
			sources.DELETE("/:id", handler.DeleteFinancialSource)
		}

		transactions := private.Group("/transactions")
		{
			transactions.POST("", handler.CreateTransaction)
			transactions.GET("", handler.GetTransactions)
			transactions.GET("/month", handler.GetMonthView)
			transactions.GET("/:id", handler.GetTransaction)
			transactions.PATCH("/:id", handler.UpdateTransaction)
			transactions.DELETE("/:id", handler.DeleteTransaction)
			transactions.PATCH("/:id/toggle-paid", handler.ToggleTransactionPaid)
		}

		private.PATCH("/installments/:id/toggle-paid", handler.ToggleInstallmentPaid)
	}

	serverAddr := ":" + cfg.Server.Port
	logger.Info().
		Str("address", serverAddr).
		Str("environment", cfg.App.Environment).
		Msg("Servidor iniciando")

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := router.Run(serverAddr); err != nil {
					logger.Fatal().Err(err).Msg("Falha ao iniciar servidor")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("Servidor parando...")
			return nil
		},
	})
}
