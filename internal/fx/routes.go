package fx

import (
	"github.com/bielborgesc/piggino/config"
	"github.com/bielborgesc/piggino/internal/domain/auth"
	"github.com/bielborgesc/piggino/internal/domain/category"
	"github.com/bielborgesc/piggino/internal/domain/dashboard"
	"github.com/bielborgesc/piggino/internal/domain/source"
	"github.com/bielborgesc/piggino/internal/domain/transaction"
	"github.com/bielborgesc/piggino/internal/domain/user"
	"github.com/bielborgesc/piggino/internal/middleware"
	"github.com/bielborgesc/piggino/internal/routes"

	"go.uber.org/fx"
)

// RoutesModule fornece handlers e rate limiters
var RoutesModule = fx.Module("routes",
	fx.Provide(
		newHandler,
		newAuthRateLimiter,
	),
)

func newHandler(
	userSvc *user.Service,
	authSvc *auth.Service,
	jwtSvc *middleware.JwtService,
	categorySvc *category.Service,
	sourceSvc *source.Service,
	transactionSvc *transaction.Service,
	dashboardSvc *dashboard.Service,
) *routes.Handler {
	return &routes.Handler{
		UserService:        userSvc,
		AuthService:        authSvc,
		JwtService:         jwtSvc,
		CategoryService:    categorySvc,
		SourceService:      sourceSvc,
		TransactionService: transactionSvc,
		DashboardService:   dashboardSvc,
	}
}

// newAuthRateLimiter limita as rotas públicas de autenticação por IP,
// com limite e janela vindos da configuração.
func newAuthRateLimiter(cfg *config.Config) *middleware.RateLimiter {
	return middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
}
