package fx

import (
	"github.com/bielborgesc/piggino/config"
	"github.com/bielborgesc/piggino/internal/domain/auth"
	"github.com/bielborgesc/piggino/internal/domain/category"
	"github.com/bielborgesc/piggino/internal/domain/dashboard"
	"github.com/bielborgesc/piggino/internal/domain/shared"
	"github.com/bielborgesc/piggino/internal/domain/source"
	"github.com/bielborgesc/piggino/internal/domain/transaction"
	"github.com/bielborgesc/piggino/internal/domain/user"
	"github.com/bielborgesc/piggino/internal/infrastructure"
	"github.com/bielborgesc/piggino/internal/logger"

	"go.uber.org/fx"
)

// DomainModule fornece todos os services do domínio
var DomainModule = fx.Module("domain",
	fx.Provide(
		// User services
		newUserService,
		newUserCheckerService,

		// Auth service (requer GoogleClientID)
		newGoogleClientID,
		newAuthService,

		// Category service
		newCategoryService,

		// FinancialSource service
		newSourceService,

		// Transaction service (depende de category e source)
		newTransactionService,

		// Dashboard service
		newDashboardService,
	),
)

func newUserService(repo *infrastructure.UserRepository) *user.Service {
	return user.NewService(repo)
}

func newUserCheckerService(userSvc *user.Service) *shared.UserCheckerService {
	return shared.NewUserCheckerService(userSvc)
}

func newGoogleClientID(cfg *config.Config) string {
	googleClientID := ""
	if cfg.GoogleOAuth.Enabled {
		if cfg.GoogleOAuth.ClientID == "" {
			logger.Warn().
				Msg("GOOGLE_OAUTH_ENABLED=true mas GOOGLE_OAUTH_CLIENT_ID está vazio. Verifique se a variável está definida no arquivo .env")
		} else {
			googleClientID = cfg.GoogleOAuth.ClientID
			logger.Info().
				Int("client_id_length", len(googleClientID)).
				Msg("Google OAuth habilitado")
		}
	} else {
		logger.Info().Msg("Google OAuth desabilitado (GOOGLE_OAUTH_ENABLED não está definido como 'true')")
	}
	return googleClientID
}

func newAuthService(userSvc *user.Service, googleClientID string) *auth.Service {
	return auth.NewService(userSvc, googleClientID)
}

func newCategoryService(
	repo *infrastructure.CategoryRepository,
	userChecker *shared.UserCheckerService,
) *category.Service {
	return category.NewService(repo, userChecker)
}

func newSourceService(
	repo *infrastructure.FinancialSourceRepository,
	userChecker *shared.UserCheckerService,
) *source.Service {
	return source.NewService(repo, userChecker)
}

func newTransactionService(
	repo *infrastructure.TransactionRepository,
	categorySvc *category.Service,
	sourceSvc *source.Service,
	userChecker *shared.UserCheckerService,
) *transaction.Service {
	return transaction.NewService(repo, categorySvc, sourceSvc, userChecker)
}

func newDashboardService(
	transactionRepo *infrastructure.TransactionRepository,
	userChecker *shared.UserCheckerService,
) *dashboard.Service {
	return dashboard.NewService(transactionRepo, userChecker)
}
