package fx

import (
	"github.com/bielborgesc/piggino/config"
	"github.com/bielborgesc/piggino/internal/infrastructure"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

var InfrastructureModule = fx.Module("infrastructure",
	fx.Provide(
		newDatabase,
		newUserRepository,
		newCategoryRepository,
		newFinancialSourceRepository,
		newTransactionRepository,
	),
)

func newDatabase(cfg *config.Config) (*gorm.DB, error) {
	return infrastructure.NewDb(cfg)
}

func newUserRepository(db *gorm.DB) *infrastructure.UserRepository {
	return infrastructure.NewUserRepository(db)
}

func newCategoryRepository(db *gorm.DB) *infrastructure.CategoryRepository {
	return infrastructure.NewCategoryRepository(db)
}

func newFinancialSourceRepository(db *gorm.DB) *infrastructure.FinancialSourceRepository {
	return infrastructure.NewFinancialSourceRepository(db)
}

func newTransactionRepository(db *gorm.DB) *infrastructure.TransactionRepository {
	return infrastructure.NewTransactionRepository(db)
}
