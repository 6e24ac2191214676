package transaction

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bielborgesc/piggino/internal/domain/shared"
	appErrors "github.com/bielborgesc/piggino/internal/errors"
	"github.com/bielborgesc/piggino/internal/pkg"
	"github.com/bielborgesc/piggino/internal/pkg/query"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type CategoryChecker interface {
	ValidateAndEnsureExists(ctx context.Context, categoryID, userID ulid.ULID) error
}

type SourceChecker interface {
	ValidateAndEnsureExists(ctx context.Context, sourceID, userID ulid.ULID) error
}

type Service struct {
	Repository      Repository
	CategoryChecker CategoryChecker
	SourceChecker   SourceChecker
	shared.BaseService
}

func NewService(
	repo Repository,
	categoryChecker CategoryChecker,
	sourceChecker SourceChecker,
	userChecker *shared.UserCheckerService,
) *Service {
	return &Service{
		Repository:      repo,
		CategoryChecker: categoryChecker,
		SourceChecker:   sourceChecker,
		BaseService: shared.BaseService{
			UserChecker: userChecker,
		},
	}
}

func (s *Service) Create(ctx context.Context, t *Transaction) error {
	if err := s.EnsureUserExists(ctx, t.UserId); err != nil {
		return err
	}

	if err := s.validate(t); err != nil {
		return err
	}

	if err := s.checkReferences(ctx, t); err != nil {
		return err
	}

	t.Id = pkg.GenerateULIDObject()
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	if err := RegenerateInstallments(t); err != nil {
		return err
	}

	if err := s.Repository.Create(ctx, t); err != nil {
		return appErrors.NewDatabaseError(err)
	}

	return nil
}

func (s *Service) Update(ctx context.Context, t *Transaction) error {
	if err := s.EnsureUserExists(ctx, t.UserId); err != nil {
		return err
	}

	existing, err := s.Repository.GetByIDAndUser(ctx, t.Id, t.UserId)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return appErrors.ErrTransactionNotFound
	}
	if err != nil {
		return appErrors.NewDatabaseError(err)
	}

	if err := s.validate(t); err != nil {
		return err
	}

	if err := s.checkReferences(ctx, t); err != nil {
		return err
	}

	needsRegen := existing.IsInstallment != t.IsInstallment ||
		!intPtrEqual(existing.InstallmentCount, t.InstallmentCount) ||
		existing.TotalAmount != t.TotalAmount

	existing.Description = t.Description
	existing.TotalAmount = t.TotalAmount
	existing.Type = t.Type
	existing.CategoryId = t.CategoryId
	existing.FinancialSourceId = t.FinancialSourceId
	existing.PurchaseDate = t.PurchaseDate
	existing.IsInstallment = t.IsInstallment
	existing.InstallmentCount = t.InstallmentCount
	existing.IsFixed = t.IsFixed
	existing.DayOfMonth = t.DayOfMonth
	existing.UpdatedAt = time.Now()

	if needsRegen {
		if err := RegenerateInstallments(existing); err != nil {
			return err
		}
		if err := s.Repository.UpdateWithInstallments(ctx, existing); err != nil {
			return appErrors.NewDatabaseError(err)
		}
		return nil
	}

	if err := s.Repository.Update(ctx, existing); err != nil {
		return appErrors.NewDatabaseError(err)
	}

	return nil
}

func (s *Service) Delete(ctx context.Context, transactionID, userID ulid.ULID) error {
	if err := s.EnsureUserExists(ctx, userID); err != nil {
		return err
	}

	if _, err := s.Repository.GetByIDAndUser(ctx, transactionID, userID); errors.Is(err, gorm.ErrRecordNotFound) {
		return appErrors.ErrTransactionNotFound
	} else if err != nil {
		return appErrors.NewDatabaseError(err)
	}

	return s.Repository.Delete(ctx, transactionID)
}

func (s *Service) GetByID(ctx context.Context, transactionID, userID ulid.ULID) (*Transaction, error) {
	if err := s.EnsureUserExists(ctx, userID); err != nil {
		return nil, err
	}

	t, err := s.Repository.GetByIDAndUser(ctx, transactionID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErrors.ErrTransactionNotFound
	}
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return t, nil
}

func (s *Service) GetAll(ctx context.Context, userID ulid.ULID, page query.Page) (*query.Result[*Transaction], error) {
	if err := s.EnsureUserExists(ctx, userID); err != nil {
		return nil, err
	}

	result, err := s.Repository.GetAll(ctx, userID, page)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return result, nil
}

// TogglePaid inverte o estado de pagamento de uma transação simples.
// Transações parceladas são pagas parcela a parcela, e as fixas só existem
// de verdade como projeções, então ambas são rejeitadas aqui.
func (s *Service) TogglePaid(ctx context.Context, transactionID, userID ulid.ULID) (*Transaction, error) {
	t, err := s.GetByID(ctx, transactionID, userID)
	if err != nil {
		return nil, err
	}

	if t.IsInstallment {
		return nil, appErrors.NewValidationError("transaction", "pagamento de compra parcelada é controlado por parcela")
	}
	if t.IsFixed {
		return nil, appErrors.NewValidationError("transaction", "ocorrência projetada não tem estado de pagamento")
	}

	t.IsPaid = !t.IsPaid
	t.UpdatedAt = time.Now()

	if err := s.Repository.Update(ctx, t); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return t, nil
}

func (s *Service) ToggleInstallmentPaid(ctx context.Context, installmentID, userID ulid.ULID) (*Installment, error) {
	if err := s.EnsureUserExists(ctx, userID); err != nil {
		return nil, err
	}

	installment, err := s.Repository.GetInstallmentByID(ctx, installmentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErrors.ErrInstallmentNotFound
	}
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	if _, err := s.Repository.GetByIDAndUser(ctx, installment.TransactionId, userID); errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErrors.ErrResourceNotOwned
	} else if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	installment.IsPaid = !installment.IsPaid
	installment.UpdatedAt = time.Now()

	if err := s.Repository.UpdateInstallment(ctx, installment); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return installment, nil
}

func (s *Service) validate(t *Transaction) error {
	t.Description = strings.TrimSpace(t.Description)
	if t.Description == "" {
		return appErrors.NewValidationError("description", "é obrigatória")
	}
	if t.TotalAmount <= 0 {
		return appErrors.NewValidationError("total_amount", "deve ser maior que zero")
	}
	if !t.Type.IsValid() {
		return appErrors.NewValidationError("type", "deve ser INCOME ou EXPENSE")
	}
	if t.PurchaseDate.IsZero() {
		return appErrors.NewValidationError("purchase_date", "é obrigatória")
	}

	if t.IsInstallment && t.IsFixed {
		return appErrors.NewValidationError("transaction", "não pode ser parcelada e fixa ao mesmo tempo")
	}

	if t.IsInstallment {
		if t.InstallmentCount == nil || *t.InstallmentCount <= 1 {
			return appErrors.NewValidationError("installment_count", "deve ser maior que 1")
		}
	} else {
		t.InstallmentCount = nil
	}

	if t.IsFixed {
		if t.DayOfMonth == nil || *t.DayOfMonth < 1 || *t.DayOfMonth > 31 {
			return appErrors.NewValidationError("day_of_month", "deve estar entre 1 e 31")
		}
	} else {
		t.DayOfMonth = nil
	}

	return nil
}

func (s *Service) checkReferences(ctx context.Context, t *Transaction) error {
	if err := s.CategoryChecker.ValidateAndEnsureExists(ctx, t.CategoryId, t.UserId); err != nil {
		return err
	}
	return s.SourceChecker.ValidateAndEnsureExists(ctx, t.FinancialSourceId, t.UserId)
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
