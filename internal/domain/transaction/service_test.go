package transaction_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bielborgesc/piggino/internal/domain/shared"
	"github.com/bielborgesc/piggino/internal/domain/transaction"
	appErrors "github.com/bielborgesc/piggino/internal/errors"
	"github.com/bielborgesc/piggino/internal/pkg"
	"github.com/bielborgesc/piggino/internal/pkg/query"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type fakeTransactionRepository struct {
	createFn                 func(ctx context.Context, tx *transaction.Transaction) error
	updateFn                 func(ctx context.Context, tx *transaction.Transaction) error
	deleteFn                 func(ctx context.Context, id ulid.ULID) error
	getByIDAndUserFn         func(ctx context.Context, transactionID, userID ulid.ULID) (*transaction.Transaction, error)
	getAllFn                 func(ctx context.Context, userID ulid.ULID, page query.Page) (*query.Result[*transaction.Transaction], error)
	getAllForUserFn          func(ctx context.Context, userID ulid.ULID) ([]*transaction.Transaction, error)
	updateWithInstallmentsFn func(ctx context.Context, tx *transaction.Transaction) error
	getInstallmentFn         func(ctx context.Context, installmentID ulid.ULID) (*transaction.Installment, error)
	updateInstallmentFn      func(ctx context.Context, installment *transaction.Installment) error
}

func (f *fakeTransactionRepository) Create(ctx context.Context, tx *transaction.Transaction) error {
	if f.createFn != nil {
		return f.createFn(ctx, tx)
	}
	return nil
}

func (f *fakeTransactionRepository) Update(ctx context.Context, tx *transaction.Transaction) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, tx)
	}
	return nil
}

func (f *fakeTransactionRepository) Delete(ctx context.Context, id ulid.ULID) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeTransactionRepository) GetByIDAndUser(ctx context.Context, transactionID, userID ulid.ULID) (*transaction.Transaction, error) {
	if f.getByIDAndUserFn != nil {
		return f.getByIDAndUserFn(ctx, transactionID, userID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTransactionRepository) GetAll(ctx context.Context, userID ulid.ULID, page query.Page) (*query.Result[*transaction.Transaction], error) {
	if f.getAllFn != nil {
		return f.getAllFn(ctx, userID, page)
	}
	return &query.Result[*transaction.Transaction]{}, nil
}

func (f *fakeTransactionRepository) GetAllForUser(ctx context.Context, userID ulid.ULID) ([]*transaction.Transaction, error) {
	if f.getAllForUserFn != nil {
		return f.getAllForUserFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeTransactionRepository) UpdateWithInstallments(ctx context.Context, tx *transaction.Transaction) error {
	if f.updateWithInstallmentsFn != nil {
		return f.updateWithInstallmentsFn(ctx, tx)
	}
	return nil
}

func (f *fakeTransactionRepository) GetInstallmentByID(ctx context.Context, installmentID ulid.ULID) (*transaction.Installment, error) {
	if f.getInstallmentFn != nil {
		return f.getInstallmentFn(ctx, installmentID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTransactionRepository) UpdateInstallment(ctx context.Context, installment *transaction.Installment) error {
	if f.updateInstallmentFn != nil {
		return f.updateInstallmentFn(ctx, installment)
	}
	return nil
}

type fakeUserChecker struct {
	existsFn func(ctx context.Context, userID ulid.ULID) error
}

func (f *fakeUserChecker) Exists(ctx context.Context, userID ulid.ULID) error {
	if f.existsFn != nil {
		return f.existsFn(ctx, userID)
	}
	return nil
}

type fakeReferenceChecker struct {
	err error
}

func (f *fakeReferenceChecker) ValidateAndEnsureExists(ctx context.Context, id, userID ulid.ULID) error {
	return f.err
}

func newTestService(repo transaction.Repository) *transaction.Service {
	return transaction.NewService(
		repo,
		&fakeReferenceChecker{},
		&fakeReferenceChecker{},
		shared.NewUserCheckerService(&fakeUserChecker{}),
	)
}

func intPtr(v int) *int { return &v }

func validTransaction(userID ulid.ULID) *transaction.Transaction {
	return &transaction.Transaction{
		UserId:            userID,
		Description:       "Mercado",
		TotalAmount:       250,
		Type:              transaction.TypeExpense,
		CategoryId:        ulid.Make(),
		FinancialSourceId: ulid.Make(),
		PurchaseDate:      time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestServiceCreateValidations(t *testing.T) {
	t.Parallel()

	userID := ulid.Make()
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(tx *transaction.Transaction)
	}{
		{
			name:   "empty description",
			mutate: func(tx *transaction.Transaction) { tx.Description = "   " },
		},
		{
			name:   "non-positive amount",
			mutate: func(tx *transaction.Transaction) { tx.TotalAmount = 0 },
		},
		{
			name:   "invalid type",
			mutate: func(tx *transaction.Transaction) { tx.Type = "TRANSFER" },
		},
		{
			name:   "missing purchase date",
			mutate: func(tx *transaction.Transaction) { tx.PurchaseDate = time.Time{} },
		},
		{
			name: "installment and fixed are mutually exclusive",
			mutate: func(tx *transaction.Transaction) {
				tx.IsInstallment = true
				tx.InstallmentCount = intPtr(3)
				tx.IsFixed = true
				tx.DayOfMonth = intPtr(5)
			},
		},
		{
			name: "installment count must exceed one",
			mutate: func(tx *transaction.Transaction) {
				tx.IsInstallment = true
				tx.InstallmentCount = intPtr(1)
			},
		},
		{
			name: "installment count required",
			mutate: func(tx *transaction.Transaction) {
				tx.IsInstallment = true
			},
		},
		{
			name: "day of month below range",
			mutate: func(tx *transaction.Transaction) {
				tx.IsFixed = true
				tx.DayOfMonth = intPtr(0)
			},
		},
		{
			name: "day of month above range",
			mutate: func(tx *transaction.Transaction) {
				tx.IsFixed = true
				tx.DayOfMonth = intPtr(32)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&fakeTransactionRepository{})
			tx := validTransaction(userID)
			tt.mutate(tx)

			err := svc.Create(ctx, tx)
			if err == nil {
				t.Fatalf("expected error")
			}
			appErr, ok := appErrors.AsAppError(err)
			if !ok || appErr.Code != "VALIDATION_ERROR" {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestServiceCreateGeneratesInstallments(t *testing.T) {
	t.Parallel()

	userID := ulid.Make()
	var created *transaction.Transaction
	svc := newTestService(&fakeTransactionRepository{
		createFn: func(ctx context.Context, tx *transaction.Transaction) error {
			created = tx
			return nil
		},
	})

	tx := validTransaction(userID)
	tx.TotalAmount = 300
	tx.IsInstallment = true
	tx.InstallmentCount = intPtr(3)

	if err := svc.Create(context.Background(), tx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil {
		t.Fatalf("expected repository create to be called")
	}
	if pkg.IsEmptyULID(created.Id) {
		t.Fatalf("expected generated id")
	}
	if len(created.Installments) != 3 {
		t.Fatalf("expected 3 installments, got %d", len(created.Installments))
	}
	for _, inst := range created.Installments {
		if inst.Amount != 100 || inst.IsPaid {
			t.Fatalf("unexpected installment %+v", inst)
		}
	}
}

func TestServiceCreateClearsIrrelevantFields(t *testing.T) {
	t.Parallel()

	var created *transaction.Transaction
	svc := newTestService(&fakeTransactionRepository{
		createFn: func(ctx context.Context, tx *transaction.Transaction) error {
			created = tx
			return nil
		},
	})

	tx := validTransaction(ulid.Make())
	tx.InstallmentCount = intPtr(5)
	tx.DayOfMonth = intPtr(10)

	if err := svc.Create(context.Background(), tx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.InstallmentCount != nil || created.DayOfMonth != nil {
		t.Fatalf("expected irrelevant fields to be cleared, got %+v", created)
	}
}

func TestServiceUpdateRegeneratesOnAmountChange(t *testing.T) {
	t.Parallel()

	userID := ulid.Make()
	transactionID := ulid.Make()

	existing := validTransaction(userID)
	existing.Id = transactionID
	existing.TotalAmount = 200
	existing.IsInstallment = true
	existing.InstallmentCount = intPtr(2)
	existing.Installments = []*transaction.Installment{
		{Id: ulid.Make(), TransactionId: transactionID, InstallmentNumber: 1, Amount: 100, IsPaid: true},
		{Id: ulid.Make(), TransactionId: transactionID, InstallmentNumber: 2, Amount: 100},
	}

	var persisted *transaction.Transaction
	plainUpdateCalled := false
	svc := newTestService(&fakeTransactionRepository{
		getByIDAndUserFn: func(ctx context.Context, id, uid ulid.ULID) (*transaction.Transaction, error) {
			return existing, nil
		},
		updateWithInstallmentsFn: func(ctx context.Context, tx *transaction.Transaction) error {
			persisted = tx
			return nil
		},
		updateFn: func(ctx context.Context, tx *transaction.Transaction) error {
			plainUpdateCalled = true
			return nil
		},
	})

	update := validTransaction(userID)
	update.Id = transactionID
	update.TotalAmount = 400
	update.IsInstallment = true
	update.InstallmentCount = intPtr(2)

	if err := svc.Update(context.Background(), update); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if persisted == nil {
		t.Fatalf("expected row and installments to be persisted together")
	}
	if plainUpdateCalled {
		t.Fatalf("row must not be written outside the combined update")
	}
	if persisted.TotalAmount != 400 {
		t.Fatalf("expected persisted amount 400, got %v", persisted.TotalAmount)
	}
	if len(persisted.Installments) != 2 {
		t.Fatalf("expected installments to be replaced, got %d", len(persisted.Installments))
	}
	for _, inst := range persisted.Installments {
		if inst.Amount != 200 {
			t.Fatalf("expected amount 200, got %v", inst.Amount)
		}
		if inst.IsPaid {
			t.Fatalf("payment progress must be discarded on regeneration")
		}
	}
}

func TestServiceUpdateRegenerationFailureLeavesNoPartialWrite(t *testing.T) {
	t.Parallel()

	userID := ulid.Make()
	transactionID := ulid.Make()

	existing := validTransaction(userID)
	existing.Id = transactionID
	existing.TotalAmount = 200
	existing.IsInstallment = true
	existing.InstallmentCount = intPtr(2)

	plainUpdateCalled := false
	svc := newTestService(&fakeTransactionRepository{
		getByIDAndUserFn: func(ctx context.Context, id, uid ulid.ULID) (*transaction.Transaction, error) {
			return existing, nil
		},
		updateWithInstallmentsFn: func(ctx context.Context, tx *transaction.Transaction) error {
			return errors.New("conexão perdida")
		},
		updateFn: func(ctx context.Context, tx *transaction.Transaction) error {
			plainUpdateCalled = true
			return nil
		},
	})

	update := validTransaction(userID)
	update.Id = transactionID
	update.TotalAmount = 400
	update.IsInstallment = true
	update.InstallmentCount = intPtr(2)

	err := svc.Update(context.Background(), update)
	appErr, ok := appErrors.AsAppError(err)
	if !ok || appErr.Code != "DATABASE_ERROR" {
		t.Fatalf("expected database error, got %v", err)
	}
	// A gravação é uma única chamada atômica: falhou, nada mais pode ter
	// sido escrito por fora dela.
	if plainUpdateCalled {
		t.Fatalf("no separate row write may happen when the combined update fails")
	}
}

func TestServiceUpdateKeepsInstallmentsWhenUnchanged(t *testing.T) {
	t.Parallel()

	userID := ulid.Make()
	transactionID := ulid.Make()

	existing := validTransaction(userID)
	existing.Id = transactionID
	existing.IsInstallment = true
	existing.InstallmentCount = intPtr(2)

	combinedCalled := false
	svc := newTestService(&fakeTransactionRepository{
		getByIDAndUserFn: func(ctx context.Context, id, uid ulid.ULID) (*transaction.Transaction, error) {
			return existing, nil
		},
		updateWithInstallmentsFn: func(ctx context.Context, tx *transaction.Transaction) error {
			combinedCalled = true
			return nil
		},
	})

	update := validTransaction(userID)
	update.Id = transactionID
	update.Description = "Mercado do mês"
	update.IsInstallment = true
	update.InstallmentCount = intPtr(2)

	if err := svc.Update(context.Background(), update); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if combinedCalled {
		t.Fatalf("expected installments to be kept when nothing relevant changed")
	}
}

func TestServiceUpdateNotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fakeTransactionRepository{})

	update := validTransaction(ulid.Make())
	update.Id = ulid.Make()

	err := svc.Update(context.Background(), update)
	appErr, ok := appErrors.AsAppError(err)
	if !ok || appErr.Code != appErrors.ErrTransactionNotFound.Code {
		t.Fatalf("expected transaction not found, got %v", err)
	}
}

func TestServiceTogglePaid(t *testing.T) {
	t.Parallel()

	userID := ulid.Make()
	ctx := context.Background()

	t.Run("simple transaction toggles", func(t *testing.T) {
		existing := validTransaction(userID)
		existing.Id = ulid.Make()

		var updated *transaction.Transaction
		svc := newTestService(&fakeTransactionRepository{
			getByIDAndUserFn: func(ctx context.Context, id, uid ulid.ULID) (*transaction.Transaction, error) {
				return existing, nil
			},
			updateFn: func(ctx context.Context, tx *transaction.Transaction) error {
				updated = tx
				return nil
			},
		})

		result, err := svc.TogglePaid(ctx, existing.Id, userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsPaid || updated == nil || !updated.IsPaid {
			t.Fatalf("expected transaction to become paid")
		}
	})

	t.Run("installment parent is rejected", func(t *testing.T) {
		existing := validTransaction(userID)
		existing.Id = ulid.Make()
		existing.IsInstallment = true
		existing.InstallmentCount = intPtr(2)

		svc := newTestService(&fakeTransactionRepository{
			getByIDAndUserFn: func(ctx context.Context, id, uid ulid.ULID) (*transaction.Transaction, error) {
				return existing, nil
			},
		})

		_, err := svc.TogglePaid(ctx, existing.Id, userID)
		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != "VALIDATION_ERROR" {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("fixed transaction is rejected", func(t *testing.T) {
		existing := validTransaction(userID)
		existing.Id = ulid.Make()
		existing.IsFixed = true
		existing.DayOfMonth = intPtr(5)

		svc := newTestService(&fakeTransactionRepository{
			getByIDAndUserFn: func(ctx context.Context, id, uid ulid.ULID) (*transaction.Transaction, error) {
				return existing, nil
			},
		})

		_, err := svc.TogglePaid(ctx, existing.Id, userID)
		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != "VALIDATION_ERROR" {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestServiceToggleInstallmentPaid(t *testing.T) {
	t.Parallel()

	userID := ulid.Make()
	transactionID := ulid.Make()
	installmentID := ulid.Make()
	ctx := context.Background()

	t.Run("ownership is enforced through the parent", func(t *testing.T) {
		svc := newTestService(&fakeTransactionRepository{
			getInstallmentFn: func(ctx context.Context, id ulid.ULID) (*transaction.Installment, error) {
				return &transaction.Installment{Id: id, TransactionId: transactionID}, nil
			},
			getByIDAndUserFn: func(ctx context.Context, id, uid ulid.ULID) (*transaction.Transaction, error) {
				return nil, gorm.ErrRecordNotFound
			},
		})

		_, err := svc.ToggleInstallmentPaid(ctx, installmentID, userID)
		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != appErrors.ErrResourceNotOwned.Code {
			t.Fatalf("expected resource not owned, got %v", err)
		}
	})

	t.Run("unknown installment", func(t *testing.T) {
		svc := newTestService(&fakeTransactionRepository{})

		_, err := svc.ToggleInstallmentPaid(ctx, installmentID, userID)
		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != appErrors.ErrInstallmentNotFound.Code {
			t.Fatalf("expected installment not found, got %v", err)
		}
	})

	t.Run("toggles and persists", func(t *testing.T) {
		parent := validTransaction(userID)
		parent.Id = transactionID
		parent.IsInstallment = true
		parent.InstallmentCount = intPtr(2)

		var updated *transaction.Installment
		svc := newTestService(&fakeTransactionRepository{
			getInstallmentFn: func(ctx context.Context, id ulid.ULID) (*transaction.Installment, error) {
				return &transaction.Installment{Id: id, TransactionId: transactionID, Amount: 50}, nil
			},
			getByIDAndUserFn: func(ctx context.Context, id, uid ulid.ULID) (*transaction.Transaction, error) {
				return parent, nil
			},
			updateInstallmentFn: func(ctx context.Context, inst *transaction.Installment) error {
				updated = inst
				return nil
			},
		})

		result, err := svc.ToggleInstallmentPaid(ctx, installmentID, userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsPaid || updated == nil || !updated.IsPaid {
			t.Fatalf("expected installment to become paid")
		}
	})
}
