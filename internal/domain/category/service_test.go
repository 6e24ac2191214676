package category_test

import (
	"context"
	"testing"

	"github.com/bielborgesc/piggino/internal/domain/category"
	"github.com/bielborgesc/piggino/internal/domain/shared"
	appErrors "github.com/bielborgesc/piggino/internal/errors"
	"github.com/bielborgesc/piggino/internal/pkg"
	"github.com/bielborgesc/piggino/internal/pkg/query"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type fakeCategoryRepository struct {
	createFn        func(ctx context.Context, c *category.Category) error
	updateFn        func(ctx context.Context, c *category.Category) error
	deleteFn        func(ctx context.Context, categoryID, userID ulid.ULID) error
	getByIDFn       func(ctx context.Context, categoryID, userID ulid.ULID) (*category.Category, error)
	getAllFn        func(ctx context.Context, userID ulid.ULID, page query.Page) (*query.Result[*category.Category], error)
	getByNameFn     func(ctx context.Context, name string, userID ulid.ULID) (*category.Category, error)
	belongsToUserFn func(ctx context.Context, categoryID, userID ulid.ULID) (bool, error)
}

func (f *fakeCategoryRepository) Create(ctx context.Context, c *category.Category) error {
	if f.createFn != nil {
		return f.createFn(ctx, c)
	}
	return nil
}

func (f *fakeCategoryRepository) Update(ctx context.Context, c *category.Category) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, c)
	}
	return nil
}

func (f *fakeCategoryRepository) Delete(ctx context.Context, categoryID, userID ulid.ULID) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, categoryID, userID)
	}
	return nil
}

func (f *fakeCategoryRepository) GetByID(ctx context.Context, categoryID, userID ulid.ULID) (*category.Category, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, categoryID, userID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCategoryRepository) GetAll(ctx context.Context, userID ulid.ULID, page query.Page) (*query.Result[*category.Category], error) {
	if f.getAllFn != nil {
		return f.getAllFn(ctx, userID, page)
	}
	return &query.Result[*category.Category]{}, nil
}

func (f *fakeCategoryRepository) GetByName(ctx context.Context, name string, userID ulid.ULID) (*category.Category, error) {
	if f.getByNameFn != nil {
		return f.getByNameFn(ctx, name, userID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCategoryRepository) BelongsToUser(ctx context.Context, categoryID, userID ulid.ULID) (bool, error) {
	if f.belongsToUserFn != nil {
		return f.belongsToUserFn(ctx, categoryID, userID)
	}
	return false, nil
}

type fakeUserChecker struct{}

func (f *fakeUserChecker) Exists(ctx context.Context, userID ulid.ULID) error { return nil }

func newTestService(repo category.Repository) *category.Service {
	return category.NewService(repo, shared.NewUserCheckerService(&fakeUserChecker{}))
}

func TestServiceCreate(t *testing.T) {
	t.Parallel()

	userID := ulid.Make()
	ctx := context.Background()

	t.Run("normalizes name and fills metadata", func(t *testing.T) {
		var created *category.Category
		svc := newTestService(&fakeCategoryRepository{
			createFn: func(ctx context.Context, c *category.Category) error {
				created = c
				return nil
			},
		})

		err := svc.Create(ctx, &category.Category{
			UserId: userID,
			Name:   "  Alimentação  ",
			Type:   category.TypeExpense,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created.Name != "Alimentação" {
			t.Fatalf("expected trimmed name, got %q", created.Name)
		}
		if pkg.IsEmptyULID(created.Id) {
			t.Fatalf("expected generated id")
		}
	})

	t.Run("empty name", func(t *testing.T) {
		svc := newTestService(&fakeCategoryRepository{})
		err := svc.Create(ctx, &category.Category{UserId: userID, Name: "   ", Type: category.TypeExpense})
		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != "VALIDATION_ERROR" {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("invalid type", func(t *testing.T) {
		svc := newTestService(&fakeCategoryRepository{})
		err := svc.Create(ctx, &category.Category{UserId: userID, Name: "Lazer", Type: "OTHER"})
		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != "VALIDATION_ERROR" {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("duplicate name", func(t *testing.T) {
		svc := newTestService(&fakeCategoryRepository{
			getByNameFn: func(ctx context.Context, name string, uid ulid.ULID) (*category.Category, error) {
				return &category.Category{Name: name}, nil
			},
		})
		err := svc.Create(ctx, &category.Category{UserId: userID, Name: "Lazer", Type: category.TypeExpense})
		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != "CONFLICT" {
			t.Fatalf("expected conflict, got %v", err)
		}
	})
}

func TestServiceUpdate(t *testing.T) {
	t.Parallel()

	userID := ulid.Make()
	categoryID := ulid.Make()
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		svc := newTestService(&fakeCategoryRepository{})
		err := svc.Update(ctx, &category.Category{Id: categoryID, UserId: userID, Name: "Lazer", Type: category.TypeExpense})
		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != appErrors.ErrCategoryNotFound.Code {
			t.Fatalf("expected category not found, got %v", err)
		}
	})

	t.Run("renaming to an existing name conflicts", func(t *testing.T) {
		svc := newTestService(&fakeCategoryRepository{
			getByIDFn: func(ctx context.Context, id, uid ulid.ULID) (*category.Category, error) {
				return &category.Category{Id: id, UserId: uid, Name: "Lazer", Type: category.TypeExpense}, nil
			},
			getByNameFn: func(ctx context.Context, name string, uid ulid.ULID) (*category.Category, error) {
				return &category.Category{Name: name}, nil
			},
		})
		err := svc.Update(ctx, &category.Category{Id: categoryID, UserId: userID, Name: "Mercado", Type: category.TypeExpense})
		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != "CONFLICT" {
			t.Fatalf("expected conflict, got %v", err)
		}
	})

	t.Run("keeping the same name skips the uniqueness check", func(t *testing.T) {
		var updated *category.Category
		svc := newTestService(&fakeCategoryRepository{
			getByIDFn: func(ctx context.Context, id, uid ulid.ULID) (*category.Category, error) {
				return &category.Category{Id: id, UserId: uid, Name: "Lazer", Type: category.TypeExpense}, nil
			},
			getByNameFn: func(ctx context.Context, name string, uid ulid.ULID) (*category.Category, error) {
				t.Fatalf("uniqueness check must not run")
				return nil, nil
			},
			updateFn: func(ctx context.Context, c *category.Category) error {
				updated = c
				return nil
			},
		})
		err := svc.Update(ctx, &category.Category{Id: categoryID, UserId: userID, Name: "Lazer", Type: category.TypeIncome})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated == nil || updated.Type != category.TypeIncome {
			t.Fatalf("expected type to be updated, got %+v", updated)
		}
	})
}

func TestServiceValidateAndEnsureExists(t *testing.T) {
	t.Parallel()

	userID := ulid.Make()
	categoryID := ulid.Make()
	ctx := context.Background()

	t.Run("owned", func(t *testing.T) {
		svc := newTestService(&fakeCategoryRepository{
			belongsToUserFn: func(ctx context.Context, id, uid ulid.ULID) (bool, error) {
				return true, nil
			},
		})
		if err := svc.ValidateAndEnsureExists(ctx, categoryID, userID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("not owned", func(t *testing.T) {
		svc := newTestService(&fakeCategoryRepository{})
		err := svc.ValidateAndEnsureExists(ctx, categoryID, userID)
		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != appErrors.ErrCategoryNotFound.Code {
			t.Fatalf("expected category not found, got %v", err)
		}
	})
}
