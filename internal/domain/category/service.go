package category

import (
	"context"
	"errors"
	"time"

	"github.com/bielborgesc/piggino/internal/domain/shared"
	appErrors "github.com/bielborgesc/piggino/internal/errors"
	"github.com/bielborgesc/piggino/internal/pkg"
	"github.com/bielborgesc/piggino/internal/pkg/query"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type Service struct {
	Repository Repository
	shared.BaseService
}

func NewService(repo Repository, userChecker *shared.UserCheckerService) *Service {
	return &Service{
		Repository: repo,
		BaseService: shared.BaseService{
			UserChecker: userChecker,
		},
	}
}

func (s *Service) Create(ctx context.Context, category *Category) error {
	if err := s.EnsureUserExists(ctx, category.UserId); err != nil {
		return err
	}

	category.Name = shared.NormalizeName(category.Name)
	if category.Name == "" {
		return appErrors.NewValidationError("name", "é obrigatório")
	}
	if !category.Type.IsValid() {
		return appErrors.NewValidationError("type", "deve ser INCOME ou EXPENSE")
	}

	if err := s.checkNameNotExists(ctx, category.Name, category.UserId); err != nil {
		return err
	}

	category.Id = pkg.GenerateULIDObject()
	now := time.Now()
	category.CreatedAt = now
	category.UpdatedAt = now

	if err := s.Repository.Create(ctx, category); err != nil {
		if shared.IsUniqueConstraintError(err) {
			return appErrors.NewConflictError("categoria")
		}
		return appErrors.NewDatabaseError(err)
	}

	return nil
}

func (s *Service) Update(ctx context.Context, category *Category) error {
	if err := s.EnsureUserExists(ctx, category.UserId); err != nil {
		return err
	}

	existing, err := s.Repository.GetByID(ctx, category.Id, category.UserId)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return appErrors.ErrCategoryNotFound
	}
	if err != nil {
		return appErrors.NewDatabaseError(err)
	}

	category.Name = shared.NormalizeName(category.Name)
	if category.Name == "" {
		return appErrors.NewValidationError("name", "é obrigatório")
	}
	if !category.Type.IsValid() {
		return appErrors.NewValidationError("type", "deve ser INCOME ou EXPENSE")
	}

	if existing.Name != category.Name {
		if err := s.checkNameNotExists(ctx, category.Name, category.UserId); err != nil {
			return err
		}
	}

	existing.Name = category.Name
	existing.Type = category.Type
	existing.UpdatedAt = time.Now()

	return s.Repository.Update(ctx, existing)
}

func (s *Service) Delete(ctx context.Context, categoryID, userID ulid.ULID) error {
	if err := s.EnsureUserExists(ctx, userID); err != nil {
		return err
	}

	if _, err := s.Repository.GetByID(ctx, categoryID, userID); errors.Is(err, gorm.ErrRecordNotFound) {
		return appErrors.ErrCategoryNotFound
	} else if err != nil {
		return appErrors.NewDatabaseError(err)
	}

	return s.Repository.Delete(ctx, categoryID, userID)
}

func (s *Service) GetByID(ctx context.Context, categoryID, userID ulid.ULID) (*Category, error) {
	if err := s.EnsureUserExists(ctx, userID); err != nil {
		return nil, err
	}

	category, err := s.Repository.GetByID(ctx, categoryID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErrors.ErrCategoryNotFound
	}
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return category, nil
}

func (s *Service) GetAll(ctx context.Context, userID ulid.ULID, page query.Page) (*query.Result[*Category], error) {
	if err := s.EnsureUserExists(ctx, userID); err != nil {
		return nil, err
	}

	result, err := s.Repository.GetAll(ctx, userID, page)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return result, nil
}

func (s *Service) ValidateAndEnsureExists(ctx context.Context, categoryID, userID ulid.ULID) error {
	owned, err := s.Repository.BelongsToUser(ctx, categoryID, userID)
	if err != nil {
		return appErrors.NewDatabaseError(err)
	}
	if !owned {
		return appErrors.ErrCategoryNotFound
	}
	return nil
}

func (s *Service) checkNameNotExists(ctx context.Context, name string, userID ulid.ULID) error {
	_, err := s.Repository.GetByName(ctx, name, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return appErrors.NewDatabaseError(err)
	}

	return appErrors.NewConflictError("categoria")
}
