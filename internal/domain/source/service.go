package source

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

func (s *Service) Create(ctx context.Context, src *FinancialSource) error {
	if err := s.EnsureUserExists(ctx, src.UserId); err != nil {
		return err
	}

	if err := s.validate(src); err != nil {
		return err
	}

	src.Id = pkg.GenerateULIDObject()
	now := time.Now()
	src.CreatedAt = now
	src.UpdatedAt = now

	if err := s.Repository.Create(ctx, src); err != nil {
		return appErrors.NewDatabaseError(err)
	}

	return nil
}

func (s *Service) Update(ctx context.Context, src *FinancialSource) error {
	if err := s.EnsureUserExists(ctx, src.UserId); err != nil {
		return err
	}

	existing, err := s.Repository.GetByID(ctx, src.Id, src.UserId)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return appErrors.ErrFinancialSourceNotFound
	}
	if err != nil {
		return appErrors.NewDatabaseError(err)
	}

	if err := s.validate(src); err != nil {
		return err
	}

	existing.Name = src.Name
	existing.Type = src.Type
	existing.ClosingDay = src.ClosingDay
	existing.DueDay = src.DueDay
	existing.UpdatedAt = time.Now()

	return s.Repository.Update(ctx, existing)
}

func (s *Service) Delete(ctx context.Context, sourceID, userID ulid.ULID) error {
	if err := s.EnsureUserExists(ctx, userID); err != nil {
		return err
	}

	if _, err := s.Repository.GetByID(ctx, sourceID, userID); errors.Is(err, gorm.ErrRecordNotFound) {
		return appErrors.ErrFinancialSourceNotFound
	} else if err != nil {
		return appErrors.NewDatabaseError(err)
	}

	return s.Repository.Delete(ctx, sourceID, userID)
}

func (s *Service) GetByID(ctx context.Context, sourceID, userID ulid.ULID) (*FinancialSource, error) {
	if err := s.EnsureUserExists(ctx, userID); err != nil {
		return nil, err
	}

	src, err := s.Repository.GetByID(ctx, sourceID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErrors.ErrFinancialSourceNotFound
	}
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return src, nil
}

func (s *Service) GetAll(ctx context.Context, userID ulid.ULID, page query.Page) (*query.Result[*FinancialSource], error) {
	if err := s.EnsureUserExists(ctx, userID); err != nil {
		return nil, err
	}

	result, err := s.Repository.GetAll(ctx, userID, page)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return result, nil
}

func (s *Service) ValidateAndEnsureExists(ctx context.Context, sourceID, userID ulid.ULID) error {
	owned, err := s.Repository.BelongsToUser(ctx, sourceID, userID)
	if err != nil {
		return appErrors.NewDatabaseError(err)
	}
	if !owned {
		return appErrors.ErrFinancialSourceNotFound
	}
	return nil
}

func (s *Service) validate(src *FinancialSource) error {
	src.Name = strings.TrimSpace(src.Name)
	if src.Name == "" {
		return appErrors.NewValidationError("name", "é obrigatório")
	}
	if !src.Type.IsValid() {
		return appErrors.NewValidationError("type", "deve ser CARD, ACCOUNT ou CASH")
	}

	if src.Type != TypeCard {
		src.ClosingDay = nil
		src.DueDay = nil
		return nil
	}

	if src.ClosingDay != nil && (*src.ClosingDay < 1 || *src.ClosingDay > 31) {
		return appErrors.NewValidationError("closing_day", "deve estar entre 1 e 31")
	}
	if src.DueDay != nil && (*src.DueDay < 1 || *src.DueDay > 31) {
		return appErrors.NewValidationError("due_day", "deve estar entre 1 e 31")
	}

	return nil
}
