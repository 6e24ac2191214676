package infrastructure

import (
	"context"
	"time"

	"github.com/bielborgesc/piggino/internal/domain/source"
	"github.com/bielborgesc/piggino/internal/pkg"
	"github.com/bielborgesc/piggino/internal/pkg/query"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type FinancialSourceRepository struct {
	DB *gorm.DB
}

var _ source.Repository = (*FinancialSourceRepository)(nil)

func NewFinancialSourceRepository(db *gorm.DB) *FinancialSourceRepository {
	return &FinancialSourceRepository{DB: db}
}

type financialSourceDB struct {
	Id         string    `gorm:"type:varchar(26);primaryKey"`
	UserId     string    `gorm:"type:varchar(26);index;not null"`
	Name       string    `gorm:"size:100;not null"`
	Type       string    `gorm:"type:varchar(10);not null"`
	ClosingDay *int      `gorm:"column:closing_day"`
	DueDay     *int      `gorm:"column:due_day"`
	CreatedAt  time.Time `gorm:"type:timestamp"`
	UpdatedAt  time.Time `gorm:"type:timestamp"`
}

func toDomainFinancialSource(sdb *financialSourceDB) (*source.FinancialSource, error) {
	id, err := pkg.ParseULID(sdb.Id)
	if err != nil {
		return nil, err
	}
	uid, err := pkg.ParseULID(sdb.UserId)
	if err != nil {
		return nil, err
	}
	return &source.FinancialSource{
		Id:         id,
		UserId:     uid,
		Name:       sdb.Name,
		Type:       source.Type(sdb.Type),
		ClosingDay: sdb.ClosingDay,
		DueDay:     sdb.DueDay,
		CreatedAt:  sdb.CreatedAt,
		UpdatedAt:  sdb.UpdatedAt,
	}, nil
}

func toDBFinancialSource(s *source.FinancialSource) *financialSourceDB {
	return &financialSourceDB{
		Id:         s.Id.String(),
		UserId:     s.UserId.String(),
		Name:       s.Name,
		Type:       string(s.Type),
		ClosingDay: s.ClosingDay,
		DueDay:     s.DueDay,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func (r *FinancialSourceRepository) Create(ctx context.Context, s *source.FinancialSource) error {
	sdb := toDBFinancialSource(s)
	return r.DB.WithContext(ctx).Table("financial_sources").Create(sdb).Error
}

func (r *FinancialSourceRepository) Update(ctx context.Context, s *source.FinancialSource) error {
	sdb := toDBFinancialSource(s)
	// Select("*") para persistir ClosingDay/DueDay anulados.
	return r.DB.WithContext(ctx).Table("financial_sources").
		Where("id = ?", sdb.Id).
		Select("*").Omit("id", "user_id", "created_at").
		Updates(sdb).Error
}

func (r *FinancialSourceRepository) Delete(ctx context.Context, sourceID ulid.ULID, userID ulid.ULID) error {
	return r.DB.WithContext(ctx).Table("financial_sources").
		Where("id = ? AND user_id = ?", sourceID.String(), userID.String()).
		Delete(&financialSourceDB{}).Error
}

func (r *FinancialSourceRepository) GetByID(ctx context.Context, sourceID ulid.ULID, userID ulid.ULID) (*source.FinancialSource, error) {
	var row financialSourceDB
	err := r.DB.WithContext(ctx).Table("financial_sources").
		Where("id = ? AND user_id = ?", sourceID.String(), userID.String()).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return toDomainFinancialSource(&row)
}

func (r *FinancialSourceRepository) GetAll(ctx context.Context, userID ulid.ULID, page query.Page) (*query.Result[*source.FinancialSource], error) {
	q := query.New[financialSourceDB](r.DB, "financial_sources").
		Context(ctx).
		Where("user_id = ?", userID.String()).
		Order("name ASC")
	return query.Paginate(q, page, toDomainFinancialSource)
}

func (r *FinancialSourceRepository) BelongsToUser(ctx context.Context, sourceID ulid.ULID, userID ulid.ULID) (bool, error) {
	return query.New[financialSourceDB](r.DB, "financial_sources").
		Context(ctx).
		Where("id = ? AND user_id = ?", sourceID.String(), userID.String()).
		Exists()
}
