package infrastructure

import (
	"context"
	"time"

	"github.com/bielborgesc/piggino/internal/domain/category"
	"github.com/bielborgesc/piggino/internal/pkg"
	"github.com/bielborgesc/piggino/internal/pkg/query"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

var _ category.Repository = (*CategoryRepository)(nil)

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

type categoryDB struct {
	Id        string    `gorm:"type:varchar(26);primaryKey"`
	UserId    string    `gorm:"type:varchar(26);index;not null"`
	Name      string    `gorm:"size:100;not null"`
	Type      string    `gorm:"type:varchar(10);not null"`
	CreatedAt time.Time `gorm:"type:timestamp"`
	UpdatedAt time.Time `gorm:"type:timestamp"`
}

func toDomainCategory(cdb *categoryDB) (*category.Category, error) {
	id, err := pkg.ParseULID(cdb.Id)
	if err != nil {
		return nil, err
	}
	uid, err := pkg.ParseULID(cdb.UserId)
	if err != nil {
		return nil, err
	}
	return &category.Category{
		Id:        id,
		UserId:    uid,
		Name:      cdb.Name,
		Type:      category.Type(cdb.Type),
		CreatedAt: cdb.CreatedAt,
		UpdatedAt: cdb.UpdatedAt,
	}, nil
}

func toDBCategory(c *category.Category) *categoryDB {
	return &categoryDB{
		Id:        c.Id.String(),
		UserId:    c.UserId.String(),
		Name:      c.Name,
		Type:      string(c.Type),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (r *CategoryRepository) Create(ctx context.Context, c *category.Category) error {
	cdb := toDBCategory(c)
	return r.DB.WithContext(ctx).Table("categories").Create(cdb).Error
}

func (r *CategoryRepository) Update(ctx context.Context, c *category.Category) error {
	cdb := toDBCategory(c)
	return r.DB.WithContext(ctx).Table("categories").Where("id = ?", cdb.Id).Updates(cdb).Error
}

func (r *CategoryRepository) Delete(ctx context.Context, categoryID ulid.ULID, userID ulid.ULID) error {
	return r.DB.WithContext(ctx).Table("categories").
		Where("id = ? AND user_id = ?", categoryID.String(), userID.String()).
		Delete(&categoryDB{}).Error
}

func (r *CategoryRepository) GetByID(ctx context.Context, categoryID ulid.ULID, userID ulid.ULID) (*category.Category, error) {
	var row categoryDB
	err := r.DB.WithContext(ctx).Table("categories").
		Where("id = ? AND user_id = ?", categoryID.String(), userID.String()).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return toDomainCategory(&row)
}

func (r *CategoryRepository) GetAll(ctx context.Context, userID ulid.ULID, page query.Page) (*query.Result[*category.Category], error) {
	q := query.New[categoryDB](r.DB, "categories").
		Context(ctx).
		Where("user_id = ?", userID.String()).
		Order("name ASC")
	return query.Paginate(q, page, toDomainCategory)
}

func (r *CategoryRepository) GetByName(ctx context.Context, categoryName string, userID ulid.ULID) (*category.Category, error) {
	var row categoryDB
	err := r.DB.WithContext(ctx).Table("categories").
		Where("name = ? AND user_id = ?", categoryName, userID.String()).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return toDomainCategory(&row)
}

func (r *CategoryRepository) BelongsToUser(ctx context.Context, categoryID ulid.ULID, userID ulid.ULID) (bool, error) {
	return query.New[categoryDB](r.DB, "categories").
		Context(ctx).
		Where("id = ? AND user_id = ?", categoryID.String(), userID.String()).
		Exists()
}
