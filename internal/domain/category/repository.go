package category

import (
	"context"

	"github.com/bielborgesc/piggino/internal/pkg/query"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	Create(ctx context.Context, category *Category) error
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, categoryID ulid.ULID, userID ulid.ULID) error
	GetByID(ctx context.Context, categoryID ulid.ULID, userID ulid.ULID) (*Category, error)
	GetAll(ctx context.Context, userID ulid.ULID, page query.Page) (*query.Result[*Category], error)
	GetByName(ctx context.Context, categoryName string, userID ulid.ULID) (*Category, error)
	BelongsToUser(ctx context.Context, categoryID ulid.ULID, userID ulid.ULID) (bool, error)
}
