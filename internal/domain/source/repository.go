package source

import (
	"context"

	"github.com/bielborgesc/piggino/internal/pkg/query"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	Create(ctx context.Context, src *FinancialSource) error
	Update(ctx context.Context, src *FinancialSource) error
	Delete(ctx context.Context, sourceID ulid.ULID, userID ulid.ULID) error
	GetByID(ctx context.Context, sourceID ulid.ULID, userID ulid.ULID) (*FinancialSource, error)
	GetAll(ctx context.Context, userID ulid.ULID, page query.Page) (*query.Result[*FinancialSource], error)
	BelongsToUser(ctx context.Context, sourceID ulid.ULID, userID ulid.ULID) (bool, error)
}
