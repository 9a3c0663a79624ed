package job

import (
	"context"

	"talenthub/internal/common"
)

type Repository interface {
	Create(ctx context.Context, job Job) (*Job, error)
	Update(ctx context.Context, job Job) (*Job, error)
	GetByID(ctx context.Context, id common.UUID) (*Job, error)
	ListActive(ctx context.Context, limit, offset int) ([]Job, error)
	ListByOwner(ctx context.Context, ownerID common.UUID) ([]Job, error)
	Delete(ctx context.Context, id common.UUID) error
}
