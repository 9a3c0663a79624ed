package application

import (
	"context"

	"talenthub/internal/common"
)

type Repository interface {
	Create(ctx context.Context, app Application) (*Application, error)
	Get(ctx context.Context, jobID, id common.UUID) (*Application, error)
	FindByJobAndApplicant(ctx context.Context, jobID, applicantID common.UUID) (*Application, error)
	List(ctx context.Context, filter Filter) ([]Application, error)
	UpdateStatus(ctx context.Context, jobID, id common.UUID, status Status) (*Application, error)
	Delete(ctx context.Context, jobID, id common.UUID) error
}
