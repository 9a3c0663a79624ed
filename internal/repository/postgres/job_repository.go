package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"talenthub/internal/common"
	"talenthub/internal/domain/job"
)

type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

const jobColumns = `id, owner_id, owner_role, title, category, description, tags, status, created_at, updated_at`

func (r *JobRepository) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	j.ID = common.NewUUID()
	now := time.Now().UTC()
	j.CreatedAt = now
	j.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO jobs (`+jobColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		j.ID, j.OwnerID, j.OwnerRole, j.Title, j.Category, j.Description, pq.Array(j.Tags), j.Status, j.CreatedAt, j.UpdatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create job", err)
	}
	return &j, nil
}

func (r *JobRepository) Update(ctx context.Context, j job.Job) (*job.Job, error) {
	j.UpdatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `UPDATE jobs SET title = $1, category = $2, description = $3, tags = $4, status = $5, updated_at = $6
		WHERE id = $7 AND owner_id = $8`,
		j.Title, j.Category, j.Description, pq.Array(j.Tags), j.Status, j.UpdatedAt, j.ID, j.OwnerID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update job", err)
	}
	return r.GetByID(ctx, j.ID)
}

func (r *JobRepository) GetByID(ctx context.Context, id common.UUID) (*job.Job, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	return scanJob(row)
}

func (r *JobRepository) ListActive(ctx context.Context, limit, offset int) ([]job.Job, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+jobColumns+` FROM jobs
		WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		job.StatusActive, limit, offset)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list jobs", err)
	}
	defer rows.Close()
	return collectJobs(rows)
}

func (r *JobRepository) ListByOwner(ctx context.Context, ownerID common.UUID) ([]job.Job, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+jobColumns+` FROM jobs
		WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list owner jobs", err)
	}
	defer rows.Close()
	return collectJobs(rows)
}

// Delete relies on the applications FK cascade; notifications are untouched
// and keep their dangling job reference.
func (r *JobRepository) Delete(ctx context.Context, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete job", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete job", err)
	}
	if affected == 0 {
		return common.NewError(common.CodeNotFound, "job not found", nil)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*job.Job, error) {
	var j job.Job
	if err := row.Scan(&j.ID, &j.OwnerID, &j.OwnerRole, &j.Title, &j.Category, &j.Description, pq.Array(&j.Tags), &j.Status, &j.CreatedAt, &j.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "job not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load job", err)
	}
	return &j, nil
}

func collectJobs(rows *sql.Rows) ([]job.Job, error) {
	var items []job.Job
	for rows.Next() {
		var j job.Job
		if err := rows.Scan(&j.ID, &j.OwnerID, &j.OwnerRole, &j.Title, &j.Category, &j.Description, pq.Array(&j.Tags), &j.Status, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan job", err)
		}
		items = append(items, j)
	}
	return items, nil
}
