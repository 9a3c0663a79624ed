package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"talenthub/internal/common"
	"talenthub/internal/domain/application"
)

type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const applicationColumns = `id, job_id, applicant_id, status, cover_letter, resume_ref, applied_at, updated_at`

// Create maps the (job_id, applicant_id) unique constraint to a duplicate
// error, closing the check-then-insert race between concurrent submissions.
func (r *ApplicationRepository) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	app.ID = common.NewUUID()
	now := time.Now().UTC()
	app.AppliedAt = now
	app.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO applications (`+applicationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		app.ID, app.JobID, app.ApplicantID, app.Status, app.CoverLetter, app.ResumeRef, app.AppliedAt, app.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeDuplicate, "already applied", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create application", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) Get(ctx context.Context, jobID, id common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE job_id = $1 AND id = $2`, jobID, id)
	return scanApplication(row)
}

func (r *ApplicationRepository) FindByJobAndApplicant(ctx context.Context, jobID, applicantID common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE job_id = $1 AND applicant_id = $2`, jobID, applicantID)
	return scanApplication(row)
}

func (r *ApplicationRepository) List(ctx context.Context, filter application.Filter) ([]application.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications`
	var conditions []string
	var args []any
	if filter.JobID != nil {
		args = append(args, *filter.JobID)
		conditions = append(conditions, fmt.Sprintf("job_id = $%d", len(args)))
	}
	if filter.ApplicantID != nil {
		args = append(args, *filter.ApplicantID)
		conditions = append(conditions, fmt.Sprintf("applicant_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	for i, condition := range conditions {
		if i == 0 {
			query += " WHERE " + condition
		} else {
			query += " AND " + condition
		}
	}
	order := "ASC"
	if filter.Descending {
		order = "DESC"
	}
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(" ORDER BY applied_at %s, id %s LIMIT $%d OFFSET $%d", order, order, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	defer rows.Close()
	var items []application.Application
	for rows.Next() {
		var app application.Application
		if err := rows.Scan(&app.ID, &app.JobID, &app.ApplicantID, &app.Status, &app.CoverLetter, &app.ResumeRef, &app.AppliedAt, &app.UpdatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan application", err)
		}
		items = append(items, app)
	}
	return items, nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, jobID, id common.UUID, status application.Status) (*application.Application, error) {
	updatedAt := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `UPDATE applications SET status = $1, updated_at = $2 WHERE job_id = $3 AND id = $4`,
		status, updatedAt, jobID, id)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update application", err)
	}
	return r.Get(ctx, jobID, id)
}

func (r *ApplicationRepository) Delete(ctx context.Context, jobID, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM applications WHERE job_id = $1 AND id = $2`, jobID, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete application", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete application", err)
	}
	if affected == 0 {
		return common.NewError(common.CodeNotFound, "application not found", nil)
	}
	return nil
}

func scanApplication(row rowScanner) (*application.Application, error) {
	var app application.Application
	if err := row.Scan(&app.ID, &app.JobID, &app.ApplicantID, &app.Status, &app.CoverLetter, &app.ResumeRef, &app.AppliedAt, &app.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	return &app, nil
}

func isUniqueViolation(err error) bool {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code == "23505"
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
