package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"talenthub/internal/common"
	"talenthub/internal/domain/notification"
)

type NotificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

const notificationColumns = `id, recipient_id, type, title, message, job_id, is_read, created_at`

func (r *NotificationRepository) Create(ctx context.Context, n notification.Notification) (*notification.Notification, error) {
	n.ID = common.NewUUID()
	n.CreatedAt = time.Now().UTC()
	n.IsRead = false
	_, err := r.db.ExecContext(ctx, `INSERT INTO notifications (`+notificationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		n.ID, n.RecipientID, n.Type, n.Title, n.Message, weakJobID(n.JobID), n.IsRead, n.CreatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create notification", err)
	}
	return &n, nil
}

func (r *NotificationRepository) Get(ctx context.Context, recipientID, id common.UUID) (*notification.Notification, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+notificationColumns+` FROM notifications
		WHERE recipient_id = $1 AND id = $2`, recipientID, id)
	return scanNotification(row)
}

func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipientID common.UUID, limit, offset int) ([]notification.Notification, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+notificationColumns+` FROM notifications
		WHERE recipient_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`,
		recipientID, limit, offset)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list notifications", err)
	}
	defer rows.Close()
	var items []notification.Notification
	for rows.Next() {
		var n notification.Notification
		var jobID sql.NullString
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.Type, &n.Title, &n.Message, &jobID, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan notification", err)
		}
		n.JobID = nullableJobID(jobID)
		items = append(items, n)
	}
	return items, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, recipientID common.UUID) (int, error) {
	row := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = FALSE`, recipientID)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to count unread notifications", err)
	}
	return count, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, recipientID, id common.UUID) error {
	_, err := r.db.ExecContext(ctx, `UPDATE notifications SET is_read = TRUE WHERE recipient_id = $1 AND id = $2`, recipientID, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to mark notification read", err)
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipientID common.UUID) error {
	_, err := r.db.ExecContext(ctx, `UPDATE notifications SET is_read = TRUE WHERE recipient_id = $1 AND is_read = FALSE`, recipientID)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to mark notifications read", err)
	}
	return nil
}

func (r *NotificationRepository) Delete(ctx context.Context, recipientID, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE recipient_id = $1 AND id = $2`, recipientID, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete notification", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete notification", err)
	}
	if affected == 0 {
		return common.NewError(common.CodeNotFound, "notification not found", nil)
	}
	return nil
}

func (r *NotificationRepository) DeleteAll(ctx context.Context, recipientID common.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE recipient_id = $1`, recipientID)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete notifications", err)
	}
	return nil
}

func scanNotification(row rowScanner) (*notification.Notification, error) {
	var n notification.Notification
	var jobID sql.NullString
	if err := row.Scan(&n.ID, &n.RecipientID, &n.Type, &n.Title, &n.Message, &jobID, &n.IsRead, &n.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "notification not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load notification", err)
	}
	n.JobID = nullableJobID(jobID)
	return &n, nil
}

func weakJobID(id *common.UUID) any {
	if id == nil {
		return nil
	}
	return *id
}

func nullableJobID(value sql.NullString) *common.UUID {
	if !value.Valid {
		return nil
	}
	id := common.UUID(value.String)
	return &id
}
