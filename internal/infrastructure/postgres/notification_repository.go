package postgres

import (
	"context"
	"fmt"

	"github.com/architectonquantum-commits/LABDEN/internal/domain/entity"
	"github.com/architectonquantum-commits/LABDEN/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo log append-only de notificaciones por destinatario.
type NotificationRepo struct {
	db Querier
}

// NewNotificationRepository construye el repositorio.
func NewNotificationRepository(db Querier) *NotificationRepo {
	return &NotificationRepo{db: db}
}

func (r *NotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO notifications (id, user_id, type, message, status, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		n.ID, n.UserID, n.Type, n.Message, n.Status, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (r *NotificationRepo) ListByRecipients(ctx context.Context, recipients []string) ([]*entity.Notification, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, type, message, status, created_at
		FROM notifications WHERE user_id = ANY($1) ORDER BY created_at DESC`, recipients)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Notification, 0)
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Message, &n.Status, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

func (r *NotificationRepo) MarkRead(ctx context.Context, id string, recipients []string) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE notifications SET status = 'read' WHERE id = $1 AND user_id = ANY($2)`, id, recipients)
	if err != nil {
		return false, fmt.Errorf("mark notification read: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
