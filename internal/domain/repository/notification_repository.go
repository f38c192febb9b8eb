package repository

import (
	"context"

	"github.com/architectonquantum-commits/LABDEN/internal/domain/entity"
)

// NotificationRepository puerto append-only; la única mutación es marcar como leída.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	// ListByRecipients devuelve las notificaciones de cualquiera de los destinatarios, más recientes primero.
	ListByRecipients(ctx context.Context, recipients []string) ([]*entity.Notification, error)
	// MarkRead devuelve false si id no existe o no está dirigida a recipients.
	MarkRead(ctx context.Context, id string, recipients []string) (bool, error)
}
