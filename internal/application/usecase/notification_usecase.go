package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/architectonquantum-commits/LABDEN/internal/application/dto"
	"github.com/architectonquantum-commits/LABDEN/internal/domain"
	"github.com/architectonquantum-commits/LABDEN/internal/domain/entity"
	"github.com/architectonquantum-commits/LABDEN/internal/domain/repository"
)

// NotificationUseCase registro de notificaciones por destinatario. Solo crea y marca como leídas.
type NotificationUseCase struct {
	repo repository.NotificationRepository
}

// NewNotificationUseCase construye el caso de uso.
func NewNotificationUseCase(repo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{repo: repo}
}

// Notify crea una notificación unread para userID.
func (uc *NotificationUseCase) Notify(ctx context.Context, userID, kind, message string) error {
	n := &entity.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      kind,
		Message:   message,
		Status:    entity.NotificationUnread,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(ctx, n); err != nil {
		return fmt.Errorf("notifications: notify: %w", err)
	}
	return nil
}

// recipients ids a los que puede ir dirigida una notificación del usuario.
// new_order se dirige al laboratorio, por eso un usuario laboratorio también recibe las de su lab_id.
func recipients(u *entity.User) []string {
	ids := []string{u.ID}
	if u.Role == entity.RoleLaboratorio && u.LabIDValue() != "" {
		ids = append(ids, u.LabIDValue())
	}
	return ids
}

// ListForUser devuelve las notificaciones del usuario, más recientes primero.
func (uc *NotificationUseCase) ListForUser(ctx context.Context, caller *entity.User) ([]dto.NotificationResponse, error) {
	list, err := uc.repo.ListByRecipients(ctx, recipients(caller))
	if err != nil {
		return nil, err
	}
	out := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, dto.NewNotificationResponse(n))
	}
	return out, nil
}

// MarkRead marca como leída. ErrNotFound si no existe o no es del usuario.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, caller *entity.User, id string) error {
	ok, err := uc.repo.MarkRead(ctx, id, recipients(caller))
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}
