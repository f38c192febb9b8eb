package entity

import "time"

// Tipos de notificación emitidos por el ciclo de vida de órdenes.
const (
	NotificationNewOrder           = "new_order"
	NotificationOrderAssigned      = "order_assigned"
	NotificationOrderStatusChanged = "order_status_changed"
)

// Estados de notificación.
const (
	NotificationUnread = "unread"
	NotificationRead   = "read"
)

// Notification mensaje unidireccional. UserID es el destinatario (usuario o laboratorio).
type Notification struct {
	ID        string
	UserID    string
	Type      string
	Message   string
	Status    string
	CreatedAt time.Time
}
