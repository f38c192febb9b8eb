package orders

import (
	"context"

	"github.com/architectonquantum-commits/LABDEN/internal/domain/entity"
)

// Notifier registra notificaciones. Un fallo no revierte la operación sobre la orden.
type Notifier interface {
	Notify(ctx context.Context, userID, kind, message string) error
}

// OrderSheet datos de la hoja de trabajo imprimible.
type OrderSheet struct {
	Order      *entity.Order
	DoctorName string
	LabName    string
}

// PDFGenerator genera la hoja de trabajo de una orden.
type PDFGenerator interface {
	GenerateOrderPDF(ctx context.Context, sheet OrderSheet) ([]byte, error)
}
