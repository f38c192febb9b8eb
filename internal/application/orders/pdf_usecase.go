package orders

import (
	"context"
	"fmt"

	"github.com/architectonquantum-commits/LABDEN/internal/domain/access"
	"github.com/architectonquantum-commits/LABDEN/internal/domain/entity"
)

// PDFUseCase genera la hoja de trabajo imprimible de una orden.
type PDFUseCase struct {
	orders    *OrderUseCase
	generator PDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(orders *OrderUseCase, generator PDFGenerator) *PDFUseCase {
	return &PDFUseCase{orders: orders, generator: generator}
}

// Render verifica acceso de lectura y devuelve (pdfBytes, filename).
func (uc *PDFUseCase) Render(ctx context.Context, caller *entity.User, id string) ([]byte, string, error) {
	order, err := uc.orders.load(ctx, caller, id, access.CanReadOrder)
	if err != nil {
		return nil, "", err
	}
	view, err := uc.orders.enrichOne(ctx, order)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.generator.GenerateOrderPDF(ctx, OrderSheet{Order: order, DoctorName: view.DoctorName, LabName: view.LabName})
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdf, fmt.Sprintf("orden_%d.pdf", order.OrderNumber), nil
}
