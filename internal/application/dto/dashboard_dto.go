package dto

import "github.com/shopspring/decimal"

// DashboardSummary resumen de órdenes según el rol del usuario.
type DashboardSummary struct {
	TotalOrders    int             `json:"total_orders"`
	ByStatus       map[string]int  `json:"by_status"`
	ArchivedOrders int             `json:"archived_orders"`
	Revenue        decimal.Decimal `json:"revenue"`
	Labs           []LabOrderStats `json:"labs"`
	Admin          *AdminStats     `json:"admin,omitempty"`
}

// LabOrderStats órdenes e ingresos de un laboratorio.
type LabOrderStats struct {
	LabID   string          `json:"lab_id"`
	LabName string          `json:"lab_name"`
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// AdminStats conteos globales, solo superadmin.
type AdminStats struct {
	TotalLabs   int            `json:"total_labs"`
	ActiveLabs  int            `json:"active_labs"`
	UsersByRole map[string]int `json:"users_by_role"`
}
