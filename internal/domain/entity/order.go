package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de orden.
const (
	OrderPendiente = "pendiente"
	OrderIniciada  = "iniciada"
	OrderEnProceso = "en_proceso"
	OrderTerminada = "terminada"
	OrderCancelada = "cancelada"
)

// OrderStatuses lista los estados en orden de avance.
var OrderStatuses = []string{OrderPendiente, OrderIniciada, OrderEnProceso, OrderTerminada, OrderCancelada}

// Odontogram mapa diente FDI ("11".."48") -> etiquetas de condición.
type Odontogram map[string][]string

// Order orden de trabajo enviada a un laboratorio.
// LabID lo asigna siempre el servidor; OrderNumber lo asigna la base de datos.
type Order struct {
	ID                 string
	OrderNumber        int64
	DoctorID           *string
	LabID              string
	Status             string
	Value              decimal.NullDecimal
	Services           []string
	Odontograma        Odontogram
	NombrePaciente     string
	Observaciones      string
	Instrucciones      string
	ColorSustrato      string
	ColorTrabajo       string
	Material           string
	ProgressPercentage string
	Archivado          bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// DoctorIDValue devuelve el DoctorID o "" si es nulo.
func (o *Order) DoctorIDValue() string {
	if o.DoctorID == nil {
		return ""
	}
	return *o.DoctorID
}
