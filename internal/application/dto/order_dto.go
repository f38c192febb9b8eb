package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/shopspring/decimal"

	"github.com/architectonquantum-commits/LABDEN/internal/domain/entity"
)

// CreateOrderRequest alta de orden. lab_id lo impone el servidor; doctorId solo aplica a laboratorios.
type CreateOrderRequest struct {
	DoctorID       *string           `json:"doctorId"`
	Status         string            `json:"status"`
	Value          *decimal.Decimal  `json:"value"`
	Services       []string          `json:"services"`
	Odontograma    entity.Odontogram `json:"odontograma"`
	NombrePaciente string            `json:"nombre_paciente"`
	Observaciones  string            `json:"observaciones"`
	Instrucciones  string            `json:"instrucciones"`
	ColorSustrato  string            `json:"color_sustrato"`
	ColorTrabajo   string            `json:"color_trabajo"`
	Material       string            `json:"material"`
}

// Validate revisa servicios y valor; el odontograma se valida en dominio.
func (r CreateOrderRequest) Validate() error {
	if err := validateServices(r.Services); err != nil {
		return err
	}
	if r.Value != nil && r.Value.IsNegative() {
		return invalid("value no puede ser negativo")
	}
	return nil
}

// UpdateOrderRequest PUT parcial. lab_id, doctor_id, order_number y archivado no se aceptan.
type UpdateOrderRequest struct {
	Status         *string            `json:"status"`
	Value          *decimal.Decimal   `json:"value"`
	Services       *[]string          `json:"services"`
	Odontograma    *entity.Odontogram `json:"odontograma"`
	NombrePaciente *string            `json:"nombre_paciente"`
	Observaciones  *string            `json:"observaciones"`
	Instrucciones  *string            `json:"instrucciones"`
	ColorSustrato  *string            `json:"color_sustrato"`
	ColorTrabajo   *string            `json:"color_trabajo"`
	Material       *string            `json:"material"`
	Progress       *Percent           `json:"progress_percentage"`
}

// Validate revisa los campos presentes.
func (r UpdateOrderRequest) Validate() error {
	if r.Services != nil {
		if err := validateServices(*r.Services); err != nil {
			return err
		}
	}
	if r.Value != nil && r.Value.IsNegative() {
		return invalid("value no puede ser negativo")
	}
	if r.Progress != nil {
		return r.Progress.Validate()
	}
	return nil
}

func validateServices(services []string) error {
	for _, s := range services {
		if strings.TrimSpace(s) == "" {
			return invalid("services no admite etiquetas vacías")
		}
	}
	return nil
}

// ArchiveRequest cuerpo de PATCH /orders/:id.
type ArchiveRequest struct {
	Archivado *bool `json:"archivado"`
}

// Validate exige archivado.
func (r ArchiveRequest) Validate() error {
	if r.Archivado == nil {
		return invalid("archivado es requerido")
	}
	return nil
}

// Percent porcentaje de avance; acepta 40 o "40" en JSON y se guarda como texto.
type Percent string

// UnmarshalJSON acepta número o string.
func (p *Percent) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*p = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = Percent(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*p = Percent(n.String())
	return nil
}

// Validate exige un entero entre 0 y 100; vacío es válido (sin cambio).
func (p Percent) Validate() error {
	if p == "" {
		return nil
	}
	if !govalidator.IsNumeric(string(p)) {
		return invalid("progress_percentage debe ser un entero")
	}
	n, err := strconv.Atoi(string(p))
	if err != nil || n < 0 || n > 100 {
		return invalid("progress_percentage debe estar entre 0 y 100")
	}
	return nil
}

// Normalized elimina ceros a la izquierda ("040" -> "40").
func (p Percent) Normalized() string {
	n, err := strconv.Atoi(string(p))
	if err != nil {
		return string(p)
	}
	return strconv.Itoa(n)
}

// ProgressRequest cuerpo de PUT /orders/:id/progress.
type ProgressRequest struct {
	Status   string  `json:"status"`
	Progress Percent `json:"progress_percentage"`
}

// Validate revisa el porcentaje.
func (r ProgressRequest) Validate() error {
	return r.Progress.Validate()
}

// OrderQuery filtros de GET /orders.
type OrderQuery struct {
	Archived string // true, false, all
	Status   string
	Q        string
}

// ArchivedFilter traduce archived a puntero; "all" o vacío no filtra.
func (q OrderQuery) ArchivedFilter() (*bool, error) {
	switch strings.ToLower(q.Archived) {
	case "", "all":
		return nil, nil
	case "true":
		v := true
		return &v, nil
	case "false":
		v := false
		return &v, nil
	}
	return nil, invalid("archived debe ser true, false o all")
}

// OrderResponse orden enriquecida con nombres de doctor y laboratorio.
type OrderResponse struct {
	ID                 string            `json:"id"`
	OrderNumber        int64             `json:"order_number"`
	DoctorID           *string           `json:"doctor_id"`
	DoctorName         string            `json:"doctor_name"`
	LabID              string            `json:"lab_id"`
	LabName            string            `json:"lab_name"`
	Status             string            `json:"status"`
	Value              *decimal.Decimal  `json:"value"`
	Services           []string          `json:"services"`
	Odontograma        entity.Odontogram `json:"odontograma"`
	NombrePaciente     string            `json:"nombre_paciente"`
	Observaciones      string            `json:"observaciones"`
	Instrucciones      string            `json:"instrucciones"`
	ColorSustrato      string            `json:"color_sustrato"`
	ColorTrabajo       string            `json:"color_trabajo"`
	Material           string            `json:"material"`
	ProgressPercentage string            `json:"progress_percentage"`
	Archivado          bool              `json:"archivado"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// NewOrderResponse mapea la entidad con los nombres ya resueltos.
func NewOrderResponse(o *entity.Order, doctorName, labName string) OrderResponse {
	var value *decimal.Decimal
	if o.Value.Valid {
		v := o.Value.Decimal
		value = &v
	}
	return OrderResponse{
		ID:                 o.ID,
		OrderNumber:        o.OrderNumber,
		DoctorID:           o.DoctorID,
		DoctorName:         doctorName,
		LabID:              o.LabID,
		LabName:            labName,
		Status:             o.Status,
		Value:              value,
		Services:           o.Services,
		Odontograma:        o.Odontograma,
		NombrePaciente:     o.NombrePaciente,
		Observaciones:      o.Observaciones,
		Instrucciones:      o.Instrucciones,
		ColorSustrato:      o.ColorSustrato,
		ColorTrabajo:       o.ColorTrabajo,
		Material:           o.Material,
		ProgressPercentage: o.ProgressPercentage,
		Archivado:          o.Archivado,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}
