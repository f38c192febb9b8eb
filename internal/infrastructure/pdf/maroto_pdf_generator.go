// Package pdf genera la hoja de trabajo imprimible de una orden de laboratorio.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Laboratorio           │  Orden #N + Fecha + Estado  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DOCTOR / PACIENTE                                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TRABAJO: Material | Color sustrato | Color trabajo | Avance │
//	│  SERVICIOS                                                  │
//	│  ODONTOGRAMA: Diente | Condiciones                          │
//	│  INSTRUCCIONES / OBSERVACIONES                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR de la orden + Valor                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/architectonquantum-commits/LABDEN/internal/application/orders"
	"github.com/architectonquantum-commits/LABDEN/internal/domain/entity"
	"github.com/architectonquantum-commits/LABDEN/internal/domain/odontogram"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ orders.PDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa orders.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateOrderPDF genera la hoja de trabajo y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateOrderPDF(_ context.Context, sheet orders.OrderSheet) ([]byte, error) {
	o := sheet.Order
	if o == nil {
		return nil, fmt.Errorf("pdf: orden vacía")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Orden de trabajo #%d", o.OrderNumber), true).
		WithAuthor(sheet.LabName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(sheet))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(sheet))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(workRow(o))
	m.AddRows(servicesRow(o))

	m.AddRows(sectionTitle("ODONTOGRAMA"))
	m.AddRows(odontogramRows(o.Odontograma)...)

	m.AddRows(notesRows(o)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(o))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(sheet orders.OrderSheet) core.Row {
	o := sheet.Order
	return row.New(18).Add(
		col.New(7).Add(
			text.New(sheet.LabName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Laboratorio dental", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ORDEN DE TRABAJO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("#%d", o.OrderNumber), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
			text.New(fmt.Sprintf("Fecha: %s   |   Estado: %s", o.CreatedAt.Format("02/01/2006"), statusLabel(o.Status)), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func partiesRow(sheet orders.OrderSheet) core.Row {
	return row.New(14).Add(
		col.New(6).Add(
			text.New("DOCTOR", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(sheet.DoctorName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
		),
		col.New(6).Add(
			text.New("PACIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(sheet.Order.NombrePaciente, "-"), props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
		),
	)
}

func workRow(o *entity.Order) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 7, Color: colorGray, Top: 1}),
			text.New(nonEmpty(value, "-"), props.Text{Size: 9, Top: 5}),
		)
	}
	return row.New(12).Add(
		cell("Material", o.Material),
		cell("Color sustrato", o.ColorSustrato),
		cell("Color trabajo", o.ColorTrabajo),
		cell("Avance", o.ProgressPercentage+"%"),
	)
}

func servicesRow(o *entity.Order) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New("SERVICIOS", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		text.New(nonEmpty(strings.Join(o.Services, ", "), "-"), props.Text{Size: 9, Top: 5}),
	))
}

func sectionTitle(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

// odontogramRows: una fila por diente marcado, en orden numérico.
func odontogramRows(odo entity.Odontogram) []core.Row {
	teeth := odontogram.Marked(odo)
	if len(teeth) == 0 {
		return []core.Row{row.New(6).Add(col.New(12).Add(
			text.New("Sin dientes marcados", props.Text{Size: 8, Color: colorGray, Top: 1, Left: 2}),
		))}
	}
	rows := make([]core.Row, 0, len(teeth)+1)
	rows = append(rows, row.New(6).Add(
		col.New(2).Add(text.New("Diente", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1})),
		col.New(10).Add(text.New("Condiciones", props.Text{Style: fontstyle.Bold, Size: 8, Top: 1, Left: 1})),
	))
	for _, t := range teeth {
		key := strconv.Itoa(t)
		rows = append(rows, row.New(5).Add(
			col.New(2).Add(text.New(key, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(10).Add(text.New(conditionLabels(odo[key]), props.Text{Size: 8, Top: 1, Left: 1})),
		))
	}
	return rows
}

func notesRows(o *entity.Order) []core.Row {
	var rows []core.Row
	add := func(label, value string) {
		if value == "" {
			return
		}
		rows = append(rows, row.New(12).Add(col.New(12).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
			text.New(value, props.Text{Size: 8, Top: 6}),
		)))
	}
	add("INSTRUCCIONES", o.Instrucciones)
	add("OBSERVACIONES", o.Observaciones)
	return rows
}

// footerRow: QR con la referencia de la orden + valor.
func footerRow(o *entity.Order) core.Row {
	value := "-"
	if o.Value.Valid {
		value = "$" + formatMoney(o.Value.Decimal.StringFixed(2))
	}
	return row.New(40).Add(
		col.New(4).Add(code.NewQr(qrPayload(o), props.Rect{Percent: 90, Center: true})),
		col.New(8).Add(
			text.New("Escanea el código para identificar\nesta orden en el laboratorio.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("Valor: "+value, props.Text{
				Style: fontstyle.Bold, Size: 11, Top: 20, Left: 3, Color: colorPrimary,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func qrPayload(o *entity.Order) string {
	return fmt.Sprintf("LABDEN|%d|%s|%s", o.OrderNumber, o.ID, o.LabID)
}

var statusLabels = map[string]string{
	entity.OrderPendiente: "Pendiente",
	entity.OrderIniciada:  "Iniciada",
	entity.OrderEnProceso: "En proceso",
	entity.OrderTerminada: "Terminada",
	entity.OrderCancelada: "Cancelada",
}

func statusLabel(s string) string {
	return nonEmpty(statusLabels[s], s)
}

func conditionLabels(conds []string) string {
	out := make([]string, 0, len(conds))
	for _, c := range conds {
		out = append(out, strings.ReplaceAll(c, "_", " "))
	}
	return strings.Join(out, ", ")
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta puntos de miles en la parte entera.
// Ej: "25000.50" → "25.000,50"
func formatMoney(s string) string {
	intPart, frac, hasFrac := strings.Cut(s, ".")
	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3+4)
	if neg {
		buf = append(buf, '-')
	}
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	if hasFrac {
		buf = append(buf, ',')
		buf = append(buf, frac...)
	}
	return string(buf)
}
