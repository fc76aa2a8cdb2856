// Package pdf implementa la orden de reparación imprimible que se entrega al
// cliente al recibir el equipo.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Taller + Orden N° + Fecha de recepción             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre / Tel / Email                              │
//	│  EQUIPO: Tipo | Marca | Modelo | Serie                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FALLA REPORTADA + DIAGNÓSTICO                              │
//	│  ESTADO / PRIORIDAD / TÉCNICO / COSTO ESTIMADO              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: Condiciones de retiro                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
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

	"github.com/tu-usuario/taller-pro/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// RepairOrderGenerator implementa usecase.OrderRenderer usando Maroto v2.
type RepairOrderGenerator struct {
	shopName string
}

// NewRepairOrderGenerator construye el generador con el nombre del taller.
func NewRepairOrderGenerator(shopName string) *RepairOrderGenerator {
	return &RepairOrderGenerator{shopName: shopName}
}

// RenderOrder genera el PDF de la orden y devuelve sus bytes.
func (g *RepairOrderGenerator) RenderOrder(repair *entity.Repair) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Orden de Reparación "+repair.RepairNumber, true).
		WithAuthor(g.shopName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(repair))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(repair.Customer))
	m.AddRows(deviceRow(repair))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(issueRow(repair))
	m.AddRows(statusRow(repair))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar orden: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del taller (izq) y N° de orden + fecha (der).
func (g *RepairOrderGenerator) headerRow(repair *entity.Repair) core.Row {
	fecha := repair.ReceivedDate.Format("02/01/2006 15:04")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.shopName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Servicio técnico de reparación", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ORDEN DE REPARACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("N° "+repair.RepairNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Recibido: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// customerRow: datos del cliente que deja el equipo.
func customerRow(customer *entity.Customer) core.Row {
	name, phone, email := "—", "—", "—"
	if customer != nil {
		name = customer.Name
		phone = nonEmpty(customer.Phone, "—")
		email = nonEmpty(customer.Email, "—")
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Tel: %s   |   Email: %s", phone, email),
				props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// deviceRow: equipo recibido.
func deviceRow(repair *entity.Repair) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("EQUIPO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   Marca: %s   |   Modelo: %s   |   Serie: %s",
				repair.DeviceType,
				nonEmpty(repair.Brand, "—"),
				nonEmpty(repair.Model, "—"),
				nonEmpty(repair.SerialNumber, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// issueRow: falla reportada por el cliente y diagnóstico si existe.
func issueRow(repair *entity.Repair) core.Row {
	height := 16.0
	cols := []core.Component{
		text.New("FALLA REPORTADA", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}),
		text.New(repair.Issue, props.Text{Size: 9, Top: 6}),
	}
	if repair.Diagnosis != "" {
		height = 26
		cols = append(cols,
			text.New("DIAGNÓSTICO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 14,
			}),
			text.New(repair.Diagnosis, props.Text{Size: 9, Top: 19}),
		)
	}
	return row.New(height).Add(col.New(12).Add(cols...))
}

// statusRow: estado, prioridad, técnico asignado y costo estimado.
func statusRow(repair *entity.Repair) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 7, Color: colorGray, Top: 1,
			}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 9, Top: 5}),
		)
	}
	technician := "Sin asignar"
	if repair.Technician != nil {
		technician = repair.Technician.Name
	}
	cost := "A confirmar"
	if !repair.EstimatedCost.IsZero() {
		cost = "$" + formatMoney(repair.EstimatedCost.StringFixed(0))
	}
	return row.New(12).Add(
		cell("ESTADO", entity.StatusLabel(repair.Status)),
		cell("PRIORIDAD", priorityLabel(repair.Priority)),
		cell("TÉCNICO", technician),
		cell("COSTO ESTIMADO", cost),
	)
}

// footerRow: condiciones de retiro.
func footerRow() core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(
			"Presente esta orden al retirar el equipo. El presupuesto definitivo se "+
				"confirma luego del diagnóstico. Equipos no retirados dentro de los 90 "+
				"días quedan a disposición del taller.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func priorityLabel(p string) string {
	switch p {
	case entity.PriorityHigh:
		return "Alta"
	case entity.PriorityMedium:
		return "Media"
	case entity.PriorityLow:
		return "Baja"
	default:
		return p
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
