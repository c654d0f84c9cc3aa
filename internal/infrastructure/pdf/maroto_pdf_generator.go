// Package pdf genera el informe PDF del panel (resumen, tareas y cobros).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título               │  Rango + fecha de emisión    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: clientes | tareas pendientes | acuerdos vigentes   │
//	│           cobro del mes | cobro del año                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TAREAS: estado | cantidad | %                               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  COBROS: número de cobros | importe total                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"
	"unicode"

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
	"github.com/johnfercher/maroto/v2/pkg/repository"

	"github.com/jhoicas/erp-admin/internal/application/dto"
	"github.com/jhoicas/erp-admin/internal/application/ports"
	"github.com/jhoicas/erp-admin/pkg/amount"
)

const (
	defaultTitle = "Informe del panel"
	unicodeFont  = "erp-unicode"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa ports.DashboardReportGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	fontPath string
	money    *amount.Formatter
	now      func() time.Time
}

var _ ports.DashboardReportGenerator = (*MarotoReportGenerator)(nil)

// NewMarotoReportGenerator construye el generador. fontPath es una fuente TTF
// con glifos CJK; sin ella los textos no latinos se sustituyen.
func NewMarotoReportGenerator(fontPath string, money *amount.Formatter) *MarotoReportGenerator {
	if money == nil {
		money = amount.New("zh-CN")
	}
	return &MarotoReportGenerator{fontPath: fontPath, money: money, now: time.Now}
}

// GenerateDashboardReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateDashboardReport(ctx context.Context, report *dto.DashboardReport) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("pdf: informe vacío")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	builder := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithTitle(defaultTitle, true)

	title := report.Title
	if g.fontPath != "" {
		fonts, err := repository.New().
			AddUTF8Font(unicodeFont, fontstyle.Normal, g.fontPath).
			AddUTF8Font(unicodeFont, fontstyle.Bold, g.fontPath).
			Load()
		if err != nil {
			return nil, fmt.Errorf("pdf: cargar fuente %s: %w", g.fontPath, err)
		}
		builder = builder.WithCustomFonts(fonts).
			WithDefaultFont(&props.Font{Family: unicodeFont, Size: 9})
	} else {
		builder = builder.WithDefaultFont(&props.Font{Family: "helvetica", Size: 9})
		if !latin(title) {
			title = defaultTitle
		}
	}
	if title == "" {
		title = defaultTitle
	}

	m := maroto.New(builder.Build())

	m.AddRows(headerRow(title, report.Range, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(sectionTitle("RESUMEN"))
	m.AddRows(overviewRows(report.Overview, g.money)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionTitle("TAREAS"))
	m.AddRows(tableHeaderRow("Estado", "Cantidad", "%"))
	m.AddRows(taskRows(report.Tasks, g.money)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionTitle("COBROS"))
	m.AddRows(paymentRow(report.Payments, g.money))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y rango + fecha de emisión (der).
func headerRow(title string, r dto.DateRange, issued time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("Periodo: "+rangeLabel(r), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Emitido: "+issued.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func sectionTitle(label string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

// overviewRows: dos filas de tarjetas con los indicadores del panel.
func overviewRows(o dto.OverviewStats, money *amount.Formatter) []core.Row {
	card := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 12, Top: 5, Align: align.Center}),
		)
	}
	return []core.Row{
		row.New(14).Add(
			card("Clientes", money.Int(o.CustomerCount)),
			card("Tareas pendientes", money.Int(o.PendingTaskCount)),
			card("Acuerdos vigentes", money.Int(o.ActiveAgreementCount)),
		),
		row.New(14).Add(
			card("Cobrado este mes", "CNY "+money.Format(o.MonthlyPayment)),
			card("Cobrado este año", "CNY "+money.Format(o.YearlyPayment)),
			col.New(4),
		),
	}
}

// tableHeaderRow: cabecera de tabla con fondo azul.
func tableHeaderRow(labels ...string) core.Row {
	cols := make([]core.Col, 0, len(labels))
	for i, label := range labels {
		a := align.Right
		if i == 0 {
			a = align.Left
		}
		cols = append(cols, col.New(12/len(labels)).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// taskRows: una fila por estado de tarea.
func taskRows(s dto.TaskStats, money *amount.Formatter) []core.Row {
	total := s.Total()
	line := func(label string, n int64) core.Row {
		return row.New(7).Add(
			col.New(4).Add(text.New(label, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(money.Int(n), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(4).Add(text.New(percent(n, total), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		)
	}
	return []core.Row{
		line("Pendiente", s.Pending),
		line("En curso", s.InProgress),
		line("Completada", s.Completed),
		line("Total", total),
	}
}

// paymentRow: número de cobros e importe total del rango.
func paymentRow(p dto.PaymentStats, money *amount.Formatter) core.Row {
	return row.New(10).Add(
		col.New(6).Add(text.New(fmt.Sprintf("Cobros registrados: %s", money.Int(p.Count)), props.Text{Size: 9, Top: 2, Left: 1})),
		col.New(6).Add(text.New("Importe total: CNY "+money.Format(p.TotalAmount), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func rangeLabel(r dto.DateRange) string {
	switch {
	case r.StartDate == "" && r.EndDate == "":
		return "todo"
	case r.EndDate == "":
		return "desde " + r.StartDate
	case r.StartDate == "":
		return "hasta " + r.EndDate
	}
	return r.StartDate + " a " + r.EndDate
}

func percent(n, total int64) string {
	if total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.0f%%", float64(n)*100/float64(total))
}

// latin indica si la fuente estándar puede dibujar s.
func latin(s string) bool {
	for _, r := range s {
		if r > unicode.MaxLatin1 {
			return false
		}
	}
	return true
}
