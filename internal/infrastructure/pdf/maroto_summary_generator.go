// Package pdf genera la versión imprimible del resumen de afectación.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + archivo analizado │ fecha + ID de análisis│
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Cant. en unidades | Cant. afectada | %     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES                                                     │
//	│  NOTA: supuestos de conversión (AJ = UN)                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
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

	"github.com/jhoicas/afectacion-api/internal/application/affectation"
	"github.com/jhoicas/afectacion-api/internal/domain/entity"
	"github.com/jhoicas/afectacion-api/pkg/numfmt"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 250}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoSummaryGenerator implementa affectation.SummaryPDFGenerator usando Maroto v2.
type MarotoSummaryGenerator struct{}

// NewMarotoSummaryGenerator construye el generador.
func NewMarotoSummaryGenerator() *MarotoSummaryGenerator { return &MarotoSummaryGenerator{} }

// GenerateSummaryPDF genera el PDF y devuelve sus bytes.
func (g *MarotoSummaryGenerator) GenerateSummaryPDF(ctx context.Context, doc affectation.SummaryDocument) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Resumen de afectación en unidades", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(doc.Summary)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(doc))

	m.AddRows(line.NewRow(3))
	m.AddRows(noteRow())

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(doc affectation.SummaryDocument) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New("Análisis de afectación en unidades", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Archivo: "+nonEmpty(doc.FileName, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Fecha: "+doc.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("ID: "+doc.AnalysisID, props.Text{
				Size: 6, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h(affectation.ColProductCode, 3, align.Left),
		h(affectation.ColSummaryStored, 3, align.Right),
		h(affectation.ColSummaryAffected, 4, align.Right),
		h(affectation.ColSummaryPct, 2, align.Right),
	)
}

func tableRows(summary []entity.SummaryRecord) []core.Row {
	rows := make([]core.Row, 0, len(summary))
	for i, s := range summary {
		pctProps := props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1}
		if !s.AffectedPct.IsFinite() {
			pctProps.Color = colorAlert
		}
		r := row.New(6).Add(
			col.New(3).Add(text.New(s.ProductCode, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(numfmt.Units(s.StoredUnits), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(4).Add(text.New(numfmt.Units(s.AffectedUnits), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(percent(s.AffectedPct), pctProps)),
		)
		if i%2 == 1 {
			r = r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		rows = append(rows, r)
	}
	return rows
}

func totalsRow(doc affectation.SummaryDocument) core.Row {
	bold := props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2, Right: 1}
	return row.New(10).Add(
		col.New(3).Add(text.New(fmt.Sprintf("TOTAL (%d productos)", len(doc.Summary)), props.Text{
			Style: fontstyle.Bold, Size: 9, Top: 2, Left: 1, Color: colorPrimary,
		})),
		col.New(3).Add(text.New(numfmt.Units(doc.TotalStored), bold)),
		col.New(4).Add(text.New(numfmt.Units(doc.TotalAffected), bold)),
		col.New(2).Add(text.New(percent(doc.TotalPct), bold)),
	)
}

func noteRow() core.Row {
	return row.New(12).Add(col.New(12).Add(
		text.New(
			"Conversión: nQ = n×1000 unidades; n UN / n AJ = n unidades (AJ se toma igual que UN); "+
				"letra+2 dígitos (ej. Y40) = (posición desde Z × 100 + dígitos) unidades; "+
				"otros códigos se toman como unidades. Un % \"inf\" o \"NaN\" indica cantidad almacenada cero.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func percent(p entity.Percentage) string {
	if !p.IsFinite() {
		return p.String()
	}
	return numfmt.Fixed2(p.Value) + "%"
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
