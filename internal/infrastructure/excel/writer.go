package excel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/afectacion-api/internal/application/affectation"
	"github.com/jhoicas/afectacion-api/internal/domain/entity"
)

const defaultColWidth = 18

// ReportWriter implementa affectation.ReportWriter: hoja de resumen + hoja de detalle.
type ReportWriter struct{}

// NewReportWriter construye el escritor.
func NewReportWriter() *ReportWriter { return &ReportWriter{} }

// Write arma el libro en memoria y devuelve sus bytes.
func (w *ReportWriter) Write(res *affectation.Result, layout affectation.ReportLayout) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return nil, fmt.Errorf("crear estilo de encabezado: %w", err)
	}

	// El libro nuevo trae "Sheet1": se renombra como hoja de resumen.
	if err := f.SetSheetName(f.GetSheetName(0), layout.SummarySheet); err != nil {
		return nil, fmt.Errorf("renombrar hoja: %w", err)
	}
	if err := writeSummary(f, layout.SummarySheet, res.Summary, headerStyle); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(layout.DetailSheet); err != nil {
		return nil, fmt.Errorf("crear hoja %q: %w", layout.DetailSheet, err)
	}
	if err := writeDetail(f, layout.DetailSheet, res, headerStyle); err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializar libro: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummary(f *excelize.File, sheet string, summary []entity.SummaryRecord, headerStyle int) error {
	if err := writeHeader(f, sheet, affectation.SummaryHeaders, headerStyle); err != nil {
		return err
	}
	for i, s := range summary {
		cells := []interface{}{
			cellValue(s.ProductCode),
			s.StoredUnits.InexactFloat64(),
			s.AffectedUnits.InexactFloat64(),
			percentageCell(s.AffectedPct),
		}
		if err := setRow(f, sheet, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

func writeDetail(f *excelize.File, sheet string, res *affectation.Result, headerStyle int) error {
	d := res.Detail
	if err := writeHeader(f, sheet, d.Headers, headerStyle); err != nil {
		return err
	}
	storedCol := d.ColumnIndex(affectation.ColStoredUnits)
	affectedCol := d.ColumnIndex(affectation.ColAffectedUnits)

	for i, row := range d.Rows {
		cells := make([]interface{}, len(d.Headers))
		for j := range cells {
			switch {
			case j == storedCol && i < len(res.Rows):
				cells[j] = res.Rows[i].StoredUnits.InexactFloat64()
			case j == affectedCol && i < len(res.Rows):
				cells[j] = res.Rows[i].AffectedUnits.InexactFloat64()
			case j < len(row) && row[j] != "":
				cells[j] = cellValue(row[j])
			default:
				cells[j] = nil
			}
		}
		if err := setRow(f, sheet, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) error {
	cells := make([]interface{}, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	if err := setRow(f, sheet, 1, cells); err != nil {
		return err
	}
	if len(headers) == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("estilo de encabezado: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	return f.SetColWidth(sheet, "A", lastCol, defaultColWidth)
}

func setRow(f *excelize.File, sheet string, rowNum int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("escribir fila %d de %q: %w", rowNum, sheet, err)
	}
	return nil
}

// cellValue escribe como número todo texto numérico ("1.10", "1E-3") salvo los que llevan ceros a la
// izquierda ("00123"), que son códigos y quedan como texto.
func cellValue(s string) interface{} {
	if _, err := decimal.NewFromString(s); err != nil || hasLeadingZero(s) {
		return s
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	return f
}

func hasLeadingZero(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) > 1 && s[0] == '0' && s[1] >= '0' && s[1] <= '9'
}

// percentageCell: inf/-inf como texto, NaN como celda vacía.
func percentageCell(p entity.Percentage) interface{} {
	switch p.Kind {
	case entity.PercentageFinite:
		return p.Value.InexactFloat64()
	case entity.PercentageNaN:
		return nil
	default:
		return p.String()
	}
}
