package affectation

import (
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/afectacion-api/internal/domain"
	"github.com/jhoicas/afectacion-api/internal/domain/entity"
	"github.com/jhoicas/afectacion-api/internal/domain/uom"
)

// Columnas de entrada (contrato externo: nombres exactos).
const (
	ColProductCode      = "Código Producto"
	ColProductName      = "Nombre producto"
	ColStoredQuantity   = "Cantidad almacenada en bodega"
	ColStoredUnit       = "Unidad de medida"
	ColAffectedQuantity = "Cantidad afectada cliente"
	ColAffectedUnit     = "Unidad de medida2"
)

// Columnas derivadas que se agregan al detalle.
const (
	ColStoredUnits   = "Cantidad_UM_Unidades"
	ColAffectedUnits = "Cantidad_Afectada_UM_Unidades"
)

// Columnas del resumen.
const (
	ColSummaryStored   = "Cantidad en Unidades"
	ColSummaryAffected = "Cantidad Afectada en Unidades"
	ColSummaryPct      = "% Afectado"
)

// RequiredColumns columnas obligatorias, en el orden en que se reportan.
var RequiredColumns = []string{
	ColProductCode,
	ColProductName,
	ColStoredQuantity,
	ColStoredUnit,
	ColAffectedQuantity,
	ColAffectedUnit,
}

// SummaryHeaders encabezados de la hoja de resumen.
var SummaryHeaders = []string{ColProductCode, ColSummaryStored, ColSummaryAffected, ColSummaryPct}

// Result salida del pipeline: resumen por producto y detalle con las columnas normalizadas.
type Result struct {
	Summary []entity.SummaryRecord
	Detail  entity.Table
	Rows    []entity.AffectationRow
}

// TotalStored suma de unidades almacenadas de todo el resumen.
func (r *Result) TotalStored() decimal.Decimal {
	total := decimal.Zero
	for _, s := range r.Summary {
		total = total.Add(s.StoredUnits)
	}
	return total
}

// TotalAffected suma de unidades afectadas de todo el resumen.
func (r *Result) TotalAffected() decimal.Decimal {
	total := decimal.Zero
	for _, s := range r.Summary {
		total = total.Add(s.AffectedUnits)
	}
	return total
}

// Process valida columnas, normaliza cada fila, agrupa por código de producto y calcula el % afectado.
// Si falta alguna columna obligatoria devuelve *domain.MissingColumnsError y ningún resultado.
func Process(table entity.Table) (*Result, error) {
	idx, err := requiredIndexes(table)
	if err != nil {
		return nil, err
	}

	rows := make([]entity.AffectationRow, len(table.Rows))
	for i := range table.Rows {
		r := entity.AffectationRow{
			ProductCode:      table.Cell(i, idx[ColProductCode]),
			ProductName:      table.Cell(i, idx[ColProductName]),
			StoredQuantity:   table.Cell(i, idx[ColStoredQuantity]),
			StoredUnit:       table.Cell(i, idx[ColStoredUnit]),
			AffectedQuantity: table.Cell(i, idx[ColAffectedQuantity]),
			AffectedUnit:     table.Cell(i, idx[ColAffectedUnit]),
		}
		r.StoredUnits = uom.Normalize(r.StoredQuantity, r.StoredUnit)
		r.AffectedUnits = uom.Normalize(r.AffectedQuantity, r.AffectedUnit)
		rows[i] = r
	}

	return &Result{
		Summary: summarize(rows),
		Detail:  augmentDetail(table, rows),
		Rows:    rows,
	}, nil
}

func requiredIndexes(table entity.Table) (map[string]int, error) {
	idx := make(map[string]int, len(RequiredColumns))
	var missing []string
	for _, col := range RequiredColumns {
		i := table.ColumnIndex(col)
		if i < 0 {
			missing = append(missing, col)
			continue
		}
		idx[col] = i
	}
	if len(missing) > 0 {
		return nil, &domain.MissingColumnsError{
			Required: append([]string(nil), RequiredColumns...),
			Missing:  missing,
		}
	}
	return idx, nil
}

// summarize agrupa por código. Las filas sin código no entran al resumen.
func summarize(rows []entity.AffectationRow) []entity.SummaryRecord {
	groups := make(map[string]*entity.SummaryRecord)
	var codes []string
	for _, r := range rows {
		if r.ProductCode == "" {
			continue
		}
		g, ok := groups[r.ProductCode]
		if !ok {
			g = &entity.SummaryRecord{ProductCode: r.ProductCode, StoredUnits: decimal.Zero, AffectedUnits: decimal.Zero}
			groups[r.ProductCode] = g
			codes = append(codes, r.ProductCode)
		}
		g.StoredUnits = g.StoredUnits.Add(r.StoredUnits)
		g.AffectedUnits = g.AffectedUnits.Add(r.AffectedUnits)
		g.RowCount++
	}

	sortProductCodes(codes)

	out := make([]entity.SummaryRecord, 0, len(codes))
	for _, code := range codes {
		g := groups[code]
		g.AffectedPct = entity.AffectedPercentage(g.AffectedUnits, g.StoredUnits)
		out = append(out, *g)
	}
	return out
}

// sortProductCodes ordena numéricamente si todos los códigos son números, si no alfabéticamente.
func sortProductCodes(codes []string) {
	nums := make(map[string]float64, len(codes))
	for _, c := range codes {
		f, err := strconv.ParseFloat(c, 64)
		if err != nil {
			sort.Strings(codes)
			return
		}
		nums[c] = f
	}
	sort.SliceStable(codes, func(i, j int) bool { return nums[codes[i]] < nums[codes[j]] })
}

// augmentDetail copia la tabla original y agrega (o sobrescribe) las dos columnas normalizadas.
func augmentDetail(table entity.Table, rows []entity.AffectationRow) entity.Table {
	detail := table.Clone()
	storedCol := ensureColumn(&detail, ColStoredUnits)
	affectedCol := ensureColumn(&detail, ColAffectedUnits)
	width := len(detail.Headers)
	for i := range detail.Rows {
		for len(detail.Rows[i]) < width {
			detail.Rows[i] = append(detail.Rows[i], "")
		}
		detail.Rows[i][storedCol] = rows[i].StoredUnits.String()
		detail.Rows[i][affectedCol] = rows[i].AffectedUnits.String()
	}
	return detail
}

func ensureColumn(t *entity.Table, name string) int {
	if i := t.ColumnIndex(name); i >= 0 {
		return i
	}
	t.Headers = append(t.Headers, name)
	return len(t.Headers) - 1
}
