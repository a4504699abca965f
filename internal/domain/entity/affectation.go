package entity

import "github.com/shopspring/decimal"

// AffectationRow una fila del reporte de bodega con sus cantidades ya convertidas a unidades base.
// Los campos crudos conservan el texto tal como vino en el archivo.
type AffectationRow struct {
	ProductCode      string
	ProductName      string
	StoredQuantity   string
	StoredUnit       string
	AffectedQuantity string
	AffectedUnit     string

	StoredUnits   decimal.Decimal // Cantidad_UM_Unidades
	AffectedUnits decimal.Decimal // Cantidad_Afectada_UM_Unidades
}

// SummaryRecord total por código de producto.
type SummaryRecord struct {
	ProductCode   string
	StoredUnits   decimal.Decimal
	AffectedUnits decimal.Decimal
	AffectedPct   Percentage
	RowCount      int
}
