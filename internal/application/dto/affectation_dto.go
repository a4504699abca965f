package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/afectacion-api/internal/domain/entity"
)

// SummaryRowDTO una fila del resumen por producto.
// affected_pct es string: "25.00", o "inf" / "-inf" / "NaN" cuando la cantidad almacenada es cero.
type SummaryRowDTO struct {
	ProductCode   string            `json:"product_code"`
	StoredUnits   decimal.Decimal   `json:"stored_units"`
	AffectedUnits decimal.Decimal   `json:"affected_units"`
	AffectedPct   entity.Percentage `json:"affected_pct" swaggertype:"string"`
	Rows          int               `json:"rows"`
}

// AnalysisResponse respuesta de POST /api/affectation/analyze.
type AnalysisResponse struct {
	AnalysisID     string            `json:"analysis_id"`
	FileName       string            `json:"file_name"`
	ReportFileName string            `json:"report_file_name"`
	RowsProcessed  int               `json:"rows_processed"`
	Products       int               `json:"products"`
	TotalStored    decimal.Decimal   `json:"total_stored_units"`
	TotalAffected  decimal.Decimal   `json:"total_affected_units"`
	TotalPct       entity.Percentage `json:"total_affected_pct" swaggertype:"string"`
	Summary        []SummaryRowDTO   `json:"summary"`
}

// NewAnalysisResponse arma la respuesta a partir del resumen calculado.
func NewAnalysisResponse(id, fileName, reportFileName string, rows int, summary []entity.SummaryRecord) AnalysisResponse {
	out := AnalysisResponse{
		AnalysisID:     id,
		FileName:       fileName,
		ReportFileName: reportFileName,
		RowsProcessed:  rows,
		Products:       len(summary),
		TotalStored:    decimal.Zero,
		TotalAffected:  decimal.Zero,
		Summary:        make([]SummaryRowDTO, 0, len(summary)),
	}
	for _, s := range summary {
		out.TotalStored = out.TotalStored.Add(s.StoredUnits)
		out.TotalAffected = out.TotalAffected.Add(s.AffectedUnits)
		out.Summary = append(out.Summary, SummaryRowDTO{
			ProductCode:   s.ProductCode,
			StoredUnits:   s.StoredUnits,
			AffectedUnits: s.AffectedUnits,
			AffectedPct:   s.AffectedPct,
			Rows:          s.RowCount,
		})
	}
	out.TotalPct = entity.AffectedPercentage(out.TotalAffected, out.TotalStored)
	return out
}

// UnitInterpretationResponse respuesta de GET /api/units/interpret.
type UnitInterpretationResponse struct {
	Code       string          `json:"code"`
	Rule       string          `json:"rule"`
	Multiplier decimal.Decimal `json:"multiplier"`
	Quantity   string          `json:"quantity"`
	Units      decimal.Decimal `json:"units"`
}
