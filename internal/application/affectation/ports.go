package affectation

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/afectacion-api/internal/domain/entity"
)

// TableReader lee la primera hoja del archivo cargado. El formato se decide por la extensión del nombre.
type TableReader interface {
	Read(fileName string, r io.Reader) (entity.Table, error)
}

// ReportLayout nombres de hojas del libro de salida.
type ReportLayout struct {
	SummarySheet string
	DetailSheet  string
}

// ReportWriter arma el libro de resultados (resumen + detalle) y devuelve sus bytes.
type ReportWriter interface {
	Write(result *Result, layout ReportLayout) ([]byte, error)
}

// SummaryDocument datos que necesita la representación PDF del resumen.
type SummaryDocument struct {
	AnalysisID    string
	FileName      string
	GeneratedAt   time.Time
	Summary       []entity.SummaryRecord
	TotalStored   decimal.Decimal
	TotalAffected decimal.Decimal
	TotalPct      entity.Percentage
}

// SummaryPDFGenerator genera el PDF del resumen.
type SummaryPDFGenerator interface {
	GenerateSummaryPDF(ctx context.Context, doc SummaryDocument) ([]byte, error)
}
