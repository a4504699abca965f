package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/afectacion-api/internal/application/affectation"
	"github.com/jhoicas/afectacion-api/internal/domain/entity"
	"github.com/jhoicas/afectacion-api/internal/infrastructure/pdf"
)

func TestGenerateSummaryPDF(t *testing.T) {
	doc := affectation.SummaryDocument{
		AnalysisID:  "00000000-0000-0000-0000-000000000001",
		FileName:    "bodega.xlsx",
		GeneratedAt: time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC),
		Summary: []entity.SummaryRecord{
			{
				ProductCode:   "101",
				StoredUnits:   decimal.NewFromInt(1000),
				AffectedUnits: decimal.NewFromInt(250),
				AffectedPct:   entity.AffectedPercentage(decimal.NewFromInt(250), decimal.NewFromInt(1000)),
			},
			{
				ProductCode:   "102",
				StoredUnits:   decimal.Zero,
				AffectedUnits: decimal.NewFromInt(3),
				AffectedPct:   entity.AffectedPercentage(decimal.NewFromInt(3), decimal.Zero),
			},
		},
		TotalStored:   decimal.NewFromInt(1000),
		TotalAffected: decimal.NewFromInt(253),
		TotalPct:      entity.AffectedPercentage(decimal.NewFromInt(253), decimal.NewFromInt(1000)),
	}

	out, err := pdf.NewMarotoSummaryGenerator().GenerateSummaryPDF(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe ser un PDF")
}

func TestGenerateSummaryPDF_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := pdf.NewMarotoSummaryGenerator().GenerateSummaryPDF(ctx, affectation.SummaryDocument{})
	assert.ErrorIs(t, err, context.Canceled)
}
