package affectation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/afectacion-api/internal/domain"
	"github.com/jhoicas/afectacion-api/internal/domain/entity"
	"github.com/jhoicas/afectacion-api/pkg/logger"
)

// Config nombres del archivo y hojas de salida.
type Config struct {
	ReportFileName string
	SummarySheet   string
	DetailSheet    string
}

// Upload archivo recibido del usuario.
type Upload struct {
	FileName string
	Content  io.Reader
}

// Analysis resultado completo de un archivo: resumen, detalle y el libro ya generado.
// No se guarda en ningún lado; vive lo que dura la petición.
type Analysis struct {
	ID             string
	FileName       string
	ReportFileName string
	CreatedAt      time.Time
	Result         *Result
	Workbook       []byte
}

// AnalyzeUseCase orquesta lectura → normalización/agrupación → libro de salida.
type AnalyzeUseCase struct {
	reader TableReader
	writer ReportWriter
	pdf    SummaryPDFGenerator
	cfg    Config
	log    *logger.Logger
	now    func() time.Time
}

// NewAnalyzeUseCase construye el caso de uso inyectando sus dependencias.
func NewAnalyzeUseCase(reader TableReader, writer ReportWriter, pdf SummaryPDFGenerator, cfg Config, log *logger.Logger) *AnalyzeUseCase {
	if cfg.ReportFileName == "" {
		cfg.ReportFileName = "afectacion_convertida.xlsx"
	}
	if cfg.SummarySheet == "" {
		cfg.SummarySheet = "Resumen"
	}
	if cfg.DetailSheet == "" {
		cfg.DetailSheet = "Detalle con Unidades"
	}
	return &AnalyzeUseCase{
		reader: reader,
		writer: writer,
		pdf:    pdf,
		cfg:    cfg,
		log:    log,
		now:    time.Now,
	}
}

// Analyze procesa un archivo completo.
//
// Retorna:
//   - *domain.MissingColumnsError si faltan columnas obligatorias (sin cálculo alguno).
//   - *domain.ProcessingError     ante cualquier otra falla (archivo corrupto, formato no soportado...).
func (uc *AnalyzeUseCase) Analyze(ctx context.Context, in Upload) (*Analysis, error) {
	started := uc.now()
	id := uuid.New().String()

	if err := ctx.Err(); err != nil {
		return nil, &domain.ProcessingError{Cause: err}
	}

	table, err := uc.reader.Read(in.FileName, in.Content)
	if err != nil {
		uc.log.Warn().Err(err).Str("analysis_id", id).Str("file", in.FileName).Msg("lectura de archivo fallida")
		return nil, &domain.ProcessingError{Cause: err}
	}

	result, err := Process(table)
	if err != nil {
		var missing *domain.MissingColumnsError
		if errors.As(err, &missing) {
			uc.log.Info().Str("analysis_id", id).Str("file", in.FileName).
				Strs("missing", missing.Missing).Msg("faltan columnas obligatorias")
			return nil, err
		}
		return nil, &domain.ProcessingError{Cause: err}
	}

	workbook, err := uc.writer.Write(result, ReportLayout{SummarySheet: uc.cfg.SummarySheet, DetailSheet: uc.cfg.DetailSheet})
	if err != nil {
		uc.log.Error().Err(err).Str("analysis_id", id).Msg("generar libro de resultados")
		return nil, &domain.ProcessingError{Cause: fmt.Errorf("generar libro: %w", err)}
	}

	uc.log.Info().
		Str("analysis_id", id).
		Str("file", in.FileName).
		Int("rows", len(result.Rows)).
		Int("products", len(result.Summary)).
		Dur("elapsed", uc.now().Sub(started)).
		Msg("análisis completado")

	return &Analysis{
		ID:             id,
		FileName:       in.FileName,
		ReportFileName: uc.cfg.ReportFileName,
		CreatedAt:      started,
		Result:         result,
		Workbook:       workbook,
	}, nil
}

// SummaryPDF genera el PDF del resumen de un análisis ya calculado.
func (uc *AnalyzeUseCase) SummaryPDF(ctx context.Context, a *Analysis) ([]byte, error) {
	if a == nil || a.Result == nil {
		return nil, domain.ErrInvalidInput
	}
	doc := SummaryDocument{
		AnalysisID:    a.ID,
		FileName:      a.FileName,
		GeneratedAt:   a.CreatedAt,
		Summary:       a.Result.Summary,
		TotalStored:   a.Result.TotalStored(),
		TotalAffected: a.Result.TotalAffected(),
	}
	doc.TotalPct = entity.AffectedPercentage(doc.TotalAffected, doc.TotalStored)
	out, err := uc.pdf.GenerateSummaryPDF(ctx, doc)
	if err != nil {
		return nil, &domain.ProcessingError{Cause: fmt.Errorf("generar pdf: %w", err)}
	}
	return out, nil
}

// PDFFileName nombre sugerido para el PDF a partir del nombre del libro.
func (uc *AnalyzeUseCase) PDFFileName() string {
	name := uc.cfg.ReportFileName
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".pdf"
}
