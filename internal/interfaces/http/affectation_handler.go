package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/afectacion-api/internal/application/affectation"
	"github.com/jhoicas/afectacion-api/internal/application/dto"
	"github.com/jhoicas/afectacion-api/internal/domain"
	"github.com/jhoicas/afectacion-api/internal/domain/uom"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePDF  = "application/pdf"

	uploadField = "archivo"
)

// AffectationHandler maneja la carga de archivos de bodega y la descarga de resultados.
type AffectationHandler struct {
	uc *affectation.AnalyzeUseCase
}

// NewAffectationHandler construye el handler.
func NewAffectationHandler(uc *affectation.AnalyzeUseCase) *AffectationHandler {
	return &AffectationHandler{uc: uc}
}

// Analyze godoc
// @Summary      Analizar archivo de bodega
// @Description  Convierte las cantidades a unidades base y devuelve el resumen por código de producto.
// @Tags         affectation
// @Accept       multipart/form-data
// @Produce      json
// @Param        archivo  formData  file  true  "Archivo .xlsx o .csv"
// @Success      200  {object}  dto.AnalysisResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      415  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.MissingColumnsResponse
// @Router       /api/affectation/analyze [post]
func (h *AffectationHandler) Analyze(c *fiber.Ctx) error {
	a, err := analyzeUpload(c, h.uc)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewAnalysisResponse(a.ID, a.FileName, a.ReportFileName, len(a.Result.Rows), a.Result.Summary))
}

// Report godoc
// @Summary      Descargar libro de resultados
// @Description  Devuelve el .xlsx con las hojas de resumen y detalle con unidades.
// @Tags         affectation
// @Accept       multipart/form-data
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        archivo  formData  file  true  "Archivo .xlsx o .csv"
// @Success      200  {file}    file
// @Failure      422  {object}  dto.MissingColumnsResponse
// @Router       /api/affectation/report [post]
func (h *AffectationHandler) Report(c *fiber.Ctx) error {
	a, err := analyzeUpload(c, h.uc)
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment(a.ReportFileName)
	c.Set(fiber.HeaderContentType, mimeXLSX)
	return c.Send(a.Workbook)
}

// ReportPDF godoc
// @Summary      Descargar resumen en PDF
// @Tags         affectation
// @Accept       multipart/form-data
// @Produce      application/pdf
// @Param        archivo  formData  file  true  "Archivo .xlsx o .csv"
// @Success      200  {file}    file
// @Failure      422  {object}  dto.MissingColumnsResponse
// @Router       /api/affectation/report/pdf [post]
func (h *AffectationHandler) ReportPDF(c *fiber.Ctx) error {
	a, err := analyzeUpload(c, h.uc)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.SummaryPDF(c.UserContext(), a)
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment(h.uc.PDFFileName())
	c.Set(fiber.HeaderContentType, mimePDF)
	return c.Send(out)
}

// Interpret godoc
// @Summary      Interpretar un código de unidad de medida
// @Description  Muestra qué regla aplica al código y cuántas unidades base resultan.
// @Tags         units
// @Produce      json
// @Param        code      query  string  true   "Código UM (ej. Y40, 6 UN, 5Q)"
// @Param        quantity  query  string  false  "Cantidad" default(1)
// @Success      200  {object}  dto.UnitInterpretationResponse
// @Router       /api/units/interpret [get]
func (h *AffectationHandler) Interpret(c *fiber.Ctx) error {
	code := c.Query("code")
	quantity := c.Query("quantity", "1")
	in := uom.Interpret(code)
	return c.JSON(dto.UnitInterpretationResponse{
		Code:       in.Code,
		Rule:       string(in.Rule),
		Multiplier: in.Multiplier,
		Quantity:   quantity,
		Units:      uom.Normalize(quantity, code),
	})
}

// analyzeUpload lee el campo multipart y corre el análisis completo.
func analyzeUpload(c *fiber.Ctx, uc *affectation.AnalyzeUseCase) (*affectation.Analysis, error) {
	fh, err := c.FormFile(uploadField)
	if err != nil {
		return nil, errMissingFile
	}
	f, err := fh.Open()
	if err != nil {
		return nil, &domain.ProcessingError{Cause: err}
	}
	defer f.Close()
	return uc.Analyze(c.UserContext(), affectation.Upload{FileName: fh.Filename, Content: f})
}
