package http

import (
	"bytes"
	"embed"
	"encoding/base64"
	"html/template"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/afectacion-api/internal/application/affectation"
	"github.com/jhoicas/afectacion-api/internal/domain/entity"
	"github.com/jhoicas/afectacion-api/pkg/numfmt"
)

//go:embed templates/index.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

// WebHandler página de carga: formulario, tabla de resumen y enlace de descarga.
// El libro viaja en la misma respuesta (data URI); el servidor no guarda nada entre peticiones.
type WebHandler struct {
	uc      *affectation.AnalyzeUseCase
	appName string
}

// NewWebHandler construye el handler.
func NewWebHandler(uc *affectation.AnalyzeUseCase, appName string) *WebHandler {
	return &WebHandler{uc: uc, appName: appName}
}

type pageRow struct {
	Code      string
	Stored    string
	Affected  string
	Pct       string
	NonFinite bool
}

type pageData struct {
	AppName        string
	Required       []string
	Headers        []string
	Error          string
	FileName       string
	AnalysisID     string
	RowsProcessed  int
	Rows           []pageRow
	Total          pageRow
	ReportFileName string
	DownloadHref   template.URL
}

// Index GET /: formulario vacío.
func (h *WebHandler) Index(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusOK, h.basePage())
}

// Upload POST /: procesa el archivo y muestra el resumen o el mensaje de error.
func (h *WebHandler) Upload(c *fiber.Ctx) error {
	data := h.basePage()
	a, err := analyzeUpload(c, h.uc)
	if err != nil {
		status, _ := statusFor(err)
		data.Error = err.Error()
		return h.render(c, status, data)
	}

	data.FileName = a.FileName
	data.AnalysisID = a.ID
	data.RowsProcessed = len(a.Result.Rows)
	data.ReportFileName = a.ReportFileName
	data.DownloadHref = template.URL("data:" + mimeXLSX + ";base64," + base64.StdEncoding.EncodeToString(a.Workbook))
	for _, s := range a.Result.Summary {
		data.Rows = append(data.Rows, newPageRow(s.ProductCode, s))
	}
	total := entity.SummaryRecord{
		StoredUnits:   a.Result.TotalStored(),
		AffectedUnits: a.Result.TotalAffected(),
	}
	total.AffectedPct = entity.AffectedPercentage(total.AffectedUnits, total.StoredUnits)
	data.Total = newPageRow("TOTAL", total)
	return h.render(c, fiber.StatusOK, data)
}

// RateLimited página con el aviso de límite; el status 429 lo pone el limitador.
func (h *WebHandler) RateLimited(c *fiber.Ctx) error {
	data := h.basePage()
	data.Error = errRateLimited.Error()
	return h.render(c, c.Response().StatusCode(), data)
}

func (h *WebHandler) basePage() pageData {
	return pageData{
		AppName:  h.appName,
		Required: affectation.RequiredColumns,
		Headers:  affectation.SummaryHeaders,
	}
}

func (h *WebHandler) render(c *fiber.Ctx, status int, data pageData) error {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}

func newPageRow(label string, s entity.SummaryRecord) pageRow {
	r := pageRow{
		Code:     label,
		Stored:   numfmt.Units(s.StoredUnits),
		Affected: numfmt.Units(s.AffectedUnits),
	}
	if s.AffectedPct.IsFinite() {
		r.Pct = numfmt.Fixed2(s.AffectedPct.Value)
	} else {
		r.Pct = s.AffectedPct.String()
		r.NonFinite = true
	}
	return r
}
