package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/afectacion-api/internal/application/affectation"
	"github.com/jhoicas/afectacion-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Analyze        *affectation.AnalyzeUseCase
	AppName        string
	JWTSecret      string
	RateLimitRPS   float64
	RateLimitBurst int
	Log            *logger.Logger
}

// Router registra la página web y las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Log != nil {
		app.Use(RequestLogger(deps.Log))
	}

	// Un solo bucket para todas las rutas que procesan archivos.
	limiter := NewRateLimiter(deps.RateLimitRPS, deps.RateLimitBurst)
	limit := limiter.RateLimit()

	// Página de carga (pública)
	web := NewWebHandler(deps.Analyze, deps.AppName)
	app.Get("/", web.Index)
	app.Post("/", limiter.Handler(web.RateLimited), web.Upload)

	// API (Bearer Token si JWT_SECRET está configurado)
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	affectationHandler := NewAffectationHandler(deps.Analyze)
	aff := api.Group("/affectation")
	aff.Post("/analyze", limit, affectationHandler.Analyze)
	aff.Post("/report", limit, affectationHandler.Report)
	aff.Post("/report/pdf", limit, affectationHandler.ReportPDF)

	api.Get("/units/interpret", affectationHandler.Interpret)
}
