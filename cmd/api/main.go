package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/afectacion-api/internal/application/affectation"
	"github.com/jhoicas/afectacion-api/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/afectacion-api/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/afectacion-api/internal/interfaces/http"
	"github.com/jhoicas/afectacion-api/pkg/config"
	"github.com/jhoicas/afectacion-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Bool("jwt", cfg.JWT.Enabled()).
		Float64("rate_limit_rps", cfg.RateLimit.RPS).
		Msg("iniciando aplicación")

	analyzeUC := affectation.NewAnalyzeUseCase(
		excel.NewTableReader(),
		excel.NewReportWriter(),
		infrapdf.NewMarotoSummaryGenerator(),
		affectation.Config{
			ReportFileName: cfg.Report.FileName,
			SummarySheet:   cfg.Report.SummarySheet,
			DetailSheet:    cfg.Report.DetailSheet,
		},
		log.Named("affectation"),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimit(),
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Afectación en Unidades API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Analyze:        analyzeUC,
		AppName:        cfg.App.Name,
		JWTSecret:      cfg.JWT.Secret,
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
		Log:            log.Named("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
