package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/jhoicas/afectacion-api/internal/application/affectation"
	"github.com/jhoicas/afectacion-api/internal/domain/uom"
	"github.com/jhoicas/afectacion-api/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/afectacion-api/internal/infrastructure/pdf"
	"github.com/jhoicas/afectacion-api/pkg/jwt"
	"github.com/jhoicas/afectacion-api/pkg/numfmt"
)

// =============================================================================
// CONVERT
// =============================================================================

func convertCommand() *cli.Command {
	return &cli.Command{
		Name:  "convert",
		Usage: "Procesa un archivo de bodega y escribe el libro con resumen y detalle",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "in", Aliases: []string{"i"}, Usage: "Archivo .xlsx o .csv", Required: true},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "afectacion_convertida.xlsx", Usage: "Libro de salida"},
			&cli.StringFlag{Name: "pdf", Usage: "Si se indica, escribe también el resumen en PDF"},
			&cli.StringFlag{Name: "summary-sheet", Value: "Resumen", EnvVars: []string{"REPORT_SUMMARY_SHEET"}},
			&cli.StringFlag{Name: "detail-sheet", Value: "Detalle con Unidades", EnvVars: []string{"REPORT_DETAIL_SHEET"}},
		},
		Action: runConvert,
	}
}

func runConvert(c *cli.Context) error {
	in, err := os.Open(c.String("in"))
	if err != nil {
		return err
	}
	defer in.Close()

	uc := affectation.NewAnalyzeUseCase(
		excel.NewTableReader(),
		excel.NewReportWriter(),
		infrapdf.NewMarotoSummaryGenerator(),
		affectation.Config{
			ReportFileName: c.String("out"),
			SummarySheet:   c.String("summary-sheet"),
			DetailSheet:    c.String("detail-sheet"),
		},
		cliLogger(c),
	)

	a, err := uc.Analyze(c.Context, affectation.Upload{FileName: filepath.Base(in.Name()), Content: in})
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.String("out"), a.Workbook, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", c.String("out"), err)
	}

	if path := c.String("pdf"); path != "" {
		doc, err := uc.SummaryPDF(c.Context, a)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, doc, 0o644); err != nil {
			return fmt.Errorf("escribir %s: %w", path, err)
		}
	}

	w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, h := range affectation.SummaryHeaders {
		fmt.Fprintf(w, "%s\t", h)
	}
	fmt.Fprintln(w)
	for _, s := range a.Result.Summary {
		pct := s.AffectedPct.String()
		if s.AffectedPct.IsFinite() {
			pct = numfmt.Fixed2(s.AffectedPct.Value)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", s.ProductCode, numfmt.Units(s.StoredUnits), numfmt.Units(s.AffectedUnits), pct)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "\n%d filas, %d productos -> %s\n", len(a.Result.Rows), len(a.Result.Summary), c.String("out"))
	return nil
}

// =============================================================================
// NORMALIZE
// =============================================================================

func normalizeCommand() *cli.Command {
	return &cli.Command{
		Name:  "normalize",
		Usage: "Muestra cómo se interpreta un código UM y cuántas unidades resultan",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "code", Aliases: []string{"c"}, Usage: "Código UM (ej. Y40, 6 UN, 5Q)", Required: true},
			&cli.StringFlag{Name: "quantity", Aliases: []string{"q"}, Value: "1", Usage: "Cantidad declarada"},
		},
		Action: func(c *cli.Context) error {
			in := uom.Interpret(c.String("code"))
			units := uom.Normalize(c.String("quantity"), c.String("code"))
			fmt.Fprintf(c.App.Writer, "código:        %s\nregla:         %s\nmultiplicador: %s\nunidades:      %s\n",
				in.Code, in.Rule, in.Multiplier.String(), units.String())
			return nil
		},
	}
}

// =============================================================================
// TOKEN
// =============================================================================

func tokenCommand() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "Genera un Bearer token para la API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "subject", Aliases: []string{"s"}, Required: true},
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}},
			&cli.StringFlag{Name: "secret", EnvVars: []string{"JWT_SECRET"}, Required: true},
			&cli.StringFlag{Name: "issuer", Value: "afectacion-unidades", EnvVars: []string{"JWT_ISSUER"}},
			&cli.IntFlag{Name: "expiration", Value: 60, Usage: "Minutos de vigencia", EnvVars: []string{"JWT_EXPIRATION_MINUTES"}},
		},
		Action: func(c *cli.Context) error {
			tok, err := jwt.Generate(c.String("secret"), c.String("subject"), c.String("name"), c.String("issuer"), c.Int("expiration"))
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, tok)
			return nil
		},
	}
}
