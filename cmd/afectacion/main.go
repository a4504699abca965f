// afectacion convierte reportes de bodega a unidades base sin levantar el servidor.
//
// Uso:
//
//	afectacion convert --in bodega.xlsx [--out afectacion_convertida.xlsx] [--pdf resumen.pdf]
//	afectacion normalize --code Y40 [--quantity 2]
//	afectacion token --subject analista@bodega.co
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/jhoicas/afectacion-api/pkg/logger"
)

var version = "dev"

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:    "afectacion",
		Usage:   "Conversión de cantidades de bodega a unidades base y resumen de afectación",
		Version: version,
		Writer:  out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Nivel de log (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Commands: []*cli.Command{
			convertCommand(),
			normalizeCommand(),
			tokenCommand(),
		},
	}
}

// cliLogger los logs van a stderr para no mezclarse con la salida del comando.
func cliLogger(c *cli.Context) *logger.Logger {
	return logger.New(logger.Config{
		Env:    "development",
		Level:  c.String("log-level"),
		Output: os.Stderr,
	})
}
