package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
	Report    ReportConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	UploadMaxMB int // límite del cuerpo de la petición (archivo cargado)
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// BodyLimit límite en bytes para Fiber.
func (c HTTPConfig) BodyLimit() int {
	return c.UploadMaxMB * 1024 * 1024
}

// JWTConfig configuración de JWT. Con Secret vacío la API queda abierta.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// Enabled indica si la API exige Bearer token.
func (c JWTConfig) Enabled() bool { return c.Secret != "" }

// RateLimitConfig límite global de cargas por segundo. RPS <= 0 lo desactiva.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// ReportConfig nombres del libro de salida.
type ReportConfig struct {
	FileName     string
	SummarySheet string
	DetailSheet  string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, JWT_SECRET, REPORT_FILE_NAME, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.MergeInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "afectacion-unidades"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 8080),
			UploadMaxMB: getInt(v, "UPLOAD_MAX_MB", 20),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "afectacion-unidades"),
		},
		RateLimit: RateLimitConfig{
			RPS:   getFloat(v, "RATE_LIMIT_RPS", 5),
			Burst: getInt(v, "RATE_LIMIT_BURST", 10),
		},
		Report: ReportConfig{
			FileName:     getString(v, "REPORT_FILE_NAME", "afectacion_convertida.xlsx"),
			SummarySheet: getString(v, "REPORT_SUMMARY_SHEET", "Resumen"),
			DetailSheet:  getString(v, "REPORT_DETAIL_SHEET", "Detalle con Unidades"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate revisa los valores que romperían el servidor o el libro de salida.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("config: HTTP_PORT inválido: %d", c.HTTP.Port)
	}
	if c.HTTP.UploadMaxMB <= 0 {
		return fmt.Errorf("config: UPLOAD_MAX_MB debe ser mayor que 0")
	}
	// Excel limita los nombres de hoja a 31 caracteres.
	for _, name := range []string{c.Report.SummarySheet, c.Report.DetailSheet} {
		if name == "" || len([]rune(name)) > 31 {
			return fmt.Errorf("config: nombre de hoja inválido %q", name)
		}
	}
	if c.Report.SummarySheet == c.Report.DetailSheet {
		return fmt.Errorf("config: las hojas de resumen y detalle deben tener nombres distintos")
	}
	if !strings.HasSuffix(strings.ToLower(c.Report.FileName), ".xlsx") {
		return fmt.Errorf("config: REPORT_FILE_NAME debe terminar en .xlsx")
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if v.IsSet(key) {
		f, err := strconv.ParseFloat(strings.TrimSpace(v.GetString(key)), 64)
		if err != nil {
			return def
		}
		return f
	}
	return def
}
