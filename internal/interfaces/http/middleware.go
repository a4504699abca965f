package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/jhoicas/afectacion-api/internal/application/dto"
	"github.com/jhoicas/afectacion-api/pkg/logger"
)

// errRateLimited mensaje común para las rutas API y la página.
var errRateLimited = errors.New("demasiadas cargas simultáneas, intente de nuevo en unos segundos")

// RateLimiter token bucket global compartido por todas las rutas que procesan archivos.
// rps <= 0 lo desactiva.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter construye el limitador.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if rps <= 0 {
		return &RateLimiter{}
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

// Handler consume un token por petición; sin token responde con onLimit (status 429 y Retry-After ya puestos).
func (l *RateLimiter) Handler(onLimit fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if l.limiter == nil || l.limiter.Allow() {
			return c.Next()
		}
		c.Set(fiber.HeaderRetryAfter, "1")
		c.Status(fiber.StatusTooManyRequests)
		return onLimit(c)
	}
}

// RateLimit variante JSON para la API.
func (l *RateLimiter) RateLimit() fiber.Handler {
	return l.Handler(func(c *fiber.Ctx) error {
		return c.JSON(dto.ErrorResponse{Code: "RATE_LIMITED", Message: errRateLimited.Error()})
	})
}

// RequestLogger registra método, ruta, estado y duración de cada petición.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		ev := log.Info()
		if err != nil || status >= fiber.StatusInternalServerError {
			ev = log.Error().Err(err)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("elapsed", time.Since(start)).
			Str("subject", GetSubject(c)).
			Msg("http")
		return err
	}
}
