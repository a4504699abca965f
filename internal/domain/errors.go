package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrMissingColumns    = errors.New("faltan columnas obligatorias")
	ErrUnsupportedFormat = errors.New("formato de archivo no soportado")
	ErrEmptyTable        = errors.New("el archivo no contiene filas ni encabezados")
)

// MissingColumnsError indica que la tabla de entrada no trae todas las columnas obligatorias.
// Se detecta antes de cualquier cálculo; no hay salida parcial.
type MissingColumnsError struct {
	Required []string
	Missing  []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s: %s (faltan: %s)",
		ErrMissingColumns.Error(), strings.Join(e.Required, ", "), strings.Join(e.Missing, ", "))
}

func (e *MissingColumnsError) Unwrap() error { return ErrMissingColumns }

// ProcessingError envuelve cualquier falla inesperada al leer o procesar el archivo.
type ProcessingError struct {
	Cause error
}

func (e *ProcessingError) Error() string {
	return "Ocurrió un error al procesar el archivo: " + e.Cause.Error()
}

func (e *ProcessingError) Unwrap() error { return e.Cause }
