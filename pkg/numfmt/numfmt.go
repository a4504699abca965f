// Package numfmt formatea cantidades para mostrar en pantalla y en PDF con la convención colombiana
// (punto de miles, coma decimal).
package numfmt

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var tag = language.MustParse("es-CO")

// Units cantidad en unidades base, hasta 3 decimales.
func Units(d decimal.Decimal) string {
	return message.NewPrinter(tag).Sprint(number.Decimal(d.InexactFloat64(), number.MaxFractionDigits(3)))
}

// Fixed2 valor con exactamente 2 decimales (porcentajes).
func Fixed2(d decimal.Decimal) string {
	return message.NewPrinter(tag).Sprint(number.Decimal(d.InexactFloat64(),
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
