// Package uom interpreta los códigos de unidad de medida (UM) que vienen en los reportes de bodega
// ("1Q", "6 UN", "3 AJ", "Y40") y convierte una cantidad declarada a unidades base.
//
// Las reglas se prueban en orden fijo y gana la primera que aplica:
//
//	1. Millar:        ^(\d*)Q$              cantidad × (n|1) × 1000
//	2. Letra unidad:  ^(\d*)\s*([A-Z]+)$    UN y AJ → cantidad × (n|1); otras letras siguen de largo
//	3. Letra + 2 díg: ^([A-Z])(\d{2})$      cantidad × ((Z-letra+1)×100 + dígitos)
//	4. Sin regla:                           cantidad sin cambios
package uom

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Rule identifica la regla que resolvió un código.
type Rule string

const (
	RuleMissing      Rule = "missing"
	RuleThousandPack Rule = "thousand_pack"
	RuleUnitLetter   Rule = "unit_letter"
	RuleLetterBase   Rule = "letter_base"
	RulePassthrough  Rule = "passthrough"
)

var (
	reThousandPack = regexp.MustCompile(`^(\d*)Q$`)
	// El separador admite cualquier espacio Unicode (NBSP, \v...), no solo los de ASCII.
	reUnitLetter   = regexp.MustCompile(`^(\d*)[\s\v\p{Z}\x{85}\x{1c}-\x{1f}]*([A-Z]+)$`)
	reLetterBase   = regexp.MustCompile(`^([A-Z])(\d{2})$`)

	thousand = decimal.NewFromInt(1000)
	hundred  = decimal.NewFromInt(100)
)

// maxExponent tope del exponente decimal de una cantidad (un float64 llega a ~1e308).
const maxExponent = 350

// Letras de unidad con semántica conocida. AJ se trata igual que UN: el tamaño real
// de cada saco (25, 50...) no viene en el reporte.
var unitLetters = map[string]bool{
	"UN": true,
	"AJ": true,
}

// Interpretation resultado de interpretar un código UM.
// Multiplier es cero solo para RuleMissing.
type Interpretation struct {
	Code       string          // código ya limpio (trim + mayúsculas)
	Rule       Rule
	Multiplier decimal.Decimal
}

// Interpret limpia el código y devuelve la regla que aplica y su multiplicador.
// Un código vacío se considera ausente.
func Interpret(unitCode string) Interpretation {
	if unitCode == "" {
		return Interpretation{Rule: RuleMissing, Multiplier: decimal.Zero}
	}
	code := strings.ToUpper(strings.TrimFunc(unitCode, isSpace))

	if m := reThousandPack.FindStringSubmatch(code); m != nil {
		return Interpretation{Code: code, Rule: RuleThousandPack, Multiplier: leadingCount(m[1]).Mul(thousand)}
	}

	if m := reUnitLetter.FindStringSubmatch(code); m != nil && unitLetters[m[2]] {
		return Interpretation{Code: code, Rule: RuleUnitLetter, Multiplier: leadingCount(m[1])}
	}

	if m := reLetterBase.FindStringSubmatch(code); m != nil {
		letter := m[1][0]
		base := decimal.NewFromInt(int64('Z'-letter) + 1).Mul(hundred)
		suffix, _ := decimal.NewFromString(m[2])
		return Interpretation{Code: code, Rule: RuleLetterBase, Multiplier: base.Add(suffix)}
	}

	return Interpretation{Code: code, Rule: RulePassthrough, Multiplier: decimal.NewFromInt(1)}
}

// Apply convierte la cantidad a unidades base.
func (i Interpretation) Apply(quantity decimal.Decimal) decimal.Decimal {
	if i.Rule == RuleMissing {
		return decimal.Zero
	}
	return quantity.Mul(i.Multiplier)
}

// Normalize convierte una cantidad con su código UM a unidades base.
// Nunca falla: cantidad vacía o no numérica y código vacío devuelven 0;
// un código que no coincide con ninguna regla deja la cantidad igual.
func Normalize(quantity, unitCode string) decimal.Decimal {
	q, ok := ParseQuantity(quantity)
	if !ok || unitCode == "" {
		return decimal.Zero
	}
	return Interpret(unitCode).Apply(q)
}

// ParseQuantity interpreta el texto de una celda como número. ok=false si está vacía, no es numérica
// o está fuera del rango de un float64 ("1e400", "1e-10000000").
func ParseQuantity(s string) (decimal.Decimal, bool) {
	s = strings.TrimFunc(s, isSpace)
	if s == "" {
		return decimal.Zero, false
	}
	if _, err := strconv.ParseFloat(s, 64); errors.Is(err, strconv.ErrRange) {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.Exponent() < -maxExponent || d.Exponent() > maxExponent {
		return decimal.Zero, false
	}
	return d, true
}

// isSpace espacios Unicode más los separadores de control \x1c-\x1f.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// leadingCount: prefijo numérico del código; vacío vale 1.
func leadingCount(digits string) decimal.Decimal {
	if digits == "" {
		return decimal.NewFromInt(1)
	}
	d, err := decimal.NewFromString(digits)
	if err != nil {
		return decimal.NewFromInt(1)
	}
	return d
}
