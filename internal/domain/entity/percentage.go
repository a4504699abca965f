package entity

import (
	"encoding/json"
	"math"

	"github.com/shopspring/decimal"
)

// PercentageKind distingue un porcentaje finito de los marcadores de división por cero.
type PercentageKind int

const (
	PercentageFinite PercentageKind = iota
	PercentagePosInf
	PercentageNegInf
	PercentageNaN
)

var hundred = decimal.NewFromInt(100)

// Percentage % afectado de un producto. Cuando el total almacenado es cero el resultado
// no es finito (inf, -inf o NaN) y se reporta tal cual.
type Percentage struct {
	Kind  PercentageKind
	Value decimal.Decimal // solo válido si Kind == PercentageFinite
}

// AffectedPercentage = round(100 × affected / stored, 2).
// Redondeo bancario (mitad al par).
func AffectedPercentage(affected, stored decimal.Decimal) Percentage {
	if stored.IsZero() {
		switch affected.Sign() {
		case 1:
			return Percentage{Kind: PercentagePosInf}
		case -1:
			return Percentage{Kind: PercentageNegInf}
		default:
			return Percentage{Kind: PercentageNaN}
		}
	}
	return Percentage{Kind: PercentageFinite, Value: affected.Mul(hundred).Div(stored).RoundBank(2)}
}

// IsFinite indica si el porcentaje tiene valor numérico.
func (p Percentage) IsFinite() bool { return p.Kind == PercentageFinite }

// Float64 valor como float64; los marcadores se traducen a ±Inf y NaN.
func (p Percentage) Float64() float64 {
	switch p.Kind {
	case PercentagePosInf:
		return math.Inf(1)
	case PercentageNegInf:
		return math.Inf(-1)
	case PercentageNaN:
		return math.NaN()
	}
	return p.Value.InexactFloat64()
}

// String formato de presentación: "25.00", "inf", "-inf" o "NaN".
func (p Percentage) String() string {
	switch p.Kind {
	case PercentagePosInf:
		return "inf"
	case PercentageNegInf:
		return "-inf"
	case PercentageNaN:
		return "NaN"
	}
	return p.Value.StringFixed(2)
}

// MarshalJSON siempre como string, igual que decimal.Decimal: JSON no admite Inf ni NaN.
func (p Percentage) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}
