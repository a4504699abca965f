package entity_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/afectacion-api/internal/domain/entity"
)

func TestAffectedPercentage_Finito(t *testing.T) {
	p := entity.AffectedPercentage(decimal.NewFromInt(250), decimal.NewFromInt(1000))
	require.True(t, p.IsFinite())
	assert.Equal(t, "25.00", p.String())
	assert.Equal(t, 25.0, p.Float64())
}

func TestAffectedPercentage_RedondeoDosDecimales(t *testing.T) {
	p := entity.AffectedPercentage(decimal.NewFromInt(1), decimal.NewFromInt(3))
	assert.Equal(t, "33.33", p.String())

	p = entity.AffectedPercentage(decimal.NewFromInt(2), decimal.NewFromInt(3))
	assert.Equal(t, "66.67", p.String())

	// 0.125 % → mitad al par
	p = entity.AffectedPercentage(decimal.NewFromInt(1), decimal.NewFromInt(800))
	assert.Equal(t, "0.12", p.String())
}

func TestAffectedPercentage_DivisionPorCero(t *testing.T) {
	pos := entity.AffectedPercentage(decimal.NewFromInt(5), decimal.Zero)
	assert.False(t, pos.IsFinite())
	assert.Equal(t, "inf", pos.String())
	assert.True(t, math.IsInf(pos.Float64(), 1))

	neg := entity.AffectedPercentage(decimal.NewFromInt(-5), decimal.Zero)
	assert.Equal(t, "-inf", neg.String())
	assert.True(t, math.IsInf(neg.Float64(), -1))

	nan := entity.AffectedPercentage(decimal.Zero, decimal.Zero)
	assert.Equal(t, "NaN", nan.String())
	assert.True(t, math.IsNaN(nan.Float64()))
}

func TestPercentage_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(entity.AffectedPercentage(decimal.NewFromInt(1), decimal.NewFromInt(4)))
	require.NoError(t, err)
	assert.JSONEq(t, `"25.00"`, string(b))

	b, err = json.Marshal(entity.AffectedPercentage(decimal.NewFromInt(1), decimal.Zero))
	require.NoError(t, err)
	assert.JSONEq(t, `"inf"`, string(b))
}
