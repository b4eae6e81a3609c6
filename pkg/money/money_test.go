package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatKnownSymbol(t *testing.T) {
	assert.Equal(t, "RM 3,180.00", Format("MYR", decimal.NewFromInt(3180)))
	assert.Equal(t, "RM 2,544.00", Format("MYR", decimal.NewFromInt(2544)))
	assert.Equal(t, "RM 0.00", Format("MYR", decimal.Zero))
}

func TestFormatUnknownCurrencyUsesCode(t *testing.T) {
	assert.Equal(t, "SGD 922.20", Format("SGD", decimal.NewFromFloat(922.2)))
}

func TestFormatGroupsLargeAmounts(t *testing.T) {
	assert.Equal(t, "IDR 10,494,000.00", Format("IDR", decimal.NewFromInt(10494000)))
}

func TestFormatNegative(t *testing.T) {
	assert.Equal(t, "RM -636.00", Format("MYR", decimal.NewFromInt(-636)))
}

func TestClampFloor(t *testing.T) {
	assert.True(t, ClampFloor(decimal.NewFromInt(-5), decimal.Zero).IsZero())
	assert.Equal(t, "10", ClampFloor(decimal.NewFromInt(10), decimal.Zero).String())
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "0.2", Percent(decimal.NewFromInt(20)).String())
	assert.Equal(t, "0.03", Percent(decimal.NewFromInt(3)).String())
}

func TestRound2(t *testing.T) {
	v := decimal.NewFromFloat(529.999)
	assert.Equal(t, "530.00", Round2(v).StringFixed(2))
}
