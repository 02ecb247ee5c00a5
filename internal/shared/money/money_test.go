package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestParseAmount(t *testing.T) {
	c, err := ParseAmount(dec("100.00"))
	require.NoError(t, err)
	assert.Equal(t, int64(10000), c)

	c, err = ParseAmount(dec("0.01"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), c)

	c, err = ParseAmount(dec("250"))
	require.NoError(t, err)
	assert.Equal(t, int64(25000), c)
}

func TestParseAmount_RejectsExtraPrecision(t *testing.T) {
	_, err := ParseAmount(dec("10.005"))
	assert.Error(t, err)

	_, err = ParseAmount(dec("0.001"))
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "250.00", Format(25000))
	assert.Equal(t, "0.01", Format(1))
	assert.Equal(t, "1000.00", Format(100000))
}

func TestPotentialReturn(t *testing.T) {
	// 100.00 × 2.50 = 250.00
	assert.Equal(t, int64(25000), PotentialReturn(10000, dec("2.50")))

	// 50.00 × 3.20 = 160.00
	assert.Equal(t, int64(16000), PotentialReturn(5000, dec("3.20")))

	// arredondamento ao centavo: 33.33 × 1.50 = 49.995 -> 50.00
	assert.Equal(t, int64(5000), PotentialReturn(3333, dec("1.50")))

	// sem erro de ponto flutuante: 0.10 × 3.00 = 0.30
	assert.Equal(t, int64(30), PotentialReturn(10, dec("3.00")))
}
