package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Aritmética monetária: valores trafegam como decimais de duas casas e são
// armazenados/calculados em centavos (int64), nunca em float binário.

// ParseAmount converte um decimal de duas casas em centavos.
// Rejeita valores com mais de duas casas, pra não esconder arredondamento.
func ParseAmount(d decimal.Decimal) (int64, error) {
	if !d.Equal(d.Round(2)) {
		return 0, fmt.Errorf("amount %s has more than two decimal places", d)
	}
	return d.Shift(2).Round(0).IntPart(), nil
}

// FromCents converte centavos de volta pro decimal de duas casas
func FromCents(c int64) decimal.Decimal {
	return decimal.New(c, -2)
}

// Format devolve a representação de transporte, ex: 25000 -> "250.00"
func Format(c int64) string {
	return FromCents(c).StringFixed(2)
}

// PotentialReturn calcula amount × odds em centavos, arredondado ao centavo
func PotentialReturn(amountCents int64, odds decimal.Decimal) int64 {
	return FromCents(amountCents).Mul(odds).Shift(2).Round(0).IntPart()
}
