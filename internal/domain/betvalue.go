package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// BetValue é a forma tipada do campo bet_value, que no transporte e no banco
// continua sendo uma string livre ("home_win", "over_2.5", "yes").
type BetValue struct {
	Type BetType

	// Type == BetTypeOutcome
	Outcome Outcome

	// Type == BetTypeOverUnder
	Over bool
	Line decimal.Decimal // linha de gols, ex: 2.5

	// Type == BetTypeBothTeamsScore
	BothScore bool
}

// ParseBetValue valida a string de bet_value contra a modalidade da aposta
func ParseBetValue(t BetType, raw string) (BetValue, error) {
	switch t {
	case BetTypeOutcome:
		o := Outcome(raw)
		if !o.Valid() {
			return BetValue{}, fmt.Errorf("bet_value %q is not a valid outcome", raw)
		}
		return BetValue{Type: t, Outcome: o}, nil

	case BetTypeOverUnder:
		var over bool
		var rest string
		switch {
		case strings.HasPrefix(raw, "over_"):
			over, rest = true, strings.TrimPrefix(raw, "over_")
		case strings.HasPrefix(raw, "under_"):
			over, rest = false, strings.TrimPrefix(raw, "under_")
		default:
			return BetValue{}, fmt.Errorf("bet_value %q: expected over_<line> or under_<line>", raw)
		}
		line, err := decimal.NewFromString(rest)
		if err != nil || line.IsNegative() {
			return BetValue{}, fmt.Errorf("bet_value %q: invalid goal line", raw)
		}
		return BetValue{Type: t, Over: over, Line: line}, nil

	case BetTypeBothTeamsScore:
		switch raw {
		case "yes":
			return BetValue{Type: t, BothScore: true}, nil
		case "no":
			return BetValue{Type: t, BothScore: false}, nil
		}
		return BetValue{}, fmt.Errorf("bet_value %q: expected yes or no", raw)
	}
	return BetValue{}, fmt.Errorf("unknown bet_type %q", t)
}

// String devolve o formato de transporte
func (v BetValue) String() string {
	switch v.Type {
	case BetTypeOutcome:
		return string(v.Outcome)
	case BetTypeOverUnder:
		side := "under"
		if v.Over {
			side = "over"
		}
		return side + "_" + v.Line.String()
	case BetTypeBothTeamsScore:
		if v.BothScore {
			return "yes"
		}
		return "no"
	}
	return ""
}
