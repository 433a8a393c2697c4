package domain

import (
	"math"
	"strconv"
	"strings"
)

// Percent is the completion percentage counted in quarter steps: 0, 25, 50, 75 or 100%.
type Percent int8

const (
	// PercentUnset marks a record without a completion percentage.
	PercentUnset    Percent = -1
	PercentNone     Percent = 0
	PercentQuarter  Percent = 1
	PercentHalf     Percent = 2
	PercentThree    Percent = 3
	PercentComplete Percent = 4
)

var percentText = [...]string{"0", "0.25", "0.5", "0.75", "1"}

// IsSet reports whether a percentage was recorded.
func (p Percent) IsSet() bool {
	return p >= PercentNone && p <= PercentComplete
}

// Fraction returns the percentage as a value in [0, 1].
func (p Percent) Fraction() float64 {
	if !p.IsSet() {
		return 0
	}
	return float64(p) / 4
}

// String returns the stored form: "0", "0.25", "0.5", "0.75", "1", or "" when unset.
func (p Percent) String() string {
	if !p.IsSet() {
		return ""
	}
	return percentText[p]
}

// Display returns the percentage as shown to users, for example "75%".
func (p Percent) Display() string {
	if !p.IsSet() {
		return ""
	}
	return strconv.Itoa(int(p)*25) + "%"
}

// ParsePercent accepts fractions ("0.5"), percentages ("50", "50%") and comma decimals
// ("0,5"). Values above 1 are read as percentages and must not exceed 100. The result
// must be one of the quarter steps. Empty input returns PercentUnset.
func ParsePercent(value string) (Percent, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return PercentUnset, nil
	}
	v = strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(v, "%", ""), ",", "."))

	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) {
		return PercentUnset, ErrInvalidPercent
	}

	if f > 1 {
		if f > 100 {
			return PercentUnset, ErrPercentOutOfRange
		}
		f /= 100
	}
	if f < 0 || f > 1 {
		return PercentUnset, ErrPercentOutOfRange
	}

	quarters := f * 4
	step := math.Round(quarters)
	if math.Abs(quarters-step) > 1e-9 {
		return PercentUnset, ErrPercentNotStep
	}

	return Percent(step), nil
}
