package models

import "strconv"

// Milliunits represents 1/1000 of a currency unit, the amount
// representation used by the YNAB API. Negative values are outflows.
type Milliunits int64

// Negate changes the sign of m to the opposite.
func (m Milliunits) Negate() Milliunits {
	return m * -1
}

// Major converts m to major currency units.
func (m Milliunits) Major() float64 {
	return float64(m) / 1000
}

// Abs returns the absolute value of m.
func (m Milliunits) Abs() Milliunits {
	if m < 0 {
		return -m
	}
	return m
}

func (m Milliunits) String() string {
	return strconv.FormatInt(int64(m), 10)
}

// MilliunitsFromMajor returns a major-unit amount in milliunits.
func MilliunitsFromMajor(amount float64) Milliunits {
	return Milliunits(amount * 1000)
}
