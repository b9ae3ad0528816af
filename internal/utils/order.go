package utils

import (
	"math"

	"github.com/shopspring/decimal"
)

// PipPoints is the number of terminal points in one pip.
const PipPoints = 10

// RoundToDecimalPrecision rounds the quantity down to the specified decimal precision.
func RoundToDecimalPrecision(quantity float64, decimalPrecision int) float64 {
	multiplier := math.Pow10(decimalPrecision)

	return math.Floor(quantity*multiplier+1e-9) / multiplier
}

// PipSize returns the price distance of one pip for a symbol with the given point.
func PipSize(point float64) decimal.Decimal {
	return decimal.NewFromFloat(point).Mul(decimal.NewFromInt(PipPoints))
}

// OffsetPrice moves price by pips in the given direction (+1 or -1) and rounds
// the result to digits. Zero pips means no level and returns 0.
func OffsetPrice(price, point float64, pips int, direction int, digits int) float64 {
	if pips <= 0 {
		return 0
	}

	distance := PipSize(point).Mul(decimal.NewFromInt(int64(pips)))
	level := decimal.NewFromFloat(price)

	if direction < 0 {
		level = level.Sub(distance)
	} else {
		level = level.Add(distance)
	}

	if digits > 0 {
		level = level.Round(int32(digits))
	}

	result, _ := level.Float64()

	return result
}

// SumFloats adds values without float drift.
func SumFloats(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}

	result, _ := total.Float64()

	return result
}
