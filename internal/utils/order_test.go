package utils

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type UtilsTestSuite struct {
	suite.Suite
}

func TestUtilsTestSuite(t *testing.T) {
	suite.Run(t, new(UtilsTestSuite))
}

func (suite *UtilsTestSuite) TestRoundToDecimalPrecision() {
	tests := []struct {
		name      string
		quantity  float64
		precision int
		expected  float64
	}{
		{name: "already rounded", quantity: 0.1, precision: 2, expected: 0.1},
		{name: "float noise", quantity: 0.1 + 0.2, precision: 2, expected: 0.3},
		{name: "rounds down", quantity: 1.239, precision: 2, expected: 1.23},
		{name: "zero precision", quantity: 3.7, precision: 0, expected: 3},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.InDelta(tt.expected, RoundToDecimalPrecision(tt.quantity, tt.precision), 1e-12)
		})
	}
}

func (suite *UtilsTestSuite) TestPipSize() {
	suite.Equal("0.0001", PipSize(0.00001).String())
	suite.Equal("0.01", PipSize(0.001).String())
}

func (suite *UtilsTestSuite) TestOffsetPrice() {
	tests := []struct {
		name      string
		price     float64
		point     float64
		pips      int
		direction int
		digits    int
		expected  float64
	}{
		{name: "buy stop loss below", price: 1.10000, point: 0.00001, pips: 20, direction: -1, digits: 5, expected: 1.09800},
		{name: "buy take profit above", price: 1.10000, point: 0.00001, pips: 40, direction: 1, digits: 5, expected: 1.10400},
		{name: "yen pair", price: 150.123, point: 0.001, pips: 15, direction: 1, digits: 3, expected: 150.273},
		{name: "zero pips means no level", price: 1.1, point: 0.00001, pips: 0, direction: 1, digits: 5, expected: 0},
		{name: "no digits keeps precision", price: 1.1, point: 0.00001, pips: 1, direction: -1, digits: 0, expected: 1.0999},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.Equal(tt.expected, OffsetPrice(tt.price, tt.point, tt.pips, tt.direction, tt.digits))
		})
	}
}

func (suite *UtilsTestSuite) TestSumFloats() {
	suite.Equal(0.3, SumFloats(0.1, 0.2))
	suite.Equal(0.0, SumFloats())
	suite.Equal(-5.25, SumFloats(10, -15.25))
}
