package pricegen

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type GeneratorTestSuite struct {
	suite.Suite
}

func TestGeneratorSuite(t *testing.T) {
	suite.Run(t, new(GeneratorTestSuite))
}

func (suite *GeneratorTestSuite) TestGenerateLength() {
	closes, err := NewGenerator(42).Generate(context.Background(), 120, 1.5)
	suite.Require().NoError(err)
	suite.Len(closes, 120)
}

func (suite *GeneratorTestSuite) TestPricesStayAboveFloor() {
	closes, err := NewGenerator(7).Generate(context.Background(), MaxPoints, MaxVolatility)
	suite.Require().NoError(err)

	for i, c := range closes {
		suite.GreaterOrEqual(c, MinPrice, "index %d", i)
		suite.False(math.IsNaN(c) || math.IsInf(c, 0), "index %d", i)
	}
}

func (suite *GeneratorTestSuite) TestReproducibility() {
	a, err := NewGenerator(99).Generate(context.Background(), 200, 2)
	suite.Require().NoError(err)
	b, err := NewGenerator(99).Generate(context.Background(), 200, 2)
	suite.Require().NoError(err)
	c, err := NewGenerator(100).Generate(context.Background(), 200, 2)
	suite.Require().NoError(err)

	suite.Equal(a, b)
	suite.NotEqual(a, c)
}

func (suite *GeneratorTestSuite) TestFirstCloseNearInitialPrice() {
	closes, err := NewGenerator(1).Generate(context.Background(), MinPoints, MinVolatility)
	suite.Require().NoError(err)

	// One day at 10% annual vol moves the price by well under 5%.
	suite.InDelta(InitialPrice, closes[0], 5)
}

func (suite *GeneratorTestSuite) TestCancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	closes, err := NewGenerator(1).Generate(ctx, 100, 1)
	suite.ErrorIs(err, context.Canceled)
	suite.Nil(closes)
}

func TestClampPoints(t *testing.T) {
	tests := []struct {
		name   string
		input  int
		expect int
	}{
		{"below minimum", 10, MinPoints},
		{"negative", -5, MinPoints},
		{"in range", 500, 500},
		{"above maximum", 10000, MaxPoints},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, ClampPoints(tt.input))
		})
	}
}

func TestClampVolatility(t *testing.T) {
	tests := []struct {
		name   string
		input  float64
		expect float64
	}{
		{"below minimum", 0.01, MinVolatility},
		{"in range", 1.5, 1.5},
		{"above maximum", 25, MaxVolatility},
		{"nan", math.NaN(), MinVolatility},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, ClampVolatility(tt.input))
		})
	}
}

func TestGenerateClampsArguments(t *testing.T) {
	closes, err := NewGenerator(3).Generate(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Len(t, closes, MinPoints)
}
