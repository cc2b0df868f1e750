package indicator

import (
	"math"
	"testing"

	"github.com/rxtech-lab/argo-formula/internal/types"
	"github.com/stretchr/testify/suite"
)

type BollingerBandsTestSuite struct {
	suite.Suite
	series types.Series
}

func TestBollingerBandsSuite(t *testing.T) {
	suite.Run(t, new(BollingerBandsTestSuite))
}

func (suite *BollingerBandsTestSuite) SetupTest() {
	suite.series = types.Series{10, 11, 9, 12, 13, 12, 15, 14, 13, 16}
}

func (suite *BollingerBandsTestSuite) TestBandsAreSymmetric() {
	for _, mult := range []float64{0.5, 1, 2, 3.5} {
		b := Boll(suite.series, 4, mult)
		sd := Stdev(suite.series, 4)

		for i := range suite.series {
			if math.IsNaN(b.Mid[i]) {
				continue
			}

			suite.InDelta(b.Upper[i]-b.Mid[i], b.Mid[i]-b.Lower[i], 1e-9)
			suite.InDelta(mult*sd[i], b.Upper[i]-b.Mid[i], 1e-9)
		}
	}
}

func (suite *BollingerBandsTestSuite) TestMidIsSMA() {
	b := Boll(suite.series, 3, 2)
	ma := SMA(suite.series, 3)

	for i := range ma {
		if math.IsNaN(ma[i]) {
			suite.True(math.IsNaN(b.Mid[i]))
			continue
		}

		suite.Equal(ma[i], b.Mid[i])
	}
}

func (suite *BollingerBandsTestSuite) TestWarmUpIsNaNInAllBands() {
	b := Boll(suite.series, 5, 2)

	for i := 0; i < 4; i++ {
		suite.True(math.IsNaN(b.Upper[i]))
		suite.True(math.IsNaN(b.Mid[i]))
		suite.True(math.IsNaN(b.Lower[i]))
	}

	suite.False(math.IsNaN(b.Upper[4]))
}

func (suite *BollingerBandsTestSuite) TestLengths() {
	b := Boll(suite.series, 20, 2)
	suite.Len(b.Upper, len(suite.series))
	suite.Len(b.Mid, len(suite.series))
	suite.Len(b.Lower, len(suite.series))
}

func (suite *BollingerBandsTestSuite) TestEmpty() {
	b := Boll(types.Series{}, 3, 2)
	suite.Empty(b.Upper)
	suite.Empty(b.Mid)
	suite.Empty(b.Lower)
}
