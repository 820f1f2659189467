package analytics

import (
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/suite"

	"github.com/CodeWithUtkarsha/TradeJournal-sub000/internal/types"
)

type RiskBandTestSuite struct {
	suite.Suite
}

func TestRiskBandSuite(t *testing.T) {
	suite.Run(t, new(RiskBandTestSuite))
}

// riskTrade builds an open trade with a stop loss in place.
func riskTrade(entry, stop, quantity float64) types.TradeRecord {
	return types.TradeRecord{
		Symbol:     "USDJPY",
		Direction:  types.TradeDirectionLong,
		EntryPrice: entry,
		StopLoss:   optional.Some(stop),
		Quantity:   quantity,
		LotType:    types.LotTypeMicro,
		EntryTime:  time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		Status:     types.TradeStatusOpen,
	}
}

func (suite *RiskBandTestSuite) TestDistributeRisk() {
	noStop := riskTrade(110.0, 109.0, 100)
	noStop.StopLoss = optional.None[float64]()

	cancelled := riskTrade(110.0, 109.0, 100)
	cancelled.Status = types.TradeStatusCancelled

	trades := []types.TradeRecord{
		riskTrade(110.0, 109.0, 100), // 100 risked, exactly 1%
		riskTrade(110.0, 109.5, 100), // 50 risked, 0.5%
		riskTrade(110.0, 108.0, 100), // 200 risked, exactly 2%
		riskTrade(110.0, 105.0, 50),  // 250 risked, 2.5%
		riskTrade(110.0, 100.0, 50),  // 500 risked, 5%
		noStop,
		cancelled,
	}

	distribution := DistributeRisk(trades, 10000)

	suite.Equal(5, distribution.SampledTrades)
	suite.Len(distribution.Bands, 4)

	low := distribution.Bands[0]
	suite.Equal(types.RiskBandLow, low.Band)
	suite.Equal("0-1%", low.Label)
	suite.Equal(2, low.Trades)
	suite.Equal(40.0, low.Percent)

	medium := distribution.Bands[1]
	suite.Equal(types.RiskBandMedium, medium.Band)
	suite.Equal("1-2%", medium.Label)
	suite.Equal(1, medium.Trades)
	suite.Equal(20.0, medium.Percent)

	high := distribution.Bands[2]
	suite.Equal(types.RiskBandHigh, high.Band)
	suite.Equal("2-3%", high.Label)
	suite.Equal(1, high.Trades)

	veryHigh := distribution.Bands[3]
	suite.Equal(types.RiskBandVeryHigh, veryHigh.Band)
	suite.Equal(">3%", veryHigh.Label)
	suite.Equal(1, veryHigh.Trades)
}

func (suite *RiskBandTestSuite) TestDistributeRiskZeroAccountSize() {
	trades := []types.TradeRecord{
		riskTrade(110.0, 109.0, 100),
		riskTrade(110.0, 100.0, 100),
	}

	distribution := DistributeRisk(trades, 0)

	suite.Equal(2, distribution.SampledTrades)
	suite.Equal(2, distribution.Bands[0].Trades)
	suite.Equal(100.0, distribution.Bands[0].Percent)
	suite.Equal(0, distribution.Bands[3].Trades)
}

func (suite *RiskBandTestSuite) TestDistributeRiskEmpty() {
	distribution := DistributeRisk(nil, 10000)

	suite.Equal(0, distribution.SampledTrades)
	suite.Len(distribution.Bands, 4)

	for _, band := range distribution.Bands {
		suite.Equal(0, band.Trades)
		suite.Equal(0.0, band.Percent)
	}
}

func (suite *RiskBandTestSuite) TestDistributeRiskSkipsMalformed() {
	malformed := riskTrade(0, 109.0, 100)

	distribution := DistributeRisk([]types.TradeRecord{malformed}, 10000)

	suite.Equal(0, distribution.SampledTrades)
}
