package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rxtech-lab/argo-formula/internal/formula"
	"github.com/rxtech-lab/argo-formula/internal/types"
	"github.com/stretchr/testify/suite"
)

type MetricsTestSuite struct {
	suite.Suite
	metrics *Metrics
}

func TestMetricsSuite(t *testing.T) {
	suite.Run(t, new(MetricsTestSuite))
}

func (suite *MetricsTestSuite) SetupTest() {
	suite.metrics = NewMetrics()
}

func (suite *MetricsTestSuite) TestImplementsCacheObserver() {
	var _ formula.CacheObserver = suite.metrics
}

func (suite *MetricsTestSuite) TestCacheCounters() {
	cache := formula.NewCache(nil, formula.WithObserver(suite.metrics))

	_, err := cache.Compile("sma(close, 3)")
	suite.Require().NoError(err)
	_, err = cache.Compile("  sma(close, 3)  ")
	suite.Require().NoError(err)
	_, err = cache.Compile("sma(close,")
	suite.Require().Error(err)

	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.cacheHits))
	suite.Equal(2.0, testutil.ToFloat64(suite.metrics.cacheMisses))
	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.compileFailures))
}

func (suite *MetricsTestSuite) TestRecordSignals() {
	suite.metrics.RecordSignals([]types.Signal{
		{Index: 1, Kind: types.SignalKindBuy},
		{Index: 4, Kind: types.SignalKindSell},
		{Index: 7, Kind: types.SignalKindBuy},
	})

	suite.Equal(2.0, testutil.ToFloat64(suite.metrics.signalsTotal.WithLabelValues("buy")))
	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.signalsTotal.WithLabelValues("sell")))
}

func (suite *MetricsTestSuite) TestRecordRejectedAndSeriesLength() {
	suite.metrics.RecordRejected("indicator")
	suite.metrics.RecordRejected("indicator")
	suite.metrics.SetSeriesLength(300)

	suite.Equal(2.0, testutil.ToFloat64(suite.metrics.rejectedTotal.WithLabelValues("indicator")))
	suite.Equal(300.0, testutil.ToFloat64(suite.metrics.seriesLength))
}

func (suite *MetricsTestSuite) TestObserveEvaluation() {
	suite.metrics.ObserveEvaluation("overlay", 2*time.Millisecond)
	suite.metrics.ObserveEvaluation("strategy", time.Millisecond)

	suite.Equal(2, testutil.CollectAndCount(suite.metrics.evaluationDuration))
}

func (suite *MetricsTestSuite) TestInstancesAreIndependent() {
	other := NewMetrics()
	suite.metrics.CacheHit()

	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.cacheHits))
	suite.Equal(0.0, testutil.ToFloat64(other.cacheHits))
}

func (suite *MetricsTestSuite) TestHandler() {
	suite.metrics.CacheMiss()

	server := httptest.NewServer(suite.metrics.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	suite.Require().NoError(err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	suite.Require().NoError(err)

	suite.Equal(http.StatusOK, resp.StatusCode)
	suite.True(strings.Contains(string(body), "argo_formula_cache_misses_total 1"))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	m.CacheHit()
	m.CacheMiss()
	m.CompileFailed()
	m.ObserveEvaluation("overlay", time.Second)
	m.RecordSignals([]types.Signal{{Index: 1, Kind: types.SignalKindBuy}})
	m.RecordRejected("strategy")
	m.SetSeriesLength(10)
}
