package forecast

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fsro/riskengine/internal/scenario"
	"github.com/fsro/riskengine/internal/series"
	"github.com/fsro/riskengine/models"
)

func newTestEngine(seed uint64) *Engine {
	e := New(scenario.NewCatalog(), series.New(rand.NewPCG(seed, seed)), zerolog.Nop())
	e.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }
	return e
}

func assertSeriesInvariants(t *testing.T, dates []string, predicted, lower, upper []float64, horizon int) {
	t.Helper()
	require.Len(t, dates, horizon)
	require.Len(t, predicted, horizon)
	require.Len(t, lower, horizon)
	require.Len(t, upper, horizon)
	for i := range predicted {
		assert.LessOrEqual(t, lower[i], predicted[i], "index %d", i)
		assert.GreaterOrEqual(t, upper[i], predicted[i], "index %d", i)
	}
}

func TestForecastBundleShape(t *testing.T) {
	e := newTestEngine(1)
	horizon := 12

	bundle := e.Forecast(nil, horizon, "baseline")

	require.NotNil(t, bundle.NPAForecast)
	require.NotNil(t, bundle.EmissionForecast)
	require.NotNil(t, bundle.GreenFinanceForecast)
	require.NotNil(t, bundle.PhysicalRiskForecast)
	require.NotNil(t, bundle.TransitionRiskForecast)
	require.NotNil(t, bundle.ModelDiagnostics)
	require.NotNil(t, bundle.ConfidenceIntervals)

	npa := bundle.NPAForecast
	assertSeriesInvariants(t, npa.Dates, npa.Predicted, npa.LowerBound, npa.UpperBound, horizon)
	assert.Equal(t, "baseline", npa.Scenario)
	assert.Equal(t, 0.85, npa.Confidence)
	assert.Equal(t, "2025-06", npa.Dates[0])
	assert.Equal(t, "2026-05", npa.Dates[horizon-1])

	gf := bundle.GreenFinanceForecast
	assertSeriesInvariants(t, gf.Dates, gf.PredictedShare, gf.LowerBound, gf.UpperBound, horizon)

	require.Len(t, bundle.EmissionForecast.ActualTrajectory, horizon)
	require.Len(t, bundle.EmissionForecast.NetZeroTarget, horizon)
	require.Len(t, bundle.EmissionForecast.GapPercentage, horizon)

	require.Len(t, bundle.PhysicalRiskForecast.Metrics, 5)
	for metric, values := range bundle.PhysicalRiskForecast.Metrics {
		assert.Len(t, values, horizon, "metric %s", metric)
	}

	require.Len(t, bundle.TransitionRiskForecast.SectorRisk, 6)
	for sector, values := range bundle.TransitionRiskForecast.SectorRisk {
		require.Len(t, values, horizon, "sector %s", sector)
		for i, v := range values {
			assert.GreaterOrEqual(t, v, 0.0, "sector %s index %d", sector, i)
		}
	}
}

func TestForecastIdempotentForSameSeed(t *testing.T) {
	first := newTestEngine(99).Forecast(nil, 24, "pessimistic")
	second := newTestEngine(99).Forecast(nil, 24, "pessimistic")

	assert.Equal(t, first, second)
}

func TestForecastScenarioFactorShiftsNPATrend(t *testing.T) {
	// Same seed, so both runs draw identical noise; the only difference in
	// the final NPA value is the scenario trend factor.
	baseline := newTestEngine(5).Forecast(nil, 24, "baseline")
	stressed := newTestEngine(5).Forecast(nil, 24, "severe_stress")

	last := len(baseline.NPAForecast.Predicted) - 1
	diff := stressed.NPAForecast.Predicted[last] - baseline.NPAForecast.Predicted[last]
	assert.InDelta(t, 0.8*(1.6-1.0), diff, 0.011, "difference is the scaled trend, modulo rounding")
}

func TestForecastUnknownScenarioUsesDefaults(t *testing.T) {
	baseline := newTestEngine(3).Forecast(nil, 12, "baseline")
	unknown := newTestEngine(3).Forecast(nil, 12, "no_such_scenario")

	assert.Equal(t, baseline.NPAForecast.Predicted, unknown.NPAForecast.Predicted)
	assert.Equal(t, baseline.EmissionForecast.ActualTrajectory, unknown.EmissionForecast.ActualTrajectory)
}

func TestForecastGreenFinanceCappedAtHundred(t *testing.T) {
	bundle := newTestEngine(8).Forecast(nil, 120, "policy_push")

	gf := bundle.GreenFinanceForecast
	for i := range gf.PredictedShare {
		assert.LessOrEqual(t, gf.PredictedShare[i], 100.0, "index %d", i)
		assert.LessOrEqual(t, gf.UpperBound[i], 100.0, "index %d", i)
		assert.GreaterOrEqual(t, gf.LowerBound[i], 0.0, "index %d", i)
	}
}

func TestForecastEmissionGapZeroWhenTargetHitsZero(t *testing.T) {
	// The linear net-zero trajectory reaches exactly zero at month 25.
	bundle := newTestEngine(2).Forecast(nil, 26, "baseline")

	ef := bundle.EmissionForecast
	assert.Equal(t, 0.0, ef.NetZeroTarget[25])
	assert.Equal(t, 0.0, ef.GapPercentage[25])
}

func TestForecastDiagnosticsWeightsSumToOne(t *testing.T) {
	bundle := newTestEngine(4).Forecast(nil, 6, "baseline")

	d := bundle.ModelDiagnostics
	require.Len(t, d.ModelsUsed, 4)
	sum := 0.0
	for _, w := range d.ModelWeights {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.GreaterOrEqual(t, d.MAPE, 8.0)
	assert.LessOrEqual(t, d.MAPE, 15.0)
	assert.GreaterOrEqual(t, d.R2Score, 0.75)
	assert.LessOrEqual(t, d.R2Score, 0.92)
}

func TestForecastFallbackOnInvalidHorizon(t *testing.T) {
	bundle := newTestEngine(1).Forecast(nil, 0, "baseline")

	require.NotNil(t, bundle.NPAForecast)
	require.NotNil(t, bundle.EmissionForecast)
	assert.Nil(t, bundle.GreenFinanceForecast)
	assert.Nil(t, bundle.PhysicalRiskForecast)
	assert.Nil(t, bundle.TransitionRiskForecast)
	assert.Equal(t, 0.70, bundle.NPAForecast.Confidence)
	assert.Equal(t, 0.65, bundle.EmissionForecast.Confidence)
	assert.NotEmpty(t, bundle.ModelDiagnostics.Note)
}

func TestForecastFallbackOnMalformedHistory(t *testing.T) {
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	history := models.TimeSeries{
		"npa_climate": {
			{Timestamp: ts, Value: 2.5},
			{Timestamp: ts.AddDate(0, 0, -1), Value: 2.6}, // out of order
		},
	}

	bundle := newTestEngine(1).Forecast(history, 12, "baseline")

	assert.NotEmpty(t, bundle.ModelDiagnostics.Note)
	assert.Nil(t, bundle.PhysicalRiskForecast)
	require.Len(t, bundle.NPAForecast.Predicted, 12)
	assertSeriesInvariants(t,
		bundle.NPAForecast.Dates,
		bundle.NPAForecast.Predicted,
		bundle.NPAForecast.LowerBound,
		bundle.NPAForecast.UpperBound,
		12)
}

func TestForecastWellFormedHistoryAccepted(t *testing.T) {
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	history := models.TimeSeries{
		"npa_climate": {
			{Timestamp: ts, Value: 2.5},
			{Timestamp: ts.AddDate(0, 0, 1), Value: 2.6},
			{Timestamp: ts.AddDate(0, 0, 2), Value: 2.55},
		},
	}

	bundle := newTestEngine(1).Forecast(history, 12, "baseline")

	assert.Empty(t, bundle.ModelDiagnostics.Note)
	require.NotNil(t, bundle.PhysicalRiskForecast)
}
