package main

import (
	"encoding/json"
	"math"
	"math/rand/v2"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fsro/riskengine/config"
	"github.com/fsro/riskengine/internal/anomaly"
	"github.com/fsro/riskengine/internal/forecast"
	"github.com/fsro/riskengine/internal/scenario"
	"github.com/fsro/riskengine/internal/series"
	"github.com/fsro/riskengine/internal/simulation"
	"github.com/fsro/riskengine/internal/stress"
	"github.com/fsro/riskengine/models"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// 2. Configure logging
	setupLogging(cfg.LogLevel)
	log.Info().Msg("Starting risk engine")

	// 3. Seed the random source; same seed + same inputs gives identical output
	seed := cfg.RandomSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	gen := series.New(rand.NewPCG(seed, seed))
	log.Info().Uint64("seed", seed).Msg("Random source initialized")

	// 4. Build the engines around one immutable catalog
	catalog := scenario.NewCatalog()
	forecastEngine := forecast.New(catalog, gen, log.Logger)
	stressEngine := stress.New(catalog, log.Logger)
	simulator := simulation.New(catalog, gen, log.Logger)
	detector := anomaly.New(cfg.AnomalySensitivity, log.Logger)

	// 5. Run the three call surfaces on demo inputs
	history := sampleHistory()

	bundle := forecastEngine.Forecast(history, cfg.HorizonMonths, cfg.Scenario)

	portfolio := models.Portfolio{
		"npa_ratio":       2.5,
		"exposure_cr":     100000.0,
		"asset_book":      450000.0,
		"liquidity_ratio": 1.8,
		"rating":          "AA-",
	}
	stressResult := stressEngine.Run(portfolio, cfg.StressScenario, cfg.StressSeverity)

	anomalies := detector.DetectAnomalies(history, []string{"npa_climate", "emission_intensity"})
	trendBreak := detector.DetectTrendBreak(history, "npa_climate", cfg.TrendWindow)

	simResult := simulator.Simulate("npa_climate_stress", cfg.StressSeverity)

	// 6. Emit everything as one JSON document
	out := map[string]any{
		"forecast":    bundle,
		"stress_test": stressResult,
		"anomalies":   anomalies,
		"simulation":  simResult,
		"scenarios":   simulation.ListScenarios(),
	}
	if trendBreak != nil {
		out["trend_break"] = trendBreak
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatal().Err(err).Msg("Failed to encode output")
	}
}

func setupLogging(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl)
}

// sampleHistory builds a small demo series: a slow NPA drift with one
// outlier at the end, and a gently falling emission intensity with a gap.
func sampleHistory() models.TimeSeries {
	start := time.Now().AddDate(0, 0, -90)

	npa := make([]models.Point, 90)
	emission := make([]models.Point, 90)
	for i := range npa {
		ts := start.AddDate(0, 0, i)
		npa[i] = models.Point{Timestamp: ts, Value: 2.5 + 0.005*float64(i)}
		emission[i] = models.Point{Timestamp: ts, Value: 5000 - 2*float64(i)}
	}
	npa[len(npa)-1].Value = 6.2
	emission[30].Value = math.NaN()

	return models.TimeSeries{
		"npa_climate":        npa,
		"emission_intensity": emission,
	}
}
