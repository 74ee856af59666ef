package anomaly

import (
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/fsro/riskengine/internal/utils"
	"github.com/fsro/riskengine/models"
)

// DefaultSensitivity is the z-score threshold applied when the caller
// passes a non-positive sensitivity.
const DefaultSensitivity = 2.0

// minObservations is the smallest history a metric needs before the latest
// observation can be scored.
const minObservations = 10

// Detector scans metric series for statistical outliers and structural
// trend breaks. It holds no state between calls.
type Detector struct {
	sensitivity float64
	log         zerolog.Logger
	now         func() time.Time
}

// New builds a detector with the given z-score sensitivity.
func New(sensitivity float64, log zerolog.Logger) *Detector {
	if sensitivity <= 0 {
		sensitivity = DefaultSensitivity
	}
	return &Detector{
		sensitivity: sensitivity,
		log:         log.With().Str("component", "anomaly").Logger(),
		now:         time.Now,
	}
}

// DetectAnomalies scores the latest observation of each requested metric
// against its full history. Metrics absent from data or with fewer than 10
// non-missing observations are skipped, and a constant series (zero
// standard deviation) never raises an anomaly.
func (d *Detector) DetectAnomalies(data models.TimeSeries, metrics []string) []models.Anomaly {
	anomalies := []models.Anomaly{}

	for _, metric := range metrics {
		values := data.Values(metric)
		if len(values) < minObservations {
			continue
		}

		mean := utils.Mean(values)
		std := utils.StdDev(values)
		latest := values[len(values)-1]

		zScore := 0.0
		if std > 0 {
			zScore = (latest - mean) / std
		}
		if math.Abs(zScore) <= d.sensitivity {
			continue
		}

		severity := models.SeverityMedium
		if math.Abs(zScore) > 3 {
			severity = models.SeverityHigh
		}
		direction := models.DirectionBelow
		if zScore > 0 {
			direction = models.DirectionAbove
		}

		d.log.Debug().
			Str("metric", metric).
			Float64("z_score", zScore).
			Str("severity", severity).
			Msg("anomaly detected")

		anomalies = append(anomalies, models.Anomaly{
			Metric:        metric,
			CurrentValue:  utils.Round2(latest),
			ExpectedRange: [2]float64{utils.Round2(mean - 2*std), utils.Round2(mean + 2*std)},
			ZScore:        utils.Round2(zScore),
			Severity:      severity,
			Direction:     direction,
			DetectedAt:    d.now(),
		})
	}

	return anomalies
}

// DetectTrendBreak compares the slope of the final window against the
// adjacent, non-overlapping window before it. It returns nil when the
// metric has fewer than 2*window observations or the slope change stays
// within a tenth of the series standard deviation.
func (d *Detector) DetectTrendBreak(data models.TimeSeries, metric string, window int) *models.TrendBreak {
	if window <= 0 {
		return nil
	}
	values := data.Values(metric)
	if len(values) < 2*window {
		return nil
	}

	recent := values[len(values)-window:]
	historical := values[len(values)-2*window : len(values)-window]

	recentTrend := (recent[len(recent)-1] - recent[0]) / float64(window)
	historicalTrend := (historical[len(historical)-1] - historical[0]) / float64(window)
	change := recentTrend - historicalTrend

	std := utils.StdDev(values)
	if math.Abs(change) <= std*0.1 {
		return nil
	}

	direction := models.DirectionDecelerating
	if change > 0 {
		direction = models.DirectionAccelerating
	}
	significance := models.SeverityMedium
	if math.Abs(change) > std*0.2 {
		significance = models.SeverityHigh
	}

	return &models.TrendBreak{
		Metric:       metric,
		TrendChange:  utils.RoundTo(change, 4),
		Direction:    direction,
		Significance: significance,
		DetectedAt:   d.now(),
	}
}
