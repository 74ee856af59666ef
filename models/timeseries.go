package models

import (
	"fmt"
	"math"
	"time"
)

// Point is a single dated observation. A NaN value marks a missing
// observation; missing points are excluded from statistics.
type Point struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// TimeSeries maps a metric name to its ordered observations. The series is
// owned by the caller and only read by the engine; timestamps must be
// strictly increasing within each metric.
type TimeSeries map[string][]Point

// Values returns the non-missing values for metric, oldest first. A metric
// absent from the series yields an empty slice.
func (ts TimeSeries) Values(metric string) []float64 {
	points := ts[metric]
	values := make([]float64, 0, len(points))
	for _, p := range points {
		if math.IsNaN(p.Value) {
			continue
		}
		values = append(values, p.Value)
	}
	return values
}

// Validate reports the first metric whose timestamps are not strictly
// increasing.
func (ts TimeSeries) Validate() error {
	for metric, points := range ts {
		for i := 1; i < len(points); i++ {
			if !points[i].Timestamp.After(points[i-1].Timestamp) {
				return fmt.Errorf("metric %q: timestamps not strictly increasing at index %d", metric, i)
			}
		}
	}
	return nil
}
