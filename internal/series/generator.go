package series

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// TrendShape selects the systematic drift applied across the horizon.
type TrendShape int

const (
	// TrendLinear interpolates from the base to base+magnitude over the
	// horizon.
	TrendLinear TrendShape = iota
	// TrendExponential compounds the base by magnitude percent per step.
	TrendExponential
	// TrendFlat applies no drift.
	TrendFlat
)

// Spec describes one generated series.
type Spec struct {
	Base      float64
	Horizon   int
	Shape     TrendShape
	Magnitude float64 // total drift for linear, percent per step for exponential
	NoiseStd  float64
	Floor     *float64
	Ceiling   *float64
}

// Float is a convenience for optional Floor/Ceiling values.
func Float(v float64) *float64 {
	return &v
}

// Generator produces noisy trend series. Every stochastic draw comes from
// the injected source, so two generators seeded identically emit identical
// series.
type Generator struct {
	src rand.Source
	rng *rand.Rand
}

// New wraps the given random source.
func New(src rand.Source) *Generator {
	return &Generator{src: src, rng: rand.New(src)}
}

// Generate produces the dated value sequence for s, clamping each value to
// [Floor, Ceiling] when bounds are supplied. A non-positive horizon yields
// an empty series.
func (g *Generator) Generate(s Spec) []float64 {
	if s.Horizon <= 0 {
		return []float64{}
	}

	step := 0.0
	if s.Shape == TrendLinear && s.Horizon > 1 {
		step = s.Magnitude / float64(s.Horizon-1)
	}

	values := make([]float64, s.Horizon)
	for i := range values {
		var v float64
		switch s.Shape {
		case TrendExponential:
			v = s.Base * math.Pow(1+s.Magnitude/100, float64(i))
		case TrendFlat:
			v = s.Base
		default:
			v = s.Base + step*float64(i)
		}
		values[i] = clamp(v+g.noise(s.NoiseStd), s.Floor, s.Ceiling)
	}
	return values
}

// Bounds builds symmetric bounds at distance k around predicted, clamps
// them to [floor, ceiling], and re-asserts lower <= predicted <= upper in
// case clamping broke the ordering.
func Bounds(predicted []float64, k float64, floor, ceiling *float64) (lower, upper []float64) {
	lower = make([]float64, len(predicted))
	upper = make([]float64, len(predicted))
	for i, p := range predicted {
		lo := clamp(p-k, floor, ceiling)
		hi := clamp(p+k, floor, ceiling)
		lower[i] = math.Min(lo, p)
		upper[i] = math.Max(hi, p)
	}
	return lower, upper
}

// Uniform draws from [min, max) using the generator's source.
func (g *Generator) Uniform(min, max float64) float64 {
	return distuv.Uniform{Min: min, Max: max, Src: g.src}.Rand()
}

// IntBetween draws an integer from [lo, hi) using the generator's source.
func (g *Generator) IntBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.IntN(hi-lo)
}

func (g *Generator) noise(std float64) float64 {
	if std <= 0 {
		return 0
	}
	return distuv.Normal{Mu: 0, Sigma: std, Src: g.src}.Rand()
}

func clamp(v float64, floor, ceiling *float64) float64 {
	if floor != nil && v < *floor {
		v = *floor
	}
	if ceiling != nil && v > *ceiling {
		v = *ceiling
	}
	return v
}
