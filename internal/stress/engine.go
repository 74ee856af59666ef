package stress

import (
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/fsro/riskengine/internal/scenario"
	"github.com/fsro/riskengine/internal/utils"
	"github.com/fsro/riskengine/models"
)

// TransformKind classifies how a portfolio metric responds to stress.
type TransformKind int

const (
	// TransformPassthrough leaves the value untouched.
	TransformPassthrough TransformKind = iota
	// TransformAdditiveNPA adds the scaled npa_increase coefficient.
	TransformAdditiveNPA
	// TransformDevaluation multiplies by (1 - scaled asset_devaluation).
	TransformDevaluation
)

// ClassifyMetric selects the stress transform by case-insensitive substring
// match on the metric name. "npa" wins over "asset"/"exposure"; anything
// else passes through. The name heuristic is the documented contract, not
// an implementation shortcut.
func ClassifyMetric(name string) TransformKind {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "npa"):
		return TransformAdditiveNPA
	case strings.Contains(lower, "asset"), strings.Contains(lower, "exposure"):
		return TransformDevaluation
	default:
		return TransformPassthrough
	}
}

var baseRecommendations = []string{
	"Enhance climate risk monitoring and reporting",
	"Review exposure limits for high-risk sectors",
	"Accelerate green finance portfolio development",
}

var escalationRecommendations = []string{
	"Activate contingency capital planning",
	"Engage with regulatory stress testing requirements",
	"Review counterparty credit limits",
}

// Engine applies named stress scenarios to arbitrary portfolios.
type Engine struct {
	catalog *scenario.Catalog
	log     zerolog.Logger
	now     func() time.Time
}

// New builds a stress-test engine around the given catalog.
func New(catalog *scenario.Catalog, log zerolog.Logger) *Engine {
	return &Engine{
		catalog: catalog,
		log:     log.With().Str("component", "stress").Logger(),
		now:     time.Now,
	}
}

// Run stresses the portfolio under (scenarioType, severity). Unknown
// scenario types resolve to the combined FactorSet and unknown severities
// to a 1.0 multiplier; the result always carries exactly the input's keys.
func (e *Engine) Run(portfolio models.Portfolio, scenarioType, severity string) *models.StressResult {
	mult := e.catalog.SeverityMultiplier(severity)
	factors := e.catalog.Lookup(scenario.DomainStress, scenarioType, "")

	e.log.Debug().
		Str("scenario", scenarioType).
		Str("severity", severity).
		Float64("multiplier", mult).
		Int("metrics", len(portfolio)).
		Msg("running stress test")

	return &models.StressResult{
		Scenario:        scenarioType,
		Severity:        severity,
		BaselineMetrics: portfolio,
		StressedMetrics: applyStress(portfolio, factors, mult),
		ImpactAnalysis:  analyzeImpact(mult),
		Recommendations: recommendations(severity),
		RunAt:           e.now(),
	}
}

func applyStress(portfolio models.Portfolio, factors scenario.FactorSet, mult float64) models.Portfolio {
	stressed := make(models.Portfolio, len(portfolio))
	for name, value := range portfolio {
		num, ok := asFloat(value)
		if !ok {
			stressed[name] = value
			continue
		}
		switch ClassifyMetric(name) {
		case TransformAdditiveNPA:
			stressed[name] = utils.Round2(num + factors.Get("npa_increase", 0)*mult)
		case TransformDevaluation:
			stressed[name] = utils.Round2(num * (1 - factors.Get("asset_devaluation", 0)*mult))
		default:
			stressed[name] = value
		}
	}
	return stressed
}

// analyzeImpact is a function of the severity multiplier alone; the
// portfolio content does not enter the formulas.
func analyzeImpact(mult float64) models.ImpactAnalysis {
	solvency := models.SolvencyNormal
	if mult > 1 {
		solvency = models.SolvencyElevated
	}
	return models.ImpactAnalysis{
		CapitalAdequacyImpact:    utils.Round2(-2.5 * mult),
		LiquidityImpact:          utils.Round2(-8.5 * mult),
		ProfitabilityImpact:      utils.Round2(-15 * mult),
		SolvencyRisk:             solvency,
		SystemicRiskContribution: utils.Round2(5 + 3*mult),
	}
}

func recommendations(severity string) []string {
	out := make([]string, 0, len(baseRecommendations)+len(escalationRecommendations))
	out = append(out, baseRecommendations...)
	if severity == "severe" || severity == "extreme" {
		out = append(out, escalationRecommendations...)
	}
	return out
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
