package models

import "time"

// Severity and direction labels shared by the detectors and the stress
// engine.
const (
	SeverityMedium = "medium"
	SeverityHigh   = "high"

	DirectionAbove = "above"
	DirectionBelow = "below"

	DirectionAccelerating = "accelerating"
	DirectionDecelerating = "decelerating"

	SolvencyNormal   = "Normal"
	SolvencyElevated = "Elevated"
)

// ForecastSeries is one forecast dimension: dated predictions with clamped
// bounds. LowerBound[i] <= Predicted[i] <= UpperBound[i] holds for every
// index, and all four slices share the horizon length.
type ForecastSeries struct {
	Dates      []string  `json:"dates"`
	Predicted  []float64 `json:"predicted"`
	LowerBound []float64 `json:"lower_bound"`
	UpperBound []float64 `json:"upper_bound"`
	Scenario   string    `json:"scenario"`
	Confidence float64   `json:"confidence"`
}

// EmissionForecast tracks the projected emission trajectory against the
// linear net-zero target, with the percentage gap per month.
type EmissionForecast struct {
	Dates            []string  `json:"dates"`
	ActualTrajectory []float64 `json:"actual_trajectory"`
	NetZeroTarget    []float64 `json:"net_zero_target,omitempty"`
	GapPercentage    []float64 `json:"gap_percentage,omitempty"`
	Scenario         string    `json:"scenario"`
	Confidence       float64   `json:"confidence"`
}

// GreenFinanceForecast projects the green-finance share of the portfolio,
// capped at 100 percent.
type GreenFinanceForecast struct {
	Dates          []string  `json:"dates"`
	PredictedShare []float64 `json:"predicted_share"`
	LowerBound     []float64 `json:"lower_bound"`
	UpperBound     []float64 `json:"upper_bound"`
	Scenario       string    `json:"scenario"`
	Confidence     float64   `json:"confidence"`
}

// PhysicalRiskForecast carries one series per physical-risk indicator.
type PhysicalRiskForecast struct {
	Dates      []string             `json:"dates"`
	Metrics    map[string][]float64 `json:"metrics"`
	Scenario   string               `json:"scenario"`
	Confidence float64              `json:"confidence"`
}

// TransitionRiskForecast carries one series per high-carbon sector.
type TransitionRiskForecast struct {
	Dates      []string             `json:"dates"`
	SectorRisk map[string][]float64 `json:"sector_risk"`
	Scenario   string               `json:"scenario"`
	Confidence float64              `json:"confidence"`
}

// ModelDiagnostics describes the nominal ensemble behind a bundle. The fit
// statistics are synthetic presentation metadata drawn from fixed plausible
// ranges; nothing here is measured against data.
type ModelDiagnostics struct {
	EnsembleMethod  string             `json:"ensemble_method,omitempty"`
	ModelsUsed      []string           `json:"models_used,omitempty"`
	ModelWeights    map[string]float64 `json:"model_weights,omitempty"`
	MAPE            float64            `json:"mape,omitempty"`
	RMSE            float64            `json:"rmse,omitempty"`
	R2Score         float64            `json:"r2_score,omitempty"`
	TrainingSamples int                `json:"training_samples,omitempty"`
	LastTrained     time.Time          `json:"last_trained,omitempty"`
	Note            string             `json:"note,omitempty"`
}

// ConfidenceIntervals is fixed interval metadata attached to each bundle.
type ConfidenceIntervals struct {
	Level       float64 `json:"level"`
	Method      string  `json:"method"`
	NIterations int     `json:"n_iterations"`
}

// ForecastBundle aggregates every forecast dimension for one call. A
// degraded bundle carries only the NPA and emission dimensions together
// with a diagnostics note.
type ForecastBundle struct {
	NPAForecast            *ForecastSeries         `json:"npa_forecast,omitempty"`
	EmissionForecast       *EmissionForecast       `json:"emission_forecast,omitempty"`
	GreenFinanceForecast   *GreenFinanceForecast   `json:"green_finance_forecast,omitempty"`
	PhysicalRiskForecast   *PhysicalRiskForecast   `json:"physical_risk_forecast,omitempty"`
	TransitionRiskForecast *TransitionRiskForecast `json:"transition_risk_forecast,omitempty"`
	ModelDiagnostics       *ModelDiagnostics       `json:"model_diagnostics"`
	ConfidenceIntervals    *ConfidenceIntervals    `json:"confidence_intervals,omitempty"`
	GeneratedAt            time.Time               `json:"generated_at"`
}

// Portfolio maps metric names to values. Non-numeric values pass through
// stress transforms unchanged.
type Portfolio map[string]any

// ImpactAnalysis is a function of the severity multiplier alone, not of the
// portfolio content.
type ImpactAnalysis struct {
	CapitalAdequacyImpact    float64 `json:"capital_adequacy_impact"`
	LiquidityImpact          float64 `json:"liquidity_impact"`
	ProfitabilityImpact      float64 `json:"profitability_impact"`
	SolvencyRisk             string  `json:"solvency_risk"`
	SystemicRiskContribution float64 `json:"systemic_risk_contribution"`
}

// StressResult is the outcome of one stress-test run.
type StressResult struct {
	Scenario        string         `json:"scenario"`
	Severity        string         `json:"severity"`
	BaselineMetrics Portfolio      `json:"baseline_metrics"`
	StressedMetrics Portfolio      `json:"stressed_metrics"`
	ImpactAnalysis  ImpactAnalysis `json:"impact_analysis"`
	Recommendations []string       `json:"recommendations"`
	RunAt           time.Time      `json:"run_at"`
}

// Anomaly flags a metric whose latest observation sits outside the
// z-score threshold. ExpectedRange is always mean +/- 2 std, independent of
// the sensitivity used for flagging.
type Anomaly struct {
	Metric        string     `json:"metric"`
	CurrentValue  float64    `json:"current_value"`
	ExpectedRange [2]float64 `json:"expected_range"`
	ZScore        float64    `json:"z_score"`
	Severity      string     `json:"severity"`
	Direction     string     `json:"direction"`
	DetectedAt    time.Time  `json:"detected_at"`
}

// TrendBreak reports a significant slope change between two adjacent
// observation windows.
type TrendBreak struct {
	Metric       string    `json:"metric"`
	TrendChange  float64   `json:"trend_change"`
	Direction    string    `json:"direction"`
	Significance string    `json:"significance"`
	DetectedAt   time.Time `json:"detected_at"`
}

// ProjectedMetrics is the scenario-adjusted view of the baseline metric set.
type ProjectedMetrics struct {
	NPARatio       float64 `json:"npa_ratio"`
	ExpectedLoss   float64 `json:"expected_loss"`
	GDPImpact      float64 `json:"gdp_impact"`
	TransitionCost float64 `json:"transition_cost"`
	TimelineYears  int     `json:"timeline_years"`
}

// RiskAssessment is a coarse qualitative score attached to a simulation run.
type RiskAssessment struct {
	Probability float64 `json:"probability"`
	ImpactScore float64 `json:"impact_score"`
	Urgency     string  `json:"urgency"`
}

// SimulationResult is the outcome of one scenario simulation.
type SimulationResult struct {
	ScenarioType    string             `json:"scenario_type"`
	Severity        string             `json:"severity"`
	Baseline        map[string]float64 `json:"baseline"`
	Projected       ProjectedMetrics   `json:"projected"`
	RiskAssessment  RiskAssessment     `json:"risk_assessment"`
	Recommendations []string           `json:"recommendations"`
	GeneratedAt     time.Time          `json:"generated_at"`
}

// ScenarioDescriptor names one selectable simulation scenario and the
// severities it understands.
type ScenarioDescriptor struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Severities []string `json:"severities"`
}
