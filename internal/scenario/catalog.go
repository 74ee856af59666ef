package scenario

// FactorSet is a small named-coefficient mapping resolved from the catalog.
type FactorSet map[string]float64

// Get returns the coefficient for key, or fallback when the set does not
// carry it.
func (f FactorSet) Get(key string, fallback float64) float64 {
	if v, ok := f[key]; ok {
		return v
	}
	return fallback
}

// Domains understood by the catalog.
const (
	DomainNPA            = "npa"
	DomainEmissions      = "emissions"
	DomainGreenFinance   = "green_finance"
	DomainPhysicalRisk   = "physical_risk"
	DomainTransitionRisk = "transition_risk"
	DomainStress         = "stress"
	DomainSimulation     = "simulation"
)

// PhysicalBaseline is the resting level of one physical-risk indicator.
type PhysicalBaseline struct {
	Metric string
	Base   float64
}

// Sector carries the transition-risk starting score and intrinsic monthly
// decline for one high-carbon sector.
type Sector struct {
	Name         string
	Base         float64
	MonthlyTrend float64
}

type factorKey struct {
	name     string
	severity string
}

// Catalog is the immutable scenario parameter store. It is built once with
// NewCatalog and passed explicitly into each engine; lookups never fail and
// never return an empty set.
type Catalog struct {
	factors    map[string]map[factorKey]FactorSet
	defaults   map[string]FactorSet
	severities map[string]float64
	physical   []PhysicalBaseline
	sectors    []Sector
}

// neutralFactors is returned for domains the catalog has no tables for.
var neutralFactors = FactorSet{"factor": 1.0}

// NewCatalog builds the default scenario tables.
func NewCatalog() *Catalog {
	return &Catalog{
		factors: map[string]map[factorKey]FactorSet{
			DomainNPA: {
				{name: "baseline"}:      {"trend_factor": 1.0},
				{name: "optimistic"}:    {"trend_factor": 0.85},
				{name: "pessimistic"}:   {"trend_factor": 1.25},
				{name: "severe_stress"}: {"trend_factor": 1.6},
			},
			DomainEmissions: {
				{name: "baseline"}:         {"trend_pct": -0.5},
				{name: "optimistic"}:       {"trend_pct": -1.2},
				{name: "pessimistic"}:      {"trend_pct": 0.3},
				{name: "net_zero_aligned"}: {"trend_pct": -2.0},
			},
			DomainGreenFinance: {
				{name: "baseline"}:    {"monthly_growth": 0.4},
				{name: "accelerated"}: {"monthly_growth": 0.8},
				{name: "slow"}:        {"monthly_growth": 0.2},
				{name: "policy_push"}: {"monthly_growth": 1.2},
			},
			DomainPhysicalRisk: {
				{name: "baseline"}: {"multiplier": 1.0},
				{name: "1.5C"}:     {"multiplier": 1.15},
				{name: "2C"}:       {"multiplier": 1.35},
				{name: "3C"}:       {"multiplier": 1.8},
			},
			DomainStress: {
				{name: "climate_physical"}: {
					"npa_increase":      0.8,
					"asset_devaluation": 0.15,
					"operational_loss":  0.1,
				},
				{name: "transition_risk"}: {
					"npa_increase":     0.5,
					"stranded_assets":  0.2,
					"revaluation_loss": 0.12,
				},
				{name: "combined"}: {
					"npa_increase":      1.2,
					"asset_devaluation": 0.25,
					"operational_loss":  0.15,
					"stranded_assets":   0.18,
				},
			},
			DomainSimulation: {
				{name: "npa_climate_stress", severity: "mild"}:     {"npa_increase": 0.5, "loss_multiplier": 1.1},
				{name: "npa_climate_stress", severity: "moderate"}: {"npa_increase": 1.5, "loss_multiplier": 1.3},
				{name: "npa_climate_stress", severity: "severe"}:   {"npa_increase": 3.0, "loss_multiplier": 1.8},
				{name: "temperature_pathway", severity: "1.5C"}:    {"gdp_impact": -1.5, "transition_cost": 2.5},
				{name: "temperature_pathway", severity: "2C"}:      {"gdp_impact": -3.0, "transition_cost": 4.0},
				{name: "temperature_pathway", severity: "3C"}:      {"gdp_impact": -6.0, "transition_cost": 8.0},
				{name: "sector_transition", severity: "coal"}:      {"decline_rate": 15, "stranded_assets": 250000},
				{name: "sector_transition", severity: "renewables"}: {
					"growth_rate":         25,
					"investment_required": 180000,
				},
				{name: "sector_transition", severity: "mixed"}: {
					"transition_period": 15,
					"balanced_cost":     150000,
				},
			},
		},
		defaults: map[string]FactorSet{
			DomainNPA:            {"trend_factor": 1.0},
			DomainEmissions:      {"trend_pct": -0.5},
			DomainGreenFinance:   {"monthly_growth": 0.4},
			DomainPhysicalRisk:   {"multiplier": 1.0},
			DomainTransitionRisk: {"trend_scale": 1.0},
			DomainStress: {
				"npa_increase":      1.2,
				"asset_devaluation": 0.25,
				"operational_loss":  0.15,
				"stranded_assets":   0.18,
			},
			DomainSimulation: {"loss_multiplier": 1.0},
		},
		severities: map[string]float64{
			"mild":     0.5,
			"moderate": 1.0,
			"severe":   1.5,
			"extreme":  2.5,
		},
		physical: []PhysicalBaseline{
			{Metric: "heatwave_index", Base: 35},
			{Metric: "flood_risk", Base: 40},
			{Metric: "drought_index", Base: 45},
			{Metric: "water_stress", Base: 50},
			{Metric: "crop_loss_risk", Base: 30},
		},
		sectors: []Sector{
			{Name: "coal", Base: 80, MonthlyTrend: -2.0},
			{Name: "oil_gas", Base: 70, MonthlyTrend: -1.5},
			{Name: "steel", Base: 60, MonthlyTrend: -0.8},
			{Name: "cement", Base: 55, MonthlyTrend: -0.6},
			{Name: "automobiles", Base: 45, MonthlyTrend: -1.0},
			{Name: "power", Base: 65, MonthlyTrend: -1.2},
		},
	}
}

// Lookup resolves (domain, name, severity) to a FactorSet. Unknown
// combinations fall back first to the name without severity, then to the
// domain default, then to a neutral set, so the result is never empty.
func (c *Catalog) Lookup(domain, name, severity string) FactorSet {
	if byKey, ok := c.factors[domain]; ok {
		if fs, ok := byKey[factorKey{name: name, severity: severity}]; ok {
			return fs
		}
		if fs, ok := byKey[factorKey{name: name}]; ok {
			return fs
		}
	}
	if fs, ok := c.defaults[domain]; ok {
		return fs
	}
	return neutralFactors
}

// SeverityMultiplier maps a severity label to its shock multiplier.
// Unrecognized labels resolve to 1.0.
func (c *Catalog) SeverityMultiplier(severity string) float64 {
	if m, ok := c.severities[severity]; ok {
		return m
	}
	return 1.0
}

// PhysicalBaselines returns the physical-risk indicators in reporting order.
func (c *Catalog) PhysicalBaselines() []PhysicalBaseline {
	return c.physical
}

// TransitionSectors returns the tracked sectors in reporting order.
func (c *Catalog) TransitionSectors() []Sector {
	return c.sectors
}
