package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupKnownFactors(t *testing.T) {
	catalog := NewCatalog()

	tests := []struct {
		name     string
		domain   string
		scenario string
		severity string
		key      string
		want     float64
	}{
		{"npa severe stress", DomainNPA, "severe_stress", "", "trend_factor", 1.6},
		{"npa optimistic", DomainNPA, "optimistic", "", "trend_factor", 0.85},
		{"emissions net zero", DomainEmissions, "net_zero_aligned", "", "trend_pct", -2.0},
		{"green finance policy push", DomainGreenFinance, "policy_push", "", "monthly_growth", 1.2},
		{"physical 3C", DomainPhysicalRisk, "3C", "", "multiplier", 1.8},
		{"stress combined", DomainStress, "combined", "", "npa_increase", 1.2},
		{"stress climate physical", DomainStress, "climate_physical", "", "asset_devaluation", 0.15},
		{"simulation severe npa stress", DomainSimulation, "npa_climate_stress", "severe", "npa_increase", 3.0},
		{"simulation 2C pathway", DomainSimulation, "temperature_pathway", "2C", "gdp_impact", -3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := catalog.Lookup(tt.domain, tt.scenario, tt.severity)
			assert.Equal(t, tt.want, fs.Get(tt.key, -999))
		})
	}
}

func TestLookupNeverFailsAndNeverEmpty(t *testing.T) {
	catalog := NewCatalog()

	tests := []struct {
		name     string
		domain   string
		scenario string
		severity string
	}{
		{"unknown scenario in known domain", DomainNPA, "alien_invasion", ""},
		{"unknown severity in simulation", DomainSimulation, "npa_climate_stress", "apocalyptic"},
		{"unknown scenario in simulation", DomainSimulation, "nonsense", "mild"},
		{"unknown domain", "weather", "baseline", ""},
		{"everything unknown", "x", "y", "z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := catalog.Lookup(tt.domain, tt.scenario, tt.severity)
			require.NotNil(t, fs)
			assert.NotEmpty(t, fs)
		})
	}
}

func TestLookupUnknownScenarioFallsBackToDomainDefault(t *testing.T) {
	catalog := NewCatalog()

	fs := catalog.Lookup(DomainNPA, "made_up", "")
	assert.Equal(t, 1.0, fs.Get("trend_factor", -1))

	fs = catalog.Lookup(DomainStress, "made_up", "")
	assert.Equal(t, 1.2, fs.Get("npa_increase", -1), "unknown stress scenario resolves to the combined set")
	assert.Equal(t, 0.25, fs.Get("asset_devaluation", -1))
}

func TestSeverityMultiplier(t *testing.T) {
	catalog := NewCatalog()

	assert.Equal(t, 0.5, catalog.SeverityMultiplier("mild"))
	assert.Equal(t, 1.0, catalog.SeverityMultiplier("moderate"))
	assert.Equal(t, 1.5, catalog.SeverityMultiplier("severe"))
	assert.Equal(t, 2.5, catalog.SeverityMultiplier("extreme"))
	assert.Equal(t, 1.0, catalog.SeverityMultiplier("unheard-of"))
}

func TestBaselineTablesOrdered(t *testing.T) {
	catalog := NewCatalog()

	physical := catalog.PhysicalBaselines()
	require.Len(t, physical, 5)
	assert.Equal(t, "heatwave_index", physical[0].Metric)
	assert.Equal(t, "crop_loss_risk", physical[4].Metric)

	sectors := catalog.TransitionSectors()
	require.Len(t, sectors, 6)
	assert.Equal(t, "coal", sectors[0].Name)
	assert.Equal(t, 80.0, sectors[0].Base)
	assert.Equal(t, -2.0, sectors[0].MonthlyTrend)
}

func TestFactorSetGet(t *testing.T) {
	fs := FactorSet{"a": 2.5}
	assert.Equal(t, 2.5, fs.Get("a", 0))
	assert.Equal(t, 7.0, fs.Get("missing", 7))
}
