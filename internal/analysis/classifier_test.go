package analysis_test

import (
	"math/rand/v2"
	"testing"

	"aura/backend/internal/analysis"
	"aura/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        models.Category
	}{
		{"plumbing", "There is a LEAK under the sink", models.CategoryPlumbing},
		{"electrical", "Power went out in the bedroom", models.CategoryElectrical},
		{"disturbance", "Loud party upstairs every night", models.CategoryDisturbance},
		{"connectivity", "WiFi keeps dropping", models.CategoryConnectivity},
		{"hygiene", "Saw a cockroach in the kitchen", models.CategoryHygiene},
		{"security", "The front door lock is broken", models.CategorySecurity},
		{"general", "The paint is peeling", models.CategoryGeneralMaintenance},
		{"empty", "", models.CategoryGeneralMaintenance},
		{"first match wins", "water leak near the broken lock", models.CategoryPlumbing},
		{"substring match", "the powerful fan rattles", models.CategoryElectrical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, analysis.Categorize(tt.description))
		})
	}
}

func TestClassify_Templates(t *testing.T) {
	c := analysis.NewClassifier()

	tests := []struct {
		description string
		category    models.Category
		priority    models.Priority
		churn       float64
	}{
		{"pipe leak", models.CategoryPlumbing, models.PriorityHigh, 0.75},
		{"power outage", models.CategoryElectrical, models.PriorityHigh, 0.85},
		{"noisy neighbor", models.CategoryDisturbance, models.PriorityMedium, 0.40},
		{"no internet", models.CategoryConnectivity, models.PriorityMedium, 0.50},
		{"trash everywhere", models.CategoryHygiene, models.PriorityHigh, 0.60},
		{"theft from the lobby", models.CategorySecurity, models.PriorityHigh, 0.90},
		{"door hinge squeaks", models.CategoryGeneralMaintenance, models.PriorityMedium, 0.10},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			got := c.Classify(tt.description, "")

			assert.Equal(t, tt.category, got.Category)
			assert.Equal(t, tt.priority, got.Priority)
			assert.InDelta(t, tt.churn, got.ChurnRiskScore, 1e-9)
			assert.GreaterOrEqual(t, len(got.ActionSteps), 3)
			assert.LessOrEqual(t, len(got.ActionSteps), 7)
			assert.NotEmpty(t, got.Summary)
			assert.NotEmpty(t, got.SuggestedDepartment)
			assert.NotEmpty(t, got.EstimatedTimeline)
			assert.Equal(t, got.EstimatedTimeline, got.Approach.Timeline)
			assert.Equal(t, models.SourceFallback, got.Source)
		})
	}
}

func TestClassify_NamesProperty(t *testing.T) {
	c := analysis.NewClassifier()

	got := c.Classify("Water leaking from the ceiling", "Luxury Apartment in Delhi")

	assert.Equal(t, models.CategoryPlumbing, got.Category)
	assert.Equal(t, models.PriorityHigh, got.Priority)
	assert.Contains(t, got.Summary, "Luxury Apartment in Delhi")
	assert.GreaterOrEqual(t, len(got.ActionSteps), 3)
	assert.NotEmpty(t, got.EstimatedTimeline)

	unnamed := c.Classify("Water leaking from the ceiling", "  ")
	assert.NotContains(t, unnamed.Summary, " at ")
}

func TestClassify_Deterministic(t *testing.T) {
	c := analysis.NewClassifier()

	first := c.Classify("wifi is down and there is a party", "Cozy Studio")
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, c.Classify("wifi is down and there is a party", "Cozy Studio"))
	}
}

func TestClassify_ResultsAreIndependent(t *testing.T) {
	c := analysis.NewClassifier()

	first := c.Classify("leak", "")
	first.ActionSteps[0] = "mutated"

	second := c.Classify("leak", "")
	assert.NotEqual(t, "mutated", second.ActionSteps[0])
}

func TestClassify_JitterOnlyTouchesChurn(t *testing.T) {
	base := analysis.NewClassifier().Classify("the lock was forced, possible break-in", "")
	c := analysis.NewClassifier(analysis.WithJitter(rand.New(rand.NewPCG(7, 11))))

	for i := 0; i < 200; i++ {
		got := c.Classify("the lock was forced, possible break-in", "")

		require.Equal(t, base.Category, got.Category)
		require.Equal(t, base.Priority, got.Priority)
		require.Equal(t, base.ActionSteps, got.ActionSteps)
		require.Equal(t, base.Summary, got.Summary)
		require.InDelta(t, base.ChurnRiskScore, got.ChurnRiskScore, 0.05+1e-9)
		require.GreaterOrEqual(t, got.ChurnRiskScore, 0.0)
		require.LessOrEqual(t, got.ChurnRiskScore, 1.0)
	}
}
