// Package analysis turns free-text complaints into structured triage records,
// either through a remote language model or a deterministic keyword classifier.
package analysis

import (
	"math/rand/v2"
	"strings"
	"sync"

	"aura/backend/internal/models"
)

// maxJitter bounds the random perturbation of the churn risk score.
const maxJitter = 0.05

type keywordGroup struct {
	category models.Category
	keywords []string
}

// keywordGroups is evaluated in order; the first matching group wins.
var keywordGroups = []keywordGroup{
	{models.CategoryPlumbing, []string{"water", "leak", "flood"}},
	{models.CategoryElectrical, []string{"electricity", "power", "outage"}},
	{models.CategoryDisturbance, []string{"noise", "neighbor", "sound", "party"}},
	{models.CategoryConnectivity, []string{"internet", "wifi", "broadband"}},
	{models.CategoryHygiene, []string{"clean", "dirty", "pest", "trash", "cockroach", "rodent"}},
	{models.CategorySecurity, []string{"security", "theft", "lock", "break-in"}},
}

// Categorize returns the category of the first keyword group found in text.
func Categorize(text string) models.Category {
	lower := strings.ToLower(text)
	for _, group := range keywordGroups {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				return group.category
			}
		}
	}
	return models.CategoryGeneralMaintenance
}

// Classifier is the keyword fallback analyzer.
type Classifier struct {
	mu     sync.Mutex
	jitter *rand.Rand
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithJitter perturbs ChurnRiskScore by at most ±0.05 using r.
// No other field is affected.
func WithJitter(r *rand.Rand) Option {
	return func(c *Classifier) { c.jitter = r }
}

// NewClassifier returns a classifier. Without options it is fully deterministic.
func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify never fails; unmatched text is General Maintenance.
func (c *Classifier) Classify(description, propertyName string) models.TriageResult {
	category := Categorize(description)
	t := templateFor(category)

	return models.TriageResult{
		Category:            category,
		Priority:            t.priority,
		Summary:             summarize(t.summary, propertyName),
		ActionSteps:         append([]string(nil), t.steps...),
		SuggestedDepartment: t.department,
		EstimatedTimeline:   t.approach.Timeline,
		EstimatedCost:       t.cost,
		ChurnRiskScore:      c.churn(t.churn),
		Approach:            t.approach,
		Source:              models.SourceFallback,
	}
}

func (c *Classifier) churn(base float64) float64 {
	if c.jitter == nil {
		return base
	}
	c.mu.Lock()
	noise := c.jitter.Float64()*2*maxJitter - maxJitter
	c.mu.Unlock()
	return clamp01(base + noise)
}

func summarize(summary, propertyName string) string {
	if name := strings.TrimSpace(propertyName); name != "" {
		return summary + " at " + name + "."
	}
	return summary + "."
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
