package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"aura/backend/internal/models"
)

const (
	minActionSteps = 2
	maxActionSteps = 7
)

var (
	errNoJSONObject  = errors.New("no JSON object in response")
	errNoActionSteps = errors.New("response has no action steps")
	errEmptyResponse = errors.New("empty response")
)

var categoryAliases = map[string]models.Category{
	"hygiene":           models.CategoryHygiene,
	"pest control":      models.CategoryHygiene,
	"noise":             models.CategoryDisturbance,
	"maintenance":       models.CategoryGeneralMaintenance,
	"general":           models.CategoryGeneralMaintenance,
	"general complaint": models.CategoryGeneralMaintenance,
}

type remoteApproach struct {
	ProblemAnalysis  string `json:"problemAnalysis"`
	Strategy         string `json:"strategy"`
	SolutionStrategy string `json:"solutionStrategy"`
	ExpectedOutcome  string `json:"expectedOutcome"`
	Timeline         string `json:"timeline"`
}

// remotePayload accepts the current triage shape as well as the two older
// shapes the model has been prompted with.
type remotePayload struct {
	Category            string   `json:"category"`
	Priority            string   `json:"priority"`
	Summary             string   `json:"summary"`
	ProblemDescription  string   `json:"problemDescription"`
	ActionSteps         []string `json:"actionSteps"`
	KeyActionSteps      []string `json:"keyActionSteps"`
	Solutions           []string `json:"solutions"`
	SuggestedDepartment string   `json:"suggestedDepartment"`
	Contact             string   `json:"contact"`
	EstimatedTimeline   string   `json:"estimatedTimeline"`
	EstimatedCost       string   `json:"estimatedCost"`
	ResolutionCost      string   `json:"estimatedResolutionCost"`
	ChurnRiskScore      *float64 `json:"churnRiskScore"`
	ChurnRisk           *float64 `json:"churnRisk"`

	Approach       *remoteApproach `json:"approach"`
	LegacyApproach *remoteApproach `json:"problemSolutionApproach"`
}

// extractJSONObject strips markdown fences and returns the text between the
// first '{' and the last '}'.
func extractJSONObject(text string) (string, error) {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return "", errEmptyResponse
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end <= start {
		return "", errNoJSONObject
	}
	return cleaned[start : end+1], nil
}

func decodePayload(text string) (remotePayload, error) {
	var p remotePayload
	raw, err := extractJSONObject(text)
	if err != nil {
		return p, err
	}
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return p, fmt.Errorf("decode response: %w", err)
	}
	return p, nil
}

// project maps a decoded payload onto a TriageResult, filling gaps from the
// category template. description is used to pick a category when the model
// returns one outside the fixed set.
func project(p remotePayload, description, propertyName string) (models.TriageResult, error) {
	steps := cleanSteps(firstNonEmpty(p.ActionSteps, p.KeyActionSteps, p.Solutions))
	if len(steps) == 0 {
		return models.TriageResult{}, errNoActionSteps
	}
	if len(steps) > maxActionSteps {
		steps = steps[:maxActionSteps]
	}

	category, ok := matchCategory(p.Category)
	if !ok {
		category = Categorize(description)
	}
	t := templateFor(category)

	for i := 0; len(steps) < minActionSteps && i < len(t.steps); i++ {
		steps = append(steps, t.steps[i])
	}

	priority, ok := matchPriority(p.Priority)
	if !ok {
		priority = t.priority
	}

	approach := t.approach
	if a := p.Approach; a != nil || p.LegacyApproach != nil {
		if a == nil {
			a = p.LegacyApproach
		}
		approach = models.Approach{
			ProblemAnalysis: pick(a.ProblemAnalysis, p.ProblemDescription, t.approach.ProblemAnalysis),
			Strategy:        pick(a.Strategy, a.SolutionStrategy, t.approach.Strategy),
			ExpectedOutcome: pick(a.ExpectedOutcome, t.approach.ExpectedOutcome),
			Timeline:        pick(a.Timeline, p.EstimatedTimeline, t.approach.Timeline),
		}
	}

	churn := t.churn
	if p.ChurnRiskScore != nil {
		churn = *p.ChurnRiskScore
	} else if p.ChurnRisk != nil {
		churn = *p.ChurnRisk
	}

	return models.TriageResult{
		Category:            category,
		Priority:            priority,
		Summary:             pick(p.Summary, p.ProblemDescription, summarize(t.summary, propertyName)),
		ActionSteps:         steps,
		SuggestedDepartment: pick(p.SuggestedDepartment, p.Contact, t.department),
		EstimatedTimeline:   pick(p.EstimatedTimeline, approach.Timeline, t.approach.Timeline),
		EstimatedCost:       pick(p.EstimatedCost, p.ResolutionCost, t.cost),
		ChurnRiskScore:      clamp01(churn),
		Approach:            approach,
		Source:              models.SourceRemote,
	}, nil
}

func matchCategory(raw string) (models.Category, bool) {
	raw = strings.TrimSpace(raw)
	for _, c := range models.Categories {
		if strings.EqualFold(raw, string(c)) {
			return c, true
		}
	}
	c, ok := categoryAliases[strings.ToLower(raw)]
	return c, ok
}

func matchPriority(raw string) (models.Priority, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "high", "urgent", "critical":
		return models.PriorityHigh, true
	case "medium", "moderate":
		return models.PriorityMedium, true
	case "low":
		return models.PriorityLow, true
	}
	return "", false
}

func firstNonEmpty(lists ...[]string) []string {
	for _, l := range lists {
		if len(l) > 0 {
			return l
		}
	}
	return nil
}

func cleanSteps(steps []string) []string {
	out := make([]string, 0, len(steps))
	for _, s := range steps {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func pick(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
