package analysis

import (
	"fmt"
	"strings"

	"aura/backend/internal/config"
	"aura/backend/internal/models"
)

const systemPrompt = `You are a property maintenance triage assistant for a residential rental company.
Return ONLY a JSON object. Do not wrap it in markdown.`

const promptTemplate = `Analyze the following resident complaint and produce a triage plan.

Property: %s
Complaint:
%s

Respond with a JSON object with exactly these keys:
{
  "category": one of %s,
  "priority": "High" | "Medium" | "Low",
  "summary": one sentence describing the problem,
  "actionSteps": 3 to 7 concrete steps ordered by urgency,
  "suggestedDepartment": team name and contact number,
  "estimatedTimeline": expected time to resolve,
  "estimatedCost": cost range in INR,
  "churnRiskScore": number between 0 and 1 estimating the chance the resident leaves,
  "approach": {
    "problemAnalysis": root cause analysis,
    "strategy": how the team should resolve it,
    "expectedOutcome": result once resolved,
    "timeline": same value as estimatedTimeline
  }
}`

func buildPrompt(description, propertyName string) string {
	property := strings.TrimSpace(propertyName)
	if property == "" {
		property = "unspecified property"
	}
	return fmt.Sprintf(promptTemplate, property, truncateRunes(strings.TrimSpace(description), config.MaxPromptDescription), categoryList())
}

func categoryList() string {
	quoted := make([]string, 0, len(models.Categories))
	for _, c := range models.Categories {
		quoted = append(quoted, fmt.Sprintf("%q", c))
	}
	return strings.Join(quoted, ", ")
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
