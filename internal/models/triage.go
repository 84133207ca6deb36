package models

import "github.com/lib/pq"

// Category is the triage category assigned to a complaint.
type Category string

const (
	CategoryPlumbing           Category = "Plumbing"
	CategoryElectrical         Category = "Electrical"
	CategoryDisturbance        Category = "Disturbance"
	CategoryConnectivity       Category = "Connectivity"
	CategoryHygiene            Category = "Hygiene/Pest Control"
	CategorySecurity           Category = "Security"
	CategoryGeneralMaintenance Category = "General Maintenance"
)

// Categories lists every category in classifier match order.
var Categories = []Category{
	CategoryPlumbing,
	CategoryElectrical,
	CategoryDisturbance,
	CategoryConnectivity,
	CategoryHygiene,
	CategorySecurity,
	CategoryGeneralMaintenance,
}

// Priority is the urgency of a triaged complaint.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// AnalysisSource records which path produced a TriageResult.
type AnalysisSource string

const (
	SourceRemote   AnalysisSource = "remote"
	SourceFallback AnalysisSource = "fallback"
)

// Approach is the problem/solution narrative attached to a triage.
type Approach struct {
	ProblemAnalysis string `json:"problemAnalysis"`
	Strategy        string `json:"strategy"`
	ExpectedOutcome string `json:"expectedOutcome"`
	Timeline        string `json:"timeline"`
}

// TriageResult is the structured analysis of a complaint. It is stored inline
// with the complaint row and never recomputed once attached.
type TriageResult struct {
	Category            Category       `gorm:"type:text" json:"category"`
	Priority            Priority       `gorm:"type:text" json:"priority"`
	Summary             string         `gorm:"type:text" json:"summary"`
	ActionSteps         pq.StringArray `gorm:"type:text[]" json:"actionSteps"`
	SuggestedDepartment string         `gorm:"type:text" json:"suggestedDepartment"`
	EstimatedTimeline   string         `gorm:"type:text" json:"estimatedTimeline"`
	EstimatedCost       string         `gorm:"type:text" json:"estimatedCost,omitempty"`
	ChurnRiskScore      float64        `json:"churnRiskScore"`
	Approach            Approach       `gorm:"serializer:json" json:"approach"`
	Source              AnalysisSource `gorm:"type:text" json:"source"`
}

// IsValidCategory reports whether c belongs to the fixed category set.
func IsValidCategory(c Category) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}
