package analysis

import "aura/backend/internal/models"

// template is the literal triage plan for one category.
type template struct {
	priority   models.Priority
	summary    string
	steps      []string
	approach   models.Approach
	department string
	cost       string
	churn      float64
}

var templates = map[models.Category]template{
	models.CategoryPlumbing: {
		priority: models.PriorityHigh,
		summary:  "Urgent water leakage or flooding reported",
		steps: []string{
			"Shut off the main water valve to stop further damage",
			"Dispatch an emergency plumber to locate the leak",
			"Move tenant belongings away from the affected area",
			"Assess and document water damage to walls, ceiling and floors",
			"Schedule drying and repair of damaged surfaces",
		},
		approach: models.Approach{
			ProblemAnalysis: "Water ingress usually comes from a failed pipe joint, blocked drain or roof seepage and worsens quickly if left running.",
			Strategy:        "Isolate the water supply first, repair the source, then dry out and restore the affected rooms.",
			ExpectedOutcome: "Leak stopped within hours and the unit restored to a dry, habitable condition.",
			Timeline:        "24-48 hours",
		},
		department: "Emergency Plumbing: +91-98765-11111",
		cost:       "₹2,000 - ₹15,000",
		churn:      0.75,
	},
	models.CategoryElectrical: {
		priority: models.PriorityHigh,
		summary:  "Power outage or electrical failure reported",
		steps: []string{
			"Confirm the tenant is safe and away from exposed wiring",
			"Check the unit's circuit breakers and main fuse",
			"Contact the power utility to rule out a grid outage",
			"Send a licensed electrician to inspect localized wiring faults",
		},
		approach: models.Approach{
			ProblemAnalysis: "Loss of power is caused either by a supply outage or by a tripped or faulty circuit inside the unit.",
			Strategy:        "Rule out the utility supply, then trace and repair the failing circuit with a licensed electrician.",
			ExpectedOutcome: "Power safely restored and the faulty circuit repaired or isolated.",
			Timeline:        "4-24 hours",
		},
		department: "Power Grid Support: +91-98765-22222",
		cost:       "₹1,000 - ₹10,000",
		churn:      0.85,
	},
	models.CategoryDisturbance: {
		priority: models.PriorityMedium,
		summary:  "Noise or neighbor disturbance reported",
		steps: []string{
			"Log the incident with date and time",
			"Send a warning notice to the offending unit",
			"Mediate between the residents involved",
			"Review building noise regulations and escalate repeated violations",
		},
		approach: models.Approach{
			ProblemAnalysis: "Recurring noise points to a conflict between residents or a breach of quiet-hours rules.",
			Strategy:        "Document each incident, warn the source and mediate before formal escalation.",
			ExpectedOutcome: "Disturbance stops and both parties acknowledge the building rules.",
			Timeline:        "2-5 days",
		},
		department: "Building Security: +91-98765-33333",
		cost:       "No direct cost",
		churn:      0.40,
	},
	models.CategoryConnectivity: {
		priority: models.PriorityMedium,
		summary:  "Internet connectivity issue reported",
		steps: []string{
			"Restart the building router and access points",
			"Check whether the outage is building-wide",
			"Contact the ISP with the line details",
			"Measure signal strength inside the unit",
		},
		approach: models.Approach{
			ProblemAnalysis: "Connectivity loss is caused by building network equipment, the provider line or weak in-unit signal.",
			Strategy:        "Reset local equipment, confirm scope, then escalate to the ISP or add an access point.",
			ExpectedOutcome: "Stable internet access restored for the tenant.",
			Timeline:        "1-3 days",
		},
		department: "ISP Support: +91-98765-44444",
		cost:       "₹0 - ₹3,000",
		churn:      0.50,
	},
	models.CategoryHygiene: {
		priority: models.PriorityHigh,
		summary:  "Cleanliness or pest issue reported",
		steps: []string{
			"Call pest control for an inspection and treatment",
			"Schedule a deep cleaning of the unit",
			"Inspect common areas and waste storage",
			"Seal entry points found during the inspection",
			"Apologize to the tenant and confirm a follow-up visit",
		},
		approach: models.Approach{
			ProblemAnalysis: "Pests and poor hygiene spread from shared waste areas and unsealed gaps and affect neighboring units.",
			Strategy:        "Treat the infestation, deep clean and remove the source in common areas.",
			ExpectedOutcome: "Unit and common areas clean and pest-free, confirmed by a follow-up inspection.",
			Timeline:        "2-7 days",
		},
		department: "Housekeeping: +91-98765-55555",
		cost:       "₹1,500 - ₹8,000",
		churn:      0.60,
	},
	models.CategorySecurity: {
		priority: models.PriorityHigh,
		summary:  "Security concern or lock issue reported",
		steps: []string{
			"Dispatch a security guard to the unit",
			"Repair or change the affected locks",
			"Review CCTV footage for the reported period",
			"File a police report if theft or break-in is confirmed",
		},
		approach: models.Approach{
			ProblemAnalysis: "Broken locks or a security breach leave the resident exposed and need an immediate response.",
			Strategy:        "Secure the unit immediately, restore the locks and investigate the incident.",
			ExpectedOutcome: "Resident feels safe and access to the unit is fully secured.",
			Timeline:        "Same day",
		},
		department: "Head of Security: +91-98765-99999",
		cost:       "₹500 - ₹5,000",
		churn:      0.90,
	},
	models.CategoryGeneralMaintenance: {
		priority: models.PriorityMedium,
		summary:  "Resident reported a general maintenance issue",
		steps: []string{
			"Contact the tenant for more details",
			"Inspect the property",
			"Schedule the repair with the maintenance team",
		},
		approach: models.Approach{
			ProblemAnalysis: "The report does not match a specialised category and needs an on-site inspection.",
			Strategy:        "Gather details, inspect and assign the repair to the right trade.",
			ExpectedOutcome: "Issue identified and fixed during a scheduled maintenance visit.",
			Timeline:        "3-7 days",
		},
		department: "Property Manager: +91-98765-43210",
		cost:       "₹500 - ₹5,000",
		churn:      0.10,
	},
}

func templateFor(c models.Category) template {
	if t, ok := templates[c]; ok {
		return t
	}
	return templates[models.CategoryGeneralMaintenance]
}
