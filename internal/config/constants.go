package config

import "time"

const (
	// Sessions
	DefaultSessionTTL = 72 * time.Hour
	TokenIssuer       = "aura-rentals"

	// Analysis
	DefaultAnalysisTimeout = 20 * time.Second
	DefaultAnalysisModel   = "gpt-4o-mini"
	MaxPromptDescription   = 2000

	// Complaints
	ComplaintNumberPrefix = "CMP-"

	// Registration
	MinPasswordLength = 6

	// Catalog price bands (monthly rent)
	BudgetPriceCeiling = 25000
	MidPriceCeiling    = 50000

	// Storage drivers
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"

	// Redis
	SessionKeyPrefix   = "session:"
	AdminEventsChannel = "aura:admin-events"
)
