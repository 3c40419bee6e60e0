package models

import (
	"time"
)

// AIUsageLog represents a record of AI API usage for cost tracking.
type AIUsageLog struct {
	Timestamp    time.Time
	RequestID    string // empty outside HTTP requests
	ProviderName string
	ServiceType  string // e.g., "categorization"
	ModelName    string
	InputTokens  int
	OutputTokens int
	Cost         float64
	Priced       bool // false when no pricing entry exists for ModelName
}
