package costtracker

import (
	"context"
	"sync"

	"textcat/internal/models"

	log "github.com/sirupsen/logrus"
)

// CostTracker provides methods to record and report costs.
type CostTracker interface {
	RecordUsage(ctx context.Context, entry *models.AIUsageLog) error
	TotalCost(ctx context.Context) (float64, error)
}

// New returns a tracker that logs each usage entry and keeps a running total
// for the lifetime of the process. Nothing is persisted.
func New(logger log.FieldLogger) CostTracker {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &logCostTracker{logger: logger}
}

type logCostTracker struct {
	logger log.FieldLogger

	mu    sync.Mutex
	total float64
}

func (t *logCostTracker) RecordUsage(ctx context.Context, entry *models.AIUsageLog) error {
	if entry == nil {
		return nil
	}

	t.mu.Lock()
	t.total += entry.Cost
	t.mu.Unlock()

	fields := log.Fields{
		"provider":      entry.ProviderName,
		"service":       entry.ServiceType,
		"model":         entry.ModelName,
		"input_tokens":  entry.InputTokens,
		"output_tokens": entry.OutputTokens,
	}
	if entry.RequestID != "" {
		fields["request_id"] = entry.RequestID
	}
	if entry.Priced {
		fields["cost_usd"] = entry.Cost
	}
	t.logger.WithFields(fields).Debug("Recorded AI usage")
	return nil
}

func (t *logCostTracker) TotalCost(ctx context.Context) (float64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.total, nil
}

// Noop returns a tracker that discards everything.
func Noop() CostTracker {
	return &noopCostTracker{}
}

type noopCostTracker struct{}

func (n *noopCostTracker) RecordUsage(ctx context.Context, entry *models.AIUsageLog) error {
	return nil
}
func (n *noopCostTracker) TotalCost(ctx context.Context) (float64, error) { return 0, nil }

type contextKey string

const requestIDKey contextKey = "request_id"

// ContextWithRequestID tags ctx so usage entries recorded under it can be
// correlated with the HTTP request that caused them.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the id set by ContextWithRequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
