package aggregates

import (
	"strings"
	"time"

	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
	"github.com/yungbote/foodgram-backend/internal/observability"
)

// WriteEvent describes one finished aggregate transaction. Status is
// "success" or the aggregate error code the write failed with.
type WriteEvent struct {
	Op       string
	Status   string
	Duration time.Duration
}

func (e WriteEvent) Conflicted() bool { return e.Status == string(domainagg.CodeConflict) }
func (e WriteEvent) Retryable() bool  { return e.Status == string(domainagg.CodeRetryable) }

// Hooks receives one event per aggregate write.
type Hooks interface {
	WriteFinished(ev WriteEvent)
}

type HooksFunc func(ev WriteEvent)

func (f HooksFunc) WriteFinished(ev WriteEvent) { f(ev) }

var noopHooks = HooksFunc(func(WriteEvent) {})

// NewObservabilityHooks feeds the aggregate histogram and the conflict and
// retry counters. A nil metrics set yields a no-op.
func NewObservabilityHooks(metrics *observability.Metrics) Hooks {
	if metrics == nil {
		return noopHooks
	}
	return HooksFunc(func(ev WriteEvent) {
		op := strings.TrimSpace(ev.Op)
		metrics.ObserveAggregateOperation(op, ev.Status, ev.Duration)
		switch {
		case ev.Conflicted():
			metrics.IncAggregateConflict(op)
		case ev.Retryable():
			metrics.IncAggregateRetry(op)
		}
	})
}
