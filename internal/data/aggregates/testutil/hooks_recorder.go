package testutil

import (
	"sync"

	"github.com/yungbote/foodgram-backend/internal/data/aggregates"
)

// HooksRecorder keeps every write event an aggregate reports.
type HooksRecorder struct {
	mu     sync.Mutex
	Events []aggregates.WriteEvent
}

var _ aggregates.Hooks = (*HooksRecorder)(nil)

func (h *HooksRecorder) WriteFinished(ev aggregates.WriteEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Events = append(h.Events, ev)
}

// Statuses lists the recorded statuses in arrival order.
func (h *HooksRecorder) Statuses() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, 0, len(h.Events))
	for _, ev := range h.Events {
		out = append(out, ev.Status)
	}
	return out
}

// Conflicts lists the ops whose write ended in a conflict.
func (h *HooksRecorder) Conflicts() []string {
	return h.opsWhere(aggregates.WriteEvent.Conflicted)
}

// Retries lists the ops whose write ended in a retryable failure.
func (h *HooksRecorder) Retries() []string {
	return h.opsWhere(aggregates.WriteEvent.Retryable)
}

func (h *HooksRecorder) opsWhere(keep func(aggregates.WriteEvent) bool) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []string
	for _, ev := range h.Events {
		if keep(ev) {
			out = append(out, ev.Op)
		}
	}
	return out
}
