package testutil

import (
	"testing"
	"time"

	"github.com/yungbote/foodgram-backend/internal/data/aggregates"
)

func TestHooksRecorderSplitsByStatus(t *testing.T) {
	h := &HooksRecorder{}
	h.WriteFinished(aggregates.WriteEvent{Op: "Recipes.Recipe.Create", Status: "success", Duration: time.Millisecond})
	h.WriteFinished(aggregates.WriteEvent{Op: "Recipes.Recipe.Update", Status: "conflict"})
	h.WriteFinished(aggregates.WriteEvent{Op: "Users.Follow.Follow", Status: "retryable"})

	if got := h.Statuses(); len(got) != 3 || got[0] != "success" {
		t.Fatalf("statuses: %+v", got)
	}
	if got := h.Conflicts(); len(got) != 1 || got[0] != "Recipes.Recipe.Update" {
		t.Fatalf("conflicts: %+v", got)
	}
	if got := h.Retries(); len(got) != 1 || got[0] != "Users.Follow.Follow" {
		t.Fatalf("retries: %+v", got)
	}
}
