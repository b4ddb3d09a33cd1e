package aggregates

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
	"github.com/yungbote/foodgram-backend/internal/domain/recipes"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
)

func TestExecuteWriteReportsStatus(t *testing.T) {
	tests := []struct {
		name     string
		body     error
		wantCode domainagg.ErrorCode
		status   string
	}{
		{name: "success", status: "success"},
		{name: "missing tag row", body: gorm.ErrForeignKeyViolated, wantCode: domainagg.CodePreconditionFailed, status: "precondition_failed"},
		{name: "stale version", body: domainError(domainagg.CodeConflict, "Recipes.Recipe.Update", recipes.ErrVersionConflict), wantCode: domainagg.CodeConflict, status: "conflict"},
		{name: "serialization", body: &pgconn.PgError{Code: "40001"}, wantCode: domainagg.CodeRetryable, status: "retryable"},
		{name: "deadline", body: context.DeadlineExceeded, wantCode: domainagg.CodeRetryable, status: "retryable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var events []WriteEvent
			hooks := HooksFunc(func(ev WriteEvent) { events = append(events, ev) })
			op := "Recipes.Test." + tt.name

			err := executeWrite(context.Background(), BaseDeps{Runner: spyTxRunner{}, Hooks: hooks}, op,
				func(_ dbctx.Context) error { return tt.body })
			if tt.wantCode == "" && err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if tt.wantCode != "" && !domainagg.IsCode(err, tt.wantCode) {
				t.Fatalf("want code %s, got %v", tt.wantCode, err)
			}
			if len(events) != 1 {
				t.Fatalf("want one event, got %+v", events)
			}
			ev := events[0]
			if ev.Op != op || ev.Status != tt.status {
				t.Fatalf("unexpected event %+v", ev)
			}
			if ev.Conflicted() != (tt.status == "conflict") || ev.Retryable() != (tt.status == "retryable") {
				t.Fatalf("event classification off: %+v", ev)
			}
		})
	}
}

func TestExecuteWriteDefaultsOpName(t *testing.T) {
	var got string
	hooks := HooksFunc(func(ev WriteEvent) { got = ev.Op })
	_ = executeWrite(context.Background(), BaseDeps{Runner: spyTxRunner{}, Hooks: hooks}, "  ",
		func(_ dbctx.Context) error { return nil })
	if got != "aggregate.write" {
		t.Fatalf("op: %q", got)
	}
}

func TestNewObservabilityHooksNilMetrics(t *testing.T) {
	// must not panic without a metrics registry
	NewObservabilityHooks(nil).WriteFinished(WriteEvent{Op: "x", Status: "conflict"})
}

type spyTxRunner struct{}

func (spyTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(dbctx.Context{Ctx: ctx})
}
