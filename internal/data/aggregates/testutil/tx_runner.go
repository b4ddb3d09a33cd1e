package testutil

import (
	"context"
	"sync"

	"gorm.io/gorm"

	"github.com/yungbote/foodgram-backend/internal/data/aggregates"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
)

// InjectedTxRunner scripts transaction failures for aggregate tests. With DB
// set the body runs inside a real transaction, so an injected commit failure
// also discards every row the body wrote. Without DB the body gets no Tx and
// repos fall back to their own handle.
type InjectedTxRunner struct {
	DB *gorm.DB

	FailBegin      error
	FailBeforeBody error
	FailCommit     error

	mu            sync.Mutex
	BeginCalls    int
	CommitCalls   int
	RollbackCalls int
}

var _ aggregates.TxRunner = (*InjectedTxRunner)(nil)

func (r *InjectedTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	r.count(&r.BeginCalls)
	if r.FailBegin != nil {
		return r.FailBegin
	}
	if r.FailBeforeBody != nil {
		r.count(&r.RollbackCalls)
		return r.FailBeforeBody
	}
	if err := r.run(ctx, fn); err != nil {
		r.count(&r.RollbackCalls)
		return err
	}
	r.count(&r.CommitCalls)
	return nil
}

func (r *InjectedTxRunner) run(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	body := func(dbc dbctx.Context) error {
		if fn != nil {
			if err := fn(dbc); err != nil {
				return err
			}
		}
		return r.FailCommit
	}
	if r.DB == nil {
		return body(dbctx.Context{Ctx: ctx})
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return body(dbctx.Context{Ctx: ctx, Tx: tx})
	})
}

func (r *InjectedTxRunner) count(n *int) {
	r.mu.Lock()
	*n++
	r.mu.Unlock()
}
