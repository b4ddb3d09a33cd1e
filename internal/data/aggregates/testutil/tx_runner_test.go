package testutil

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	repotest "github.com/yungbote/foodgram-backend/internal/data/repos/testutil"
	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
)

func TestInjectedTxRunnerCounters(t *testing.T) {
	bodyErr := errors.New("boom")
	commitErr := errors.New("commit failed")
	beginErr := errors.New("begin failed")
	tests := []struct {
		name                    string
		runner                  *InjectedTxRunner
		body                    error
		wantErr                 error
		wantRan                 bool
		begin, commit, rollback int
	}{
		{name: "commit", runner: &InjectedTxRunner{}, wantRan: true, begin: 1, commit: 1},
		{name: "body error", runner: &InjectedTxRunner{}, body: bodyErr, wantErr: bodyErr, wantRan: true, begin: 1, rollback: 1},
		{name: "commit failure", runner: &InjectedTxRunner{FailCommit: commitErr}, wantErr: commitErr, wantRan: true, begin: 1, rollback: 1},
		{name: "begin failure", runner: &InjectedTxRunner{FailBegin: beginErr}, wantErr: beginErr, begin: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ran := false
			err := tt.runner.InTx(context.Background(), func(_ dbctx.Context) error {
				ran = true
				return tt.body
			})
			if !errors.Is(err, tt.wantErr) || (tt.wantErr == nil && err != nil) {
				t.Fatalf("want %v, got %v", tt.wantErr, err)
			}
			if ran != tt.wantRan {
				t.Fatalf("body ran=%v", ran)
			}
			r := tt.runner
			if r.BeginCalls != tt.begin || r.CommitCalls != tt.commit || r.RollbackCalls != tt.rollback {
				t.Fatalf("unexpected counters begin=%d commit=%d rollback=%d", r.BeginCalls, r.CommitCalls, r.RollbackCalls)
			}
		})
	}
}

func TestInjectedTxRunnerCommitFailureDiscardsRecipe(t *testing.T) {
	db := repotest.DB(t)
	ctx := context.Background()
	suffix := uuid.NewString()[:8]
	author := repotest.SeedUser(t, ctx, db, "inject-"+suffix)
	name := "Lost pancakes " + suffix

	commitErr := errors.New("commit failed")
	r := &InjectedTxRunner{DB: db, FailCommit: commitErr}
	err := r.InTx(ctx, func(dbc dbctx.Context) error {
		if dbc.Tx == nil {
			t.Fatalf("body must see the transaction")
		}
		repotest.SeedRecipe(t, ctx, dbc.Tx, author.ID, name, time.Now(), nil)
		return nil
	})
	if !errors.Is(err, commitErr) {
		t.Fatalf("want commit err, got %v", err)
	}
	var n int64
	if err := db.Model(&types.Recipe{}).Where("name = ?", name).Count(&n).Error; err != nil || n != 0 {
		t.Fatalf("recipe must be rolled back: n=%d err=%v", n, err)
	}
	if r.RollbackCalls != 1 || r.CommitCalls != 0 {
		t.Fatalf("unexpected counters commit=%d rollback=%d", r.CommitCalls, r.RollbackCalls)
	}
}
