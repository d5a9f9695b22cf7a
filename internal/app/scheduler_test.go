package app

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/fpl-insights/internal/platform/logging"
	"github.com/riskibarqy/fpl-insights/internal/usecase"
)

type countingSyncer struct {
	calls atomic.Int32
	err   error
}

func (s *countingSyncer) Sync(context.Context, usecase.SyncInput) (usecase.SyncResult, error) {
	s.calls.Add(1)
	if s.err != nil {
		return usecase.SyncResult{}, s.err
	}
	return usecase.SyncResult{RunID: "run-1", SuccessCount: 3}, nil
}

// blockingSyncer holds each sync open until its context ends, or until release closes when
// ignoreCtx is set.
type blockingSyncer struct {
	started   chan struct{}
	release   chan struct{}
	ignoreCtx bool

	once        sync.Once
	interrupted atomic.Bool
}

func newBlockingSyncer(ignoreCtx bool) *blockingSyncer {
	return &blockingSyncer{
		started:   make(chan struct{}),
		release:   make(chan struct{}),
		ignoreCtx: ignoreCtx,
	}
}

func (s *blockingSyncer) Sync(ctx context.Context, _ usecase.SyncInput) (usecase.SyncResult, error) {
	s.once.Do(func() { close(s.started) })
	if s.ignoreCtx {
		<-s.release
		return usecase.SyncResult{}, nil
	}
	<-ctx.Done()
	s.interrupted.Store(true)
	return usecase.SyncResult{}, ctx.Err()
}

func waitStarted(t *testing.T, syncer *blockingSyncer) {
	t.Helper()
	select {
	case <-syncer.started:
	case <-time.After(5 * time.Second):
		t.Fatalf("scheduled sync did not start")
	}
}

func TestNewScheduler(t *testing.T) {
	tests := []struct {
		name        string
		spec        string
		wantErr     bool
		wantEntries int
	}{
		{name: "disabled", spec: "", wantEntries: 0},
		{name: "every fifteen minutes", spec: "*/15 * * * *", wantEntries: 1},
		{name: "descriptor", spec: "@hourly", wantEntries: 1},
		{name: "invalid", spec: "not a cron", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewScheduler(tt.spec, &countingSyncer{}, logging.NewNop())
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for spec %q", tt.spec)
				}
				return
			}
			if err != nil {
				t.Fatalf("new scheduler: %v", err)
			}
			if got := s.Entries(); got != tt.wantEntries {
				t.Fatalf("unexpected entries: got=%d want=%d", got, tt.wantEntries)
			}
		})
	}
}

func TestScheduler_RunOnce(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "success"},
		{name: "conflict", err: fmt.Errorf("%w: running", usecase.ErrConflict)},
		{name: "failure", err: fmt.Errorf("%w: upstream down", usecase.ErrDependencyUnavailable)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			syncer := &countingSyncer{err: tt.err}
			s, err := NewScheduler("", syncer, logging.NewNop())
			if err != nil {
				t.Fatalf("new scheduler: %v", err)
			}

			s.RunOnce(context.Background())
			if got := syncer.calls.Load(); got != 1 {
				t.Fatalf("unexpected sync calls: got=%d want=1", got)
			}
		})
	}
}

func TestScheduler_StartStop(t *testing.T) {
	s, err := NewScheduler("@daily", &countingSyncer{}, logging.NewNop())
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	s.Start()
	<-s.Stop().Done()
}

func TestScheduler_StopCancelsRunningSync(t *testing.T) {
	syncer := newBlockingSyncer(false)
	s, err := NewScheduler("@every 1s", syncer, logging.NewNop())
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	s.Start()
	waitStarted(t, syncer)

	select {
	case <-s.Stop().Done():
	case <-time.After(2 * time.Second):
		t.Fatalf("stop did not wait for the cancelled sync to return")
	}
	if !syncer.interrupted.Load() {
		t.Fatalf("expected running sync to observe cancellation")
	}
}
