package tui

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type jobKind string

type jobStatus string

const (
	jobKindChat   jobKind = "chat"
	jobKindUpload jobKind = "upload"
	jobKindIngest jobKind = "ingest"
	jobKindDelete jobKind = "delete"
)

const (
	jobStatusRunning   jobStatus = "running"
	jobStatusSucceeded jobStatus = "succeeded"
	jobStatusFailed    jobStatus = "failed"
)

type jobSnapshot struct {
	ID          string
	Kind        jobKind
	Status      jobStatus
	StartedAt   time.Time
	CompletedAt time.Time
	Err         string
	Duration    time.Duration
}

type jobSignalMsg struct {
	Snapshot jobSnapshot
}

type jobResultEnvelope struct {
	Snapshot jobSnapshot
	Payload  tea.Msg
}

type jobRunner func(context.Context) (tea.Msg, error)

type jobBus struct {
	counter int64
	logger  *zap.Logger
}

func newJobBus(logger *zap.Logger) *jobBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &jobBus{logger: logger}
}

func (b *jobBus) nextID(kind jobKind) string {
	idx := atomic.AddInt64(&b.counter, 1)
	return fmt.Sprintf("%s-%d", kind, idx)
}

// Start emits a running snapshot immediately, then runs the job and wraps
// its payload in a result envelope so the model can track job state
// without each runner knowing about bookkeeping.
func (b *jobBus) Start(kind jobKind, runner jobRunner) tea.Cmd {
	id := b.nextID(kind)
	started := time.Now()
	startSnapshot := jobSnapshot{ID: id, Kind: kind, Status: jobStatusRunning, StartedAt: started}
	startCmd := func() tea.Msg {
		return jobSignalMsg{Snapshot: startSnapshot}
	}

	runCmd := func() tea.Msg {
		ctx := context.Background()
		payload, err := runner(ctx)
		snapshot := jobSnapshot{
			ID:          id,
			Kind:        kind,
			StartedAt:   started,
			CompletedAt: time.Now(),
		}
		if err != nil {
			snapshot.Status = jobStatusFailed
			snapshot.Err = err.Error()
		} else {
			snapshot.Status = jobStatusSucceeded
		}
		snapshot.Duration = snapshot.CompletedAt.Sub(started)
		b.logger.Info("job finished",
			zap.String("id", id),
			zap.String("kind", string(kind)),
			zap.String("status", string(snapshot.Status)),
			zap.Duration("duration", snapshot.Duration),
			zap.String("error", snapshot.Err),
		)
		return jobResultEnvelope{Snapshot: snapshot, Payload: payload}
	}

	return tea.Sequence(startCmd, runCmd)
}
