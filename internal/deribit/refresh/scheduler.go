package refresh

import (
	"context"
	"time"

	"optionflow/internal/flow"

	"go.uber.org/zap"
)

// BuildFunc produces a dashboard model for the given reference time.
type BuildFunc func(ctx context.Context, now time.Time) flow.Model

// Scheduler rebuilds the model once at start and then on every tick.
type Scheduler struct {
	Interval time.Duration
	Build    BuildFunc
	Sinks    []func(context.Context, flow.Model)
	Now      func() time.Time
	Logger   *zap.Logger
}

// Run blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	// Run immediately once at startup
	s.RunOnce(ctx)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.Logger.Info("refresh scheduler stopped")
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce builds one model and hands it to every sink.
func (s *Scheduler) RunOnce(ctx context.Context) flow.Model {
	now := time.Now().UTC()
	if s.Now != nil {
		now = s.Now()
	}

	start := time.Now()
	model := s.Build(ctx, now)
	s.Logger.Info("dashboard model built",
		zap.String("state", string(model.State)),
		zap.Int("rows", len(model.Rows)),
		zap.Int("errors", len(model.Errors)),
		zap.Duration("took", time.Since(start)))

	for _, sink := range s.Sinks {
		sink(ctx, model)
	}
	return model
}
