package usecases

import (
	"context"

	"go.uber.org/zap"
	"rimmarsa.backend/pkg/logger"
)

type compensation struct {
	name string
	undo func(ctx context.Context) error
}

// saga collects undo steps for writes that cannot join a database transaction
type saga struct {
	steps []compensation
}

func (s *saga) onFailure(name string, undo func(ctx context.Context) error) {
	s.steps = append(s.steps, compensation{name: name, undo: undo})
}

// compensate runs the undo steps newest first. It keeps going when a step fails and
// ignores cancellation of ctx.
func (s *saga) compensate(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	for i := len(s.steps) - 1; i >= 0; i-- {
		step := s.steps[i]
		if err := step.undo(ctx); err != nil {
			logger.Error(ctx, "Compensation failed", zap.String("step", step.name), zap.Error(err))
			continue
		}
		logger.Warn(ctx, "Compensation applied", zap.String("step", step.name))
	}
	s.steps = nil
}
