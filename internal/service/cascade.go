package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"utility-bill-splitter/internal/domain"
	"utility-bill-splitter/internal/logger"
)

// cascadeStep is one persisted deletion in an ordered cascade.
type cascadeStep struct {
	name string
	run  func(ctx context.Context) (int64, error)
}

// runCascade executes steps in order, each as its own statement. The first
// failure stops the cascade; steps already executed stay applied, so a
// failure can leave a partially deleted entity graph.
func runCascade(ctx context.Context, entity string, id int32, steps []cascadeStep) error {
	logger.EnterMethod("runCascade", "entity", entity, "id", id, "steps", len(steps))

	for i, step := range steps {
		rows, err := step.run(ctx)
		if err != nil {
			err = fmt.Errorf("delete %s %d: step %d (%s) failed: %w", entity, id, i+1, step.name, err)
			logger.ExitMethodWithError("runCascade", err, "entity", entity, "id", id, "completedSteps", i)
			return err
		}
		logger.Debug("Cascade step completed", "entity", entity, "id", id, "step", step.name, "rows", rows)
	}

	logger.ExitMethod("runCascade", "entity", entity, "id", id)
	return nil
}

// deleteOne adapts a single-row delete to a cascade step.
func deleteOne(del func(ctx context.Context, id int32) error, id int32) func(ctx context.Context) (int64, error) {
	return func(ctx context.Context) (int64, error) {
		if err := del(ctx, id); err != nil {
			return 0, err
		}
		return 1, nil
	}
}

// notFound maps sql.ErrNoRows to domain.ErrNotFound with a readable subject.
func notFound(err error, format string, args ...any) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, fmt.Sprintf(format, args...))
	}
	return err
}
