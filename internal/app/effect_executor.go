// Package app contains the application layer - service implementations and effect execution.
package app

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/gelo7212/express-ts-backend-generator/internal/core/effects"
	"github.com/gelo7212/express-ts-backend-generator/internal/ports/secondary"
)

// EffectExecutor interprets and executes effects.
// This is the "Imperative Shell" - the only place I/O happens.
type EffectExecutor interface {
	Execute(ctx context.Context, effs []effects.Effect) error
}

// DefaultEffectExecutor implements EffectExecutor with real I/O.
type DefaultEffectExecutor struct {
	files   secondary.FileRepository
	runRepo secondary.GenerationRunRepository // nil when history is disabled
	logger  *log.Logger
}

// NewEffectExecutor creates a new DefaultEffectExecutor.
func NewEffectExecutor(files secondary.FileRepository, runRepo secondary.GenerationRunRepository, logger *log.Logger) *DefaultEffectExecutor {
	if logger == nil {
		logger = log.Default()
	}
	return &DefaultEffectExecutor{files: files, runRepo: runRepo, logger: logger}
}

// Execute processes a slice of effects, executing each in sequence.
func (e *DefaultEffectExecutor) Execute(ctx context.Context, effs []effects.Effect) error {
	for _, eff := range effs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.executeOne(ctx, eff); err != nil {
			return fmt.Errorf("failed to execute %s effect: %w", eff.EffectType(), err)
		}
	}
	return nil
}

func (e *DefaultEffectExecutor) executeOne(ctx context.Context, eff effects.Effect) error {
	switch typed := eff.(type) {
	case effects.FileEffect:
		return e.executeFile(ctx, typed)
	case effects.PersistEffect:
		return e.executePersist(ctx, typed)
	case effects.CompositeEffect:
		return e.Execute(ctx, typed.Effects)
	case effects.NoEffect:
		return nil
	case effects.LogEffect:
		e.executeLog(typed)
		return nil
	default:
		return fmt.Errorf("unknown effect type: %T", eff)
	}
}

func (e *DefaultEffectExecutor) executeFile(ctx context.Context, eff effects.FileEffect) error {
	switch eff.Operation {
	case "mkdir":
		return e.files.MkdirAll(ctx, eff.Path, os.FileMode(eff.Mode))
	case "write":
		return e.files.WriteFile(ctx, eff.Path, eff.Content, os.FileMode(eff.Mode))
	default:
		return fmt.Errorf("unknown file operation: %s", eff.Operation)
	}
}

func (e *DefaultEffectExecutor) executePersist(ctx context.Context, eff effects.PersistEffect) error {
	switch eff.Entity {
	case "generation_run":
		return e.executeRunOp(ctx, eff)
	default:
		return fmt.Errorf("unknown entity: %s", eff.Entity)
	}
}

func (e *DefaultEffectExecutor) executeRunOp(ctx context.Context, eff effects.PersistEffect) error {
	if e.runRepo == nil {
		return nil
	}
	switch eff.Operation {
	case "create":
		record, ok := eff.Data.(*secondary.GenerationRunRecord)
		if !ok {
			return fmt.Errorf("invalid generation run data type: %T", eff.Data)
		}
		return e.runRepo.Create(ctx, record)
	default:
		return fmt.Errorf("unknown generation run operation: %s", eff.Operation)
	}
}

func (e *DefaultEffectExecutor) executeLog(eff effects.LogEffect) {
	var kv []any
	for k, v := range eff.Fields {
		kv = append(kv, k, v)
	}
	switch eff.Level {
	case "debug":
		e.logger.Debug(eff.Message, kv...)
	case "warn":
		e.logger.Warn(eff.Message, kv...)
	case "error":
		e.logger.Error(eff.Message, kv...)
	default:
		e.logger.Info(eff.Message, kv...)
	}
}
