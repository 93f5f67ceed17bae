package usecase

import (
	"os"

	"go.uber.org/zap"

	"github.com/evaleds/evalup/internal/config"
	"github.com/evaleds/evalup/internal/domain"
	"github.com/evaleds/evalup/internal/ui"
)

// Executor applies an operation plan to the filesystem. In dry-run
// mode it describes every action and mutates nothing. Each artifact is
// handled independently: a failure on one is reported as a warning and
// processing continues with the rest.
type Executor struct {
	fs      domain.FileSystem
	printer *ui.Printer
	logger  *zap.Logger
}

// NewExecutor creates a plan executor.
func NewExecutor(fs domain.FileSystem, printer *ui.Printer, logger *zap.Logger) *Executor {
	return &Executor{fs: fs, printer: printer, logger: logger}
}

// Apply runs the plan and returns one result per artifact. It never
// returns a fatal error for a per-artifact failure.
func (e *Executor) Apply(plan domain.Plan) []domain.ExecutionResult {
	results := make([]domain.ExecutionResult, 0, len(plan.Artifacts))
	for _, artifact := range plan.Artifacts {
		var res domain.ExecutionResult
		switch plan.Action {
		case domain.ActionCreate:
			res = e.create(artifact, plan.DryRun)
		default:
			res = e.remove(artifact, plan.DryRun)
		}
		results = append(results, res)
	}
	return results
}

func (e *Executor) remove(artifact domain.Artifact, dryRun bool) domain.ExecutionResult {
	if dryRun {
		e.describeRemoval(artifact)
		return domain.ExecutionResult{Artifact: artifact, Outcome: domain.OutcomeApplied}
	}

	if !e.fs.Exists(artifact.Path) {
		// Legitimate on a re-run after a prior partial failure.
		e.printer.Muted("%s already absent", artifact.Path)
		return domain.ExecutionResult{Artifact: artifact, Outcome: domain.OutcomeNotFound}
	}

	var err error
	switch artifact.Kind {
	case domain.ArtifactBinary:
		err = e.fs.Remove(artifact.Path)
	case domain.ArtifactDatabaseFiles:
		err = e.removeFiles(artifact.Files)
	default:
		err = e.fs.RemoveAll(artifact.Path)
	}

	if err != nil {
		if os.IsPermission(err) {
			e.printer.Warning("cannot remove %s: permission denied", artifact.Path)
			e.logger.Warn("removal refused",
				zap.String("path", artifact.Path),
				zap.Error(err))
			return domain.ExecutionResult{Artifact: artifact, Outcome: domain.OutcomePermissionDenied, Err: err}
		}
		e.printer.Warning("failed to remove %s: %v", artifact.Path, err)
		e.logger.Warn("removal failed",
			zap.String("path", artifact.Path),
			zap.Error(err))
		return domain.ExecutionResult{Artifact: artifact, Outcome: domain.OutcomeFailed, Err: err}
	}

	e.printer.Success("removed %s", artifact.Path)
	e.logger.Info("removed artifact",
		zap.String("kind", string(artifact.Kind)),
		zap.String("path", artifact.Path))
	return domain.ExecutionResult{Artifact: artifact, Outcome: domain.OutcomeApplied}
}

// removeFiles deletes a database-file set one file at a time so a
// failure on one side-file does not abandon the rest.
func (e *Executor) removeFiles(files []string) error {
	var firstErr error
	for _, f := range files {
		if !e.fs.Exists(f) {
			continue
		}
		if err := e.fs.Remove(f); err != nil {
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (e *Executor) create(artifact domain.Artifact, dryRun bool) domain.ExecutionResult {
	target := config.PathIn(artifact.Path)

	if dryRun {
		e.printer.Info("[dry-run] would create %s with default settings", target)
		return domain.ExecutionResult{Artifact: artifact, Outcome: domain.OutcomeApplied}
	}

	payload, err := config.DefaultTOML()
	if err != nil {
		e.printer.Warning("failed to render default settings: %v", err)
		return domain.ExecutionResult{Artifact: artifact, Outcome: domain.OutcomeFailed, Err: err}
	}

	if err := e.fs.MkdirAll(artifact.Path); err != nil {
		if os.IsPermission(err) {
			e.printer.Warning("cannot create %s: permission denied", artifact.Path)
			return domain.ExecutionResult{Artifact: artifact, Outcome: domain.OutcomePermissionDenied, Err: err}
		}
		e.printer.Warning("failed to create %s: %v", artifact.Path, err)
		return domain.ExecutionResult{Artifact: artifact, Outcome: domain.OutcomeFailed, Err: err}
	}

	written, err := e.fs.WriteFileIfAbsent(target, payload, 0o644)
	if err != nil {
		if os.IsPermission(err) {
			e.printer.Warning("cannot write %s: permission denied", target)
			return domain.ExecutionResult{Artifact: artifact, Outcome: domain.OutcomePermissionDenied, Err: err}
		}
		e.printer.Warning("failed to write %s: %v", target, err)
		return domain.ExecutionResult{Artifact: artifact, Outcome: domain.OutcomeFailed, Err: err}
	}

	if written {
		e.printer.Success("created default settings at %s", target)
		e.logger.Info("wrote default settings", zap.String("path", target))
	} else {
		e.printer.Muted("keeping existing settings at %s", target)
	}
	return domain.ExecutionResult{Artifact: artifact, Outcome: domain.OutcomeApplied}
}

func (e *Executor) describeRemoval(artifact domain.Artifact) {
	switch artifact.Kind {
	case domain.ArtifactDatabaseFiles:
		e.printer.Info("[dry-run] would remove %d database file(s) under %s", len(artifact.Files), artifact.Path)
		for _, f := range artifact.Files {
			e.printer.Muted("%s", f)
		}
	case domain.ArtifactBinary:
		e.printer.Info("[dry-run] would remove binary %s", artifact.Path)
	default:
		e.printer.Info("[dry-run] would remove directory %s", artifact.Path)
	}
}
