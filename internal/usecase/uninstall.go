package usecase

import (
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/evaleds/evalup/internal/domain"
	"github.com/evaleds/evalup/internal/ui"
)

// Uninstaller sequences the uninstall flow:
// check processes, discover, summarize, confirm, then process the
// binaries, configuration, data, and path-entry categories in order.
type Uninstaller struct {
	opts     domain.Options
	locator  *Locator
	gate     *Gate
	executor *Executor
	procs    domain.ProcessManager
	pathEnv  domain.PathEnv
	printer  *ui.Printer
	logger   *zap.Logger
}

// NewUninstaller wires the uninstall flow from its collaborators.
func NewUninstaller(
	opts domain.Options,
	locator *Locator,
	gate *Gate,
	executor *Executor,
	procs domain.ProcessManager,
	pathEnv domain.PathEnv,
	printer *ui.Printer,
	logger *zap.Logger,
) *Uninstaller {
	return &Uninstaller{
		opts:     opts,
		locator:  locator,
		gate:     gate,
		executor: executor,
		procs:    procs,
		pathEnv:  pathEnv,
		printer:  printer,
		logger:   logger,
	}
}

// Run executes the flow. The returned report always corresponds to a
// zero exit: cancellation and a clean system are normal outcomes, not
// errors.
func (u *Uninstaller) Run() domain.RunReport {
	var report domain.RunReport

	report.ProcessWarning = u.checkProcesses()

	inventory := u.locator.Discover()
	if inventory.Empty() {
		u.printer.Success("%s is not installed - nothing to do", domain.AppName)
		report.NotInstalled = true
		return report
	}

	u.summarize(inventory)

	// Dry runs never need permission, since nothing is mutated.
	if !u.opts.DryRun {
		if !u.gate.Confirm("Proceed with uninstall?", true) {
			u.printer.Info("uninstall cancelled - nothing was removed")
			report.Cancelled = true
			return report
		}
	}

	u.processCategory(&report, domain.CategoryBinaries, inventory.Binaries,
		"Remove the evaleds binary?", true, false)
	u.processCategory(&report, domain.CategoryConfig, inventory.ConfigDirs,
		"Remove configuration directories?", false, u.opts.RemoveConfig)
	u.processCategory(&report, domain.CategoryData, inventory.DataDirs,
		"Remove data (evaluation databases)?", false, u.opts.RemoveData)
	u.processPathEntries(&report, inventory.Binaries)

	u.reportSummary(report)
	return report
}

// checkProcesses warns about running evaleds processes and, confirmed,
// terminates them. Failures are warnings; the uninstall proceeds.
func (u *Uninstaller) checkProcesses() bool {
	pids, err := u.procs.FindByName(domain.AppName)
	if err != nil {
		u.logger.Warn("process scan failed", zap.Error(err))
		return false
	}
	if len(pids) == 0 {
		return false
	}

	u.printer.Warning("%s appears to be running (%d process(es))", domain.AppName, len(pids))

	if u.opts.DryRun {
		for _, pid := range pids {
			u.printer.Info("[dry-run] would terminate process %d", pid)
		}
		return false
	}

	if !u.gate.Confirm("Terminate running processes?", true) {
		u.printer.Muted("leaving processes running")
		return true
	}

	stillRunning := false
	for _, pid := range pids {
		if err := u.procs.Terminate(pid); err != nil {
			u.printer.Warning("could not terminate process %d: %v", pid, err)
			u.logger.Warn("terminate failed", zap.Int("pid", pid), zap.Error(err))
			stillRunning = true
		} else {
			u.printer.Success("terminated process %d", pid)
			u.logger.Info("terminated process", zap.Int("pid", pid))
		}
	}
	return stillRunning
}

func (u *Uninstaller) summarize(inv domain.Inventory) {
	u.printer.Header("Found the following evaleds artifacts:")
	for _, a := range inv.Binaries {
		u.printer.Plain("  binary     %s (%s)", a.Path, a.Origin.Source)
	}
	for _, a := range inv.ConfigDirs {
		u.printer.Plain("  config     %s (%s)", a.Path, a.Origin.Source)
	}
	for _, a := range inv.DataDirs {
		if a.Kind == domain.ArtifactDatabaseFiles {
			u.printer.Plain("  data       %d database file(s) in %s", len(a.Files), a.Path)
		} else {
			u.printer.Plain("  data       %s (%s)", a.Path, a.Origin.Source)
		}
	}
}

// processCategory runs one category's gate and plan. preAnswered skips
// the gate (category flag given on the command line); a "no" skips
// only this category and notes where the artifacts remain.
func (u *Uninstaller) processCategory(
	report *domain.RunReport,
	category domain.Category,
	artifacts []domain.Artifact,
	question string,
	defaultYes bool,
	preAnswered bool,
) {
	if len(artifacts) == 0 {
		return
	}

	// Dry runs never need permission, since nothing is mutated.
	if !preAnswered && !u.opts.DryRun {
		if !u.gate.Confirm(question, defaultYes) {
			for _, a := range artifacts {
				u.printer.Muted("preserved: %s", a.Path)
				report.Preserved = append(report.Preserved, a.Path)
				report.Results = append(report.Results, domain.ExecutionResult{
					Artifact: a,
					Outcome:  domain.OutcomeSkippedByUser,
				})
			}
			return
		}
	}

	plan := domain.Plan{
		Category:  category,
		Action:    domain.ActionRemove,
		Artifacts: artifacts,
		DryRun:    u.opts.DryRun,
	}
	report.Results = append(report.Results, u.executor.Apply(plan)...)
}

// processPathEntries detects shell startup files mentioning the
// install location or the application name. Every candidate binary
// directory is scanned, not just the ones holding a binary now: a
// startup file can still reference an install that was already
// removed. Startup files are never rewritten: the only live action is
// a request for manual review.
func (u *Uninstaller) processPathEntries(report *domain.RunReport, binaries []domain.Artifact) {
	dirSet := make(map[string]bool)
	for _, d := range u.locator.BinaryDirs() {
		dirSet[d] = true
	}
	for _, b := range binaries {
		dirSet[filepath.Dir(b.Path)] = true
	}
	dirs := make([]string, 0, len(dirSet))
	for d := range dirSet {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)

	var mentions []string
	seen := make(map[string]bool)
	for _, dir := range dirs {
		found, err := u.pathEnv.StartupFileMentions(dir)
		if err != nil {
			u.logger.Warn("startup file scan failed", zap.String("dir", dir), zap.Error(err))
			continue
		}
		for _, f := range found {
			if !seen[f] {
				seen[f] = true
				mentions = append(mentions, f)
			}
		}
	}

	if len(mentions) == 0 {
		return
	}

	u.printer.Info("shell startup files mention %s:", domain.AppName)
	for _, f := range mentions {
		u.printer.Muted("%s", f)
	}

	if u.opts.DryRun {
		u.printer.Info("[dry-run] would ask to review these files")
		return
	}

	if !u.gate.Confirm("Review PATH entries now?", false) {
		report.Preserved = append(report.Preserved, mentions...)
		return
	}

	// Startup-file syntax varies too much to edit safely.
	u.printer.Plain("Please review these files and remove any lines referencing %s:", domain.AppName)
	for _, f := range mentions {
		u.printer.Plain("  %s", f)
	}
}

func (u *Uninstaller) reportSummary(report domain.RunReport) {
	if u.opts.DryRun {
		u.printer.Success("dry run complete - nothing was changed (%d action(s) simulated)",
			report.Count(domain.OutcomeApplied))
		return
	}

	u.printer.Success("uninstall complete: %d removed, %d preserved, %d denied",
		report.Count(domain.OutcomeApplied),
		report.Count(domain.OutcomeSkippedByUser),
		report.Count(domain.OutcomePermissionDenied))

	if report.ProcessWarning {
		u.printer.Warning("an %s process may still be running", domain.AppName)
	}
	if n := report.Count(domain.OutcomePermissionDenied); n > 0 {
		u.printer.Warning("%d artifact(s) could not be removed; re-run with elevated permissions", n)
	}
}
