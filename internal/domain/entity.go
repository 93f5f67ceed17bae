// Package domain contains core entities and interfaces.
// This is the innermost layer in Clean Architecture - no external dependencies.
package domain

// AppName is the executable name of the managed application.
const AppName = "evaleds"

// PathKind classifies a candidate location by what it may contain.
type PathKind string

const (
	KindBinaryDir PathKind = "binary-dir"
	KindConfigDir PathKind = "config-dir"
	KindDataDir   PathKind = "data-dir"
)

// CandidatePath is a statically known location the locator is allowed
// to probe. Order in the platform list determines display order only;
// every candidate is always checked.
type CandidatePath struct {
	Kind   PathKind
	Path   string
	Source string // short label for display, e.g. "user bin", "XDG config"
}

// ArtifactKind classifies a discovered artifact.
type ArtifactKind string

const (
	ArtifactBinary        ArtifactKind = "binary"
	ArtifactConfigDir     ArtifactKind = "config-dir"
	ArtifactDataDir       ArtifactKind = "data-dir"
	ArtifactDatabaseFiles ArtifactKind = "database-files"
)

// Artifact is a concrete thing found on disk.
// For ArtifactDatabaseFiles, Path is the directory holding the files
// and Files lists the matched database files inside it.
type Artifact struct {
	Kind   ArtifactKind
	Path   string
	Files  []string
	Origin CandidatePath
}

// Inventory is the deduplicated result of one discovery pass.
// It is a pure function of current filesystem + PATH state: calling
// discovery twice without intervening mutation yields identical results.
type Inventory struct {
	Binaries   []Artifact
	ConfigDirs []Artifact
	DataDirs   []Artifact
}

// Empty reports whether nothing at all was found.
func (inv Inventory) Empty() bool {
	return len(inv.Binaries) == 0 && len(inv.ConfigDirs) == 0 && len(inv.DataDirs) == 0
}

// Total returns the artifact count across all categories.
func (inv Inventory) Total() int {
	return len(inv.Binaries) + len(inv.ConfigDirs) + len(inv.DataDirs)
}

// Category identifies one independently confirmed artifact class.
type Category string

const (
	CategoryBinaries Category = "binaries"
	CategoryConfig   Category = "configuration"
	CategoryData     Category = "data"
	CategoryPath     Category = "path entries"
)

// Action is what the executor does to each artifact in a plan.
type Action string

const (
	ActionRemove Action = "remove"
	ActionCreate Action = "create"
)

// Plan is the unit of work handed to the executor: one category's
// artifacts, the action to apply, and whether this is a simulation.
type Plan struct {
	Category  Category
	Action    Action
	Artifacts []Artifact
	DryRun    bool
}

// Outcome is the per-artifact result of applying a plan.
type Outcome string

const (
	OutcomeApplied          Outcome = "applied"
	OutcomeSkippedByUser    Outcome = "skipped-by-user"
	OutcomePermissionDenied Outcome = "skipped-permission-denied"
	OutcomeNotFound         Outcome = "not-found"
	OutcomeFailed           Outcome = "failed"
)

// ExecutionResult records what happened to a single artifact.
type ExecutionResult struct {
	Artifact Artifact
	Outcome  Outcome
	Err      error
}

// RunReport aggregates everything a flow did, for the final summary.
type RunReport struct {
	Results        []ExecutionResult
	Preserved      []string // paths kept because the user declined a category
	ProcessWarning bool     // a matching process may still be running
	Cancelled      bool     // user answered no at the top-level gate
	NotInstalled   bool     // discovery found nothing at all
}

// Count returns how many results carry the given outcome.
func (r RunReport) Count(o Outcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == o {
			n++
		}
	}
	return n
}

// Options is the immutable run configuration, constructed once from
// parsed arguments and environment, then passed by value everywhere.
// No component reads ambient global state.
type Options struct {
	Force           bool
	DryRun          bool
	RemoveConfig    bool
	RemoveData      bool
	BuildFromSource bool
	InstallDir      string
	ConfigDir       string
}
