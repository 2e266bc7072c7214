package cleanup

import (
	"context"
	"time"

	"github.com/temirov/repoclean/internal/execshell"
	"github.com/temirov/repoclean/internal/gitrepo"
)

// CommandExecutor runs the external tools the cleanup relies on.
type CommandExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
	ExecuteCurl(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
	ExecuteWget(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryInspector exposes the read-only repository queries.
type RepositoryInspector interface {
	IsWorkTree(executionContext context.Context, repositoryPath string) (bool, error)
	GitDirectory(executionContext context.Context, repositoryPath string) (string, error)
	CurrentBranch(executionContext context.Context, repositoryPath string) (string, error)
	LocalBranches(executionContext context.Context, repositoryPath string) ([]string, error)
}

// RepositoryMutator exposes the git operations issued by the execution phase.
type RepositoryMutator interface {
	CheckCleanWorktree(executionContext context.Context, repositoryPath string) (bool, error)
	StashPush(executionContext context.Context, repositoryPath string, stashMessage string) error
	StashEntries(executionContext context.Context, repositoryPath string) ([]gitrepo.StashEntry, error)
	StashPop(executionContext context.Context, repositoryPath string, stashReference string) error
	StashDrop(executionContext context.Context, repositoryPath string, stashReference string) error
	Checkout(executionContext context.Context, repositoryPath string, branchName string) error
	ForceDeleteBranch(executionContext context.Context, repositoryPath string, branchName string) error
	FetchAll(executionContext context.Context, repositoryPath string) error
	PullRebase(executionContext context.Context, repositoryPath string) error
}

// ConnectivityProber verifies that a remote endpoint is reachable.
type ConnectivityProber interface {
	Probe(executionContext context.Context, targetURL string) error
}

// LogAttacher starts mirroring journal lines into a file.
type LogAttacher interface {
	AttachFile(logFilePath string) error
}

// Clock abstracts time-dependent functionality for deterministic testing.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the standard library.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
