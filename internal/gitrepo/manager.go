package gitrepo

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/temirov/repoclean/internal/execshell"
)

const (
	gitExecutorMissingMessageConstant = "git executor not configured"
	gitRevParseSubcommandConstant     = "rev-parse"
	gitWorkTreeFlagConstant           = "--is-inside-work-tree"
	gitDirectoryFlagConstant          = "--git-dir"
	gitAbbrevRefFlagConstant          = "--abbrev-ref"
	gitHeadReferenceConstant          = "HEAD"
	gitStatusSubcommandConstant       = "status"
	gitPorcelainFlagConstant          = "--porcelain"
	gitBranchSubcommandConstant       = "branch"
	gitNoColorFlagConstant            = "--no-color"
	gitForceDeleteFlagConstant        = "-D"
	gitCheckoutSubcommandConstant     = "checkout"
	gitStashSubcommandConstant        = "stash"
	gitStashPushSubcommandConstant    = "push"
	gitStashListSubcommandConstant    = "list"
	gitStashPopSubcommandConstant     = "pop"
	gitStashDropSubcommandConstant    = "drop"
	gitIncludeUntrackedFlagConstant   = "--include-untracked"
	gitMessageFlagConstant            = "--message"
	gitStashListFormatConstant        = "--format=%gd%x09%s"
	gitFetchSubcommandConstant        = "fetch"
	gitAllFlagConstant                = "--all"
	gitTagsFlagConstant               = "--tags"
	gitPruneFlagConstant              = "--prune"
	gitPullSubcommandConstant         = "pull"
	gitRebaseFlagConstant             = "--rebase"
	gitTrueOutputConstant             = "true"
	stashListFieldSeparatorConstant   = "\t"
	lineSeparatorConstant             = "\n"
)

// ErrGitExecutorNotConfigured indicates the git executor dependency was missing.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// GitExecutor exposes the subset of shell execution used by the repository manager.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// StashEntry describes one line of `git stash list`.
type StashEntry struct {
	Reference string
	Subject   string
}

// RepositoryManager issues git commands against a repository path.
type RepositoryManager struct {
	executor GitExecutor
}

// NewRepositoryManager constructs a RepositoryManager backed by the provided executor.
func NewRepositoryManager(executor GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// IsWorkTree reports whether repositoryPath lies inside a git working tree.
// A non-zero exit from git means "no"; only failures to run git are errors.
func (manager *RepositoryManager) IsWorkTree(executionContext context.Context, repositoryPath string) (bool, error) {
	executionResult, executionError := manager.run(executionContext, repositoryPath, gitRevParseSubcommandConstant, gitWorkTreeFlagConstant)
	if executionError != nil {
		var failedError execshell.CommandFailedError
		if errors.As(executionError, &failedError) {
			return false, nil
		}
		return false, executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput) == gitTrueOutputConstant, nil
}

// GitDirectory returns the absolute path of the repository metadata directory.
func (manager *RepositoryManager) GitDirectory(executionContext context.Context, repositoryPath string) (string, error) {
	executionResult, executionError := manager.run(executionContext, repositoryPath, gitRevParseSubcommandConstant, gitDirectoryFlagConstant)
	if executionError != nil {
		return "", executionError
	}

	gitDirectory := strings.TrimSpace(executionResult.StandardOutput)
	if filepath.IsAbs(gitDirectory) {
		return filepath.Clean(gitDirectory), nil
	}
	return filepath.Join(repositoryPath, gitDirectory), nil
}

// CurrentBranch returns the checked-out branch name, or HEAD when detached.
func (manager *RepositoryManager) CurrentBranch(executionContext context.Context, repositoryPath string) (string, error) {
	executionResult, executionError := manager.run(executionContext, repositoryPath, gitRevParseSubcommandConstant, gitAbbrevRefFlagConstant, gitHeadReferenceConstant)
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// LocalBranches enumerates local branch names in git's listing order.
func (manager *RepositoryManager) LocalBranches(executionContext context.Context, repositoryPath string) ([]string, error) {
	executionResult, executionError := manager.run(executionContext, repositoryPath, gitBranchSubcommandConstant, gitNoColorFlagConstant)
	if executionError != nil {
		return nil, executionError
	}
	return ParseBranchList(executionResult.StandardOutput), nil
}

// CheckCleanWorktree reports whether the working tree has no staged, unstaged, or untracked changes.
func (manager *RepositoryManager) CheckCleanWorktree(executionContext context.Context, repositoryPath string) (bool, error) {
	executionResult, executionError := manager.run(executionContext, repositoryPath, gitStatusSubcommandConstant, gitPorcelainFlagConstant)
	if executionError != nil {
		return false, executionError
	}
	return len(strings.TrimSpace(executionResult.StandardOutput)) == 0, nil
}

// StashPush stashes tracked and untracked changes under the provided message.
func (manager *RepositoryManager) StashPush(executionContext context.Context, repositoryPath string, stashMessage string) error {
	_, executionError := manager.run(executionContext, repositoryPath, gitStashSubcommandConstant, gitStashPushSubcommandConstant, gitIncludeUntrackedFlagConstant, gitMessageFlagConstant, stashMessage)
	return executionError
}

// StashEntries lists stash entries, newest first.
func (manager *RepositoryManager) StashEntries(executionContext context.Context, repositoryPath string) ([]StashEntry, error) {
	executionResult, executionError := manager.run(executionContext, repositoryPath, gitStashSubcommandConstant, gitStashListSubcommandConstant, gitStashListFormatConstant)
	if executionError != nil {
		return nil, executionError
	}
	return parseStashList(executionResult.StandardOutput), nil
}

// StashPop applies and removes the referenced stash entry.
func (manager *RepositoryManager) StashPop(executionContext context.Context, repositoryPath string, stashReference string) error {
	_, executionError := manager.run(executionContext, repositoryPath, gitStashSubcommandConstant, gitStashPopSubcommandConstant, stashReference)
	return executionError
}

// StashDrop discards the referenced stash entry.
func (manager *RepositoryManager) StashDrop(executionContext context.Context, repositoryPath string, stashReference string) error {
	_, executionError := manager.run(executionContext, repositoryPath, gitStashSubcommandConstant, gitStashDropSubcommandConstant, stashReference)
	return executionError
}

// Checkout switches the working tree to branchName.
func (manager *RepositoryManager) Checkout(executionContext context.Context, repositoryPath string, branchName string) error {
	_, executionError := manager.run(executionContext, repositoryPath, gitCheckoutSubcommandConstant, branchName)
	return executionError
}

// ForceDeleteBranch removes branchName regardless of its merge status.
func (manager *RepositoryManager) ForceDeleteBranch(executionContext context.Context, repositoryPath string, branchName string) error {
	_, executionError := manager.run(executionContext, repositoryPath, gitBranchSubcommandConstant, gitForceDeleteFlagConstant, branchName)
	return executionError
}

// FetchAll fetches every remote including tags and prunes deleted remote references.
func (manager *RepositoryManager) FetchAll(executionContext context.Context, repositoryPath string) error {
	_, executionError := manager.run(executionContext, repositoryPath, gitFetchSubcommandConstant, gitAllFlagConstant, gitTagsFlagConstant, gitPruneFlagConstant)
	return executionError
}

// PullRebase pulls the checked-out branch with rebase, pruning and fetching tags.
func (manager *RepositoryManager) PullRebase(executionContext context.Context, repositoryPath string) error {
	_, executionError := manager.run(executionContext, repositoryPath, gitPullSubcommandConstant, gitRebaseFlagConstant, gitPruneFlagConstant, gitTagsFlagConstant)
	return executionError
}

func (manager *RepositoryManager) run(executionContext context.Context, repositoryPath string, arguments ...string) (execshell.ExecutionResult, error) {
	return manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: repositoryPath,
	})
}

func parseStashList(output string) []StashEntry {
	entries := make([]StashEntry, 0)
	for _, line := range strings.Split(output, lineSeparatorConstant) {
		trimmedLine := strings.TrimSpace(line)
		if len(trimmedLine) == 0 {
			continue
		}
		reference, subject, _ := strings.Cut(trimmedLine, stashListFieldSeparatorConstant)
		entries = append(entries, StashEntry{Reference: strings.TrimSpace(reference), Subject: strings.TrimSpace(subject)})
	}
	return entries
}
