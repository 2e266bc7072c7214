package cleanup

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/temirov/repoclean/internal/connectivity"
	"github.com/temirov/repoclean/internal/execshell"
)

const (
	gitMissingReasonConstant          = "git is not installed or not on PATH"
	notWorkTreeReasonConstant         = "not inside a git working tree"
	workTreeInspectionReasonConstant  = "unable to inspect the working directory"
	gitDirectoryReasonConstant        = "unable to locate the git metadata directory"
	cleanupLogReasonConstant          = "unable to open the cleanup log"
	probeClientMissingReasonConstant  = "unable to check network connectivity"
	networkUnreachableReasonConstant  = "no network connectivity"
	preconditionDependencyMissingText = "precondition checker dependencies not configured"
)

// ErrPreconditionDependencies indicates NewPreconditionChecker received a nil collaborator.
var ErrPreconditionDependencies = errors.New(preconditionDependencyMissingText)

// PreconditionDependencies groups the collaborators used by PreconditionChecker.
type PreconditionDependencies struct {
	ToolLocator execshell.ToolLocator
	Inspector   RepositoryInspector
	Prober      ConnectivityProber
	LogAttacher LogAttacher
}

// PreconditionChecker validates the environment before any prompt or mutation.
type PreconditionChecker struct {
	dependencies  PreconditionDependencies
	configuration CommandConfiguration
}

// NewPreconditionChecker constructs a PreconditionChecker. The prober may be nil
// when the configuration disables the network check.
func NewPreconditionChecker(dependencies PreconditionDependencies, configuration CommandConfiguration) (*PreconditionChecker, error) {
	if dependencies.ToolLocator == nil || dependencies.Inspector == nil || dependencies.LogAttacher == nil {
		return nil, ErrPreconditionDependencies
	}
	if configuration.CheckNetwork && dependencies.Prober == nil {
		return nil, ErrPreconditionDependencies
	}
	return &PreconditionChecker{dependencies: dependencies, configuration: configuration.Sanitize()}, nil
}

// Check verifies, in order, that git is installed, that workingDirectory is
// inside a working tree, and that the network is reachable. The journal file is
// attached as soon as the git metadata directory is known so later failures are
// persisted.
func (checker *PreconditionChecker) Check(executionContext context.Context, workingDirectory string) (Repository, error) {
	if !checker.dependencies.ToolLocator.Available(execshell.CommandGit) {
		return Repository{}, EnvironmentError{Reason: gitMissingReasonConstant}
	}

	isWorkTree, workTreeError := checker.dependencies.Inspector.IsWorkTree(executionContext, workingDirectory)
	if workTreeError != nil {
		return Repository{}, EnvironmentError{Reason: workTreeInspectionReasonConstant, Cause: workTreeError}
	}
	if !isWorkTree {
		return Repository{}, EnvironmentError{Reason: notWorkTreeReasonConstant}
	}

	gitDirectory, gitDirectoryError := checker.dependencies.Inspector.GitDirectory(executionContext, workingDirectory)
	if gitDirectoryError != nil {
		return Repository{}, EnvironmentError{Reason: gitDirectoryReasonConstant, Cause: gitDirectoryError}
	}

	repository := Repository{WorkingDirectory: workingDirectory, GitDirectory: gitDirectory}

	if attachError := checker.dependencies.LogAttacher.AttachFile(filepath.Join(gitDirectory, checker.configuration.LogFile)); attachError != nil {
		return repository, EnvironmentError{Reason: cleanupLogReasonConstant, Cause: attachError}
	}

	if !checker.configuration.CheckNetwork {
		return repository, nil
	}

	if probeError := checker.dependencies.Prober.Probe(executionContext, checker.configuration.ProbeURL); probeError != nil {
		if errors.Is(probeError, connectivity.ErrNoProbeClient) {
			return repository, EnvironmentError{Reason: probeClientMissingReasonConstant, Cause: probeError}
		}
		return repository, EnvironmentError{Reason: networkUnreachableReasonConstant, Cause: probeError}
	}

	return repository, nil
}
