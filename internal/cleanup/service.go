package cleanup

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/temirov/repoclean/internal/gitrepo"
)

const (
	serviceDependencyMissingText      = "cleanup service dependencies not configured"
	stashCreatingTemplate             = "Uncommitted changes detected; stashing them as %s"
	stashCleanMessageConstant         = "Working tree is clean; no stash needed"
	backupWrittenTemplate             = "Backed up %d branch names to %s"
	checkoutPrimaryTemplate           = "Switching to primary branch %s"
	deletingBranchTemplate            = "Deleting local branch %s"
	deletedBranchTemplate             = "Deleted local branch %s"
	noBranchesSelectedMessage         = "No branches selected for deletion"
	fetchingMessageConstant           = "Fetching all remotes with tags and pruning"
	pullingTemplate                   = "Pulling %s with rebase"
	returningTemplate                 = "Switching back to %s"
	stashPoppingTemplate              = "Reapplying stash %s"
	stashPoppedTemplate               = "Reapplied stash %s"
	stashDroppingTemplate             = "Discarding stash %s"
	stashDroppedTemplate              = "Discarded stash %s"
	stashListEmptyTemplate            = "Stash list is empty; %s cannot be restored or discarded"
	stashMissingTemplate              = "Stash %s was not found; nothing to restore or discard"
	stashResolutionAfterFailureFormat = "Stash handling after a failed step also failed: %v"
	successMessageConstant            = "Repository cleanup completed"
	stashSubjectSeparatorConstant     = ": "
)

// ErrServiceDependencies indicates NewService received a nil collaborator.
var ErrServiceDependencies = errors.New(serviceDependencyMissingText)

// Result summarizes what an execution phase run changed.
type Result struct {
	Stash           StashRecord
	BackupFilePath  string
	DeletedBranches []string
}

// Dependencies groups the collaborators used by Service.
type Dependencies struct {
	Repository RepositoryMutator
	Journal    JournalWriter
	Clock      Clock
}

// Service executes a Plan. It reads nothing from the operator.
type Service struct {
	repository    RepositoryMutator
	journal       JournalWriter
	clock         Clock
	configuration CommandConfiguration
}

// NewService constructs a Service.
func NewService(dependencies Dependencies, configuration CommandConfiguration) (*Service, error) {
	if dependencies.Repository == nil || dependencies.Journal == nil {
		return nil, ErrServiceDependencies
	}
	clock := dependencies.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	return &Service{
		repository:    dependencies.Repository,
		journal:       dependencies.Journal,
		clock:         clock,
		configuration: configuration.Sanitize(),
	}, nil
}

// Execute stashes uncommitted work when present, backs up the branch list,
// switches to the primary branch, deletes the selected branches, fetches, pulls
// with rebase, optionally returns to the original branch, and finally pops or
// drops the stash. The first failing step stops the run; a stash created by the
// run is still resolved before the failure is returned. Completed steps are not
// undone.
func (service *Service) Execute(executionContext context.Context, plan Plan) (Result, error) {
	result := Result{DeletedBranches: make([]string, 0, len(plan.BranchesToDelete))}
	workingDirectory := plan.Repository.WorkingDirectory

	clean, statusError := service.repository.CheckCleanWorktree(executionContext, workingDirectory)
	if statusError != nil {
		return result, OperationFailure{Step: StepStatusCheck, Cause: statusError}
	}

	if clean {
		service.journal.Info(stashCleanMessageConstant)
	} else {
		stashName := FormatStashName(plan.PrimaryBranch, service.clock.Now())
		service.journal.Info(fmt.Sprintf(stashCreatingTemplate, stashName))
		if stashError := service.repository.StashPush(executionContext, workingDirectory, stashName); stashError != nil {
			return result, OperationFailure{Step: StepStashPush, Target: stashName, Cause: stashError}
		}
		result.Stash = StashRecord{Name: stashName, Created: true}
	}

	stepsError := service.runSteps(executionContext, plan, &result)

	if result.Stash.Created {
		resolutionError := service.resolveStash(executionContext, plan, result.Stash)
		switch {
		case stepsError == nil:
			stepsError = resolutionError
		case resolutionError != nil:
			service.journal.Error(fmt.Sprintf(stashResolutionAfterFailureFormat, resolutionError))
		}
	}

	if stepsError != nil {
		return result, stepsError
	}

	service.journal.Success(successMessageConstant)
	return result, nil
}

func (service *Service) runSteps(executionContext context.Context, plan Plan, result *Result) error {
	workingDirectory := plan.Repository.WorkingDirectory

	backupFilePath := filepath.Join(plan.Repository.GitDirectory, service.configuration.BackupFile)
	if backupError := WriteBranchBackup(backupFilePath, plan.ObservedBranches); backupError != nil {
		return OperationFailure{Step: StepBranchBackup, Target: backupFilePath, Cause: backupError}
	}
	result.BackupFilePath = backupFilePath
	service.journal.Info(fmt.Sprintf(backupWrittenTemplate, len(plan.ObservedBranches), backupFilePath))

	if plan.RequiresPrimaryCheckout() {
		service.journal.Info(fmt.Sprintf(checkoutPrimaryTemplate, plan.PrimaryBranch))
		if checkoutError := service.repository.Checkout(executionContext, workingDirectory, plan.PrimaryBranch); checkoutError != nil {
			return OperationFailure{Step: StepCheckout, Target: plan.PrimaryBranch, Cause: checkoutError}
		}
	}

	if len(plan.BranchesToDelete) == 0 {
		service.journal.Info(noBranchesSelectedMessage)
	}
	for _, branchName := range plan.BranchesToDelete {
		service.journal.Info(fmt.Sprintf(deletingBranchTemplate, branchName))
		if deletionError := service.repository.ForceDeleteBranch(executionContext, workingDirectory, branchName); deletionError != nil {
			return OperationFailure{Step: StepBranchDeletion, Target: branchName, Cause: deletionError}
		}
		result.DeletedBranches = append(result.DeletedBranches, branchName)
		service.journal.Info(fmt.Sprintf(deletedBranchTemplate, branchName))
	}

	service.journal.Info(fetchingMessageConstant)
	if fetchError := service.repository.FetchAll(executionContext, workingDirectory); fetchError != nil {
		return OperationFailure{Step: StepFetch, Cause: fetchError}
	}

	service.journal.Info(fmt.Sprintf(pullingTemplate, plan.PrimaryBranch))
	if pullError := service.repository.PullRebase(executionContext, workingDirectory); pullError != nil {
		return OperationFailure{Step: StepPull, Target: plan.PrimaryBranch, Cause: pullError}
	}

	if plan.ReturnToOriginal {
		service.journal.Info(fmt.Sprintf(returningTemplate, plan.OriginalBranch))
		if returnError := service.repository.Checkout(executionContext, workingDirectory, plan.OriginalBranch); returnError != nil {
			return OperationFailure{Step: StepReturnCheckout, Target: plan.OriginalBranch, Cause: returnError}
		}
	}

	return nil
}

// resolveStash pops or drops the stash created by this run. A stash that can no
// longer be found is reported as a warning, not a failure.
func (service *Service) resolveStash(executionContext context.Context, plan Plan, stash StashRecord) error {
	workingDirectory := plan.Repository.WorkingDirectory

	entries, listError := service.repository.StashEntries(executionContext, workingDirectory)
	if listError != nil {
		return OperationFailure{Step: StepStashLookup, Target: stash.Name, Cause: listError}
	}
	if len(entries) == 0 {
		service.journal.Warning(fmt.Sprintf(stashListEmptyTemplate, stash.Name))
		return nil
	}

	stashReference, found := findStashReference(entries, stash.Name)
	if !found {
		service.journal.Warning(fmt.Sprintf(stashMissingTemplate, stash.Name))
		return nil
	}

	if plan.ReapplyStash {
		service.journal.Info(fmt.Sprintf(stashPoppingTemplate, stash.Name))
		if popError := service.repository.StashPop(executionContext, workingDirectory, stashReference); popError != nil {
			return OperationFailure{Step: StepStashPop, Target: stash.Name, Cause: popError}
		}
		service.journal.Info(fmt.Sprintf(stashPoppedTemplate, stash.Name))
		return nil
	}

	service.journal.Info(fmt.Sprintf(stashDroppingTemplate, stash.Name))
	if dropError := service.repository.StashDrop(executionContext, workingDirectory, stashReference); dropError != nil {
		return OperationFailure{Step: StepStashDrop, Target: stash.Name, Cause: dropError}
	}
	service.journal.Info(fmt.Sprintf(stashDroppedTemplate, stash.Name))
	return nil
}

// findStashReference matches subjects such as "On main: main_2026-10-16_09-30-00".
func findStashReference(entries []gitrepo.StashEntry, stashName string) (string, bool) {
	for _, entry := range entries {
		if entry.Subject == stashName || strings.HasSuffix(entry.Subject, stashSubjectSeparatorConstant+stashName) {
			return entry.Reference, true
		}
	}
	return "", false
}
