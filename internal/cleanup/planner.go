package cleanup

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/temirov/repoclean/internal/prompt"
)

const (
	confirmationQuestionConstant     = "This will stash local changes, back up the branch list, force-delete the local branches you select, fetch all remotes, and pull the primary branch with rebase.\nProceed? [y/N]: "
	primaryConfirmationTemplate      = "Is '%s' your primary branch? [y/N]: "
	primaryQuestionConstant          = "Enter the name of the primary branch: "
	deletionQuestionTemplate         = "Delete local branch '%s'? [y/N]: "
	reapplyQuestionConstant          = "Reapply stashed changes after the cleanup? [y/N]: "
	returnQuestionTemplate           = "Switch back to '%s' after the cleanup? [y/N]: "
	plannerDependencyMissingText     = "planner dependencies not configured"
	currentBranchErrorTemplate       = "unable to determine the current branch: %w"
	branchListErrorTemplate          = "unable to list local branches: %w"
	promptErrorTemplate              = "unable to read answer: %w"
	primaryBranchSelectedTemplate    = "Primary branch: %s"
	branchesSelectedTemplate         = "Branches selected for deletion: %d"
	detachedHeadNoticeConstant       = "HEAD is detached; the primary branch must be entered explicitly"
	primaryBranchNotObservedTemplate = "Primary branch '%s' was not found among local branches; continuing with the name as given"
	primaryBranchSuggestionTemplate  = "%s (closest local branch: '%s')"
)

// ErrPlannerDependencies indicates NewPlanner received a nil collaborator.
var ErrPlannerDependencies = errors.New(plannerDependencyMissingText)

// JournalWriter records leveled progress lines.
type JournalWriter interface {
	Info(message string)
	Warning(message string)
	Error(message string)
	Success(message string)
}

// Planner runs the input phase and produces a Plan. It never mutates the repository.
type Planner struct {
	inspector     RepositoryInspector
	prompter      prompt.Prompter
	journal       JournalWriter
	configuration CommandConfiguration
}

// NewPlanner constructs a Planner.
func NewPlanner(inspector RepositoryInspector, prompter prompt.Prompter, journal JournalWriter, configuration CommandConfiguration) (*Planner, error) {
	if inspector == nil || prompter == nil || journal == nil {
		return nil, ErrPlannerDependencies
	}
	return &Planner{inspector: inspector, prompter: prompter, journal: journal, configuration: configuration.Sanitize()}, nil
}

// Plan asks for confirmation, resolves the primary branch, and collects the
// deletion, stash, and return decisions. A negative confirmation yields ErrUserDeclined.
func (planner *Planner) Plan(executionContext context.Context, repository Repository) (Plan, error) {
	confirmed, confirmError := planner.prompter.Confirm(confirmationQuestionConstant)
	if confirmError != nil {
		return Plan{}, fmt.Errorf(promptErrorTemplate, confirmError)
	}
	if !confirmed {
		return Plan{}, ErrUserDeclined
	}

	currentBranch, currentBranchError := planner.inspector.CurrentBranch(executionContext, repository.WorkingDirectory)
	if currentBranchError != nil {
		return Plan{}, fmt.Errorf(currentBranchErrorTemplate, currentBranchError)
	}

	observedBranches, branchListError := planner.inspector.LocalBranches(executionContext, repository.WorkingDirectory)
	if branchListError != nil {
		return Plan{}, fmt.Errorf(branchListErrorTemplate, branchListError)
	}

	primaryBranch, primaryError := planner.resolvePrimaryBranch(currentBranch, observedBranches)
	if primaryError != nil {
		return Plan{}, primaryError
	}
	planner.journal.Info(fmt.Sprintf(primaryBranchSelectedTemplate, primaryBranch))

	selectedBranches := make([]string, 0, len(observedBranches))
	for _, branchName := range uniqueBranchNames(observedBranches) {
		if branchName == primaryBranch {
			continue
		}
		deleteBranch, deleteError := planner.prompter.Confirm(fmt.Sprintf(deletionQuestionTemplate, branchName))
		if deleteError != nil {
			return Plan{}, fmt.Errorf(promptErrorTemplate, deleteError)
		}
		if deleteBranch {
			selectedBranches = append(selectedBranches, branchName)
		}
	}
	planner.journal.Info(fmt.Sprintf(branchesSelectedTemplate, len(selectedBranches)))

	reapplyStash, reapplyError := planner.prompter.Confirm(reapplyQuestionConstant)
	if reapplyError != nil {
		return Plan{}, fmt.Errorf(promptErrorTemplate, reapplyError)
	}

	returnToOriginal := false
	if currentBranch != primaryBranch && currentBranch != detachedHeadReferenceConstant && !containsBranch(selectedBranches, currentBranch) {
		returnAnswer, returnError := planner.prompter.Confirm(fmt.Sprintf(returnQuestionTemplate, currentBranch))
		if returnError != nil {
			return Plan{}, fmt.Errorf(promptErrorTemplate, returnError)
		}
		returnToOriginal = returnAnswer
	}

	return NewPlan(repository, PlanDecisions{
		OriginalBranch:   currentBranch,
		PrimaryBranch:    primaryBranch,
		ObservedBranches: observedBranches,
		SelectedBranches: selectedBranches,
		ReapplyStash:     reapplyStash,
		ReturnToOriginal: returnToOriginal,
	}), nil
}

func (planner *Planner) resolvePrimaryBranch(currentBranch string, observedBranches []string) (string, error) {
	if currentBranch == detachedHeadReferenceConstant {
		planner.journal.Warning(detachedHeadNoticeConstant)
	} else {
		isPrimary, confirmError := planner.prompter.Confirm(fmt.Sprintf(primaryConfirmationTemplate, currentBranch))
		if confirmError != nil {
			return "", fmt.Errorf(promptErrorTemplate, confirmError)
		}
		if isPrimary {
			return currentBranch, nil
		}
	}

	primaryAnswer, askError := planner.prompter.Ask(primaryQuestionConstant)
	if askError != nil {
		return "", fmt.Errorf(promptErrorTemplate, askError)
	}
	primaryBranch := strings.TrimSpace(primaryAnswer)
	if len(primaryBranch) == 0 {
		return "", ErrPrimaryBranchRequired
	}

	knownBranches := uniqueBranchNames(observedBranches)
	if !containsBranch(knownBranches, primaryBranch) {
		suggestion := closestBranch(primaryBranch, knownBranches)
		if planner.configuration.RequireKnownPrimary {
			return "", UnknownPrimaryBranchError{BranchName: primaryBranch, Suggestion: suggestion}
		}
		warning := fmt.Sprintf(primaryBranchNotObservedTemplate, primaryBranch)
		if len(suggestion) > 0 {
			warning = fmt.Sprintf(primaryBranchSuggestionTemplate, warning, suggestion)
		}
		planner.journal.Warning(warning)
	}

	return primaryBranch, nil
}

// closestBranch returns the best fuzzy match for branchName, or an empty string.
func closestBranch(branchName string, knownBranches []string) string {
	matches := fuzzy.Find(branchName, knownBranches)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}
