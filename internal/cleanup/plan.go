package cleanup

import (
	"fmt"
	"strings"
	"time"
)

const (
	detachedHeadReferenceConstant = "HEAD"
	stashNameTemplateConstant     = "%s_%s"
	stashTimestampLayoutConstant  = "2006-01-02_15-04-05"
)

// Repository identifies the working tree being cleaned and its git metadata directory.
type Repository struct {
	WorkingDirectory string `yaml:"working_directory"`
	GitDirectory     string `yaml:"git_directory"`
}

// PlanDecisions carries the raw answers gathered from the operator.
type PlanDecisions struct {
	OriginalBranch   string
	PrimaryBranch    string
	ObservedBranches []string
	SelectedBranches []string
	ReapplyStash     bool
	ReturnToOriginal bool
}

// Plan is the fully resolved description of a cleanup run.
type Plan struct {
	Repository       Repository `yaml:"repository"`
	OriginalBranch   string     `yaml:"original_branch"`
	PrimaryBranch    string     `yaml:"primary_branch"`
	ObservedBranches []string   `yaml:"observed_branches"`
	BranchesToDelete []string   `yaml:"branches_to_delete"`
	ReapplyStash     bool       `yaml:"reapply_stash"`
	ReturnToOriginal bool       `yaml:"return_to_original_branch"`
}

// NewPlan normalizes the operator decisions. Branch lists are trimmed and
// deduplicated, the primary branch never appears among the branches to delete,
// and returning to the original branch is only kept when that branch survives
// the run and differs from the primary branch.
func NewPlan(repository Repository, decisions PlanDecisions) Plan {
	primaryBranch := strings.TrimSpace(decisions.PrimaryBranch)
	originalBranch := strings.TrimSpace(decisions.OriginalBranch)

	branchesToDelete := make([]string, 0, len(decisions.SelectedBranches))
	for _, branchName := range uniqueBranchNames(decisions.SelectedBranches) {
		if branchName == primaryBranch {
			continue
		}
		branchesToDelete = append(branchesToDelete, branchName)
	}

	returnToOriginal := decisions.ReturnToOriginal &&
		originalBranch != primaryBranch &&
		originalBranch != detachedHeadReferenceConstant &&
		len(originalBranch) > 0 &&
		!containsBranch(branchesToDelete, originalBranch)

	return Plan{
		Repository:       repository,
		OriginalBranch:   originalBranch,
		PrimaryBranch:    primaryBranch,
		ObservedBranches: uniqueBranchNames(decisions.ObservedBranches),
		BranchesToDelete: branchesToDelete,
		ReapplyStash:     decisions.ReapplyStash,
		ReturnToOriginal: returnToOriginal,
	}
}

// RequiresPrimaryCheckout reports whether the run must switch to the primary branch first.
func (plan Plan) RequiresPrimaryCheckout() bool {
	return plan.OriginalBranch != plan.PrimaryBranch
}

// StashRecord describes the stash entry created for a run.
type StashRecord struct {
	Name    string
	Created bool
}

// FormatStashName composes the stash message for the primary branch at the given moment.
func FormatStashName(primaryBranch string, moment time.Time) string {
	return fmt.Sprintf(stashNameTemplateConstant, primaryBranch, moment.Format(stashTimestampLayoutConstant))
}

func uniqueBranchNames(branchNames []string) []string {
	unique := make([]string, 0, len(branchNames))
	seen := make(map[string]struct{}, len(branchNames))
	for _, branchName := range branchNames {
		trimmed := strings.TrimSpace(branchName)
		if len(trimmed) == 0 {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		unique = append(unique, trimmed)
	}
	return unique
}

func containsBranch(branchNames []string, candidate string) bool {
	for _, branchName := range branchNames {
		if branchName == candidate {
			return true
		}
	}
	return false
}
