package gitrepo

import "strings"

const (
	currentBranchMarkerConstant  = "*"
	worktreeBranchMarkerConstant = "+"
	detachedEntryPrefixConstant  = "("
)

// ParseBranchList converts `git branch` output into branch names. The current
// branch and worktree markers are stripped, detached HEAD placeholders such as
// "(HEAD detached at 1a2b3c)" are skipped, and duplicates are dropped while
// preserving the listing order.
func ParseBranchList(output string) []string {
	branchNames := make([]string, 0)
	seenBranches := make(map[string]struct{})

	for _, line := range strings.Split(output, lineSeparatorConstant) {
		branchName := strings.TrimSpace(line)
		branchName = strings.TrimPrefix(branchName, currentBranchMarkerConstant)
		branchName = strings.TrimPrefix(branchName, worktreeBranchMarkerConstant)
		branchName = strings.TrimSpace(branchName)

		if len(branchName) == 0 || strings.HasPrefix(branchName, detachedEntryPrefixConstant) {
			continue
		}
		if _, seen := seenBranches[branchName]; seen {
			continue
		}

		seenBranches[branchName] = struct{}{}
		branchNames = append(branchNames, branchName)
	}

	return branchNames
}
