package cleanup_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/temirov/repoclean/internal/cleanup"
	"github.com/temirov/repoclean/internal/gitrepo"
)

const (
	operationStatusConstant        = "status"
	operationStashPushConstant     = "stash push"
	operationStashListConstant     = "stash list"
	operationStashPopConstant      = "stash pop"
	operationStashDropConstant     = "stash drop"
	operationCheckoutConstant      = "checkout"
	operationDeleteConstant        = "branch -D"
	operationFetchConstant         = "fetch"
	operationPullConstant          = "pull"
	operationCurrentBranch         = "current branch"
	operationLocalBranches         = "local branches"
	operationWorkTree              = "work tree"
	operationGitDirectory          = "git dir"
	testPrimaryBranchConstant      = "main"
	testFeatureABranchConstant     = "feature-a"
	testFeatureBBranchConstant     = "feature-b"
	testWorkingDirectoryConstant   = "/work/project"
	testStashReferenceConstant     = "stash@{0}"
	testStashNamePatternConstant   = `^main_\d{4}-\d{2}-\d{2}_\d{2}-\d{2}-\d{2}$`
	testJournalLinePatternConstant = `^\[(INFO|WARNING|ERROR|SUCCESS)\] \d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} .+$`
)

var (
	errScriptedFailure = errors.New("scripted failure")
	testFixedMoment    = time.Date(2026, time.October, 16, 9, 30, 0, 0, time.UTC)
)

type fixedClock struct {
	moment time.Time
}

func (clock fixedClock) Now() time.Time {
	return clock.moment
}

// fakeRepository records every git operation as a short label.
type fakeRepository struct {
	operations       []string
	failures         map[string]error
	clean            bool
	stashes          []gitrepo.StashEntry
	currentBranch    string
	localBranches    []string
	isWorkTree       bool
	gitDirectory     string
	pushedStashNames []string
	forgetStashes    bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		failures:      map[string]error{},
		clean:         true,
		currentBranch: testPrimaryBranchConstant,
		localBranches: []string{testPrimaryBranchConstant, testFeatureABranchConstant, testFeatureBBranchConstant},
		isWorkTree:    true,
	}
}

func (repository *fakeRepository) record(operation string, target string) error {
	label := operation
	if len(target) > 0 {
		label = operation + " " + target
	}
	repository.operations = append(repository.operations, label)
	if failure, exists := repository.failures[label]; exists {
		return failure
	}
	return repository.failures[operation]
}

func (repository *fakeRepository) IsWorkTree(context.Context, string) (bool, error) {
	return repository.isWorkTree, repository.record(operationWorkTree, "")
}

func (repository *fakeRepository) GitDirectory(context.Context, string) (string, error) {
	return repository.gitDirectory, repository.record(operationGitDirectory, "")
}

func (repository *fakeRepository) CurrentBranch(context.Context, string) (string, error) {
	return repository.currentBranch, repository.record(operationCurrentBranch, "")
}

func (repository *fakeRepository) LocalBranches(context.Context, string) ([]string, error) {
	return append([]string{}, repository.localBranches...), repository.record(operationLocalBranches, "")
}

func (repository *fakeRepository) CheckCleanWorktree(context.Context, string) (bool, error) {
	return repository.clean, repository.record(operationStatusConstant, "")
}

func (repository *fakeRepository) StashPush(_ context.Context, _ string, stashMessage string) error {
	if recordError := repository.record(operationStashPushConstant, stashMessage); recordError != nil {
		return recordError
	}
	repository.pushedStashNames = append(repository.pushedStashNames, stashMessage)
	if repository.forgetStashes {
		return nil
	}
	repository.stashes = append([]gitrepo.StashEntry{{Reference: testStashReferenceConstant, Subject: fmt.Sprintf("On %s: %s", repository.currentBranch, stashMessage)}}, repository.stashes...)
	return nil
}

func (repository *fakeRepository) StashEntries(context.Context, string) ([]gitrepo.StashEntry, error) {
	return append([]gitrepo.StashEntry{}, repository.stashes...), repository.record(operationStashListConstant, "")
}

func (repository *fakeRepository) StashPop(_ context.Context, _ string, stashReference string) error {
	return repository.record(operationStashPopConstant, stashReference)
}

func (repository *fakeRepository) StashDrop(_ context.Context, _ string, stashReference string) error {
	return repository.record(operationStashDropConstant, stashReference)
}

func (repository *fakeRepository) Checkout(_ context.Context, _ string, branchName string) error {
	return repository.record(operationCheckoutConstant, branchName)
}

func (repository *fakeRepository) ForceDeleteBranch(_ context.Context, _ string, branchName string) error {
	return repository.record(operationDeleteConstant, branchName)
}

func (repository *fakeRepository) FetchAll(context.Context, string) error {
	return repository.record(operationFetchConstant, "")
}

func (repository *fakeRepository) PullRebase(context.Context, string) error {
	return repository.record(operationPullConstant, "")
}

func (repository *fakeRepository) countOperationsWithPrefix(prefix string) int {
	count := 0
	for _, operation := range repository.operations {
		if strings.HasPrefix(operation, prefix) {
			count++
		}
	}
	return count
}

func (repository *fakeRepository) indexOfOperation(prefix string) int {
	for index, operation := range repository.operations {
		if strings.HasPrefix(operation, prefix) {
			return index
		}
	}
	return -1
}

// scriptedPrompter answers questions in order and records them.
type scriptedPrompter struct {
	confirmations []bool
	answers       []string
	questions     []string
}

func (prompter *scriptedPrompter) Confirm(question string) (bool, error) {
	prompter.questions = append(prompter.questions, question)
	if len(prompter.confirmations) == 0 {
		return false, nil
	}
	answer := prompter.confirmations[0]
	prompter.confirmations = prompter.confirmations[1:]
	return answer, nil
}

func (prompter *scriptedPrompter) Ask(question string) (string, error) {
	prompter.questions = append(prompter.questions, question)
	if len(prompter.answers) == 0 {
		return "", nil
	}
	answer := prompter.answers[0]
	prompter.answers = prompter.answers[1:]
	return answer, nil
}

type journalEntry struct {
	level   string
	message string
}

// recordingJournal captures journal lines in memory.
type recordingJournal struct {
	entries []journalEntry
}

func (journal *recordingJournal) Info(message string) {
	journal.entries = append(journal.entries, journalEntry{level: "INFO", message: message})
}

func (journal *recordingJournal) Warning(message string) {
	journal.entries = append(journal.entries, journalEntry{level: "WARNING", message: message})
}

func (journal *recordingJournal) Error(message string) {
	journal.entries = append(journal.entries, journalEntry{level: "ERROR", message: message})
}

func (journal *recordingJournal) Success(message string) {
	journal.entries = append(journal.entries, journalEntry{level: "SUCCESS", message: message})
}

func (journal *recordingJournal) levels() []string {
	levels := make([]string, 0, len(journal.entries))
	for _, entry := range journal.entries {
		levels = append(levels, entry.level)
	}
	return levels
}

func (journal *recordingJournal) lastLevel() string {
	if len(journal.entries) == 0 {
		return ""
	}
	return journal.entries[len(journal.entries)-1].level
}

var _ cleanup.JournalWriter = (*recordingJournal)(nil)
