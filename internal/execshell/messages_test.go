package execshell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildStartedMessageForFetchWithoutRemoteUsesAllRemotesLabel(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"fetch", "--all", "--tags", "--prune"},
			WorkingDirectory: "/workspace/repo",
		},
	}

	require.Equal(t, "Fetching from all remotes in /workspace/repo", formatter.BuildStartedMessage(command))
}

func TestBuildStartedMessageForFetchIncludesRemoteAndReferences(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"fetch", "--prune", "origin", "feature"},
			WorkingDirectory: "/workspace/repo",
		},
	}

	require.Equal(t, "Fetching feature from origin in /workspace/repo", formatter.BuildStartedMessage(command))
}

func TestCommandMessageFormatterDescribesCleanupCommands(t *testing.T) {
	formatter := CommandMessageFormatter{}
	testCases := []struct {
		name            string
		command         ShellCommand
		result          ExecutionResult
		failure         error
		stage           messageStage
		expectedMessage string
	}{
		{
			name:            "ForceDeleteStart",
			command:         ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"branch", "-D", "feature-b"}, WorkingDirectory: "/repo"}},
			stage:           messageStageStart,
			expectedMessage: "Force removing local branch feature-b in /repo",
		},
		{
			name:            "ForceDeleteFailure",
			command:         ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"branch", "-D", "feature-b"}, WorkingDirectory: "/repo"}},
			result:          ExecutionResult{ExitCode: 1, StandardError: "error: branch 'feature-b' not found.\n"},
			stage:           messageStageFailure,
			expectedMessage: "Failed to remove local branch feature-b in /repo (exit code 1: error: branch 'feature-b' not found.)",
		},
		{
			name:            "BranchListing",
			command:         ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"branch"}, WorkingDirectory: "/repo"}},
			stage:           messageStageSuccess,
			expectedMessage: "Listed local branches in /repo",
		},
		{
			name:            "StashPush",
			command:         ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"stash", "push", "--include-untracked", "--message", "main_2026-10-16_09-30-00"}, WorkingDirectory: "/repo"}},
			stage:           messageStageStart,
			expectedMessage: "Stashing local changes in /repo as main_2026-10-16_09-30-00",
		},
		{
			name:            "StashPopReference",
			command:         ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"stash", "pop", "stash@{0}"}, WorkingDirectory: "/repo"}},
			stage:           messageStageSuccess,
			expectedMessage: "Reapplied stash@{0} in /repo",
		},
		{
			name:            "StashDropExecutionFailure",
			command:         ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"stash", "drop", "stash@{1}"}, WorkingDirectory: "/repo"}},
			failure:         errors.New("interrupted"),
			stage:           messageStageExecutionFailure,
			expectedMessage: "Unable to discard stash@{1} in /repo: interrupted",
		},
		{
			name:            "CurrentBranchSuccess",
			command:         ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"rev-parse", "--abbrev-ref", "HEAD"}, WorkingDirectory: "/repo"}},
			result:          ExecutionResult{StandardOutput: "main\n"},
			stage:           messageStageSuccess,
			expectedMessage: "Current branch in /repo is main",
		},
		{
			name:            "DetachedHead",
			command:         ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"rev-parse", "--abbrev-ref", "HEAD"}, WorkingDirectory: "/repo"}},
			result:          ExecutionResult{StandardOutput: "HEAD\n"},
			stage:           messageStageSuccess,
			expectedMessage: "/repo is in a detached HEAD state",
		},
		{
			name:            "WorkTreeWithoutDirectory",
			command:         ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"rev-parse", "--is-inside-work-tree"}}},
			stage:           messageStageStart,
			expectedMessage: "Checking whether current directory is a Git working tree",
		},
		{
			name:            "PullFailure",
			command:         ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"pull", "--rebase", "--prune", "--tags"}, WorkingDirectory: "/repo"}},
			result:          ExecutionResult{ExitCode: 1},
			stage:           messageStageFailure,
			expectedMessage: "Failed to pull latest changes in /repo (exit code 1)",
		},
		{
			name:            "CurlProbe",
			command:         ShellCommand{Name: CommandCurl, Details: CommandDetails{Arguments: []string{"--silent", "--head", "--fail", "https://github.com"}}},
			stage:           messageStageStart,
			expectedMessage: "Probing connectivity to https://github.com with curl",
		},
		{
			name:            "UnknownGitSubcommand",
			command:         ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"gc"}, WorkingDirectory: "/repo"}},
			stage:           messageStageSuccess,
			expectedMessage: "Completed git gc (in /repo)",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			message := formatter.buildMessage(testCase.command, testCase.result, testCase.failure, testCase.stage)
			require.Equal(t, testCase.expectedMessage, message)
		})
	}
}
