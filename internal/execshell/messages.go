package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
	argumentFlagPrefixConstant              = "-"
)

const (
	gitRevParseSubcommandNameConstant = "rev-parse"
	gitWorkTreeFlagConstant           = "--is-inside-work-tree"
	gitDirectoryFlagConstant          = "--git-dir"
	gitAbbrevRefFlagConstant          = "--abbrev-ref"
	gitHeadReferenceConstant          = "HEAD"
	gitStatusSubcommandNameConstant   = "status"
	gitCheckoutSubcommandNameConstant = "checkout"
	gitBranchSubcommandNameConstant   = "branch"
	gitForceDeleteFlagConstant        = "-D"
	gitDeleteFlagConstant             = "--delete"
	gitForceFlagConstant              = "--force"
	gitStashSubcommandNameConstant    = "stash"
	gitStashPushSubcommandConstant    = "push"
	gitStashListSubcommandConstant    = "list"
	gitStashPopSubcommandConstant     = "pop"
	gitStashDropSubcommandConstant    = "drop"
	gitMessageFlagConstant            = "--message"
	gitFetchSubcommandNameConstant    = "fetch"
	gitPullSubcommandNameConstant     = "pull"
	gitFetchAllRemotesLabelConstant   = "all remotes"
	gitLatestStashLabelConstant       = "latest stash"
)

// lifecycleTemplates groups the four messages describing one kind of command.
// The failure template receives the subject followed by the exit code and the
// standard error suffix; the unavailable template receives the subject followed
// by the failure description.
type lifecycleTemplates struct {
	started     string
	succeeded   string
	failed      string
	unavailable string
}

var (
	workTreeTemplates = lifecycleTemplates{
		started:     "Checking whether %s is a Git working tree",
		succeeded:   "%s is a Git working tree",
		failed:      "Could not confirm %s is a Git working tree (exit code %d%s)",
		unavailable: "Could not inspect %s: %s",
	}
	gitDirectoryTemplates = lifecycleTemplates{
		started:     "Locating Git metadata directory for %s",
		succeeded:   "Located Git metadata directory for %s",
		failed:      "Failed to locate Git metadata directory for %s (exit code %d%s)",
		unavailable: "Unable to locate Git metadata directory for %s: %s",
	}
	currentBranchTemplates = lifecycleTemplates{
		started:     "Identifying current branch in %s",
		succeeded:   "Identified current branch in %s",
		failed:      "Failed to identify current branch in %s (exit code %d%s)",
		unavailable: "Unable to identify current branch in %s: %s",
	}
	statusTemplates = lifecycleTemplates{
		started:     "Reviewing working tree status in %s",
		succeeded:   "Collected working tree status for %s",
		failed:      "Failed to review working tree status in %s (exit code %d%s)",
		unavailable: "Unable to review working tree status in %s: %s",
	}
	branchListTemplates = lifecycleTemplates{
		started:     "Listing local branches in %s",
		succeeded:   "Listed local branches in %s",
		failed:      "Failed to list local branches in %s (exit code %d%s)",
		unavailable: "Unable to list local branches in %s: %s",
	}
	branchDeletionTemplates = lifecycleTemplates{
		started:     "Force removing local branch %s in %s",
		succeeded:   "Removed local branch %s in %s",
		failed:      "Failed to remove local branch %s in %s (exit code %d%s)",
		unavailable: "Unable to remove local branch %s in %s: %s",
	}
	checkoutTemplates = lifecycleTemplates{
		started:     "Switching %s to branch %s",
		succeeded:   "%s now on branch %s",
		failed:      "Failed to switch %s to branch %s (exit code %d%s)",
		unavailable: "Unable to switch %s to branch %s: %s",
	}
	stashPushTemplates = lifecycleTemplates{
		started:     "Stashing local changes in %s as %s",
		succeeded:   "Stashed local changes in %s as %s",
		failed:      "Failed to stash local changes in %s as %s (exit code %d%s)",
		unavailable: "Unable to stash local changes in %s as %s: %s",
	}
	stashListTemplates = lifecycleTemplates{
		started:     "Listing stash entries in %s",
		succeeded:   "Listed stash entries in %s",
		failed:      "Failed to list stash entries in %s (exit code %d%s)",
		unavailable: "Unable to list stash entries in %s: %s",
	}
	stashPopTemplates = lifecycleTemplates{
		started:     "Reapplying %s in %s",
		succeeded:   "Reapplied %s in %s",
		failed:      "Failed to reapply %s in %s (exit code %d%s)",
		unavailable: "Unable to reapply %s in %s: %s",
	}
	stashDropTemplates = lifecycleTemplates{
		started:     "Discarding %s in %s",
		succeeded:   "Discarded %s in %s",
		failed:      "Failed to discard %s in %s (exit code %d%s)",
		unavailable: "Unable to discard %s in %s: %s",
	}
	fetchTemplates = lifecycleTemplates{
		started:     "Fetching from %s in %s",
		succeeded:   "Fetched from %s in %s",
		failed:      "Failed to fetch from %s in %s (exit code %d%s)",
		unavailable: "Unable to fetch from %s in %s: %s",
	}
	fetchReferencesTemplates = lifecycleTemplates{
		started:     "Fetching %s from %s in %s",
		succeeded:   "Fetched %s from %s in %s",
		failed:      "Failed to fetch %s from %s in %s (exit code %d%s)",
		unavailable: "Unable to fetch %s from %s in %s: %s",
	}
	pullTemplates = lifecycleTemplates{
		started:     "Pulling latest changes with rebase in %s",
		succeeded:   "Pulled latest changes with rebase in %s",
		failed:      "Failed to pull latest changes in %s (exit code %d%s)",
		unavailable: "Unable to pull latest changes in %s: %s",
	}
	probeTemplates = lifecycleTemplates{
		started:     "Probing connectivity to %s with %s",
		succeeded:   "Reached %s with %s",
		failed:      "Could not reach %s with %s (exit code %d%s)",
		unavailable: "Unable to probe %s with %s: %s",
	}
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	switch command.Name {
	case CommandGit:
		return formatter.describeGitMessage(command, result, failure, stage)
	case CommandCurl, CommandWget:
		target := formatter.ensureValue(formatter.extractLastNonFlagArgument(command.Details.Arguments))
		return formatter.render(probeTemplates, stage, result, failure, target, string(command.Name))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	workingDirectory := formatter.describeWorkingDirectory(command)
	switch strings.TrimSpace(arguments[0]) {
	case gitRevParseSubcommandNameConstant:
		return formatter.describeGitRevParseMessage(command, result, failure, stage)
	case gitStatusSubcommandNameConstant:
		return formatter.render(statusTemplates, stage, result, failure, workingDirectory)
	case gitBranchSubcommandNameConstant:
		if containsArgument(arguments, gitForceDeleteFlagConstant) || containsArgument(arguments, gitDeleteFlagConstant) {
			branchName := formatter.ensureValue(formatter.extractLastNonFlagArgument(arguments[1:]))
			return formatter.render(branchDeletionTemplates, stage, result, failure, branchName, workingDirectory)
		}
		return formatter.render(branchListTemplates, stage, result, failure, workingDirectory)
	case gitCheckoutSubcommandNameConstant:
		branchName := formatter.ensureValue(formatter.extractLastNonFlagArgument(arguments[1:]))
		return formatter.render(checkoutTemplates, stage, result, failure, workingDirectory, branchName)
	case gitStashSubcommandNameConstant:
		return formatter.describeGitStashMessage(command, result, failure, stage)
	case gitFetchSubcommandNameConstant:
		remoteName, references := formatter.extractRemoteAndReferences(arguments[1:])
		if len(remoteName) == 0 {
			remoteName = gitFetchAllRemotesLabelConstant
		}
		if len(references) == 0 {
			return formatter.render(fetchTemplates, stage, result, failure, remoteName, workingDirectory)
		}
		joinedReferences := strings.Join(references, commandArgumentsJoinSeparatorConstant)
		return formatter.render(fetchReferencesTemplates, stage, result, failure, joinedReferences, remoteName, workingDirectory)
	case gitPullSubcommandNameConstant:
		return formatter.render(pullTemplates, stage, result, failure, workingDirectory)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitRevParseMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)
	trimmedOutput := strings.TrimSpace(result.StandardOutput)

	switch {
	case containsArgument(arguments, gitWorkTreeFlagConstant):
		return formatter.render(workTreeTemplates, stage, result, failure, workingDirectory)
	case containsArgument(arguments, gitDirectoryFlagConstant):
		if stage == messageStageSuccess && len(trimmedOutput) > 0 {
			return fmt.Sprintf("Git metadata directory for %s is %s", workingDirectory, trimmedOutput)
		}
		return formatter.render(gitDirectoryTemplates, stage, result, failure, workingDirectory)
	case containsArgument(arguments, gitAbbrevRefFlagConstant) && containsArgument(arguments, gitHeadReferenceConstant):
		if stage == messageStageSuccess && len(trimmedOutput) > 0 {
			if trimmedOutput == gitHeadReferenceConstant {
				return fmt.Sprintf("%s is in a detached HEAD state", workingDirectory)
			}
			return fmt.Sprintf("Current branch in %s is %s", workingDirectory, trimmedOutput)
		}
		return formatter.render(currentBranchTemplates, stage, result, failure, workingDirectory)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitStashMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)
	stashSubcommand := formatter.argumentAtIndex(arguments, 1)

	switch stashSubcommand {
	case gitStashPushSubcommandConstant:
		stashName := formatter.ensureValue(findFlagValue(arguments, gitMessageFlagConstant))
		return formatter.render(stashPushTemplates, stage, result, failure, workingDirectory, stashName)
	case gitStashListSubcommandConstant:
		return formatter.render(stashListTemplates, stage, result, failure, workingDirectory)
	case gitStashPopSubcommandConstant, gitStashDropSubcommandConstant:
		stashReference := formatter.extractLastNonFlagArgument(arguments[2:])
		if len(stashReference) == 0 {
			stashReference = gitLatestStashLabelConstant
		}
		templates := stashPopTemplates
		if stashSubcommand == gitStashDropSubcommandConstant {
			templates = stashDropTemplates
		}
		return formatter.render(templates, stage, result, failure, stashReference, workingDirectory)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) render(templates lifecycleTemplates, stage messageStage, result ExecutionResult, failure error, subject ...any) string {
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(templates.started, subject...)
	case messageStageSuccess:
		return fmt.Sprintf(templates.succeeded, subject...)
	case messageStageFailure:
		failureArguments := append(append([]any{}, subject...), result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		return fmt.Sprintf(templates.failed, failureArguments...)
	case messageStageExecutionFailure:
		failureArguments := append(append([]any{}, subject...), formatter.describeFailure(failure))
		return fmt.Sprintf(templates.unavailable, failureArguments...)
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := describeCommand(command)
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return commandLabel
	}
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory))
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) argumentAtIndex(arguments []string, index int) string {
	if index < 0 || index >= len(arguments) {
		return emptyStringConstant
	}
	return strings.TrimSpace(arguments[index])
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}

// extractRemoteAndReferences returns the first positional argument as the
// remote and the remaining positional arguments as references.
func (formatter CommandMessageFormatter) extractRemoteAndReferences(arguments []string) (string, []string) {
	positional := make([]string, 0, len(arguments))
	for _, argument := range arguments {
		trimmed := strings.TrimSpace(argument)
		if len(trimmed) == 0 || strings.HasPrefix(trimmed, argumentFlagPrefixConstant) {
			continue
		}
		positional = append(positional, trimmed)
	}
	if len(positional) == 0 {
		return emptyStringConstant, nil
	}
	return positional[0], positional[1:]
}

func (formatter CommandMessageFormatter) extractLastNonFlagArgument(arguments []string) string {
	for index := len(arguments) - 1; index >= 0; index-- {
		trimmed := strings.TrimSpace(arguments[index])
		if len(trimmed) == 0 || strings.HasPrefix(trimmed, argumentFlagPrefixConstant) {
			continue
		}
		return trimmed
	}
	return emptyStringConstant
}

func containsArgument(arguments []string, value string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == value {
			return true
		}
	}
	return false
}

func findFlagValue(arguments []string, flag string) string {
	for index := 0; index < len(arguments)-1; index++ {
		if strings.TrimSpace(arguments[index]) == flag {
			return strings.TrimSpace(arguments[index+1])
		}
	}
	return emptyStringConstant
}
