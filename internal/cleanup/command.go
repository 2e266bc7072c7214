package cleanup

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/temirov/repoclean/internal/connectivity"
	"github.com/temirov/repoclean/internal/execshell"
	"github.com/temirov/repoclean/internal/gitrepo"
	"github.com/temirov/repoclean/internal/prompt"
	"github.com/temirov/repoclean/internal/ui"
)

const (
	commandUseConstant                 = "repo-cleanup"
	commandShortDescriptionConstant    = "Prune local branches and refresh the repository from its remotes"
	commandLongDescriptionConstant     = "repo-cleanup stashes uncommitted work, backs up the local branch list, force-deletes the branches you select, fetches all remotes, pulls the primary branch with rebase, and then reapplies or discards the stash."
	unexpectedArgumentsMessageConstant = "repo-cleanup does not accept positional arguments"
	flagDryRunNameConstant             = "dry-run"
	flagDryRunDescriptionConstant      = "Collect decisions and print the resulting plan without changing the repository"
	declinedMessageConstant            = "Cleanup cancelled; no changes were made"
	dryRunCompletedMessageConstant     = "Dry run complete; no changes were made"
	planEncodingErrorTemplate          = "unable to render cleanup plan: %w"
	workingDirectoryErrorTemplate      = "unable to determine working directory: %w"
	journalCloseWarningMessage         = "failed to close cleanup log"
	cleanupStartedMessageConstant      = "repository cleanup started"
	cleanupFinishedMessageConstant     = "repository cleanup finished"
	logFieldWorkingDirectoryConstant   = "working_directory"
	logFieldGitDirectoryConstant       = "git_directory"
	logFieldDryRunConstant             = "dry_run"
	logFieldDeletedBranchesConstant    = "deleted_branches"
	logFieldStashCreatedConstant       = "stash_created"
	planIndentationConstant            = 2
)

var errUnexpectedArguments = errors.New(unexpectedArgumentsMessageConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the current cleanup configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the repo-cleanup command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        ConfigurationProvider
	Executor                     CommandExecutor
	ToolLocator                  execshell.ToolLocator
	Prompter                     prompt.Prompter
	Clock                        Clock
	WorkingDirectory             string
}

// Build constructs the repo-cleanup command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().Bool(flagDryRunNameConstant, false, flagDryRunDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errUnexpectedArguments
	}

	dryRun, _ := command.Flags().GetBool(flagDryRunNameConstant)
	configuration := builder.resolveConfiguration()
	logger := builder.resolveLogger()

	workingDirectory, workingDirectoryError := builder.resolveWorkingDirectory()
	if workingDirectoryError != nil {
		return workingDirectoryError
	}

	executor, executorError := builder.resolveExecutor(logger)
	if executorError != nil {
		return executorError
	}

	repositoryManager, managerError := gitrepo.NewRepositoryManager(executor)
	if managerError != nil {
		return managerError
	}

	journal := NewJournal(command.OutOrStdout(), builder.Clock)
	defer func() {
		if closeError := journal.Close(); closeError != nil {
			logger.Warn(journalCloseWarningMessage, zap.Error(closeError))
		}
	}()

	var prober ConnectivityProber
	if configuration.CheckNetwork {
		connectivityProber, proberError := connectivity.NewProber(executor, builder.resolveToolLocator())
		if proberError != nil {
			return proberError
		}
		prober = connectivityProber
	}

	checker, checkerError := NewPreconditionChecker(PreconditionDependencies{
		ToolLocator: builder.resolveToolLocator(),
		Inspector:   repositoryManager,
		Prober:      prober,
		LogAttacher: journal,
	}, configuration)
	if checkerError != nil {
		return checkerError
	}

	planner, plannerError := NewPlanner(repositoryManager, builder.resolvePrompter(command), journal, configuration)
	if plannerError != nil {
		return plannerError
	}

	service, serviceError := NewService(Dependencies{Repository: repositoryManager, Journal: journal, Clock: builder.Clock}, configuration)
	if serviceError != nil {
		return serviceError
	}

	logger.Info(cleanupStartedMessageConstant, zap.String(logFieldWorkingDirectoryConstant, workingDirectory), zap.Bool(logFieldDryRunConstant, dryRun))

	repository, preconditionError := checker.Check(command.Context(), workingDirectory)
	if preconditionError != nil {
		return reportFailure(journal, preconditionError)
	}

	plan, planError := planner.Plan(command.Context(), repository)
	if errors.Is(planError, ErrUserDeclined) {
		journal.Warning(declinedMessageConstant)
		return nil
	}
	if planError != nil {
		return reportFailure(journal, planError)
	}

	if dryRun {
		if renderError := renderPlan(command.OutOrStdout(), plan); renderError != nil {
			return reportFailure(journal, renderError)
		}
		journal.Info(dryRunCompletedMessageConstant)
		return nil
	}

	result, executionError := service.Execute(command.Context(), plan)
	logger.Info(
		cleanupFinishedMessageConstant,
		zap.String(logFieldGitDirectoryConstant, repository.GitDirectory),
		zap.Strings(logFieldDeletedBranchesConstant, result.DeletedBranches),
		zap.Bool(logFieldStashCreatedConstant, result.Stash.Created),
	)
	if executionError != nil {
		return reportFailure(journal, executionError)
	}

	return nil
}

func reportFailure(journal JournalWriter, failure error) error {
	journal.Error(failure.Error())
	return ReportedError{Cause: failure}
}

func renderPlan(writer io.Writer, plan Plan) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(planIndentationConstant)
	if encodeError := encoder.Encode(plan); encodeError != nil {
		return fmt.Errorf(planEncodingErrorTemplate, encodeError)
	}
	if closeError := encoder.Close(); closeError != nil {
		return fmt.Errorf(planEncodingErrorTemplate, closeError)
	}
	return nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func (builder *CommandBuilder) resolveWorkingDirectory() (string, error) {
	if len(builder.WorkingDirectory) > 0 {
		return builder.WorkingDirectory, nil
	}
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return "", fmt.Errorf(workingDirectoryErrorTemplate, workingDirectoryError)
	}
	return workingDirectory, nil
}

func (builder *CommandBuilder) resolveExecutor(logger *zap.Logger) (CommandExecutor, error) {
	if builder.Executor != nil {
		return builder.Executor, nil
	}

	var observers []execshell.CommandEventObserver
	if builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider() {
		observers = append(observers, ui.NewConsoleCommandEventLogger(logger))
	}

	shellExecutor, creationError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner(), observers...)
	if creationError != nil {
		return nil, creationError
	}

	return shellExecutor, nil
}

func (builder *CommandBuilder) resolveToolLocator() execshell.ToolLocator {
	if builder.ToolLocator != nil {
		return builder.ToolLocator
	}
	return execshell.OSToolLocator{}
}

func (builder *CommandBuilder) resolvePrompter(command *cobra.Command) prompt.Prompter {
	if builder.Prompter != nil {
		return builder.Prompter
	}
	return prompt.NewIOPrompter(command.InOrStdin(), command.OutOrStdout())
}
