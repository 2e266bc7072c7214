package cleanup

import (
	"errors"
	"fmt"
)

const (
	userDeclinedMessageConstant            = "cleanup declined by user"
	primaryBranchRequiredMessageConstant   = "primary branch name is required"
	unknownPrimaryBranchTemplateConstant   = "primary branch %q does not exist locally"
	branchSuggestionTemplateConstant       = "%s; did you mean %q?"
	environmentErrorTemplateConstant       = "%s: %v"
	operationFailureTemplateConstant       = "%s failed: %v"
	operationFailureTargetTemplateConstant = "%s of %s failed: %v"
)

var (
	// ErrUserDeclined reports a negative answer at the confirmation gate. It is not a failure.
	ErrUserDeclined = errors.New(userDeclinedMessageConstant)
	// ErrPrimaryBranchRequired reports an empty primary branch answer.
	ErrPrimaryBranchRequired = errors.New(primaryBranchRequiredMessageConstant)
)

// UnknownPrimaryBranchError reports a primary branch that is absent from the local branch list.
type UnknownPrimaryBranchError struct {
	BranchName string
	Suggestion string
}

func (unknownError UnknownPrimaryBranchError) Error() string {
	message := fmt.Sprintf(unknownPrimaryBranchTemplateConstant, unknownError.BranchName)
	if len(unknownError.Suggestion) == 0 {
		return message
	}
	return fmt.Sprintf(branchSuggestionTemplateConstant, message, unknownError.Suggestion)
}

// EnvironmentError reports a precondition failure detected before any mutation.
type EnvironmentError struct {
	Reason string
	Cause  error
}

func (environmentError EnvironmentError) Error() string {
	if environmentError.Cause == nil {
		return environmentError.Reason
	}
	return fmt.Sprintf(environmentErrorTemplateConstant, environmentError.Reason, environmentError.Cause)
}

// Unwrap exposes the underlying failure.
func (environmentError EnvironmentError) Unwrap() error {
	return environmentError.Cause
}

// Step names an execution phase operation.
type Step string

// Execution phase steps in the order they run.
const (
	StepStatusCheck    Step = "working tree status check"
	StepStashPush      Step = "stash"
	StepBranchBackup   Step = "branch backup"
	StepCheckout       Step = "checkout"
	StepBranchDeletion Step = "branch deletion"
	StepFetch          Step = "fetch"
	StepPull           Step = "pull"
	StepReturnCheckout Step = "return checkout"
	StepStashLookup    Step = "stash lookup"
	StepStashPop       Step = "stash pop"
	StepStashDrop      Step = "stash drop"
)

// OperationFailure reports an execution phase step whose command failed.
type OperationFailure struct {
	Step   Step
	Target string
	Cause  error
}

func (operationFailure OperationFailure) Error() string {
	if len(operationFailure.Target) == 0 {
		return fmt.Sprintf(operationFailureTemplateConstant, operationFailure.Step, operationFailure.Cause)
	}
	return fmt.Sprintf(operationFailureTargetTemplateConstant, operationFailure.Step, operationFailure.Target, operationFailure.Cause)
}

// Unwrap exposes the underlying command failure.
func (operationFailure OperationFailure) Unwrap() error {
	return operationFailure.Cause
}

// ReportedError marks an error that has already been written to the journal.
type ReportedError struct {
	Cause error
}

func (reportedError ReportedError) Error() string {
	return reportedError.Cause.Error()
}

// Unwrap exposes the reported failure.
func (reportedError ReportedError) Unwrap() error {
	return reportedError.Cause
}

// IsReported reports whether err, or an error it wraps, was already written to the journal.
func IsReported(err error) bool {
	var reportedError ReportedError
	return errors.As(err, &reportedError)
}
