package connectivity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/repoclean/internal/execshell"
)

const (
	probeExecutorMissingMessageConstant = "connectivity probe executor not configured"
	toolLocatorMissingMessageConstant   = "connectivity probe tool locator not configured"
	probeTargetMissingMessageConstant   = "connectivity probe target not configured"
	noProbeClientMessageConstant        = "neither curl nor wget is available"
	probeFailedTemplateConstant         = "unable to reach %s with %s: %v"
	curlSilentFlagConstant              = "--silent"
	curlHeadFlagConstant                = "--head"
	curlFailFlagConstant                = "--fail"
	wgetQuietFlagConstant               = "--quiet"
	wgetSpiderFlagConstant              = "--spider"
)

var (
	// ErrExecutorNotConfigured indicates the prober was constructed without an executor.
	ErrExecutorNotConfigured = errors.New(probeExecutorMissingMessageConstant)
	// ErrToolLocatorNotConfigured indicates the prober was constructed without a tool locator.
	ErrToolLocatorNotConfigured = errors.New(toolLocatorMissingMessageConstant)
	// ErrTargetNotConfigured indicates an empty probe URL.
	ErrTargetNotConfigured = errors.New(probeTargetMissingMessageConstant)
	// ErrNoProbeClient indicates that no supported HTTP client is installed.
	ErrNoProbeClient = errors.New(noProbeClientMessageConstant)
)

// ProbeExecutor runs the HTTP clients used for probing.
type ProbeExecutor interface {
	ExecuteCurl(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
	ExecuteWget(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// ProbeFailedError reports an unreachable endpoint.
type ProbeFailedError struct {
	Target string
	Client execshell.CommandName
	Cause  error
}

// Error describes the endpoint, the client, and the failure.
func (probeError ProbeFailedError) Error() string {
	return fmt.Sprintf(probeFailedTemplateConstant, probeError.Target, probeError.Client, probeError.Cause)
}

// Unwrap exposes the underlying command failure.
func (probeError ProbeFailedError) Unwrap() error {
	return probeError.Cause
}

// Prober checks reachability of a single endpoint.
type Prober struct {
	executor    ProbeExecutor
	toolLocator execshell.ToolLocator
}

// NewProber constructs a Prober.
func NewProber(executor ProbeExecutor, toolLocator execshell.ToolLocator) (*Prober, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	if toolLocator == nil {
		return nil, ErrToolLocatorNotConfigured
	}
	return &Prober{executor: executor, toolLocator: toolLocator}, nil
}

// Probe issues a HEAD request against targetURL using curl when installed and wget otherwise.
func (prober *Prober) Probe(executionContext context.Context, targetURL string) error {
	trimmedTarget := strings.TrimSpace(targetURL)
	if len(trimmedTarget) == 0 {
		return ErrTargetNotConfigured
	}

	switch {
	case prober.toolLocator.Available(execshell.CommandCurl):
		details := execshell.CommandDetails{Arguments: []string{curlSilentFlagConstant, curlHeadFlagConstant, curlFailFlagConstant, trimmedTarget}}
		if _, probeError := prober.executor.ExecuteCurl(executionContext, details); probeError != nil {
			return ProbeFailedError{Target: trimmedTarget, Client: execshell.CommandCurl, Cause: probeError}
		}
		return nil
	case prober.toolLocator.Available(execshell.CommandWget):
		details := execshell.CommandDetails{Arguments: []string{wgetQuietFlagConstant, wgetSpiderFlagConstant, trimmedTarget}}
		if _, probeError := prober.executor.ExecuteWget(executionContext, details); probeError != nil {
			return ProbeFailedError{Target: trimmedTarget, Client: execshell.CommandWget, Cause: probeError}
		}
		return nil
	default:
		return ErrNoProbeClient
	}
}
