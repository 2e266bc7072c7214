// Package cli constructs the repo-cleanup command-line interface, wiring the
// cleanup command to the configuration loader and structured logging.
package cli
