// Package execshell provides structured helpers for invoking external tools.
//
// ShellExecutor wraps a CommandRunner with lifecycle notifications, converts
// non-zero exit codes into CommandFailedError values, and exposes typed
// wrappers for git, curl, and wget. OSCommandRunner and OSToolLocator are the
// operating-system backed defaults.
package execshell
