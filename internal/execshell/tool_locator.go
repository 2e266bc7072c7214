package execshell

import "os/exec"

// ToolLocator reports whether an executable can be found.
type ToolLocator interface {
	Available(command CommandName) bool
}

// OSToolLocator resolves executables through the PATH environment variable.
type OSToolLocator struct{}

// Available reports whether the executable is present on PATH.
func (OSToolLocator) Available(command CommandName) bool {
	_, lookupError := exec.LookPath(string(command))
	return lookupError == nil
}
