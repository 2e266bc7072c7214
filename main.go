package main

import (
	"fmt"
	"os"

	"github.com/temirov/repoclean/cmd/cli"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main executes the repo-cleanup command-line application.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		if !cli.ErrorAlreadyReported(executionError) {
			fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		}
		os.Exit(1)
	}
}
