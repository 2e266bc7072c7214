// Package prompt reads operator decisions from an interactive stream.
package prompt

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

const (
	affirmativeShortAnswerConstant = "y"
	affirmativeLongAnswerConstant  = "yes"
)

// Prompter collects yes/no decisions and free-text answers.
type Prompter interface {
	Confirm(question string) (bool, error)
	Ask(question string) (string, error)
}

// IOPrompter reads responses line by line from an io.Reader and writes questions to an io.Writer.
type IOPrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewIOPrompter constructs a prompter from the provided reader and writer.
func NewIOPrompter(input io.Reader, output io.Writer) *IOPrompter {
	return &IOPrompter{reader: bufio.NewReader(input), writer: output}
}

// Confirm writes the question and reports true only for a case-insensitive y or yes.
// Empty input, any other answer, and end of input all decline.
func (prompter *IOPrompter) Confirm(question string) (bool, error) {
	response, readError := prompter.Ask(question)
	if readError != nil {
		return false, readError
	}

	switch strings.ToLower(response) {
	case affirmativeShortAnswerConstant, affirmativeLongAnswerConstant:
		return true, nil
	default:
		return false, nil
	}
}

// Ask writes the question and returns the trimmed response line.
func (prompter *IOPrompter) Ask(question string) (string, error) {
	if prompter.writer != nil {
		if _, writeError := io.WriteString(prompter.writer, question); writeError != nil {
			return "", writeError
		}
	}

	response, readError := prompter.reader.ReadString('\n')
	if readError != nil && !errors.Is(readError, io.EOF) {
		return "", readError
	}

	return strings.TrimSpace(response), nil
}
