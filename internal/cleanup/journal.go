package cleanup

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/temirov/repoclean/internal/utils"
)

const (
	journalLevelKeyConstant         = "level"
	journalMessageKeyConstant       = "message"
	journalSeparatorConstant        = " "
	journalTimestampLayoutConstant  = "2006-01-02 15:04:05"
	journalLineTemplateConstant     = "%s %s"
	journalLevelTemplateConstant    = "[%s]"
	journalInfoLabelConstant        = "INFO"
	journalWarningLabelConstant     = "WARNING"
	journalErrorLabelConstant       = "ERROR"
	journalSuccessLabelConstant     = "SUCCESS"
	journalFilePermissionsConstant  = 0o644
	journalFileOpenTemplateConstant = "unable to open cleanup log %s: %w"
)

// SuccessLevel is the zap level of the final line of a successful run.
const SuccessLevel = zapcore.FatalLevel + 1

var journalLevelLabels = map[zapcore.Level]string{
	zapcore.InfoLevel:  journalInfoLabelConstant,
	zapcore.WarnLevel:  journalWarningLabelConstant,
	zapcore.ErrorLevel: journalErrorLabelConstant,
	SuccessLevel:       journalSuccessLabelConstant,
}

// Journal writes timestamped "[LEVEL] message" lines to the interactive
// surface and, once a file is attached, appends the same lines to it.
type Journal struct {
	consoleCore zapcore.Core
	logger      *zap.Logger
	logFile     *os.File
	clock       Clock
}

// NewJournal constructs a Journal writing to consoleWriter.
func NewJournal(consoleWriter io.Writer, clock Clock) *Journal {
	if clock == nil {
		clock = SystemClock{}
	}
	if consoleWriter == nil {
		consoleWriter = io.Discard
	}

	consoleCore := newJournalCore(zapcore.AddSync(utils.NewFlushingWriter(consoleWriter)))
	return &Journal{
		consoleCore: consoleCore,
		logger:      zap.New(consoleCore),
		clock:       clock,
	}
}

// AttachFile opens logFilePath for appending and mirrors subsequent lines into it.
func (journal *Journal) AttachFile(logFilePath string) error {
	logFile, openError := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, journalFilePermissionsConstant)
	if openError != nil {
		return fmt.Errorf(journalFileOpenTemplateConstant, logFilePath, openError)
	}

	if journal.logFile != nil {
		_ = journal.logFile.Close()
	}
	journal.logFile = logFile
	journal.logger = zap.New(zapcore.NewTee(journal.consoleCore, newJournalCore(zapcore.AddSync(logFile))))
	return nil
}

// Info records progress.
func (journal *Journal) Info(message string) {
	journal.write(zapcore.InfoLevel, message)
}

// Warning records a non-fatal anomaly or an operator decline.
func (journal *Journal) Warning(message string) {
	journal.write(zapcore.WarnLevel, message)
}

// Error records a fatal failure.
func (journal *Journal) Error(message string) {
	journal.write(zapcore.ErrorLevel, message)
}

// Success records the completion of a run.
func (journal *Journal) Success(message string) {
	journal.write(SuccessLevel, message)
}

// Close flushes the journal and releases the attached file.
func (journal *Journal) Close() error {
	_ = journal.logger.Sync()
	if journal.logFile == nil {
		return nil
	}
	closeError := journal.logFile.Close()
	journal.logFile = nil
	journal.logger = zap.New(journal.consoleCore)
	return closeError
}

func (journal *Journal) write(level zapcore.Level, message string) {
	timestamp := journal.clock.Now().Format(journalTimestampLayoutConstant)
	journal.logger.Log(level, fmt.Sprintf(journalLineTemplateConstant, timestamp, message))
}

func newJournalCore(writeSyncer zapcore.WriteSyncer) zapcore.Core {
	encoderConfig := zapcore.EncoderConfig{
		LevelKey:         journalLevelKeyConstant,
		MessageKey:       journalMessageKeyConstant,
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      encodeJournalLevel,
		ConsoleSeparator: journalSeparatorConstant,
	}
	return zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), writeSyncer, zapcore.InfoLevel)
}

func encodeJournalLevel(level zapcore.Level, encoder zapcore.PrimitiveArrayEncoder) {
	label, known := journalLevelLabels[level]
	if !known {
		label = level.CapitalString()
	}
	encoder.AppendString(fmt.Sprintf(journalLevelTemplateConstant, label))
}
