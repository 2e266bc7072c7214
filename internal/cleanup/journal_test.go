package cleanup_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repoclean/internal/cleanup"
)

const (
	testLogFileNameConstant = "cleanup.log"
)

func TestJournalFormatsLevels(testInstance *testing.T) {
	testCases := []struct {
		name         string
		write        func(*cleanup.Journal)
		expectedLine string
	}{
		{
			name:         "info",
			write:        func(journal *cleanup.Journal) { journal.Info("Fetching all remotes") },
			expectedLine: "[INFO] 2026-10-16 09:30:00 Fetching all remotes\n",
		},
		{
			name:         "warning",
			write:        func(journal *cleanup.Journal) { journal.Warning("Cleanup cancelled") },
			expectedLine: "[WARNING] 2026-10-16 09:30:00 Cleanup cancelled\n",
		},
		{
			name:         "error",
			write:        func(journal *cleanup.Journal) { journal.Error("pull failed") },
			expectedLine: "[ERROR] 2026-10-16 09:30:00 pull failed\n",
		},
		{
			name:         "success",
			write:        func(journal *cleanup.Journal) { journal.Success("Repository cleanup completed") },
			expectedLine: "[SUCCESS] 2026-10-16 09:30:00 Repository cleanup completed\n",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			consoleBuffer := &bytes.Buffer{}
			journal := cleanup.NewJournal(consoleBuffer, fixedClock{moment: testFixedMoment})
			testCase.write(journal)
			require.NoError(testInstance, journal.Close())
			require.Equal(testInstance, testCase.expectedLine, consoleBuffer.String())
			require.Regexp(testInstance, testJournalLinePatternConstant, strings.TrimSuffix(consoleBuffer.String(), "\n"))
		})
	}
}

func TestJournalAppendsToAttachedFile(testInstance *testing.T) {
	logFilePath := filepath.Join(testInstance.TempDir(), testLogFileNameConstant)
	require.NoError(testInstance, os.WriteFile(logFilePath, []byte("[INFO] 2026-10-15 08:00:00 previous run\n"), 0o644))

	consoleBuffer := &bytes.Buffer{}
	journal := cleanup.NewJournal(consoleBuffer, fixedClock{moment: testFixedMoment})
	journal.Info("before attach")
	require.NoError(testInstance, journal.AttachFile(logFilePath))
	journal.Info("after attach")
	journal.Success("done")
	require.NoError(testInstance, journal.Close())

	fileContent, readError := os.ReadFile(logFilePath)
	require.NoError(testInstance, readError)
	require.Equal(testInstance,
		"[INFO] 2026-10-15 08:00:00 previous run\n"+
			"[INFO] 2026-10-16 09:30:00 after attach\n"+
			"[SUCCESS] 2026-10-16 09:30:00 done\n",
		string(fileContent),
	)
	require.Equal(testInstance,
		"[INFO] 2026-10-16 09:30:00 before attach\n"+
			"[INFO] 2026-10-16 09:30:00 after attach\n"+
			"[SUCCESS] 2026-10-16 09:30:00 done\n",
		consoleBuffer.String(),
	)
}

func TestJournalAttachFileFailure(testInstance *testing.T) {
	journal := cleanup.NewJournal(&bytes.Buffer{}, fixedClock{moment: testFixedMoment})
	attachError := journal.AttachFile(filepath.Join(testInstance.TempDir(), "missing", testLogFileNameConstant))
	require.Error(testInstance, attachError)
	require.NoError(testInstance, journal.Close())
}
