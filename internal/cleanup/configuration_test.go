package cleanup_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repoclean/internal/cleanup"
)

func TestDefaultConfigurationValues(testInstance *testing.T) {
	testCases := []struct {
		name           string
		prefix         string
		expectedValues map[string]any
	}{
		{
			name:   "nested_under_prefix",
			prefix: "cleanup",
			expectedValues: map[string]any{
				"cleanup.log_file":              "cleanup.log",
				"cleanup.backup_file":           "branch_backup.txt",
				"cleanup.check_network":         true,
				"cleanup.probe_url":             "https://github.com",
				"cleanup.require_known_primary": false,
			},
		},
		{
			name:   "without_prefix",
			prefix: "  ",
			expectedValues: map[string]any{
				"log_file":              "cleanup.log",
				"backup_file":           "branch_backup.txt",
				"check_network":         true,
				"probe_url":             "https://github.com",
				"require_known_primary": false,
			},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedValues, cleanup.DefaultConfigurationValues(testCase.prefix))
		})
	}
}

func TestCommandConfigurationSanitize(testInstance *testing.T) {
	sanitized := cleanup.CommandConfiguration{
		LogFile:      "  ",
		BackupFile:   " branches.txt ",
		ProbeURL:     "",
		CheckNetwork: false,
	}.Sanitize()

	require.Equal(testInstance, cleanup.CommandConfiguration{
		LogFile:      "cleanup.log",
		BackupFile:   "branches.txt",
		ProbeURL:     "https://github.com",
		CheckNetwork: false,
	}, sanitized)
}
