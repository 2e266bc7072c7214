package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repoclean/internal/utils"
)

const (
	testEnvironmentPrefixConstant     = "TESTREPOCLEAN"
	testConfigurationNameConstant     = "config"
	testConfigurationTypeConstant     = "yaml"
	testConfigFileNameConstant        = "config.yaml"
	testHomeConfigurationDirectory    = ".repo-cleanup"
	testProbeURLKeyConstant           = "cleanup.probe_url"
	testCheckNetworkKeyConstant       = "cleanup.check_network"
	testProbeURLEnvironmentConstant   = "TESTREPOCLEAN_CLEANUP_PROBE_URL"
	testDefaultProbeURLConstant       = "https://default.example.com"
	testEmbeddedProbeURLConstant      = "https://embedded.example.com"
	testFileProbeURLConstant          = "https://file.example.com"
	testEnvironmentProbeURLConstant   = "https://env.example.com"
	testEmbeddedConfigurationConstant = "cleanup:\n  probe_url: https://embedded.example.com\n"
	testFileConfigurationConstant     = "cleanup:\n  probe_url: https://file.example.com\n  check_network: false\n"
)

type cleanupConfigurationFixture struct {
	Cleanup cleanupSectionFixture `mapstructure:"cleanup"`
}

type cleanupSectionFixture struct {
	ProbeURL     string `mapstructure:"probe_url"`
	CheckNetwork bool   `mapstructure:"check_network"`
}

func testDefaultValues() map[string]any {
	return map[string]any{
		testProbeURLKeyConstant:     testDefaultProbeURLConstant,
		testCheckNetworkKeyConstant: true,
	}
}

func TestConfigurationLoaderPrecedence(testInstance *testing.T) {
	testCases := []struct {
		name                 string
		embeddedContent      string
		fileContent          string
		environmentProbeURL  string
		expectedProbeURL     string
		expectedCheckNetwork bool
	}{
		{
			name:                 "defaults_only",
			expectedProbeURL:     testDefaultProbeURLConstant,
			expectedCheckNetwork: true,
		},
		{
			name:                 "embedded_overrides_defaults",
			embeddedContent:      testEmbeddedConfigurationConstant,
			expectedProbeURL:     testEmbeddedProbeURLConstant,
			expectedCheckNetwork: true,
		},
		{
			name:                 "file_overrides_embedded",
			embeddedContent:      testEmbeddedConfigurationConstant,
			fileContent:          testFileConfigurationConstant,
			expectedProbeURL:     testFileProbeURLConstant,
			expectedCheckNetwork: false,
		},
		{
			name:                 "environment_overrides_file",
			embeddedContent:      testEmbeddedConfigurationConstant,
			fileContent:          testFileConfigurationConstant,
			environmentProbeURL:  testEnvironmentProbeURLConstant,
			expectedProbeURL:     testEnvironmentProbeURLConstant,
			expectedCheckNetwork: false,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			configurationFilePath := ""
			if len(testCase.fileContent) > 0 {
				configurationFilePath = filepath.Join(testInstance.TempDir(), testConfigFileNameConstant)
				require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte(testCase.fileContent), 0o600))
			}
			if len(testCase.environmentProbeURL) > 0 {
				testInstance.Setenv(testProbeURLEnvironmentConstant, testCase.environmentProbeURL)
			}

			configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, nil)
			configurationLoader.SetEmbeddedConfiguration([]byte(testCase.embeddedContent), testConfigurationTypeConstant)

			loadedConfiguration := cleanupConfigurationFixture{}
			metadata, loadError := configurationLoader.LoadConfiguration(configurationFilePath, testDefaultValues(), &loadedConfiguration)
			require.NoError(testInstance, loadError)
			require.Equal(testInstance, testCase.expectedProbeURL, loadedConfiguration.Cleanup.ProbeURL)
			require.Equal(testInstance, testCase.expectedCheckNetwork, loadedConfiguration.Cleanup.CheckNetwork)
			require.Equal(testInstance, configurationFilePath, metadata.ConfigFileUsed)
		})
	}
}

func TestConfigurationLoaderSearchesHomeDirectory(testInstance *testing.T) {
	homeDirectoryPath := testInstance.TempDir()
	testInstance.Setenv("HOME", homeDirectoryPath)

	configurationDirectoryPath := filepath.Join(homeDirectoryPath, testHomeConfigurationDirectory)
	require.NoError(testInstance, os.MkdirAll(configurationDirectoryPath, 0o755))
	configurationFilePath := filepath.Join(configurationDirectoryPath, testConfigFileNameConstant)
	require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte(testFileConfigurationConstant), 0o600))

	configurationLoader := utils.NewConfigurationLoader(
		testConfigurationNameConstant,
		testConfigurationTypeConstant,
		testEnvironmentPrefixConstant,
		[]string{testInstance.TempDir(), "~/" + testHomeConfigurationDirectory},
	)

	loadedConfiguration := cleanupConfigurationFixture{}
	metadata, loadError := configurationLoader.LoadConfiguration("", testDefaultValues(), &loadedConfiguration)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, testFileProbeURLConstant, loadedConfiguration.Cleanup.ProbeURL)
	require.Equal(testInstance, configurationFilePath, metadata.ConfigFileUsed)
}

func TestConfigurationLoaderExpandsHomeDirectoryInConfigurationPath(testInstance *testing.T) {
	homeDirectoryPath := testInstance.TempDir()
	testInstance.Setenv("HOME", homeDirectoryPath)

	configurationFilePath := filepath.Join(homeDirectoryPath, testConfigFileNameConstant)
	require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte(testFileConfigurationConstant), 0o600))

	configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, nil)

	loadedConfiguration := cleanupConfigurationFixture{}
	metadata, loadError := configurationLoader.LoadConfiguration("~/"+testConfigFileNameConstant, testDefaultValues(), &loadedConfiguration)
	require.NoError(testInstance, loadError)
	require.False(testInstance, loadedConfiguration.Cleanup.CheckNetwork)
	require.Equal(testInstance, configurationFilePath, metadata.ConfigFileUsed)
}

func TestConfigurationLoaderRejectsInvalidInput(testInstance *testing.T) {
	testCases := []struct {
		name            string
		embeddedContent string
		filePath        func(testInstance *testing.T) string
		expectedMessage string
	}{
		{
			name: "missing_explicit_file",
			filePath: func(testInstance *testing.T) string {
				return filepath.Join(testInstance.TempDir(), "absent.yaml")
			},
			expectedMessage: "failed to read configuration",
		},
		{
			name:            "malformed_embedded_configuration",
			embeddedContent: "cleanup: [unterminated",
			filePath:        func(*testing.T) string { return "" },
			expectedMessage: "failed to merge embedded configuration",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, nil)
			configurationLoader.SetEmbeddedConfiguration([]byte(testCase.embeddedContent), testConfigurationTypeConstant)

			loadedConfiguration := cleanupConfigurationFixture{}
			_, loadError := configurationLoader.LoadConfiguration(testCase.filePath(testInstance), nil, &loadedConfiguration)
			require.ErrorContains(testInstance, loadError, testCase.expectedMessage)
		})
	}
}
