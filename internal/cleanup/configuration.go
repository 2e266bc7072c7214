package cleanup

import "strings"

const (
	defaultLogFileNameConstant    = "cleanup.log"
	defaultBackupFileNameConstant = "branch_backup.txt"
	defaultProbeURLConstant       = "https://github.com"
	logFileConfigKeyConstant      = "log_file"
	backupFileConfigKeyConstant   = "backup_file"
	checkNetworkConfigKeyConstant = "check_network"
	probeURLConfigKeyConstant     = "probe_url"
	requireKnownConfigKeyConstant = "require_known_primary"
	configurationKeySeparator     = "."
)

// CommandConfiguration captures persistent settings for the cleanup command.
type CommandConfiguration struct {
	LogFile             string `mapstructure:"log_file"`
	BackupFile          string `mapstructure:"backup_file"`
	CheckNetwork        bool   `mapstructure:"check_network"`
	ProbeURL            string `mapstructure:"probe_url"`
	RequireKnownPrimary bool   `mapstructure:"require_known_primary"`
}

// DefaultCommandConfiguration returns baseline configuration values for the cleanup command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		LogFile:             defaultLogFileNameConstant,
		BackupFile:          defaultBackupFileNameConstant,
		CheckNetwork:        true,
		ProbeURL:            defaultProbeURLConstant,
		RequireKnownPrimary: false,
	}
}

// DefaultConfigurationValues exposes the defaults as Viper keys nested under configurationPrefix.
func DefaultConfigurationValues(configurationPrefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		qualifyConfigurationKey(configurationPrefix, logFileConfigKeyConstant):      defaults.LogFile,
		qualifyConfigurationKey(configurationPrefix, backupFileConfigKeyConstant):   defaults.BackupFile,
		qualifyConfigurationKey(configurationPrefix, checkNetworkConfigKeyConstant): defaults.CheckNetwork,
		qualifyConfigurationKey(configurationPrefix, probeURLConfigKeyConstant):     defaults.ProbeURL,
		qualifyConfigurationKey(configurationPrefix, requireKnownConfigKeyConstant): defaults.RequireKnownPrimary,
	}
}

// Sanitize trims whitespace and restores defaults for empty values.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	defaults := DefaultCommandConfiguration()
	sanitized := configuration

	sanitized.LogFile = strings.TrimSpace(configuration.LogFile)
	if len(sanitized.LogFile) == 0 {
		sanitized.LogFile = defaults.LogFile
	}

	sanitized.BackupFile = strings.TrimSpace(configuration.BackupFile)
	if len(sanitized.BackupFile) == 0 {
		sanitized.BackupFile = defaults.BackupFile
	}

	sanitized.ProbeURL = strings.TrimSpace(configuration.ProbeURL)
	if len(sanitized.ProbeURL) == 0 {
		sanitized.ProbeURL = defaults.ProbeURL
	}

	return sanitized
}

func qualifyConfigurationKey(configurationPrefix string, configurationKey string) string {
	trimmedPrefix := strings.TrimSpace(configurationPrefix)
	if len(trimmedPrefix) == 0 {
		return configurationKey
	}
	return trimmedPrefix + configurationKeySeparator + configurationKey
}
