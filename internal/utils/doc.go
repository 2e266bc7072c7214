// Package utils holds the ambient plumbing shared by the CLI: the Viper-backed
// ConfigurationLoader, the zap LoggerFactory, and FlushingWriter for console
// streams that must surface each line immediately.
package utils
