package cleanup

import (
	"fmt"
	"os"
	"strings"
)

const (
	backupFilePermissionsConstant = 0o644
	backupLineSeparatorConstant   = "\n"
	backupWriteErrorTemplate      = "unable to write branch backup %s: %w"
)

// WriteBranchBackup overwrites backupFilePath with one branch name per line.
func WriteBranchBackup(backupFilePath string, branchNames []string) error {
	content := strings.Join(uniqueBranchNames(branchNames), backupLineSeparatorConstant)
	if len(content) > 0 {
		content += backupLineSeparatorConstant
	}
	if writeError := os.WriteFile(backupFilePath, []byte(content), backupFilePermissionsConstant); writeError != nil {
		return fmt.Errorf(backupWriteErrorTemplate, backupFilePath, writeError)
	}
	return nil
}
