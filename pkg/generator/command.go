package generator

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/blimu-dev/docs-gen/pkg/errors"
)

// executeCommand executes a single command in Docker Compose array format
func executeCommand(ctx context.Context, command []string, workDir, commandLabel string) error {
	if len(command) == 0 {
		return nil
	}

	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	cmd.Dir = workDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return errors.NewProcessError(commandLabel, strings.Join(command, " "), "", err)
	}
	return nil
}
