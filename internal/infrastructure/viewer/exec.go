package viewer

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"slices"

	"github.com/katcli/kat/internal/application/ports"
	"github.com/katcli/kat/internal/domain/entities"
)

// Ensure interface compliance
var _ ports.Viewer = (*ExecViewer)(nil)

// ExecViewer renders a file by running an external program with the file
// path appended to its arguments.
type ExecViewer struct {
	command string
	args    []string
}

// NewExecViewer creates a viewer for command. args are passed before the
// file path on every invocation.
func NewExecViewer(command string, args ...string) *ExecViewer {
	return &ExecViewer{command: command, args: slices.Clone(args)}
}

// Name returns the program name.
func (v *ExecViewer) Name() string {
	return v.command
}

// Args returns a copy of the fixed arguments.
func (v *ExecViewer) Args() []string {
	return slices.Clone(v.args)
}

// Render runs the program and waits for it. A failure to start the process
// reports ExitCode -1.
func (v *ExecViewer) Render(ctx context.Context, path string, stdout, stderr io.Writer) error {
	args := append(slices.Clone(v.args), path)

	cmd := exec.CommandContext(ctx, v.command, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		code := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		return &entities.ViewerInvocationError{
			Viewer:   v.command,
			Path:     path,
			ExitCode: code,
			Cause:    err,
		}
	}
	return nil
}
