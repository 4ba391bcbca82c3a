package mover

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
)

// Runner executes an external command. The whole tool is orchestration over
// rsync/ssh/mysqldump/mysql binaries, and this is the single seam where they are
// invoked, so everything above it can be tested with a mock.
type Runner interface {
	// Run executes name with args, wiring in to the command's stdin and out to its
	// stdout when non-nil. Stderr is captured and folded into the returned error.
	Run(ctx context.Context, in io.Reader, out io.Writer, name string, args ...string) error
}

// ExecRunner runs commands on the local machine.
type ExecRunner struct{}

func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

func (r *ExecRunner) Run(ctx context.Context, in io.Reader, out io.Writer, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = in
	cmd.Stdout = out

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return fmt.Errorf("%s: %w: %s", name, err, stderr.String())
		}
		return fmt.Errorf("%s: %w", name, err)
	}

	return nil
}
