// internal/appshell/shell.go
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// Main wires a run function to the process: os.Args, stdio, a
// signal-canceled context, and the exit code. Interrupted runs that
// would otherwise report success exit 130.
func Main(run func(context.Context, []string, io.Writer, io.Writer) int) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	if ctx.Err() != nil && code == 0 {
		code = 130
	}

	stop()
	os.Exit(code)
}
