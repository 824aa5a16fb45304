// Command mazegen generates random perfect mazes.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/mazegen/internal/cli"
	apperrors "github.com/matzehuels/mazegen/pkg/errors"
)

// Exit codes.
const (
	exitOK          = 0
	exitFailure     = 1
	exitInvalidArgs = 2
	exitInterrupted = 130 // shell convention for SIGINT
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx)
	stop()
	os.Exit(code)
}

func run(ctx context.Context) int {
	c := cli.New(os.Stderr, cli.LogInfo)
	err := c.RootCommand().ExecuteContext(ctx)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	}

	c.Logger.Error(apperrors.UserMessage(err))
	c.Logger.Debug("error detail", "err", err)
	if apperrors.IsValidation(err) {
		return exitInvalidArgs
	}
	return exitFailure
}
