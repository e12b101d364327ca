package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/handiism/music-catalog/internal/crud"
)

// Exit codes.
const (
	exitOK         = 0
	exitFailure    = 1
	exitValidation = 2
	exitCancelled  = 130
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp(os.Stdout, os.Stderr)
	err := newRootCmd(a).ExecuteContext(ctx)
	a.close()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", crud.UserMessage(err))
	}
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	var verr *crud.ValidationError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &verr):
		return exitValidation
	case errors.Is(err, context.Canceled):
		return exitCancelled
	}
	return exitFailure
}
