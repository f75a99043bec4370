package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/walteh/magedeploy/cmd/magedeploy/commands"
	"gitlab.com/tozd/go/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	if err == nil {
		return
	}

	var exit *commands.ErrExit
	if errors.As(err, &exit) {
		os.Exit(exit.Code)
	}

	fmt.Fprintf(os.Stderr, "magedeploy: %v\n", err)
	os.Exit(1)
}
