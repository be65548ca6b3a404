package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Exit codes
const (
	exitSuccess = 0
	exitError   = 1
	exitWarning = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+err.Error()))
		var warnErr *warningError
		if errors.As(err, &warnErr) {
			os.Exit(exitWarning)
		}
		os.Exit(exitError)
	}
	os.Exit(exitSuccess)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "latticegraph",
		Short: "Extract conduction networks from periodic crystal structures",
		Long: `latticegraph tiles a unit cell along one axis, finds the atoms that carry
a conduction path across the periodic boundary and exports the resulting
directed network for circuit emitters.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newBuildCmd(), newInspectCmd())
	return root
}
