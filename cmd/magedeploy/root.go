package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/magedeploy/cmd/magedeploy/commands"
	"github.com/walteh/magedeploy/cmd/magedeploy/opts"
	"github.com/walteh/magedeploy/pkg/log"
)

func newRootCmd() *cobra.Command {
	ro := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:   "magedeploy",
		Short: "Parallel static-asset deployment for Magento stores",
		Long: `magedeploy deploys theme static assets by resolving theme inheritance
chains and copying files directly. Themes that need the real Magento
compilation pipeline are delegated to bin/magento, so a mixed
Hyva/Luma store still deploys in one run.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(setupLogging(cmd.Context(), ro))
		},
	}

	addRootFlags(cmd, ro)

	cmd.AddCommand(
		commands.NewDeployCmd(ro),
		commands.NewThemesCmd(ro),
		commands.NewCleanCmd(ro),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, ro *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&ro.ConfigFile, "config", "c", "", "config file path (default: probe the store root)")
	cmd.PersistentFlags().BoolVar(&ro.Debug, "debug", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&ro.Quiet, "quiet", "q", false, "only print warnings and errors")
}

// setupLogging configures zerolog from the shared flags and hands the
// commands their console logger. Structured logs go to stderr, the
// human-facing console to stdout.
func setupLogging(ctx context.Context, ro *opts.RootOpts) context.Context {
	level := zerolog.InfoLevel
	switch {
	case ro.Debug:
		level = zerolog.DebugLevel
	case ro.Quiet:
		level = zerolog.WarnLevel
	}

	zlog := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	ro.Console = log.New(os.Stdout, level)

	return zlog.WithContext(ctx)
}
