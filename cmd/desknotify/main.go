package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/llehouerou/desknotify/internal/config"
	"github.com/llehouerou/desknotify/internal/errmsg"
	"github.com/llehouerou/desknotify/internal/logging"
	"github.com/llehouerou/desknotify/internal/sound"
	"github.com/llehouerou/desknotify/notify"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpConfigLoad, err))
		os.Exit(1)
	}

	logger := logging.New(os.Stderr, cfg.LogLevel)
	if err := newRootCmd(cfg, logger).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config, logger *log.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "desknotify",
		Short:         "Send interactive desktop notifications",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	open := func() (sender, error) {
		return notify.New(notify.Config{
			AppName:       cfg.AppName,
			ExpireTimeout: cfg.ExpireTimeout(),
			Logger:        logger,
		})
	}

	root.AddCommand(
		NewSendCmd(open, cfg, logger),
		NewSoundsCmd(func() []string { return sound.System().Names() }),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "desknotify %s\n", version)
		},
	}
}
