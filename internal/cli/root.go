package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/digitprobe/internal/infra/logger"
)

type globalOptions struct {
	debug      bool
	configPath string
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	cmd := newRootCmd()
	err := cmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", userMessage(err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globalOptions{}
	probe := &probeOptions{}

	cmd := &cobra.Command{
		Use:   "digitprobe",
		Short: "digitprobe: check an embedded MNIST classifier against a labeled sample",
		Long: "Loads one sample of the MNIST test set, sends its pixels to the classifier\n" +
			"endpoint and shows the true label next to the prediction.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProbe(cmd, g, probe)
		},
	}

	cmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "enable verbose logging to .digitprobe/logs/digitprobe.log")
	cmd.PersistentFlags().StringVar(&g.configPath, "config", "", "path to digitprobe.yaml (optional; searched upward from the working directory)")
	probe.bind(cmd)

	cmd.AddCommand(sampleCmd(g))
	cmd.AddCommand(initCmd())
	cmd.AddCommand(versionCmd())
	return cmd
}

// setupLogging starts the file logger under root. Failures leave logging discarded.
func setupLogging(root string, debug bool) func() {
	cleanup, _ := logger.Setup(logger.Config{
		Root:  root,
		Debug: debug,
	})
	return func() {
		if cleanup != nil {
			_ = cleanup()
		}
	}
}
