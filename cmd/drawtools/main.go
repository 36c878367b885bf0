package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "drawtools",
		Short:         "Work with DrawTools drawing files",
		SilenceUsage: true,
	}
	root.AddCommand(
		newSampleCmd(),
		newRenderCmd(),
		newConvertCmd(),
		newInspectCmd(),
	)
	return root
}
