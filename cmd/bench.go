package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gooze.dev/pkg/scoped/internal/controller"
	"gooze.dev/pkg/scoped/internal/scenario"
)

var benchDepthFlag int
var benchWidthFlag int
var benchIterationsFlag int

// benchCmd represents the bench command.
var benchCmd = newBenchCmd()

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure resolution and snapshot costs",
		Long:  benchLongDescription,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()

			rows, err := bencher.Run(ctx, scenario.BenchOptions{
				Depth:      viper.GetInt(benchDepthConfigKey),
				Width:      viper.GetInt(benchWidthConfigKey),
				Iterations: viper.GetInt(benchIterationsConfigKey),
			})
			if err != nil {
				return err
			}

			if err := ui.Start(ctx, controller.WithBenchMode()); err != nil {
				return err
			}
			defer ui.Close(ctx)

			return ui.DisplayBenchRows(ctx, rows)
		},
	}

	configureBenchFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(benchCmd)
}

func configureBenchFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&benchDepthFlag, depthFlagName, viper.GetInt(benchDepthConfigKey), "nesting depth for the chain-walk and capture measurements")
	bindFlagToConfig(cmd.Flags().Lookup(depthFlagName), benchDepthConfigKey)

	cmd.Flags().IntVar(&benchWidthFlag, widthFlagName, viper.GetInt(benchWidthConfigKey), "bindings per frame for the wide-frame measurement")
	bindFlagToConfig(cmd.Flags().Lookup(widthFlagName), benchWidthConfigKey)

	cmd.Flags().IntVar(&benchIterationsFlag, iterationsFlagName, viper.GetInt(benchIterationsConfigKey), "iterations per measurement")
	bindFlagToConfig(cmd.Flags().Lookup(iterationsFlagName), benchIterationsConfigKey)
}
