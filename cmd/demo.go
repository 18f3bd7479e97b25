package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gooze.dev/pkg/scoped/internal/controller"
	m "gooze.dev/pkg/scoped/internal/model"
	"gooze.dev/pkg/scoped/internal/scenario"
)

var scenarioFlags []string
var scriptFlag string
var demoWorkersFlag int
var plainFlag bool

// demoCmd represents the demo command.
var demoCmd = newDemoCmd()

func newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo [scenarios...]",
		Short: "Run binding demonstration scenarios",
		Long:  demoLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			workers := viper.GetInt(demoWorkersConfigKey)

			scenarios, err := selectScenarios(append(args, scenarioFlags...), scriptFlag, workers)
			if err != nil {
				return err
			}

			out := ui
			if plainFlag {
				out = controller.NewSimpleUI(cmd)
			}

			return runDemo(context.Background(), out, scenarios, workers)
		},
	}

	configureDemoFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func configureDemoFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&scenarioFlags, scenarioFlagName, "s", nil, "scenario to run (can be repeated; default: all)")
	cmd.Flags().StringVar(&scriptFlag, scriptFlagName, "", "run a scripted scenario from a YAML file")
	cmd.Flags().IntVarP(&demoWorkersFlag, workersFlagName, "w", viper.GetInt(demoWorkersConfigKey), "goroutines the spawning scenarios fan out to")
	bindFlagToConfig(cmd.Flags().Lookup(workersFlagName), demoWorkersConfigKey)
	cmd.Flags().BoolVar(&plainFlag, plainFlagName, false, "plain text output even on a terminal")
}

// selectScenarios resolves names and an optional script file into the
// scenarios to run. With no selection at all, every built-in runs.
func selectScenarios(names []string, scriptPath string, workers int) ([]scenario.Scenario, error) {
	var scenarios []scenario.Scenario

	for _, name := range names {
		s, err := scenario.ByName(name, workers)
		if err != nil {
			return nil, err
		}

		scenarios = append(scenarios, s)
	}

	if scriptPath != "" {
		script, err := scriptLoader.Load(scriptPath)
		if err != nil {
			return nil, err
		}

		s, err := scenario.NewScripted(script)
		if err != nil {
			return nil, err
		}

		scenarios = append(scenarios, s)
	}

	if len(scenarios) == 0 {
		return scenario.All(workers), nil
	}

	return scenarios, nil
}

func runDemo(ctx context.Context, out controller.UI, scenarios []scenario.Scenario, workers int) error {
	if err := out.Start(ctx, controller.WithDemoMode()); err != nil {
		return err
	}
	defer out.Close(ctx)

	names := make([]string, 0, len(scenarios))
	for _, s := range scenarios {
		names = append(names, s.Name())
	}

	out.DisplayRunInfo(ctx, names, workers)

	passed, failed := 0, 0

	for event := range runner.Stream(ctx, scenarios) {
		out.DisplayEvent(ctx, event)

		if event.Kind != m.EventCheck || event.Verdict == nil {
			continue
		}

		switch event.Verdict.Status {
		case m.CheckPassed:
			passed++
		case m.CheckFailed:
			failed++
		case m.CheckSkipped:
		}
	}

	out.DisplaySummary(ctx, passed, failed)
	out.Wait(ctx)

	if failed > 0 {
		return fmt.Errorf("%d of %d checks failed", failed, passed+failed)
	}

	return nil
}
