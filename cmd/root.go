// Package cmd provides the root command and CLI setup for scoped.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gooze.dev/pkg/scoped/internal/adapter"
	"gooze.dev/pkg/scoped/internal/controller"
	"gooze.dev/pkg/scoped/internal/scenario"
)

var scriptLoader adapter.ScriptLoader
var runner scenario.Runner
var bencher scenario.Bencher
var ui controller.UI

// logFileFlag overrides the log file location when set.
var logFileFlag string

// verboseFlag switches logging to debug level.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	scriptLoader = adapter.NewFileScriptLoader()
	runner = scenario.NewRunner(viper.GetInt(demoBufferConfigKey))
	bencher = scenario.NewBencher()
}

const scenarioListHelp = `Built-in scenarios:
  - extent    bindings hold for a call's extent and restore on every exit path
  - shadow    nested scopes shadow outer bindings and uncover them on exit
  - typed     binding a value of the wrong type fails before the body runs
  - recurse   recursive rebinding gives each call depth its own value
  - inherit   spawned goroutines see a snapshot of inheritable bindings
  - pool      pool tasks run under the bindings captured at submit time`

const rootLongDescription = `Scoped carries immutable named values for the dynamic extent of a call:
bind values around a function, read them anywhere below it, and hand
snapshots to spawned goroutines. This tool demonstrates the library live
and measures its core operations.

` + scenarioListHelp

const demoLongDescription = `Run demonstration scenarios and narrate every bind, read, spawn, and
check as it happens (default: all scenarios, in order).

` + scenarioListHelp

const benchLongDescription = `Time the core operations: resolution close to and far from the binding
site, wide frames, scope entry and exit, snapshot capture, and snapshot
installation.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scoped",
		Short: "Demonstrate and measure dynamically scoped bindings",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(logFileFlag, viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "log file location")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
