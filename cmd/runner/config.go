package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print or check runner configuration",
}

var configPrintCmd = &cobra.Command{
	Use:   "print",
	Short: "Print the default configuration as YAML",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.OutOrStdout().Write(config.DefaultRunnerYAML())
	},
}

var configCheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a configuration file",
	Long: `Checks a YAML file against the runner schema and its semantic rules.
Use --difficulty to also check the result of applying a preset.`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigCheck,
}

func init() {
	configCheckCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset to apply before checking")
	configCmd.AddCommand(configPrintCmd)
	configCmd.AddCommand(configCheckCmd)
}

func runConfigCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadRunnerFile(args[0])
	if err != nil {
		return err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	config.ApplyRunnerPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %s with %s preset: %w", args[0], preset, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%dx%d viewport, victory at %d)\n",
		args[0], cfg.Viewport.Width, cfg.Viewport.Height, cfg.Gameplay.VictoryScore)
	return nil
}
