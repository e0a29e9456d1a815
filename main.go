package main

import (
	"fmt"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/spf13/cobra"

	"github.com/pthm-cable/estatic/config"
	"github.com/pthm-cable/estatic/game"
	"github.com/pthm-cable/estatic/telemetry"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "estatic",
		Short: "Interactive electrostatic field viewer",
		Long: `estatic paints integer charges on a grid and shows the resulting
electric field, potential and field lines, recomputed incrementally as
charges change.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd)
		},
		RunE: runViewer,
	}

	rootCmd.PersistentFlags().String("config", "", "Path to config.yaml (empty = use defaults)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: info, debug, trace")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text, json")
	rootCmd.PersistentFlags().String("output-dir", "", "Output directory for CSV logs and config snapshot")

	rootCmd.AddCommand(newExportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup installs the default logger and loads the config.
func setup(cmd *cobra.Command) error {
	level, _ := cmd.Flags().GetString("log-level")
	format, _ := cmd.Flags().GetString("log-format")
	out := os.Stderr
	if format == "json" {
		out = os.Stdout
	}
	slog.SetDefault(telemetry.NewLogger(level, format, out))

	configPath, _ := cmd.Flags().GetString("config")
	if err := config.Init(configPath); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	return nil
}

func runViewer(cmd *cobra.Command, args []string) error {
	cfg := config.Cfg()
	outputDir, _ := cmd.Flags().GetString("output-dir")

	grid, err := game.NewGridFromConfig(cfg)
	if err != nil {
		return err
	}

	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Electrostatics")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGame(cfg, grid, game.Options{OutputDir: outputDir})
	if err != nil {
		return err
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}
	return nil
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Solve and trace headless, then write CSV output",
		Long: `export builds the configured scene, solves the field, traces every
field line and writes charges.csv, field.csv, lines.csv, stats.csv,
perf.csv and config.yaml into --output-dir.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputDir, _ := cmd.Flags().GetString("output-dir")
			if outputDir == "" {
				return fmt.Errorf("export requires --output-dir")
			}

			cfg := config.Cfg()
			grid, err := game.NewGridFromConfig(cfg)
			if err != nil {
				return err
			}
			_, err = game.Export(cfg, grid, outputDir)
			return err
		},
	}
}
