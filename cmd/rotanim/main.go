package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/rotanim/internal/config"
)

var (
	rows       int
	cols       int
	numKeys    int
	seed       int64
	gradient   string
	interval   time.Duration
	input      string
	inputScale float64
	configFile string
	preset     string
	verbose    bool
	logFile    string
	logOut     *os.File
	// render
	outDir  string
	gifPath string
	svg     bool
	scale   int
	// trace / export-json
	outPath string
	svgPath string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := execute(ctx, newRootCmd()); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		os.Exit(1)
	}
}

// execute runs root and closes the log file on every exit path.
func execute(ctx context.Context, root *cobra.Command) error {
	defer closeLog()
	return root.ExecuteContext(ctx)
}

func closeLog() {
	if logOut != nil {
		logOut.Close()
		logOut = nil
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "rotanim",
		Short:        "animate a matrix through a chain of random rotations",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			var w io.Writer = os.Stderr
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
				if err != nil {
					return err
				}
				logOut = f
				w = f
			} else if cmd.Name() == "play" || cmd == cmd.Root() {
				// The player owns the terminal.
				w = io.Discard
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(w, level)))
			return nil
		},
		RunE: runPlay,
	}

	pf := rootCmd.PersistentFlags()
	pf.IntVar(&rows, "rows", 10, "plaintext rows (and key size)")
	pf.IntVar(&cols, "cols", 10, "plaintext columns")
	pf.IntVar(&numKeys, "keys", 5, "number of rotation keys")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	pf.StringVar(&gradient, "gradient", "gray", "color gradient")
	pf.DurationVar(&interval, "interval", time.Second, "playback interval")
	pf.StringVar(&input, "input", "", "csv plaintext, first row is a header")
	pf.Float64Var(&inputScale, "input-scale", 1, "multiply every input cell")
	pf.StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	pf.StringVar(&logFile, "log-file", "", "append logs to this file")

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "interactive terminal player",
		RunE:  runPlay,
	}

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "play forward headless and write every frame",
		RunE:  runRender,
	}
	renderCmd.Flags().StringVar(&outDir, "out", config.DefaultOutput, "frame directory")
	renderCmd.Flags().StringVar(&gifPath, "gif", "", "also write an animated gif")
	renderCmd.Flags().BoolVar(&svg, "svg", false, "also write svg frames")
	renderCmd.Flags().IntVar(&scale, "scale", config.DefaultScale, "pixels per cell")

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "walk forward and back, print per-step statistics",
		RunE:  runTrace,
	}
	traceCmd.Flags().StringVar(&svgPath, "svg", "", "write the mean plot as svg")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json",
		Short: "dump keys and every step as JSON",
		RunE:  runExportJSON,
	}
	exportJSONCmd.Flags().StringVar(&outPath, "out", "", "output file (default stdout)")

	gradientsCmd := &cobra.Command{
		Use:   "gradients",
		Short: "list available gradients",
		RunE:  listGradients,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	initConfigCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the resolved configuration to a file",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}

	rootCmd.AddCommand(playCmd, renderCmd, traceCmd, exportJSONCmd, gradientsCmd, presetsCmd, initConfigCmd)
	return rootCmd
}

// resolveConfig layers defaults, preset, config file and explicit flags, in
// that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("rows") {
		cfg.Rows = rows
	}
	if flags.Changed("cols") {
		cfg.Cols = cols
	}
	if flags.Changed("keys") {
		cfg.Keys = numKeys
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("gradient") {
		cfg.Gradient = gradient
	}
	if flags.Changed("interval") {
		cfg.IntervalMs = int(interval / time.Millisecond)
	}
	if flags.Changed("input") {
		cfg.Input = input
	}
	if flags.Changed("input-scale") {
		cfg.InputScale = inputScale
	}
	if f := flags.Lookup("scale"); f != nil && f.Changed {
		cfg.Scale = scale
	}
	if f := flags.Lookup("out"); f != nil && f.Changed && cmd.Name() == "render" {
		cfg.Output = outDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
