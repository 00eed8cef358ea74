package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/rotanim/internal/config"
	"github.com/san-kum/rotanim/internal/export"
	"github.com/san-kum/rotanim/internal/linalg"
	"github.com/san-kum/rotanim/internal/metrics"
	"github.com/san-kum/rotanim/internal/plaintext"
	"github.com/san-kum/rotanim/internal/playback"
	"github.com/san-kum/rotanim/internal/render"
	"github.com/san-kum/rotanim/internal/session"
	"github.com/san-kum/rotanim/internal/viz"
)

// sessionOptions turns cfg into session options, loading the csv input when
// one is configured.
func sessionOptions(ctx context.Context, cfg *config.Config) (session.Options, error) {
	logger := loggerFromContext(ctx)
	opts := session.Options{
		Rows:     cfg.Rows,
		Cols:     cfg.Cols,
		Keys:     cfg.Keys,
		Seed:     cfg.Seed,
		Gradient: cfg.Gradient,
		Logger:   logger,
	}
	if cfg.Input == "" {
		return opts, nil
	}
	pt, report, err := plaintext.Load(cfg.Input, plaintext.Options{Scale: cfg.InputScale})
	if err != nil {
		return opts, err
	}
	for _, s := range report.Skipped {
		logger.Warn("skipped input row", "file", cfg.Input, "line", s.Line, "err", s.Err)
	}
	logger.Info("loaded input", "file", cfg.Input, "rows", report.Rows, "cols", report.Cols,
		"short", report.Short, "skipped", len(report.Skipped))
	opts.Plaintext = pt
	return opts, nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := sessionOptions(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	m, err := viz.NewPlayer(opts, cfg.Interval())
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := sessionOptions(ctx, cfg)
	if err != nil {
		return err
	}

	loop := playback.NewLoop()
	defer loop.Close()
	sess, err := session.New(opts, loop)
	if err != nil {
		return err
	}
	defer sess.Close()

	pngs, err := export.NewPNGSink(cfg.Output, cfg.Scale)
	if err != nil {
		return err
	}
	sess.AddSink(pngs)

	var rec *export.GIFRecorder
	if gifPath != "" {
		delay := cfg.IntervalMs / 10
		if cfg.IntervalMs == 0 {
			delay = int(playback.DefaultInterval.Milliseconds() / 10)
		}
		rec = export.NewGIFRecorder(cfg.Scale, delay)
		sess.AddSink(rec)
	}
	if svg {
		svgs, err := export.NewSVGSink(cfg.Output, float64(cfg.Scale))
		if err != nil {
			return err
		}
		sess.AddSink(svgs)
	}

	prog := newProgress(logger)
	if err := sess.Render(); err != nil {
		return err
	}
	ctrl := sess.Controller()
	ctrl.PlayForward(cfg.Interval())
	if err := loop.Run(ctx); err != nil {
		return err
	}
	if err := ctrl.Err(); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d frames to %s", pngs.Frames(), cfg.Output))

	if rec != nil {
		if err := rec.Save(gifPath); err != nil {
			return err
		}
		logger.Info("wrote gif", "path", gifPath, "frames", rec.Len())
	}
	return nil
}

func runTrace(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := sessionOptions(ctx, cfg)
	if err != nil {
		return err
	}
	sess, err := session.New(opts, playback.NewLoop())
	if err != nil {
		return err
	}
	defer sess.Close()

	c := sess.Chain()
	trace := metrics.NewTrace()
	drift := metrics.NewNormDrift()
	trace.OnStep(c.Index(), c.CurrentView())
	drift.Observe(c.Index(), c.CurrentView())
	c.AddObserver(trace)
	c.AddObserver(metrics.Set{drift})

	for c.StepForward() {
	}
	forwardErr := linalg.MaxAbsDiff(c.CurrentView(), c.Ciphertext())
	for !c.AtStart() {
		if _, err := c.StepBackward(); err != nil {
			return err
		}
	}
	roundTrip := linalg.MaxAbsDiff(c.CurrentView(), c.Plaintext())

	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tMIN\tMAX\tMEAN\tSTDDEV\tNORM")
	for _, s := range trace.Frames() {
		fmt.Fprintf(w, "%d\t%.4f\t%.4f\t%.4f\t%.4f\t%.6f\n", s.Index, s.Min, s.Max, s.Mean, s.StdDev, s.Norm)
	}
	w.Flush()

	means := trace.Series(func(s metrics.Stats) float64 { return s.Mean })
	if len(means) > 1 {
		graph := asciigraph.Plot(means,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("mean per frame"),
		)
		fmt.Fprintln(out)
		fmt.Fprintln(out, graph)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "keys: %d  seed: %d\n", c.Len(), sess.Seed())
	fmt.Fprintf(out, "forward error: %.3e\n", forwardErr)
	fmt.Fprintf(out, "round trip error: %.3e\n", roundTrip)
	fmt.Fprintf(out, "norm drift: %.3e\n", drift.Value())

	if svgPath != "" {
		doc := export.SeriesToSVG(means, 640, 240, "#00ff88")
		if err := os.WriteFile(svgPath, []byte(doc), 0644); err != nil {
			return err
		}
	}
	return nil
}

func runExportJSON(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := sessionOptions(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	sess, err := session.New(opts, playback.NewLoop())
	if err != nil {
		return err
	}
	defer sess.Close()

	data := export.Collect(sess.Chain(), sess.ID.String(), sess.Seed())
	if outPath == "" {
		return export.WriteJSON(cmd.OutOrStdout(), data)
	}
	if err := export.ExportJSON(outPath, data); err != nil {
		return err
	}
	loggerFromContext(cmd.Context()).Info("exported", "path", outPath, "steps", len(data.Steps))
	return nil
}

const swatchWidth = 24

func listGradients(cmd *cobra.Command, args []string) error {
	reg := render.DefaultRegistry()
	ramp, err := linalg.New(1, swatchWidth)
	if err != nil {
		return err
	}
	for i := 0; i < swatchWidth; i++ {
		ramp.Set(0, i, float64(i)/float64(swatchWidth-1))
	}

	out := cmd.OutOrStdout()
	for _, name := range reg.Names() {
		r := render.NewRenderer(reg, 1, swatchWidth, name)
		px, err := r.Render(ramp)
		if err != nil {
			return err
		}
		marker := " "
		if name == reg.Default().Name {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %-10s %s\n", marker, name, viz.HalfBlocks(px, swatchWidth, 1))
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	names := config.ListPresets()
	sort.Strings(names)
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tROWS\tCOLS\tKEYS\tINTERVAL\tGRADIENT")
	for _, name := range names {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\t%s\n", name, p.Rows, p.Cols, p.Keys, p.Interval(), p.Gradient)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	loggerFromContext(cmd.Context()).Info("wrote config", "path", args[0])
	return nil
}
