package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/ballpit/internal/config"
	"github.com/san-kum/ballpit/internal/export"
	"github.com/san-kum/ballpit/internal/optim"
	"github.com/san-kum/ballpit/internal/scenario"
	"github.com/san-kum/ballpit/internal/sim"
	"github.com/san-kum/ballpit/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	seed       int64
	ticks      int
	numBodies  int
	pairMode   string
	verbose    bool
	// live view
	frameRate int
	// ensemble
	runs int
	// run
	svgPath  string
	svgScale float64
	// sweep
	radii  []float64
	speeds []float64
	metric string
	maxim  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "ballpit",
		Short:         "bouncing ball simulation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Int64Var(&seed, "seed", config.DefaultSeed, "random seed")
	pf.IntVar(&ticks, "ticks", config.DefaultTicks, "number of ticks")
	pf.IntVar(&numBodies, "bodies", config.DefaultBodies, "number of bodies (random, grid and field layouts)")
	pf.StringVar(&pairMode, "pair-mode", config.DefaultPairMode, "pair handling: ordered or unordered")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run simulation headless",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&svgPath, "svg", "", "write body trajectories to an svg file")
	runCmd.Flags().Float64Var(&svgScale, "svg-scale", 1, "svg pixels per world unit")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "run simulation and plot metrics",
		Args:  cobra.NoArgs,
		RunE:  plotRun,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run simulation with live visualization",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark ticks per second",
		Args:  cobra.NoArgs,
		RunE:  benchRun,
	}

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run one simulation per seed in parallel",
		Args:  cobra.NoArgs,
		RunE:  runEnsemble,
	}
	ensembleCmd.Flags().IntVar(&runs, "runs", 8, "number of seeds")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "grid search layout radius and speed for the best metric",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64SliceVar(&radii, "radii", []float64{8, 12, 20}, "body radii to try")
	sweepCmd.Flags().Float64SliceVar(&speeds, "speeds", []float64{0.5, 1, 2}, "max speeds to try")
	sweepCmd.Flags().StringVar(&metric, "metric", "containment", "metric to optimize")
	sweepCmd.Flags().BoolVar(&maxim, "maximize", true, "pick the highest value instead of the lowest")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the resolved configuration as yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, plotCmd, liveCmd, benchCmd, ensembleCmd, sweepCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// resolveConfig applies the preset, then the config file, then any flag the
// user set explicitly.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return nil, err
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.LoadWith(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("ticks") {
		cfg.Ticks = ticks
	}
	if flags.Changed("bodies") {
		cfg.Layout.Count = numBodies
	}
	if flags.Changed("pair-mode") {
		cfg.PairMode = pairMode
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func simulate(cmd *cobra.Command) (*config.Config, *sim.Simulation, *sim.Result, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	logger := newLogger()

	s, err := scenario.New(cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}

	ctx, cancel := signalContext()
	defer cancel()

	logger.Info("running", "bodies", s.Len(), "ticks", cfg.Ticks, "pair_mode", s.PairMode(), "seed", cfg.Seed)
	start := time.Now()
	result, err := s.Run(ctx, cfg.RunConfig())
	if err != nil {
		return nil, nil, nil, err
	}
	logger.Info("completed", "ticks", result.TicksTaken, "elapsed", time.Since(start))

	for _, e := range result.Errors {
		logger.Warn("simulation error", "err", e)
	}
	return cfg, s, result, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, s, result, err := simulate(cmd)
	if err != nil {
		return err
	}

	if svgPath != "" {
		svg := export.TrajectoriesSVG(result.Frames, cfg.World, svgScale)
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgPath)
	}

	fmt.Printf("ticks: %d\n", result.TicksTaken)
	fmt.Println("\nmetrics:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range sortedKeys(result.Metrics) {
		fmt.Fprintf(w, "  %s\t%.6g\n", name, result.Metrics[name])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println("\nbodies:")
	final := result.Final()
	handles := s.Handles()
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "HANDLE\tX\tY\tVX\tVY\tRADIUS")
	for i, b := range final.Bodies {
		id := "-"
		if i < len(handles) {
			id = handles[i].String()
		}
		fmt.Fprintf(w, "%s\t%.3f\t%.3f\t%.3f\t%.3f\t%.1f\n",
			id, b.Position.X, b.Position.Y, b.Velocity.X, b.Velocity.Y, b.Radius)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	_, s, result, err := simulate(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("bodies: %d\n", s.Len())
	fmt.Printf("ticks: %d\n\n", result.TicksTaken)

	for _, name := range []string{"kinetic_energy", "peak_speed", "contacts"} {
		data := result.Series[name]
		if len(data) == 0 {
			continue
		}
		if !allFinite(data) {
			fmt.Printf("%s: diverged, not plotted\n\n", name)
			continue
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	// the TUI owns the terminal, keep logging quiet unless asked
	logger := slog.New(slog.DiscardHandler)
	if verbose {
		logger = newLogger()
	}
	s, err := scenario.New(cfg, logger)
	if err != nil {
		return err
	}

	opts := viz.OptionsFromConfig(cfg)
	if preset != "" {
		opts.Title = "ballpit · " + preset
	}

	p := tea.NewProgram(viz.NewModel(s, opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func benchRun(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger()

	fmt.Printf("benchmarking %d ticks, %s pairs\n\n", cfg.Ticks, cfg.PairMode)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODIES\tTICKS\tTIME\tTICKS/SEC")

	for _, n := range []int{10, 50, 100} {
		c := *cfg
		c.Layout.Kind = "random"
		c.Layout.Count = n
		if c.Layout.Radius <= 0 {
			c.Layout.Radius = config.DefaultRadius
		}
		// divergence checks would end crowded runs early
		c.ValidateState = false

		s, err := scenario.New(&c, logger)
		if err != nil {
			return err
		}

		start := time.Now()
		result, err := s.Run(context.Background(), c.RunConfig())
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\n",
			n, result.TicksTaken, elapsed, float64(result.TicksTaken)/elapsed.Seconds())
	}
	return w.Flush()
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger()

	factory := func(seed int64) (*sim.Simulation, error) {
		c := *cfg
		c.Seed = seed
		return scenario.New(&c, logger)
	}

	ctx, cancel := signalContext()
	defer cancel()

	seeds := sim.Seeds(cfg.Seed, runs)
	start := time.Now()
	results, err := sim.NewEnsemble(factory, cfg.RunConfig(), logger).Run(ctx, seeds)
	if err != nil {
		return err
	}
	logger.Info("ensemble finished", "runs", len(seeds), "elapsed", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tTICKS\tKINETIC\tPEAK\tCONTACTS\tWALL_HITS\tCONTAINED")
	for i, r := range results {
		m := r.Metrics
		fmt.Fprintf(w, "%d\t%d\t%.4g\t%.4g\t%.0f\t%.0f\t%.2f\n",
			seeds[i], r.TicksTaken, m["kinetic_energy"], m["peak_speed"], m["contacts"], m["wall_hits"], m["containment"])
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Layout.Kind == "explicit" {
		return fmt.Errorf("sweep needs a generated layout, %q has explicit bodies", preset)
	}
	logger := newLogger()

	build := func(params map[string]float64) (*sim.Simulation, error) {
		c := *cfg
		c.Layout.Radius = float32(params["radius"])
		c.Layout.MaxSpeed = float32(params["speed"])
		return scenario.New(&c, logger)
	}

	ctx, cancel := signalContext()
	defer cancel()

	g := optim.NewGridSearch([]string{"radius", "speed"}, [][]float64{radii, speeds})
	g.Maximize = maxim
	best, trials, err := g.Search(ctx, build, cfg.RunConfig(), metric)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "RADIUS\tSPEED\tTICKS\t%s\n", metric)
	for _, t := range trials {
		fmt.Fprintf(w, "%g\t%g\t%d\t%.4g\n", t.Params["radius"], t.Params["speed"], t.Ticks, t.Value)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nbest: radius %g, speed %g, %s %.4g\n", best.Params["radius"], best.Params["speed"], metric, best.Value)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tLAYOUT\tBODIES\tPAIRS\tTICKS")
	for _, name := range config.ListPresets() {
		p, err := config.GetPreset(name)
		if err != nil {
			return err
		}
		n := p.Layout.Count
		if p.Layout.Kind == "explicit" {
			n = len(p.Layout.Bodies)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d\n", name, p.Layout.Kind, n, p.PairMode, p.Ticks)
	}
	return w.Flush()
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func allFinite(vals []float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
