package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/gravsim/internal/analysis"
	"github.com/san-kum/gravsim/internal/automation"
	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/export"
	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/nbody"
	"github.com/san-kum/gravsim/internal/scene"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/timescale"
	"github.com/san-kum/gravsim/internal/viz"
)

var (
	configFile string
	preset     string
	verbose    bool

	tick      float64
	duration  float64
	speed     float64
	scheme    string
	collision string
	workers   int
	seed      int64
	prime     bool
	reverse   bool
	random    int

	runSample     int
	analyzeSample int
	svgSample     int
	plot          bool
	csvOut        bool
	jsonOut       bool
	scriptFile    string

	body      int
	lyapunov  bool
	writePath string
	outPath   string
	axes      string
	canvasOut string
	theme     string
	benchN    []int
	benchStep int
	benchSeed int64
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "gravsim",
		Short:        "n-body gravity simulator",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive()
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a scene headless and print a summary",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addSceneFlags(runCmd)
	runCmd.Flags().IntVar(&runSample, "sample", 8, "record positions every n ticks")
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot energy over the run")
	runCmd.Flags().BoolVar(&csvOut, "csv", false, "write samples as CSV to stdout")
	runCmd.Flags().BoolVar(&jsonOut, "json", false, "write samples as JSON to stdout")
	runCmd.Flags().StringVar(&scriptFile, "script", "", "replay scripted input (yaml)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive terminal view",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addSceneFlags(liveCmd)
	liveCmd.Flags().StringVar(&theme, "theme", "", "colour theme: "+strings.Join(viz.ThemeNames(), ", "))

	presetsCmd := &cobra.Command{
		Use:   "presets [name]",
		Short: "list presets, or write one as a config file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}
	presetsCmd.Flags().StringVar(&writePath, "write", "", "write the named preset to this path")

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "orbital period and trajectory of one body",
		Args:  cobra.NoArgs,
		RunE:  analyzeRun,
	}
	addSceneFlags(analyzeCmd)
	analyzeCmd.Flags().IntVar(&analyzeSample, "sample", 1, "record positions every n ticks")
	analyzeCmd.Flags().IntVar(&body, "body", 1, "body index")
	analyzeCmd.Flags().BoolVar(&lyapunov, "lyapunov", false, "also estimate the largest Lyapunov exponent")

	compareCmd := &cobra.Command{
		Use:   "compare [policy...]",
		Short: "run a scene under each collision policy concurrently",
		RunE:  comparePolicies,
	}
	addSceneFlags(compareCmd)

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark serial and parallel accumulation",
		Args:  cobra.NoArgs,
		RunE:  benchWorld,
	}
	benchCmd.Flags().IntSliceVar(&benchN, "bodies", []int{32, 128, 512}, "body counts")
	benchCmd.Flags().IntVar(&benchStep, "steps", 50, "steps per measurement")
	benchCmd.Flags().Int64Var(&benchSeed, "seed", 1, "random seed")

	svgCmd := &cobra.Command{
		Use:   "svg",
		Short: "render trajectories as svg",
		Args:  cobra.NoArgs,
		RunE:  renderSVG,
	}
	addSceneFlags(svgCmd)
	svgCmd.Flags().IntVar(&svgSample, "sample", 2, "record positions every n ticks")
	svgCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	svgCmd.Flags().StringVar(&axes, "axes", "xy", "projection plane: xy, xz or yz")
	svgCmd.Flags().StringVar(&canvasOut, "canvas", "", "also write the final frame as a braille-canvas svg to this path")

	rootCmd.AddCommand(runCmd, liveCmd, presetsCmd, analyzeCmd, compareCmd, benchCmd, svgCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSceneFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64Var(&tick, "tick", config.DefaultTick, "wall-clock tick in seconds")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "wall-clock duration in seconds")
	cmd.Flags().Float64Var(&speed, "speed", 1, "initial speed factor")
	cmd.Flags().StringVar(&scheme, "scheme", config.DefaultScheme, "integration scheme: verlet or euler")
	cmd.Flags().StringVar(&collision, "collision", config.DefaultPolicy, "contact policy: "+strings.Join(nbody.PolicyNames(), ", "))
	cmd.Flags().IntVar(&workers, "workers", config.DefaultWorkers, "accumulation goroutines")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed")
	cmd.Flags().BoolVar(&prime, "prime", false, "compute accelerations before the first tick")
	cmd.Flags().BoolVar(&reverse, "allow-reverse", false, "let speed go negative")
	cmd.Flags().IntVar(&random, "random", 0, "scatter this many extra bodies")
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadConfig resolves preset, then config file, then explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	// config file overrides preset
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("tick") {
		cfg.Tick = tick
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("speed") {
		cfg.Timescale.Speed = speed
	}
	if flags.Changed("scheme") {
		cfg.Scheme = scheme
	}
	if flags.Changed("collision") {
		cfg.Collision = collision
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("prime") {
		cfg.Prime = prime
	}
	if flags.Changed("allow-reverse") {
		cfg.Timescale.AllowReverse = reverse
	}
	if flags.Changed("random") {
		cfg.Random.Count = random
		if cfg.Random.Radius == 0 {
			cfg.Random.Radius, cfg.Random.Density, cfg.Random.Extent = cfg.Spawn.Radius, cfg.Spawn.Density, cfg.Spawn.Extent
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func standardMetrics() []sim.Metric {
	return []sim.Metric{
		metrics.NewEnergyDrift(),
		metrics.NewMomentumDrift(),
		metrics.NewContacts(),
	}
}

// headless builds the configured scene and runs it to completion.
func headless(cmd *cobra.Command, every int) (*config.Config, *scene.Scene, *sim.Result, error) {
	log := newLogger()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	s, err := scene.Build(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	clock := timescale.New(cfg.ClockOptions())

	runner := sim.New(log)
	for _, m := range standardMetrics() {
		runner.AddMetric(m)
	}
	runner.AddMetric(metrics.NewBounded(4 * sceneSize(s)))

	if scriptFile != "" {
		script, err := automation.LoadScript(scriptFile)
		if err != nil {
			return nil, nil, nil, err
		}
		runner.SetController(automation.NewPlayer(script, clock, func() error {
			_, err := s.Spawn()
			return err
		}))
	}

	ctx, cancel := signalContext()
	defer cancel()

	result, err := runner.Run(ctx, s.World, clock, sim.Config{
		Tick:          cfg.Tick,
		Duration:      cfg.Duration,
		SampleEvery:   every,
		ValidateState: true,
	})
	if err != nil {
		return nil, nil, nil, err
	}
	for _, e := range result.Errors {
		log.Warn("simulation error", "err", e)
	}
	return cfg, s, result, nil
}

// sceneSize is the distance of the farthest body from the centre of mass.
func sceneSize(s *scene.Scene) float64 {
	com := s.World.CenterOfMass()
	size := 0.0
	for _, p := range s.World.Positions() {
		size = max(size, p.Sub(com).Len())
	}
	if size == 0 {
		size = s.Spawner.Extent()
	}
	return size
}

func runSimulation(cmd *cobra.Command, args []string) error {
	if csvOut && jsonOut {
		return fmt.Errorf("--csv and --json are mutually exclusive")
	}

	start := time.Now()
	cfg, s, result, err := headless(cmd, runSample)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	switch {
	case csvOut:
		return export.WriteCSV(os.Stdout, result)
	case jsonOut:
		return export.WriteJSON(os.Stdout, export.RunInfo{
			Scene:     cfg.Name,
			Scheme:    cfg.Scheme,
			Collision: cfg.Collision,
			Tick:      cfg.Tick,
			Duration:  cfg.Duration,
		}, result)
	}

	fmt.Printf("scene %s: %d bodies, %s, collision %s\n", cfg.Name, s.World.Len(), cfg.Scheme, cfg.Collision)
	fmt.Printf("completed in %v\n\n", elapsed)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ticks\t%d\n", result.Ticks)
	fmt.Fprintf(w, "sim time\t%.1fs\n", result.SimTime)
	fmt.Fprintf(w, "energy drift\t%.3e\n", result.EnergyDrift)
	for _, m := range []string{"energy_drift", "momentum_drift", "max_contacts", "bounded"} {
		fmt.Fprintf(w, "%s\t%.6g\n", m, result.Metrics[m])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if plot && len(result.Samples) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(result.Energies(),
			asciigraph.Height(12),
			asciigraph.Width(70),
			asciigraph.Caption("total energy"),
		))
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	if theme != "" {
		viz.SetTheme(theme)
	}
	if preset == "" && configFile == "" {
		return viz.RunInteractive()
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s, err := scene.Build(cfg)
	if err != nil {
		return err
	}
	return viz.RunLive(s, timescale.New(cfg.ClockOptions()), cfg.Tick)
}

func listPresets(cmd *cobra.Command, args []string) error {
	if writePath != "" {
		if len(args) == 0 {
			return fmt.Errorf("--write needs a preset name")
		}
		cfg := config.GetPreset(args[0])
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
		}
		if err := config.Save(writePath, cfg); err != nil {
			return err
		}
		fmt.Printf("wrote %s to %s\n", args[0], writePath)
		return nil
	}

	names := config.ListPresets()
	if len(args) == 1 {
		if config.GetPreset(args[0]) == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", args[0], names)
		}
		names = args
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBODIES\tSCHEME\tCOLLISION\tDURATION")
	for _, name := range names {
		p := config.Presets[name]
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%.0fs\n", name, len(p.Bodies)+p.Random.Count, p.Scheme, p.Collision, p.Duration)
	}
	return w.Flush()
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	cfg, s, result, err := headless(cmd, analyzeSample)
	if err != nil {
		return err
	}
	if body < 0 || body >= s.World.Len() {
		return fmt.Errorf("body %d out of range (scene has %d)", body, s.World.Len())
	}

	xs, ys, zs := result.Series(body, 0), result.Series(body, 1), result.Series(body, 2)
	if len(xs) < 4 {
		return fmt.Errorf("not enough samples: %d", len(xs))
	}
	dt := result.SampleDt()

	fmt.Printf("orbit analysis: %s body %d (%d samples, %.2fs apart)\n\n", cfg.Name, body, len(xs), dt)

	ps := analysis.PowerSpectrum(xs)
	if len(ps) > 4 {
		fmt.Println(asciigraph.Plot(ps[:len(ps)/4],
			asciigraph.Height(12),
			asciigraph.Width(70),
			asciigraph.Caption("power spectrum (x)"),
		))
		fmt.Println()
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	rate := cfg.Scales.TimeSpeed * cfg.Timescale.Speed
	for k, series := range [][]float64{xs, ys, zs} {
		p := analysis.DominantPeriod(series, dt)
		if p <= 0 {
			continue
		}
		if rate > 0 {
			fmt.Fprintf(w, "period (%c)\t%.1fs\t%.3f wall s\n", "xyz"[k], p, p/rate)
		} else {
			fmt.Fprintf(w, "period (%c)\t%.1fs\n", "xyz"[k], p)
		}
	}
	if lyapunov {
		lambda := analysis.LyapunovExponent(s.World, body, 1e-6*sceneSize(s), cfg.Tick*cfg.Scales.TimeSpeed, result.Ticks)
		fmt.Fprintf(w, "lyapunov\t%.3e /s\n", lambda)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("orbit (x, y)")
	fmt.Print(analysis.PhasePortraitToASCII(analysis.NewOrbitPlot(xs, ys), 60, 20))

	// section through the body's mean y
	mean := 0.0
	for _, y := range ys {
		mean += y
	}
	mean /= float64(len(ys))
	fmt.Println()
	fmt.Println("poincare section (x, z) at y rising through its mean")
	fmt.Println(analysis.PoincareSectionToASCII(analysis.NewPoincareSection(xs, zs, ys, mean), 60, 12))
	return nil
}

func comparePolicies(cmd *cobra.Command, args []string) error {
	policies := args
	if len(policies) == 0 {
		policies = nbody.PolicyNames()
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	jobs := make([]sim.Job, 0, len(policies))
	for _, name := range policies {
		c := cfg.Clone()
		c.Collision = name
		s, err := scene.Build(c)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		jobs = append(jobs, sim.Job{
			Name:    name,
			World:   s.World,
			Clock:   timescale.New(c.ClockOptions()),
			Metrics: standardMetrics(),
		})
	}

	ctx, cancel := signalContext()
	defer cancel()

	start := time.Now()
	results, err := sim.NewEnsemble(sim.New(newLogger()), runtime.NumCPU()).Run(ctx, jobs, sim.Config{
		Tick:          cfg.Tick,
		Duration:      cfg.Duration,
		ValidateState: true,
	})
	if err != nil {
		return err
	}

	fmt.Printf("comparing collision policies for %s (tick=%.4f, duration=%.1fs) in %v\n\n", cfg.Name, cfg.Tick, cfg.Duration, time.Since(start))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "POLICY\tENERGY_DRIFT\tMOMENTUM_DRIFT\tMAX_CONTACTS\tERRORS")
	for i, r := range results {
		fmt.Fprintf(w, "%s\t%.3e\t%.3e\t%.0f\t%d\n", jobs[i].Name,
			r.Metrics["energy_drift"], r.Metrics["momentum_drift"], r.Metrics["max_contacts"], len(r.Errors))
	}
	return w.Flush()
}

func benchWorld(cmd *cobra.Command, args []string) error {
	counts := []int{1, runtime.NumCPU()}
	if counts[1] == 1 {
		counts = counts[:1]
	}

	fmt.Printf("benchmarking %d steps per size\n\n", benchStep)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODIES\tWORKERS\tTIME\tSTEPS/SEC\tPAIRS/SEC")

	for _, n := range benchN {
		for _, k := range counts {
			cfg := config.DefaultConfig()
			cfg.Seed = benchSeed
			cfg.Workers = k
			cfg.Random = config.RandomConfig{Count: n, Radius: config.DefaultSpawnRadius, Density: config.DefaultSpawnDensity, Extent: config.DefaultSpawnExtent}
			s, err := scene.Build(cfg)
			if err != nil {
				return err
			}

			dt := cfg.Tick * cfg.Scales.TimeSpeed
			start := time.Now()
			for i := 0; i < benchStep; i++ {
				s.World.Step(dt)
			}
			elapsed := time.Since(start)

			stepsPerSec := float64(benchStep) / elapsed.Seconds()
			pairs := float64(n*(n-1)/2) * stepsPerSec
			fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\t%.3g\n", n, k, elapsed, stepsPerSec, pairs)
		}
	}
	return w.Flush()
}

func renderSVG(cmd *cobra.Command, args []string) error {
	var ax, ay int
	switch axes {
	case "xy":
		ax, ay = 0, 1
	case "xz":
		ax, ay = 0, 2
	case "yz":
		ax, ay = 1, 2
	default:
		return fmt.Errorf("unknown axes %q (want xy, xz or yz)", axes)
	}

	_, s, result, err := headless(cmd, svgSample)
	if err != nil {
		return err
	}

	trajs := make([]export.Trajectory, s.World.Len())
	for i := range trajs {
		xs, ys := result.Series(i, ax), result.Series(i, ay)
		pts := make([]struct{ X, Y float64 }, len(xs))
		for k := range xs {
			pts[k].X, pts[k].Y = xs[k], ys[k]
		}
		trajs[i] = export.Trajectory{Points: pts, Color: s.Appearance[i].Color.Hex()}
	}

	if canvasOut != "" {
		frame := export.CanvasToSVG(viz.Snapshot(s, 80, 40), 4)
		if err := os.WriteFile(canvasOut, []byte(frame), 0644); err != nil {
			return err
		}
	}

	svg := export.TrajectoriesToSVG(trajs, 800, 800)
	if outPath == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(outPath, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outPath)
	return nil
}
