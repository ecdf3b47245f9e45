package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/fuzzylab/internal/config"
	"github.com/san-kum/fuzzylab/internal/controllers"
	"github.com/san-kum/fuzzylab/internal/experiment"
	"github.com/san-kum/fuzzylab/internal/export"
	"github.com/san-kum/fuzzylab/internal/logging"
	"github.com/san-kum/fuzzylab/internal/optim"
	"github.com/san-kum/fuzzylab/internal/plant"
	"github.com/san-kum/fuzzylab/internal/scenario"
	"github.com/san-kum/fuzzylab/internal/storage"
	"github.com/san-kum/fuzzylab/internal/sweep"
	"github.com/san-kum/fuzzylab/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	verbose    bool

	showDegrees bool
	sweepMin    float64
	sweepMax    float64
	steps       int
	workers     int
	save        bool

	dt         float64
	duration   float64
	theta      float64
	omega      float64
	gain       float64
	target     float64
	integrator string

	samples int
	gains   []float64
	metric  string

	trials       int
	perturbation float64
	band         float64
	seed         int64

	outDir  string
	svgPath string

	log      = zap.NewNop()
	registry = controllers.NewRegistry()
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "fuzzylab",
		Short:         "fuzzy control lab",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.New(verbose)
			if err != nil {
				return err
			}
			log = l
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.Run(controllers.NewFoodTipper())
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".fuzzylab", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	evalCmd := &cobra.Command{
		Use:   "eval [controller] [inputs...]",
		Short: "evaluate a controller at one point",
		Args:  cobra.MinimumNArgs(1),
		RunE:  evalController,
	}
	evalCmd.Flags().BoolVar(&showDegrees, "degrees", false, "print membership degrees")

	sweepCmd := &cobra.Command{
		Use:   "sweep [controller]",
		Short: "evaluate a controller over a grid of inputs",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "lower bound of every axis")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0, "upper bound of every axis")
	sweepCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "points per axis")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (0 = GOMAXPROCS)")
	sweepCmd.Flags().BoolVar(&save, "save", false, "store the result")
	sweepCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	plotCmd := &cobra.Command{
		Use:   "plot [controller]",
		Short: "plot membership curves",
		Args:  cobra.ExactArgs(1),
		RunE:  plotMemberships,
	}
	plotCmd.Flags().IntVar(&samples, "samples", config.DefaultSamples, "points per curve")

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "run the fuzzy pendulum stabilizer in closed loop",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addSimFlags(simulateCmd)
	simulateCmd.Flags().BoolVar(&save, "save", false, "store the run")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search the stabilizer gain",
		Args:  cobra.NoArgs,
		RunE:  tuneGain,
	}
	addSimFlags(tuneCmd)
	tuneCmd.Flags().Float64SliceVar(&gains, "gains", []float64{2, 5, 10, 20, 40}, "candidate gains")
	tuneCmd.Flags().StringVar(&metric, "metric", "iae", "metric to minimise (iae, control_effort, peak_control)")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a YAML scenario of checks",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	robustCmd := &cobra.Command{
		Use:   "robust",
		Short: "monte carlo stability check of the stabilizer",
		Args:  cobra.NoArgs,
		RunE:  runMonteCarlo,
	}
	addSimFlags(robustCmd)
	robustCmd.Flags().IntVar(&trials, "trials", 50, "number of trials")
	robustCmd.Flags().Float64Var(&perturbation, "perturb", 0.3, "uniform perturbation of the initial state")
	robustCmd.Flags().Float64Var(&band, "band", scenario.DefaultBand, "settling band")
	robustCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = clock)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored sweeps and runs",
		RunE:  listEntries,
	}

	showCmd := &cobra.Command{
		Use:   "show [id]",
		Short: "plot a stored sweep or run",
		Args:  cobra.ExactArgs(1),
		RunE:  showEntry,
	}
	showCmd.Flags().StringVar(&svgPath, "svg", "", "also write the plot as SVG to this path")

	svgCmd := &cobra.Command{
		Use:   "export-svg [controller]",
		Short: "write membership curves of every input as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	svgCmd.Flags().StringVar(&outDir, "out", ".", "output directory")
	svgCmd.Flags().IntVar(&samples, "samples", config.DefaultSamples, "points per curve")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [id]",
		Short: "write stored data as CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportCSV(cmd.OutOrStdout(), args[0])
		},
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [id]",
		Short: "write stored metadata and data as JSON to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(cmd.OutOrStdout(), args[0])
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [controller]",
		Short: "list available presets for a controller",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for controller: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	tuiCmd := &cobra.Command{
		Use:   "tui [controller]",
		Short: "adjust inputs interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "food_tipper"
			if len(args) == 1 {
				name = args[0]
			}
			ctrl, err := registry.Get(name)
			if err != nil {
				return err
			}
			return viz.Run(ctrl)
		},
	}

	controllersCmd := &cobra.Command{
		Use:   "controllers",
		Short: "list registered controllers",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range registry.List() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(evalCmd, sweepCmd, plotCmd, simulateCmd, tuneCmd, scenarioCmd, robustCmd,
		listCmd, showCmd, exportCSVCmd, exportJSONCmd, svgCmd, presetsCmd, tuiCmd, controllersCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	_ = log.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Float64Var(&theta, "theta", config.DefaultTheta, "initial angle")
	cmd.Flags().Float64Var(&omega, "omega", 0, "initial angular velocity")
	cmd.Flags().Float64Var(&gain, "gain", controllers.DefaultGain, "output gain")
	cmd.Flags().Float64Var(&target, "target", 0, "target angle")
	cmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator (euler, midpoint, heun, rk4)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// loadConfig layers defaults, preset, config file and explicitly set flags,
// in that order.
func loadConfig(cmd *cobra.Command, controller string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Controller = controller

	if preset != "" {
		p := config.GetPreset(controller, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(controller))
		}
		cfg = p
		log.Debug("applied preset", zap.String("preset", preset))
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg
		log.Debug("loaded config", zap.String("path", configFile))
	}

	flags := cmd.Flags()
	if flags.Changed("steps") {
		cfg.Sweep.Steps = steps
		cfg.Sweep.Axes = nil
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("samples") {
		cfg.Plot.Samples = samples
	}
	if flags.Changed("dt") {
		cfg.Sim.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Sim.Duration = duration
	}
	if flags.Changed("theta") {
		cfg.Sim.Theta = theta
	}
	if flags.Changed("omega") {
		cfg.Sim.Omega = omega
	}
	if flags.Changed("gain") {
		cfg.Sim.Gain = gain
	}
	if flags.Changed("target") {
		cfg.Sim.Target = target
	}
	if flags.Changed("integrator") {
		cfg.Sim.Integrator = integrator
	}
	return cfg, nil
}

func parseInputs(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i+1, err)
		}
		out[i] = v
	}
	return out, nil
}

func evalController(cmd *cobra.Command, args []string) error {
	ctrl, err := registry.Get(args[0])
	if err != nil {
		return err
	}
	inputs, err := parseInputs(args[1:])
	if err != nil {
		return err
	}

	out, err := ctrl.Evaluate(inputs...)
	if err != nil {
		return err
	}

	if showDegrees {
		fmt.Println(viz.DegreeTable(viz.ThemeCyberpunk.Styles(), ctrl.Inputs(), 20))
	}
	fmt.Println(strconv.FormatFloat(out, 'g', -1, 64))
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	name := args[0]
	factory, err := registry.Factory(name)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd, name)
	if err != nil {
		return err
	}

	grid := cfg.Grid(factory())
	for i := range grid {
		if cmd.Flags().Changed("min") {
			grid[i].Min = sweepMin
		}
		if cmd.Flags().Changed("max") {
			grid[i].Max = sweepMax
		}
	}

	log.Info("sweeping", zap.String("controller", name), zap.Int("points", grid.Size()))
	results, err := sweep.Run(cmd.Context(), factory, grid, sweep.Options{Workers: cfg.Workers, Logger: log})
	if err != nil {
		return err
	}

	names := make([]string, len(grid))
	for i, a := range grid {
		names[i] = a.Name
	}
	table := storage.SweepTable(names, results)

	outputs := sweep.Outputs(results)
	fmt.Println(viz.PlotSeries(outputs, name+" output", cfg.Plot.Width, cfg.Plot.Height))
	fmt.Println()
	printTable(table, 40)

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		params := map[string]float64{"points": float64(len(results))}
		for _, a := range grid {
			params[a.Name+"_min"] = a.Min
			params[a.Name+"_max"] = a.Max
			params[a.Name+"_steps"] = float64(a.Steps)
		}
		id, err := st.Save(storage.KindSweep, name, params, nil, table)
		if err != nil {
			return err
		}
		log.Info("saved sweep", zap.String("id", id))
	}
	return nil
}

// printTable prints at most limit rows, evenly picked, with a tabwriter.
func printTable(table storage.Table, limit int) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for i, c := range table.Columns {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, c)
	}
	fmt.Fprintln(w)

	stride := 1
	if len(table.Rows) > limit {
		stride = (len(table.Rows) + limit - 1) / limit
	}
	for r := 0; r < len(table.Rows); r += stride {
		for i, v := range table.Rows[r] {
			if i > 0 {
				fmt.Fprint(w, "\t")
			}
			fmt.Fprintf(w, "%.4f", v)
		}
		fmt.Fprintln(w)
	}
	w.Flush()
}

func plotMemberships(cmd *cobra.Command, args []string) error {
	ctrl, err := registry.Get(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd, args[0])
	if err != nil {
		return err
	}

	for _, in := range ctrl.Inputs() {
		fmt.Println(viz.PlotMemberships(in, cfg.Plot.Samples, cfg.Plot.Width, cfg.Plot.Height))
		fmt.Println()
	}
	return nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "pendulum")
	if err != nil {
		return err
	}
	expCfg := cfg.Experiment()

	exp, err := experiment.New(expCfg)
	if err != nil {
		return err
	}

	log.Info("simulating",
		zap.String("integrator", expCfg.Integrator),
		zap.Float64("gain", expCfg.Gain),
		zap.Float64("theta", expCfg.InitState[0]),
	)
	result, err := exp.Run(cmd.Context())
	if err != nil {
		return err
	}
	for _, e := range result.Errors {
		log.Warn("simulation error", zap.Error(e))
	}

	fmt.Println(viz.PlotSeries(result.Column(0), "theta (angle)", cfg.Plot.Width, cfg.Plot.Height))
	fmt.Println()
	fmt.Println(viz.PlotSeries(controlColumn(result.Controls), "torque", cfg.Plot.Width, cfg.Plot.Height))
	fmt.Println()
	fmt.Println(viz.PhasePortrait(result.Column(0), result.Column(1), cfg.Plot.Width, 2*cfg.Plot.Height))

	final := result.Final()
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("final: theta=%.6f omega=%.6f\n", final[0], final[1])
	fmt.Println(viz.Separator(cfg.Plot.Width))
	for _, name := range []string{"iae", "control_effort", "peak_control", "stability"} {
		fmt.Println(viz.Metric(name, result.Metrics[name]))
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		params := map[string]float64{
			"dt":       expCfg.Dt,
			"duration": expCfg.Duration,
			"gain":     expCfg.Gain,
			"target":   expCfg.Target,
			"theta0":   expCfg.InitState[0],
			"omega0":   expCfg.InitState[1],
		}
		id, err := st.Save(storage.KindRun, "pendulum", params, result.Metrics, storage.RunTable(result))
		if err != nil {
			return err
		}
		log.Info("saved run", zap.String("id", id))
	}
	return nil
}

func controlColumn(controls []plant.Control) []float64 {
	out := make([]float64, 0, len(controls))
	for _, u := range controls {
		if len(u) > 0 {
			out = append(out, u[0])
		}
	}
	return out
}

func tuneGain(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "pendulum")
	if err != nil {
		return err
	}

	gs := optim.NewGridSearch([]string{"gain"}, [][]float64{gains}, log)
	best, score, err := gs.Search(cmd.Context(), optim.MetricObjective(cfg.Experiment(), metric))
	if err != nil {
		return err
	}

	fmt.Printf("best gain: %g\n", best["gain"])
	fmt.Printf("%s: %.6f\n", metric, score)
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := scenario.LoadScenario(args[0])
	if err != nil {
		return err
	}

	outcomes, err := scenario.RunScenario(cmd.Context(), sc, registry, log)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tNAME\tVALUE\tRESULT")
	for _, o := range outcomes {
		result := "ok"
		if !o.Pass {
			result = "FAIL"
		}
		fmt.Fprintf(w, "%d\t%s\t%.6f\t%s\n", o.Step, o.Name, o.Value, result)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if !scenario.Passed(outcomes) {
		return fmt.Errorf("scenario %s failed", sc.Name)
	}
	return nil
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "pendulum")
	if err != nil {
		return err
	}

	results, err := scenario.RunMonteCarlo(cmd.Context(), scenario.MonteCarloConfig{
		Base:         cfg.Experiment(),
		Perturbation: perturbation,
		NumTrials:    trials,
		Band:         band,
		Seed:         seed,
	}, log)
	if err != nil {
		return err
	}

	stable, unstable := scenario.MonteCarloStats(results)
	fmt.Printf("trials: %d\n", len(results))
	fmt.Printf("stable: %d\n", stable)
	fmt.Printf("unstable: %d\n", unstable)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	ctrl, err := registry.Get(args[0])
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	for _, in := range ctrl.Inputs() {
		path := filepath.Join(outDir, fmt.Sprintf("%s_%s.svg", ctrl.Name(), in.Name))
		svg := export.MembershipsToSVG(in, samples, 600, 300)
		if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Println(path)
	}
	return nil
}

func listEntries(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	entries, err := st.List()
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("nothing stored")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tCONTROLLER\tTIME\tROWS")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
			e.ID,
			e.Kind,
			e.Controller,
			e.Timestamp.Format("2006-01-02 15:04:05"),
			e.Rows,
		)
	}
	return w.Flush()
}

func showEntry(cmd *cobra.Command, args []string) error {
	id := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(id)
	if err != nil {
		return err
	}
	table, err := st.LoadRows(id)
	if err != nil {
		return err
	}
	if len(table.Rows) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Println(viz.Header(meta.ID))
	fmt.Printf("kind: %s\n", meta.Kind)
	fmt.Printf("controller: %s\n", meta.Controller)
	fmt.Printf("rows: %d\n\n", meta.Rows)

	// the first column of a run is time, of a sweep the first input
	first := 0
	if meta.Kind == storage.KindRun {
		first = 1
	}
	for i := first; i < len(table.Columns); i++ {
		if meta.Kind == storage.KindSweep && i < len(table.Columns)-1 {
			continue
		}
		fmt.Println(viz.PlotSeries(table.Column(i), table.Columns[i], config.DefaultWidth, config.DefaultHeight))
		fmt.Println()
	}
	if meta.Kind == storage.KindRun && len(table.Columns) > 2 {
		fmt.Println(viz.PhasePortrait(table.Column(1), table.Column(2), config.DefaultWidth, 2*config.DefaultHeight))
		fmt.Println()
	}

	if svgPath != "" {
		// runs plot x0 over time, sweeps plot the output over the first input
		y := first
		if meta.Kind == storage.KindSweep {
			y = len(table.Columns) - 1
		}
		svg := export.TrajectoryToSVG(table.Columns[y], table.Column(0), table.Column(y), 640, 320)
		if svg == "" {
			return fmt.Errorf("not enough rows for an svg plot")
		}
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return fmt.Errorf("failed to write svg: %w", err)
		}
		fmt.Printf("svg written to %s\n", svgPath)
	}

	names := make([]string, 0, len(meta.Metrics))
	for name := range meta.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Println(viz.Metric(name, meta.Metrics[name]))
	}
	return nil
}
