package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/san-kum/projsim/internal/ballistics"
	"github.com/san-kum/projsim/internal/config"
	"github.com/san-kum/projsim/internal/optim"
	"github.com/san-kum/projsim/internal/tui"
	"github.com/san-kum/projsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	themeName  string
	verbose    bool
	save       bool
	workers    int

	object   string
	speed    float64
	angle    float64
	wind     float64
	mass     float64
	cd       float64
	area     float64
	rho      float64
	gravity  float64
	dt       float64
	maxSteps int

	svgOut    string
	svgWidth  int
	svgHeight int

	logger = slog.New(slog.DiscardHandler)
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "projsim",
		Short: "projectile range simulator with drag and wind",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		},
		RunE:         runInteractive,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultData, "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", viz.DefaultTheme.Name, fmt.Sprintf("colour theme %v", viz.ThemeNames()))
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")
	launchFlags(rootCmd)

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "fly one trajectory at the given angle",
		Args:  cobra.NoArgs,
		RunE:  runSimulate,
	}
	launchFlags(simulateCmd)
	simulateCmd.Flags().BoolVar(&save, "save", false, "store the run under --data")

	optimizeCmd := &cobra.Command{
		Use:   "optimize",
		Short: "scan launch angles for the longest range",
		Args:  cobra.NoArgs,
		RunE:  runOptimize,
	}
	launchFlags(optimizeCmd)
	optimizeCmd.Flags().BoolVar(&save, "save", false, "store the run under --data")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "compare the given angle with 45° and the optimum",
		Args:  cobra.NoArgs,
		RunE:  runCompare,
	}
	launchFlags(compareCmd)
	compareCmd.Flags().BoolVar(&save, "save", false, "store the run under --data")

	objectsCmd := &cobra.Command{
		Use:   "objects",
		Short: "list object presets",
		Args:  cobra.NoArgs,
		RunE:  listObjects,
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a config file with the resolved settings",
		Args:  cobra.MaximumNArgs(1),
		RunE:  writeConfig,
	}
	launchFlags(initCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run with all samples as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id] [label]",
		Short: "export one track of a stored run as CSV",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  exportCSV,
	}

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "render a stored run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	svgCmd.Flags().StringVarP(&svgOut, "out", "o", "", "output file (default stdout)")
	svgCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	svgCmd.Flags().IntVar(&svgHeight, "height", 400, "image height")

	rootCmd.AddCommand(simulateCmd, optimizeCmd, compareCmd, objectsCmd, initCmd, listCmd, showCmd, exportJSONCmd, exportCSVCmd, svgCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func launchFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&object, "object", config.DefaultObject, "object preset or \"custom\"")
	f.Float64Var(&speed, "speed", config.DefaultSpeed, "launch speed (m/s)")
	f.Float64Var(&angle, "angle", config.DefaultAngle, "launch angle (degrees)")
	f.Float64Var(&wind, "wind", 0, "horizontal wind (m/s, positive is a tailwind)")
	f.Float64Var(&mass, "mass", 0, "mass (kg), overrides the preset")
	f.Float64Var(&cd, "cd", 0, "drag coefficient, overrides the preset")
	f.Float64Var(&area, "area", 0, "cross-sectional area (m²), overrides the preset")
	f.Float64Var(&rho, "rho", ballistics.DefaultAirDensity, "air density (kg/m³)")
	f.Float64Var(&gravity, "gravity", ballistics.DefaultGravity, "gravitational acceleration (m/s²)")
	f.Float64Var(&dt, "dt", ballistics.DefaultDt, "timestep (s)")
	f.IntVar(&maxSteps, "max-steps", ballistics.DefaultMaxSteps, "step limit per trajectory")
	f.IntVar(&workers, "workers", 0, "parallel simulations during search (0 = GOMAXPROCS)")
}

// setup is the resolved input of a run.
type setup struct {
	object  string
	params  ballistics.Params
	search  *optim.AngleSearch
	workers int
}

// resolve layers defaults, the config file, the object preset and finally
// explicitly set flags.
func resolve(cmd *cobra.Command) (*setup, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		logger.Debug("loaded config", "path", configFile)
	}

	f := cmd.Flags()
	if f.Changed("object") {
		cfg.Object = object
	}
	if f.Changed("workers") {
		cfg.Search.Workers = workers
	}

	p, err := cfg.Params()
	if err != nil {
		return nil, err
	}

	overrides := []struct {
		name string
		set  func()
	}{
		{"speed", func() { p.Speed = speed }},
		{"angle", func() { p.Angle = angle }},
		{"wind", func() { p.Wind = wind }},
		{"mass", func() { p.Mass = mass }},
		{"cd", func() { p.DragCoeff = cd }},
		{"area", func() { p.Area = area }},
		{"rho", func() { p.AirDensity = rho }},
		{"gravity", func() { p.Gravity = gravity }},
		{"dt", func() { p.Dt = dt }},
		{"max-steps", func() { p.MaxSteps = maxSteps }},
	}
	for _, o := range overrides {
		if f.Changed(o.name) {
			o.set()
		}
	}

	name := cfg.Object
	if name != config.CustomObject && (f.Changed("mass") || f.Changed("cd") || f.Changed("area")) {
		name = config.CustomObject
	}

	if err := cfg.Check(p); err != nil {
		return nil, err
	}

	grid := cfg.Grid()
	search := optim.NewAngleSearch(grid, cfg.Search.Workers)
	logger.Debug("resolved inputs", "object", name, "params", p, "candidates", grid.Len(), "workers", search.Workers)
	return &setup{object: name, params: p, search: search, workers: cfg.Search.Workers}, nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	s, err := resolve(cmd)
	if err != nil {
		return err
	}

	in, ok, err := tui.Run(tui.Inputs{Object: s.object, Params: s.params}, viz.GetTheme(themeName))
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	s.object = in.Object
	s.params = in.Params
	return compare(cmd, s)
}
