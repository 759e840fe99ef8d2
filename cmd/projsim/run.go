package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/projsim/internal/analysis"
	"github.com/san-kum/projsim/internal/ballistics"
	"github.com/san-kum/projsim/internal/config"
	"github.com/san-kum/projsim/internal/metrics"
	"github.com/san-kum/projsim/internal/optim"
	"github.com/san-kum/projsim/internal/storage"
	"github.com/san-kum/projsim/internal/viz"
)

const (
	plotWidth  = 60
	plotHeight = 12
)

func runSimulate(cmd *cobra.Command, args []string) error {
	s, err := resolve(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	theme := viz.GetTheme(themeName)

	start := time.Now()
	tr := ballistics.Simulate(s.params)
	logger.Debug("simulated", "steps", tr.Steps, "samples", tr.Len(), "elapsed", time.Since(start))

	st := analysis.Analyze(tr)
	eff := analysis.Efficiency(tr)
	flight := metrics.Collect(tr, metrics.Default(s.params.Gravity)...)

	fmt.Fprintf(out, "%s at %.2f m/s, %.1f°, wind %.1f m/s\n\n", s.object, s.params.Speed, s.params.Angle, s.params.Wind)
	fmt.Fprintln(out, viz.Report("trajectory", st, theme))
	fmt.Fprintln(out, viz.EfficiencyBar(eff, 30))
	fmt.Fprintln(out, viz.Metric("energy lost to drag", flight["energy_loss"]*100, "%"))
	fmt.Fprintln(out)
	fmt.Fprint(out, viz.PlotTrajectories([]viz.Series{{Label: "user", Trajectory: tr}}, plotWidth, plotHeight, theme))

	if save {
		flight["range"] = st.Range
		flight["apex_height"] = st.ApexHeight
		flight["flight_time"] = st.FlightTime
		flight["efficiency"] = eff
		return saveRun(cmd, "simulate", s, []storage.Track{{Label: "user", Trajectory: tr}}, flight)
	}
	return nil
}

func runOptimize(cmd *cobra.Command, args []string) error {
	s, err := resolve(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	theme := viz.GetTheme(themeName)

	start := time.Now()
	res, err := s.search.Search(cmd.Context(), s.params)
	if err != nil {
		return err
	}
	logger.Debug("search done", "candidates", res.Evaluated, "workers", s.search.Workers, "elapsed", time.Since(start))

	if res.Trajectory == nil {
		fmt.Fprintln(out, "no launch angle leaves the ground")
		return nil
	}

	fmt.Fprintln(out, viz.HeaderStyle.Render(fmt.Sprintf("%s at %.2f m/s, wind %.1f m/s", s.object, s.params.Speed, s.params.Wind)))
	fmt.Fprintf(out, "optimal angle: %s\n", viz.MetricValue.Render(fmt.Sprintf("%.1f°", res.Angle)))
	fmt.Fprintf(out, "max range:     %s\n\n", viz.MetricValue.Render(fmt.Sprintf("%.2f m", res.Range)))
	fmt.Fprintln(out, viz.RangeCurve(res.Curve, plotWidth, plotHeight))
	fmt.Fprintln(out)
	fmt.Fprintln(out, viz.CurveSparkline(res.Curve, plotWidth))
	fmt.Fprintln(out)
	fmt.Fprintln(out, viz.Report("optimal trajectory", analysis.Analyze(res.Trajectory), theme))

	if save {
		m := metrics.Collect(res.Trajectory, metrics.Default(s.params.Gravity)...)
		m["optimal_angle"] = res.Angle
		m["optimal_range"] = res.Range
		m["evaluated"] = float64(res.Evaluated)
		return saveRun(cmd, "optimize", s, []storage.Track{{Label: "optimal", Trajectory: res.Trajectory}}, m)
	}
	return nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	s, err := resolve(cmd)
	if err != nil {
		return err
	}
	return compare(cmd, s)
}

// compare prints the user, standard and optimal trajectories side by side.
func compare(cmd *cobra.Command, s *setup) error {
	out := cmd.OutOrStdout()
	theme := viz.GetTheme(themeName)

	start := time.Now()
	scenarios, res, err := optim.Compare(cmd.Context(), s.search, s.params, s.params.Angle)
	if err != nil {
		return err
	}
	logger.Debug("compare done", "candidates", res.Evaluated, "elapsed", time.Since(start))

	series := make([]viz.Series, len(scenarios))
	tracks := make([]storage.Track, len(scenarios))
	for i, sc := range scenarios {
		series[i] = viz.Series{Label: sc.Label, Trajectory: sc.Trajectory}
		tracks[i] = storage.Track{Label: sc.Label, Trajectory: sc.Trajectory}
	}

	fmt.Fprintln(out, viz.HeaderStyle.Render(fmt.Sprintf("%s at %.2f m/s, wind %.1f m/s", s.object, s.params.Speed, s.params.Wind)))
	fmt.Fprintln(out)
	fmt.Fprintln(out, viz.ComparisonTable(scenarios, theme))
	fmt.Fprintln(out, viz.CurveSparkline(res.Curve, plotWidth))
	fmt.Fprintln(out)
	fmt.Fprint(out, viz.PlotTrajectories(series, plotWidth, plotHeight, theme))

	if res.Trajectory == nil {
		fmt.Fprintln(out, "\nno launch angle leaves the ground")
	}

	if save {
		return saveRun(cmd, "compare", s, tracks, map[string]float64{
			"user_range":    scenarios[0].Range(),
			"optimal_angle": res.Angle,
			"optimal_range": res.Range,
			"evaluated":     float64(res.Evaluated),
		})
	}
	return nil
}

func saveRun(cmd *cobra.Command, kind string, s *setup, tracks []storage.Track, values map[string]float64) error {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(kind, s.object, s.params, tracks, values)
	if err != nil {
		return err
	}
	logger.Debug("saved run", "id", runID, "dir", dataDir)
	fmt.Fprintf(cmd.OutOrStdout(), "\nrun saved: %s\n", runID)
	return nil
}

func listObjects(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tNAME\tMASS\tCD\tAREA")
	for _, key := range config.ListObjects() {
		obj := config.Objects[key]
		fmt.Fprintf(w, "%s\t%s\t%.4g kg\t%.2f\t%.4g m²\n", key, obj.Name, obj.Mass, obj.DragCoeff, obj.Area)
	}
	fmt.Fprintf(w, "%s\t%s\t\t\t\n", config.CustomObject, "set --mass --cd --area")
	return w.Flush()
}

func writeConfig(cmd *cobra.Command, args []string) error {
	s, err := resolve(cmd)
	if err != nil {
		return err
	}
	path := "projsim.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := config.Save(path, config.FromParams(s.object, s.params, s.search.Grid, s.workers)); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
