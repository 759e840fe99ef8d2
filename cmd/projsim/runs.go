package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/projsim/internal/export"
	"github.com/san-kum/projsim/internal/storage"
	"github.com/san-kum/projsim/internal/viz"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tTIME\tOBJECT\tSPEED\tWIND\tTRACKS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\t%.2f\t%d\n",
			run.ID,
			run.Kind,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Object,
			run.Params.Speed,
			run.Params.Wind,
			len(run.Tracks),
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, tracks, err := st.LoadTracks(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	theme := viz.GetTheme(themeName)

	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "kind: %s\n", meta.Kind)
	fmt.Fprintf(out, "object: %s at %.2f m/s, wind %.2f m/s\n\n", meta.Object, meta.Params.Speed, meta.Params.Wind)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRACK\tANGLE\tRANGE\tSAMPLES\tLANDED")
	for _, t := range meta.Tracks {
		fmt.Fprintf(w, "%s\t%.1f°\t%.2f m\t%d\t%v\n", t.Label, t.Angle, t.Range, t.Samples, t.Landed)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(meta.Metrics) > 0 {
		keys := make([]string, 0, len(meta.Metrics))
		for k := range meta.Metrics {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Fprintln(out)
		for _, k := range keys {
			fmt.Fprintf(out, "%s: %.4g\n", k, meta.Metrics[k])
		}
	}

	series := make([]viz.Series, len(tracks))
	for i, t := range tracks {
		series[i] = viz.Series{Label: t.Label, Trajectory: t.Trajectory}
	}
	fmt.Fprintln(out)
	fmt.Fprint(out, viz.PlotTrajectories(series, plotWidth, plotHeight, theme))
	if len(series) > 1 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, viz.HeightProfiles(series, plotWidth, plotHeight/2))
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, tracks, err := st.LoadTracks(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(cmd.OutOrStdout(), meta, tracks)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	if len(meta.Tracks) == 0 {
		return fmt.Errorf("run %s has no tracks", meta.ID)
	}

	label := meta.Tracks[0].Label
	if len(args) > 1 {
		label = args[1]
	}
	tr, err := st.LoadTrajectory(meta.ID, label)
	if err != nil {
		return err
	}
	return storage.WriteCSV(cmd.OutOrStdout(), tr)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	_, tracks, err := st.LoadTracks(args[0])
	if err != nil {
		return err
	}

	series := make([]export.Series, len(tracks))
	for i, t := range tracks {
		series[i] = export.Series{Label: t.Label, Trajectory: t.Trajectory}
	}
	svg := export.TrajectoriesSVG(series, svgWidth, svgHeight)
	if svg == "" {
		return fmt.Errorf("run %s has nothing to draw", args[0])
	}

	var w io.Writer = cmd.OutOrStdout()
	if svgOut != "" {
		f, err := os.Create(svgOut)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
		logger.Debug("writing svg", "path", svgOut)
	}
	_, err = io.WriteString(w, svg)
	return err
}
