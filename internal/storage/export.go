package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/projsim/internal/ballistics"
)

var csvHeader = []string{"t", "x", "y", "vx", "vy"}

func WriteCSV(w io.Writer, tr *ballistics.Trajectory) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	format := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	for _, s := range tr.Samples {
		row := []string{format(s.T), format(s.X), format(s.Y), format(s.VX), format(s.VY)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func ReadCSV(r io.Reader) ([]ballistics.Sample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("missing header")
	}

	samples := make([]ballistics.Sample, 0, len(records)-1)
	for i, record := range records[1:] {
		var vals [5]float64
		for j := range vals {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %s: %w", i+1, csvHeader[j], err)
			}
			vals[j] = v
		}
		samples = append(samples, ballistics.Sample{T: vals[0], X: vals[1], Y: vals[2], VX: vals[3], VY: vals[4]})
	}
	return samples, nil
}

type ExportData struct {
	ID      string             `json:"id"`
	Kind    string             `json:"kind"`
	Object  string             `json:"object"`
	Params  ballistics.Params  `json:"params"`
	Tracks  []ExportTrack      `json:"tracks"`
	Metrics map[string]float64 `json:"metrics"`
}

type ExportTrack struct {
	Label   string              `json:"label"`
	Angle   float64             `json:"angle"`
	Range   float64             `json:"range"`
	Landed  bool                `json:"landed"`
	Samples []ballistics.Sample `json:"samples"`
}

func ExportJSON(w io.Writer, meta *RunMetadata, tracks []Track) error {
	data := ExportData{
		ID:      meta.ID,
		Kind:    meta.Kind,
		Object:  meta.Object,
		Params:  meta.Params,
		Tracks:  make([]ExportTrack, len(tracks)),
		Metrics: meta.Metrics,
	}

	for i, t := range tracks {
		data.Tracks[i] = ExportTrack{
			Label:   t.Label,
			Angle:   t.Trajectory.Params.Angle,
			Range:   t.Trajectory.Range,
			Landed:  t.Trajectory.Landed,
			Samples: t.Trajectory.Samples,
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
