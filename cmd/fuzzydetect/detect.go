package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hed1ad/gofuzzydetect/pkg/detectors/fis"
	gfio "github.com/hed1ad/gofuzzydetect/pkg/io"
	"github.com/hed1ad/gofuzzydetect/pkg/io/csv"
)

var detectFlags struct {
	input        string
	baselineRows int
	window       int
	step         int
	threshold    float64
	noHeader     bool
	jsonOut      bool
}

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Score sliding windows of a CSV series against its leading baseline",
	RunE:  runDetect,
}

func init() {
	f := detectCmd.Flags()
	f.StringVarP(&detectFlags.input, "input", "i", "", "CSV file, one row per time step (required)")
	f.IntVar(&detectFlags.baselineRows, "baseline", 500, "number of leading rows used as baseline")
	f.IntVar(&detectFlags.window, "window", 100, "window length in rows")
	f.IntVar(&detectFlags.step, "step", 0, "window stride (default: window length)")
	f.Float64Var(&detectFlags.threshold, "threshold", 5.0, "score at or above which a window is flagged")
	f.BoolVar(&detectFlags.noHeader, "no-header", false, "CSV has no header row")
	f.BoolVar(&detectFlags.jsonOut, "json", false, "emit JSON lines instead of text")
	detectCmd.MarkFlagRequired("input")
}

func runDetect(cmd *cobra.Command, args []string) error {
	reader, err := csv.NewReader(detectFlags.input, csv.WithHeader(!detectFlags.noHeader))
	if err != nil {
		return err
	}
	defer reader.Close()

	data, err := reader.Read()
	if err != nil {
		return err
	}

	baseRows, window := detectFlags.baselineRows, detectFlags.window
	step := detectFlags.step
	if step <= 0 {
		step = window
	}
	if len(data) < baseRows+window {
		return fmt.Errorf("series has %d rows; need at least baseline %d + window %d",
			len(data), baseRows, window)
	}

	det, err := fis.New(
		fis.WithThreshold(detectFlags.threshold),
		fis.WithWindowSize(window),
	)
	if err != nil {
		return err
	}
	if err := det.SetBaseline(data[:baseRows]); err != nil {
		return err
	}

	var jw *gfio.JSONWriter
	if detectFlags.jsonOut {
		jw = gfio.NewJSONWriter(cmd.OutOrStdout())
	}

	flagged := 0
	for start := baseRows; start+window <= len(data); start += step {
		a, err := det.EvaluateWindow(data[start : start+window])
		if err != nil {
			return fmt.Errorf("window at row %d: %w", start, err)
		}
		if a.IsAnomaly {
			flagged++
		}

		if jw != nil {
			err = jw.Write(gfio.Result{
				WindowStart:  start,
				WindowEnd:    start + window,
				Score:        a.Score,
				Label:        a.Label,
				IsAnomaly:    a.IsAnomaly,
				Undetermined: a.Undetermined,
				Indicators: map[string]float64{
					fis.VarForecastError:     a.Indicators.ForecastError,
					fis.VarVarianceChange:    a.Indicators.VarianceChange,
					fis.VarCorrelationChange: a.Indicators.CorrelationChange,
				},
			})
			if err != nil {
				return err
			}
			continue
		}

		mark := " "
		if a.IsAnomaly {
			mark = "!"
		}
		fmt.Fprintf(cmd.OutOrStdout(),
			"%s rows %5d-%5d  score=%5.2f  label=%-22s ep=%.3f mv=%.3f mc=%.3f\n",
			mark, start, start+window, a.Score, a.Label,
			a.Indicators.ForecastError, a.Indicators.VarianceChange, a.Indicators.CorrelationChange)
	}

	if jw == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d window(s) flagged (threshold %.2f)\n",
			flagged, detectFlags.threshold)
	}
	return nil
}
