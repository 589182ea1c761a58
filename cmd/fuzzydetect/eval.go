package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hed1ad/gofuzzydetect/pkg/detectors/fis"
)

var evalCmd = &cobra.Command{
	Use:   "eval EP MV MC",
	Short: "Run the inference engine on one indicator triple",
	Long: `eval runs a single inference: EP is the normalized forecast error,
MV the normalized variance change and MC the normalized correlation change,
each in [0, 1].`,
	Args: cobra.ExactArgs(3),
	RunE: runEval,
}

func runEval(cmd *cobra.Command, args []string) error {
	vals := make([]float64, 3)
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("argument %d: %w", i+1, err)
		}
		vals[i] = v
	}

	det, err := fis.New()
	if err != nil {
		return err
	}

	res, err := det.Evaluate(vals[0], vals[1], vals[2])
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "score: %.3f\nlabel: %s\n", res.Score, res.Label)
	if res.Undetermined {
		fmt.Fprintln(cmd.OutOrStdout(), "note: no rule fired; score is the fallback midpoint")
	}
	return nil
}
