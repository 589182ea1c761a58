package main

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "fuzzydetect",
	Short: "Fuzzy-inference anomaly detection for multivariate time series",
	Long: `fuzzydetect scores windows of a multivariate time series against a
baseline regime. Three normalized indicators (forecast error, variance
change, correlation change) feed a fixed Mamdani rule base that produces an
anomaly level in [0, 10] and a linguistic label.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(evalCmd)
}
