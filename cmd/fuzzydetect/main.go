// Command fuzzydetect scores multivariate time series for anomalies using
// a Mamdani fuzzy inference system over three window indicators.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
