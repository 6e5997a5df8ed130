package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	evalTime  float64
	plugin    string
	particles int
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "rtidump",
	Short: "Inspect the instance data a demo particle producer hands to consumers",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Float64Var(&evalTime, "time", 0, "Evaluation time in seconds")
	rootCmd.PersistentFlags().StringVar(&plugin, "plugin", "rtidump", "Consumer plugin identity passed to updates")
	rootCmd.PersistentFlags().IntVar(&particles, "count", 16, "Number of demo particles")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging from the producer")
}
