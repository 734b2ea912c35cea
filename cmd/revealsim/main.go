package main

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "revealsim",
	Short: "Estimate card-type coverage for reveal-and-select effects",
	Long: `Revealsim runs Monte Carlo simulations over a decklist to estimate how many
distinct card types you can expect to keep when revealing X cards and keeping
at most four of them, preferring one card per type.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
