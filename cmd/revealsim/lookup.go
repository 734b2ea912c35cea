package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mtgtools/revealsim/internal/catalog"
	"github.com/mtgtools/revealsim/internal/config"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <card name>",
	Short: "Resolve a single card against the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		client := catalog.NewClient(cfg.CatalogBaseURL, cfg.CatalogTimeout)
		c, err := client.Lookup(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, color.CyanString("Name:       ")+c.Name)
		fmt.Fprintf(out, "%s%.0f\n", color.CyanString("Mana value: "), c.ManaValue)
		fmt.Fprintln(out, color.CyanString("Types:      ")+c.Types.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lookupCmd)
	lookupCmd.Flags().String("config", "", "path to YAML config")
}
