package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mtgtools/revealsim/internal/catalog"
	"github.com/mtgtools/revealsim/internal/config"
	"github.com/mtgtools/revealsim/internal/deck"
	"github.com/mtgtools/revealsim/internal/render"
	"github.com/mtgtools/revealsim/internal/sim"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [decklist-file]",
	Short: "Run the coverage simulation over a decklist",
	Long: `Analyze reads a decklist (one "<quantity> <name>" per line), resolves each
name against the card catalog, and simulates reveal sizes across the
configured range. With no file argument the decklist is read from stdin;
--last re-runs the previously analyzed decklist.

Examples:
  revealsim analyze deck.txt
  revealsim analyze --trials 50000 --seed 7 deck.txt
  cat deck.txt | revealsim analyze
  revealsim analyze --last`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		text, err := readDecklist(cmd, args, cfg)
		if err != nil {
			return err
		}

		cached := catalog.NewCache(catalog.NewClient(cfg.CatalogBaseURL, cfg.CatalogTimeout))
		d, skipped, err := deck.NewBuilder(cached).BuildText(cmd.Context(), text)
		if err != nil {
			return err
		}
		render.SkippedNames(cmd.ErrOrStderr(), skipped)
		if len(d) == 0 {
			return fmt.Errorf("nothing to analyze: %w", deck.ErrEmptyDeck)
		}

		params := sim.Params{XMin: cfg.XMin, XMax: cfg.XMax, Trials: cfg.Trials, Workers: cfg.Workers}
		if v, _ := cmd.Flags().GetInt("trials"); v > 0 {
			params.Trials = v
		}
		if v, _ := cmd.Flags().GetInt("x-min"); v > 0 {
			params.XMin = v
		}
		if v, _ := cmd.Flags().GetInt("x-max"); v > 0 {
			params.XMax = v
		}
		params.Seed, _ = cmd.Flags().GetUint64("seed")

		results, err := sim.Run(cmd.Context(), d, params)
		if err != nil {
			return err
		}
		summary := sim.Summarize(results)

		// remember the decklist for --last; failure to persist is not fatal
		if useLast, _ := cmd.Flags().GetBool("last"); !useLast {
			if err := deck.NewStore(cfg.StoreDir).SaveLast(text); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), color.YellowString("warning: %v", err))
			}
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deck: %d cards, %d trials per reveal size\n\n", len(d), params.Trials)
		return render.Terminal{}.RenderSummary(cmd.OutOrStdout(), summary)
	},
}

// readDecklist picks the decklist source: --last, a file argument, or stdin.
func readDecklist(cmd *cobra.Command, args []string, cfg config.Config) (string, error) {
	if useLast, _ := cmd.Flags().GetBool("last"); useLast {
		return deck.NewStore(cfg.StoreDir).LoadLast()
	}
	if len(args) == 1 {
		b, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read decklist: %w", err)
		}
		return string(b), nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(b), nil
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().String("config", "", "path to YAML config")
	analyzeCmd.Flags().Int("trials", 0, "trials per reveal size (default from config)")
	analyzeCmd.Flags().Int("x-min", 0, "smallest reveal size")
	analyzeCmd.Flags().Int("x-max", 0, "largest reveal size")
	analyzeCmd.Flags().Uint64("seed", 0, "random seed (0 uses the clock)")
	analyzeCmd.Flags().Bool("last", false, "re-run the previously analyzed decklist")
	analyzeCmd.Flags().Bool("json", false, "emit the summary as JSON")
}
