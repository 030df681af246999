package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskmate/backend/internal/engine"
)

var (
	similarTopK     int
	similarMinScore float64
)

func init() {
	rootCmd.AddCommand(similarCmd)
	rootCmd.AddCommand(searchCmd)

	for _, c := range []*cobra.Command{similarCmd, searchCmd} {
		c.Flags().IntVarP(&similarTopK, "top-k", "k", 0, "Maximum number of results (default from config)")
		c.Flags().Float64Var(&similarMinScore, "min-score", 0, "Only show results scoring above this value (default from config)")
	}
}

var similarCmd = &cobra.Command{
	Use:   "similar <number>",
	Short: "Recommend tasks similar to the given task",
	Long: `Rank the other tasks by how closely their descriptions match the
selected task. The selected task is never included in its own results.`,
	Args: cobra.ExactArgs(1),
	RunE: runSimilar,
}

var searchCmd = &cobra.Command{
	Use:   "search <text>",
	Short: "Find tasks matching free text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(!verbose)
		if err != nil {
			return err
		}
		defer a.Close()

		recs, err := a.engine.Search(args[0], rankOptions(cmd, a.engine))
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(w, matchOutputs(recs))
		}
		if len(recs) == 0 {
			fmt.Fprintln(w, "No matching tasks.")
			return nil
		}
		for _, rec := range recs {
			fmt.Fprintf(w, "%3d. %s (Similarity: %s)\n", rec.Index+1, rec.Task.Description, engine.FormatScore(rec.Score))
		}
		return nil
	},
}

func runSimilar(cmd *cobra.Command, args []string) error {
	index, err := parseNumber(args[0])
	if err != nil {
		return err
	}

	a, err := openApp(!verbose)
	if err != nil {
		return err
	}
	defer a.Close()

	source, err := a.engine.Get(index)
	if err != nil {
		return err
	}
	recs, err := a.engine.Recommend(index, rankOptions(cmd, a.engine))
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if jsonOutput {
		return outputJSON(w, SimilarOutput{
			Source:  taskOutput(index, source),
			Similar: matchOutputs(recs),
			Total:   len(recs),
		})
	}

	switch {
	case a.engine.Len() < 2:
		fmt.Fprintln(w, "Not enough tasks to compare. Add at least one more task.")
	case len(recs) == 0:
		fmt.Fprintf(w, "No tasks similar to %q.\n", source.Description)
	default:
		fmt.Fprint(w, engine.FormatRecommendations(recs))
	}
	return nil
}

// rankOptions starts from the configured defaults and applies any flags the
// user set explicitly.
func rankOptions(cmd *cobra.Command, eng *engine.Engine) engine.Options {
	opts := eng.DefaultOptions()
	if cmd.Flags().Changed("top-k") {
		opts.TopK = similarTopK
	}
	if cmd.Flags().Changed("min-score") {
		opts.MinScore = similarMinScore
	}
	return opts
}
