package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sablekanishka11/mbti-mirror/internal/results"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Inspect saved results",
}

var resultsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your results, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, depsOptions{})
		if err != nil {
			return err
		}
		defer d.Close()

		owner, err := d.owner()
		if err != nil {
			return err
		}
		recs, err := d.results.History(cmd.Context(), owner)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(recs) == 0 {
			fmt.Fprintf(out, "No results for %s yet.\n", owner)
			return nil
		}

		fmt.Fprintf(out, "%-36s  %-16s  %-4s  %s\n", "ID", "Taken", "Type", "Nickname")
		fmt.Fprintln(out, strings.Repeat("─", 80))
		for _, r := range recs {
			fmt.Fprintf(out, "%-36s  %-16s  %-4s  %s\n",
				r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04"), r.TypeCode, r.Profile.Nickname)
		}
		return nil
	},
}

var resultsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one saved result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, depsOptions{})
		if err != nil {
			return err
		}
		defer d.Close()

		rec, err := d.results.Get(cmd.Context(), args[0])
		if errors.Is(err, results.ErrNotFound) {
			return fmt.Errorf("result %s not found", args[0])
		}
		if err != nil {
			return err
		}
		printRecord(cmd.OutOrStdout(), rec)
		return nil
	},
}

func init() {
	resultsCmd.AddCommand(resultsListCmd)
	resultsCmd.AddCommand(resultsShowCmd)
}
