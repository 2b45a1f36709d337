package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sablekanishka11/mbti-mirror/internal/personality"
	"github.com/Sablekanishka11/mbti-mirror/internal/results"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Print the question bank",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, q := range personality.DefaultBank().Questions() {
			fmt.Fprintf(out, "%2d. [%s] %s\n", q.ID, q.Pair(), q.Text)
			fmt.Fprintf(out, "    A) %s (%s)\n", q.A.Text, q.A.Axis)
			fmt.Fprintf(out, "    B) %s (%s)\n", q.B.Text, q.B.Axis)
		}
		return nil
	},
}

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify a set of answers without saving",
	Example: `  mbti-mirror classify --answers "1=A,2=B,3=A"
  mbti-mirror questions   # to see the ids`,
	RunE: func(cmd *cobra.Command, args []string) error {
		answers, err := answersFlag(cmd)
		if err != nil {
			return err
		}
		bank := personality.DefaultBank()
		if unknown := answers.Unknown(bank); len(unknown) > 0 {
			return fmt.Errorf("unknown question ids: %v", unknown)
		}

		tally := personality.Score(answers, bank)
		code := personality.Classify(answers, bank)
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, code)
		for _, p := range personality.Pairs() {
			fmt.Fprintf(out, "  %s: %d  %s: %d\n",
				p.First(), tally.Count(p.First()), p.Second(), tally.Count(p.Second()))
		}
		if missing := answers.Missing(bank); len(missing) > 0 {
			fmt.Fprintf(out, "Preview only: %d of %d questions unanswered %v\n", len(missing), bank.Len(), missing)
		}
		return nil
	},
}

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Classify a complete set of answers and save the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		answers, err := answersFlag(cmd)
		if err != nil {
			return err
		}

		d, err := openDeps(cmd, depsOptions{})
		if err != nil {
			return err
		}
		defer d.Close()

		owner, err := d.owner()
		if err != nil {
			return err
		}

		rec, err := d.results.Submit(cmd.Context(), owner, answers)
		var incomplete *results.IncompleteError
		switch {
		case errors.As(err, &incomplete):
			return fmt.Errorf("answer every question before submitting: missing %v, unknown %v",
				incomplete.Missing, incomplete.Unknown)
		case err != nil:
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s as %s (%s)\n\n", rec.ID, rec.TypeCode, rec.Profile.Nickname)
		printRecord(cmd.OutOrStdout(), rec)
		return nil
	},
}

func answersFlag(cmd *cobra.Command) (personality.AnswerSet, error) {
	raw, _ := cmd.Flags().GetString("answers")
	answers, err := personality.ParseAnswers(raw)
	if err != nil {
		return nil, fmt.Errorf("--answers: %w", err)
	}
	return answers, nil
}

func printRecord(w io.Writer, rec *results.Record) {
	fmt.Fprintf(w, "%s  %s\n", rec.TypeCode, rec.CreatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "Answers: %s\n\n", rec.Answers)
	printProfile(w, rec.Profile)
}

func bulletList(items []string) string {
	var b strings.Builder
	for _, it := range items {
		b.WriteString("  • ")
		b.WriteString(it)
		b.WriteString("\n")
	}
	return b.String()
}

func init() {
	classifyCmd.Flags().StringP("answers", "a", "", `Answers as "id=A|B" pairs separated by commas`)
	submitCmd.Flags().StringP("answers", "a", "", `Answers as "id=A|B" pairs separated by commas`)
	_ = submitCmd.MarkFlagRequired("answers")
}
