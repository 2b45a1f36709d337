package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Sablekanishka11/mbti-mirror/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "mbti-mirror",
	Short: "Find your four-letter personality type",
	Long: "MBTI Mirror asks twenty either/or questions, classifies you into one of the\n" +
		"sixteen personality types and keeps a history of your results.\n\n" +
		"Set ANTHROPIC_API_KEY, OPENAI_API_KEY, GEMINI_API_KEY or OPENROUTER_API_KEY\n" +
		"(or MBTI_LLM_PROVIDER and friends) to enable AI insights about famous people\n" +
		"who share your type.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides MBTI_DB)")
	pf.String("user", "", "Name results are saved under (overrides MBTI_USER)")
	pf.String("log-level", "", "debug, info, warn or error (overrides MBTI_LOG_LEVEL)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(typesCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(botCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db (highest priority),
// then MBTI_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
