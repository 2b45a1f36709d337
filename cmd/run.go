package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sablekanishka11/mbti-mirror/internal/app"
	"github.com/Sablekanishka11/mbti-mirror/internal/selfupdate"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the terminal app (the default command)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	d, err := openDeps(cmd, depsOptions{logToFile: true, withInsights: true})
	if err != nil {
		return err
	}
	defer d.Close()

	return app.Run(cmd.Context(), app.Options{
		Results:       d.results,
		Catalog:       d.catalog,
		Insights:      d.insights,
		Logger:        d.logger,
		Owner:         d.cfg.User,
		LatestVersion: latestVersion(cmd.Context()),
	})
}

// latestVersion returns a newer release tag, or "" when there is none or
// the check fails. Development builds skip the check.
func latestVersion(ctx context.Context) string {
	if version == "(devel)" {
		return ""
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	res, err := selfupdate.NewChecker().Check(ctx, &selfupdate.CheckInput{Version: version})
	if err != nil || !res.UpdateAvailable {
		return ""
	}
	return res.LatestVersion
}
