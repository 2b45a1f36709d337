package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Sablekanishka11/mbti-mirror/internal/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the quiz and results as a JSON API",
	Long: "Serves the question bank, classification, saved results, the type\n" +
		"catalog and exemplar insights over HTTP. Callers identify themselves\n" +
		"with the " + httpapi.OwnerHeader + " header. Prometheus metrics are at /metrics.",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, depsOptions{withInsights: true})
		if err != nil {
			return err
		}
		defer d.Close()

		addr := d.cfg.HTTPAddr
		if v, _ := cmd.Flags().GetString("addr"); v != "" {
			addr = v
		}

		srv := httpapi.New(d.results, d.catalog, d.insights, httpapi.Options{
			Addr:    addr,
			CORS:    d.cfg.HTTPCORS,
			Debug:   d.cfg.LogLevel == "debug",
			Logger:  d.logger,
			Version: version,
		})
		return srv.ListenAndServe(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides MBTI_HTTP_ADDR)")
}
