package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/Sablekanishka11/mbti-mirror/internal/telegram"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the quiz as a Telegram bot",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, depsOptions{withInsights: true})
		if err != nil {
			return err
		}
		defer d.Close()

		token := d.cfg.TelegramToken
		if v, _ := cmd.Flags().GetString("token"); v != "" {
			token = v
		}
		if token == "" {
			return errors.New("no bot token: pass --token or set MBTI_TELEGRAM_TOKEN")
		}

		handler := telegram.NewHandler(d.results, d.catalog, d.insights, d.logger)
		bot, err := telegram.NewBot(token, handler, d.logger)
		if err != nil {
			return err
		}
		return bot.Run(cmd.Context())
	},
}

func init() {
	botCmd.Flags().String("token", "", "Telegram bot token (overrides MBTI_TELEGRAM_TOKEN)")
}
