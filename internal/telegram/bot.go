package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tele "gopkg.in/telebot.v4"
)

// Bot binds a Handler to the Telegram API.
type Bot struct {
	bot     *tele.Bot
	handler *Handler
	logger  *slog.Logger
}

// NewBot connects to Telegram with token and registers the handlers.
func NewBot(token string, handler *Handler, logger *slog.Logger) (*Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram token is required (set MBTI_TELEGRAM_TOKEN)")
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "telegram")

	b, err := tele.NewBot(tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			logger.Error("handler failed", "error", err)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("telebot.NewBot: %w", err)
	}

	bot := &Bot{bot: b, handler: handler, logger: logger}
	bot.register()
	return bot, nil
}

func (b *Bot) register() {
	h := b.handler
	b.bot.Use(b.logUpdates)

	b.bot.Handle("/start", func(c tele.Context) error {
		return b.send(c, h.Welcome())
	})
	b.bot.Handle("/quiz", func(c tele.Context) error {
		return b.send(c, h.StartQuiz(c.Chat().ID))
	})
	b.bot.Handle("/history", func(c tele.Context) error {
		return b.send(c, h.History(context.Background(), Owner(c.Sender().ID)))
	})

	b.bot.Handle(&tele.Btn{Unique: uniqueAnswer}, func(c tele.Context) error {
		id, choice, err := parseAnswerData(c.Callback().Data)
		if err != nil {
			return c.Respond(&tele.CallbackResponse{Text: "Unknown answer"})
		}
		return b.respond(c, h.Answer(context.Background(), c.Chat().ID, Owner(c.Sender().ID), id, choice))
	})
	b.bot.Handle(&tele.Btn{Unique: uniqueBack}, func(c tele.Context) error {
		return b.respond(c, h.Back(c.Chat().ID))
	})
	b.bot.Handle(&tele.Btn{Unique: uniqueRetry}, func(c tele.Context) error {
		return b.respond(c, h.Retry(context.Background(), c.Chat().ID))
	})
	b.bot.Handle(&tele.Btn{Unique: uniqueRestart}, func(c tele.Context) error {
		_ = c.Respond()
		return b.send(c, h.StartQuiz(c.Chat().ID))
	})
	b.bot.Handle(&tele.Btn{Unique: uniqueInsight}, func(c tele.Context) error {
		code, idx, err := parseInsightData(c.Callback().Data)
		if err != nil {
			return c.Respond(&tele.CallbackResponse{Text: "Unknown person"})
		}
		_ = c.Respond(&tele.CallbackResponse{Text: "Thinking..."})
		return b.send(c, h.Insight(context.Background(), code, idx))
	})
}

func (b *Bot) logUpdates(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		var sender int64
		if c.Sender() != nil {
			sender = c.Sender().ID
		}
		b.logger.Debug("update", "update_id", c.Update().ID, "sender", sender, "text", c.Text())
		return next(c)
	}
}

func (b *Bot) send(c tele.Context, r Reply) error {
	if r.Markup != nil {
		return c.Send(r.Text, r.Markup)
	}
	return c.Send(r.Text)
}

// respond acknowledges a callback and delivers r, editing the keyboard
// message in place when r asks for it.
func (b *Bot) respond(c tele.Context, r Reply) error {
	_ = c.Respond()
	if r.Edit {
		if r.Markup != nil {
			return c.Edit(r.Text, r.Markup)
		}
		return c.Edit(r.Text)
	}
	return b.send(c, r)
}

// Run polls for updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("bot started", "username", b.bot.Me.Username)
	go func() {
		<-ctx.Done()
		b.bot.Stop()
	}()
	b.bot.Start()
	return nil
}
