package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homework-bot/internal/config"
	"homework-bot/internal/logging"
	"homework-bot/internal/notifier"
	"homework-bot/internal/poller"
	"homework-bot/internal/practicum"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const missingTokensMessage = "Отсутствуют переменные окружения. Бот не работает!"

var (
	envFile  string
	once     bool
	fromDate int64
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "homework-bot",
	Short: "Telegram notifications about Practicum homework review status",
	Long: `homework-bot polls the Practicum homework_statuses API and sends a
Telegram message to TELEGRAM_CHAT_ID whenever the review status of the
latest homework changes.

Required environment: PRACTICUM_TOKEN, TELEGRAM_TOKEN, TELEGRAM_CHAT_ID.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().StringVar(&envFile, "env-file", "", "read environment from this file instead of .env")
	rootCmd.Flags().BoolVar(&once, "once", false, "run a single polling cycle and exit")
	rootCmd.Flags().Int64Var(&fromDate, "from-date", 0, "initial from_date unix timestamp (default: now)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "force debug logging")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg, verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if !config.CheckTokens(cfg, logger) {
		logger.Fatal(missingTokensMessage,
			zap.Strings("missing", config.MissingTokens(cfg)))
	}

	b, err := gotgbot.NewBot(cfg.TelegramToken, &gotgbot.BotOpts{
		RequestOpts: &gotgbot.RequestOpts{
			Timeout: cfg.HTTPTimeout,
		},
	})
	if err != nil {
		logger.Error("Failed to create bot", zap.Error(err))
		return fmt.Errorf("failed to create bot: %w", err)
	}
	logger.Info("Bot started", zap.String("username", b.User.Username))

	client := practicum.NewClient(ctx, cfg)
	tg := notifier.NewTelegram(b, cfg.TelegramChatID, logger)
	p := poller.New(cfg, client, tg, logger)
	if fromDate != 0 {
		p.SetCursor(fromDate)
	}

	if once {
		cycleCtx, cancel := context.WithTimeout(ctx, cfg.HTTPTimeout+10*time.Second)
		defer cancel()

		if err := p.RunOnce(cycleCtx); err != nil {
			logger.Error("Polling cycle failed", zap.Error(err))
			return err
		}
		return nil
	}

	if err := p.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
