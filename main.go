package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ═══════════════════════════════════════════════════════════════════
//  INIT & MAIN
// ═══════════════════════════════════════════════════════════════════

func main() {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic in main", "panic", r, "stack", string(debug.Stack()))
			closeLogger()
			os.Exit(1)
		}
	}()

	cfg, err := loadConfig("config.json")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	setupLogger(cfg)
	defer closeLogger()

	store, err := NewSQLiteUserStore(cfg.Database.Path)
	if err != nil {
		slog.Error("database open failed", "path", cfg.Database.Path, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx := InitApp(cfg, store)
	ctx.Perms.SeedAdmins(cfg.AdminIDs)
	if err := ctx.Perms.LoadAdmins(); err != nil {
		slog.Error("admin cache load failed", "error", err)
		os.Exit(1)
	}

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		slog.Error("bot startup failed", "error", err)
		os.Exit(1)
	}
	slog.Info("bot started", "username", bot.Self.UserName)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := bot.GetUpdatesChan(u)

	// Updates are handled one at a time. Game sessions are per-user and
	// the occasional queueing is invisible at chat-bot scale.
	for {
		select {
		case update, ok := <-updates:
			if !ok {
				slog.Info("update channel closed")
				return
			}
			handleUpdate(ctx, bot, update)
		case sig := <-stop:
			slog.Info("shutting down", "signal", sig.String())
			bot.StopReceivingUpdates()
			return
		}
	}
}
