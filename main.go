package main

import (
	"ShelfGuardian/ai/gpt"
	"ShelfGuardian/bot"
	"ShelfGuardian/impl/core"
	"ShelfGuardian/internal/config"
	"ShelfGuardian/internal/database"
	"ShelfGuardian/internal/database/memory"
	"ShelfGuardian/internal/http-server/api"
	"ShelfGuardian/internal/lib/logger"
	"ShelfGuardian/internal/lib/sl"
	"ShelfGuardian/internal/metrics"
	"ShelfGuardian/internal/service/auth"
	"ShelfGuardian/internal/service/history"
	"ShelfGuardian/internal/ws"
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
)

type storage interface {
	auth.Repository
	core.Repository
	gpt.Inventory
}

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	logPath := flag.String("log", "/var/log/", "path to log file directory")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env, *logPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize Telegram bot if enabled
	var tgBot *bot.TgBot
	if conf.Telegram.Enabled {
		var err error
		tgBot, err = bot.NewTgBot(conf.Telegram.BotName, conf.Telegram.ApiKey, conf.Telegram.AdminId, lg)
		if err != nil {
			lg.Error("failed to initialize telegram bot", sl.Err(err))
		} else {
			var level slog.Level
			if err = level.UnmarshalText([]byte(conf.Telegram.MinLevel)); err != nil {
				level = slog.LevelError
			}
			lg = logger.SetupTelegramHandler(lg, tgBot, level)
			lg.With(
				slog.String("bot_name", conf.Telegram.BotName),
				slog.String("min_level", level.String()),
			).Info("telegram bot initialized")
		}
	}

	lg.Info("starting shelfguardian", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	var store storage = memory.New()
	db, err := repository.NewMongoClient(conf, lg)
	if err != nil {
		lg.With(
			sl.Err(err),
		).Error("mongo client")
	}
	if db != nil {
		indexCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		if err = db.EnsureIndexes(indexCtx); err != nil {
			lg.Error("mongo indexes", sl.Err(err))
		}
		cancel()
		store = db
		lg.With(
			slog.String("host", conf.Mongo.Host),
			slog.String("port", conf.Mongo.Port),
			slog.String("user", conf.Mongo.User),
			slog.String("database", conf.Mongo.Database),
		).Info("mongo client initialized")
	} else {
		lg.Warn("mongo disabled, using in-memory storage")
	}

	m := metrics.New()

	hub := ws.NewHub(lg)
	go hub.Run(ctx)

	authService := auth.NewAuthService(conf, lg)
	authService.SetRepository(store)

	assistant := gpt.NewAssistant(conf, lg)
	assistant.SetInventory(store)
	assistant.SetPublisher(hub)
	assistant.SetMetrics(m)
	lg.With(
		sl.Secret("openai_key", conf.OpenAI.ApiKey),
		slog.String("model", conf.OpenAI.Model),
	).Info("assistant initialized")

	handler := core.New(lg)
	handler.SetRepository(store)
	handler.SetAuthService(authService)
	handler.SetAssistant(assistant)
	handler.SetHistory(history.New(conf.Chat.HistoryLimit))
	handler.SetPublisher(hub)
	handler.SetMetrics(m)
	handler.SetCleanup(conf.Cleanup.Hour, conf.Mongo.ExpiredDays, conf.Cleanup.ExpiringDays)

	handler.Init(ctx)

	if tgBot != nil {
		tgBot.SetStatusSource(handler)
		go func() {
			if err := tgBot.Start(ctx); err != nil {
				lg.Warn("telegram bot stopped", sl.Err(err))
			}
		}()
	}

	wsServer := ws.NewServer(hub, handler, conf.Cors.AllowedOrigins, lg)

	// *** blocking start with http server ***
	err = api.New(ctx, conf, lg, handler, wsServer, m)
	if err != nil {
		lg.Error("server start", sl.Err(err))
		return
	}
	lg.Info("service stopped")
}
