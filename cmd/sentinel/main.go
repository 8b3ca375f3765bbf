package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"HoyoSentinel/internal/baseline"
	"HoyoSentinel/internal/config"
	"HoyoSentinel/internal/detector"
	"HoyoSentinel/internal/hoyolab"
	"HoyoSentinel/internal/model"
	"HoyoSentinel/internal/notifier"
	"HoyoSentinel/internal/recorder"
	"HoyoSentinel/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] HoyoSentinel starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init HoYoLAB client
	cookie, err := hoyolab.ParseCookie(cfg.Hoyolab.Cookie)
	if err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
	log.Printf("[INFO] hoyolab account %s, cookie %s", cookie.HoyolabUID(), config.MaskSecret(cookie.Header()))
	client := hoyolab.NewClient(cookie, hoyolab.NewClientData(cfg.Proxy))
	client.SetLanguage(cfg.Hoyolab.Language)
	if cfg.Hoyolab.UserAgent != "" {
		client.SetUserAgent(cfg.Hoyolab.UserAgent)
	}

	users := make([]hoyolab.User, 0, len(cfg.Accounts))
	for _, a := range cfg.Accounts {
		game, _ := model.ParseGame(a.Game)
		u, err := hoyolab.NewUser(game, a.UID)
		if err != nil {
			log.Fatalf("[FATAL] account %s:%d: %v", a.Game, a.UID, err)
		}
		users = append(users, u)
		if hoyolab.SupportsRecovery(game) {
			log.Printf("[INFO] watching %s on %s", u.Key(), u.Server)
		} else {
			log.Printf("[INFO] %s on %s: check-in only, no recovery counter to poll", u.Key(), u.Server)
		}
	}

	// Init baseline store
	var store baseline.Store
	if cfg.Baseline.RedisAddr != "" {
		store, err = baseline.NewRedisStore(ctx, cfg.Baseline.RedisAddr, cfg.Baseline.RedisPassword, cfg.Baseline.RedisDB)
	} else {
		var fs *baseline.FileStore
		fs, err = baseline.NewFileStore(cfg.Baseline.File)
		if err == nil {
			log.Printf("[INFO] baseline file %s: %d saved account(s) %v", cfg.Baseline.File, len(fs.Keys()), fs.Keys())
			store = fs
		}
	}
	if err != nil {
		log.Fatalf("[FATAL] init baseline store: %v", err)
	}
	defer store.Close()

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Event subscribers, in delivery order
	disp := detector.NewDispatcher()
	disp.Subscribe(recorder.EventRecorder{Recorder: rec})

	var tn *notifier.TelegramNotifier
	if cfg.TelegramEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, cfg.EventKinds())
		disp.Subscribe(tn)
	} else {
		log.Println("[WARN] telegram not configured, push and commands disabled")
	}

	if cfg.NATS.URL != "" {
		np, err := notifier.NewNATSPublisher(cfg.NATS.URL, cfg.NATS.Subject)
		if err != nil {
			log.Printf("[WARN] init NATS publisher failed, continuing without it: %v", err)
		} else {
			disp.Subscribe(np)
			defer np.Close()
		}
	}

	// Init scheduler
	opts := scheduler.Options{
		Fetcher:        client,
		Users:          users,
		Baselines:      store,
		Dispatcher:     disp,
		Recorder:       rec,
		UsageThreshold: cfg.UsageThreshold,
	}
	if tn != nil {
		opts.Notifier = tn
	}
	sched := scheduler.NewScheduler(ctx, opts)
	if err := sched.RegisterAll(cfg.Schedule.PollCron, cfg.Schedule.RewardCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	// Optional: poll immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, polling now")
		go sched.RunPollNow()
	}

	log.Println("[INFO] HoyoSentinel is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] HoyoSentinel stopped")
}
