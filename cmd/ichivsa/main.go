package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"IchiVSA/internal/collector"
	"IchiVSA/internal/config"
	"IchiVSA/internal/exposure"
	"IchiVSA/internal/ichimoku"
	"IchiVSA/internal/notifier"
	"IchiVSA/internal/recorder"
	"IchiVSA/internal/scheduler"
	"IchiVSA/internal/strategy"
	"IchiVSA/internal/vsa"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] IchiVSA starting...")

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

	// Init fetcher
	var fetcher collector.Fetcher
	if cfg.DataSource.CSVPath != "" {
		fetcher = collector.NewCSVFetcher(cfg.DataSource.CSVPath)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	col := collector.NewCollector(fetcher, cfg.DataSource.Symbol, cfg.DataSource.HistoryDays)

	// Init engines
	ix, err := ichimoku.New(cfg.Analysis.TenkanPeriod, cfg.Analysis.KijunPeriod,
		cfg.Analysis.SenkouBPeriod, cfg.Analysis.Displacement)
	if err != nil {
		log.Fatalf("[FATAL] init ichimoku: %v", err)
	}
	vs, err := vsa.New(cfg.Analysis.VolumeWindow, cfg.Analysis.HighVolumeFactor, cfg.Analysis.LowVolumeFactor)
	if err != nil {
		log.Fatalf("[FATAL] init vsa: %v", err)
	}
	analyzer := strategy.New(ix, vs)

	// Init exposure manager
	em, err := exposure.NewManager(cfg.Exposure.StateFile)
	if err != nil {
		log.Fatalf("[FATAL] init exposure manager: %v", err)
	}

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

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

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, col, analyzer, em, tn, rec)
	if err := sched.RegisterAll(cfg.Schedule.DailyCron, cfg.Schedule.WeeklyCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing daily analysis now")
		go sched.RunDailyNow()
	}

	log.Println("[INFO] IchiVSA is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] IchiVSA stopped")
}
