package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"IchiVSA/internal/collector"
	"IchiVSA/internal/exposure"
	"IchiVSA/internal/notifier"
	"IchiVSA/internal/recorder"
	"IchiVSA/internal/strategy"
)

// digestBars is how many trailing bars the weekly digest summarizes.
const digestBars = 30

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Analyzer  *strategy.Analyzer
	Exposure  *exposure.Manager
	Notifier  *notifier.TelegramNotifier
	Recorder  recorder.Recorder
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, an *strategy.Analyzer,
	em *exposure.Manager, tn *notifier.TelegramNotifier, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Analyzer:  an,
		Exposure:  em,
		Notifier:  tn,
		Recorder:  rec,
		Ctx:       ctx,
	}
}

// RegisterAll registers the daily analysis and weekly digest tasks.
func (s *Scheduler) RegisterAll(dailyCron, weeklyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	if _, err := s.Cron.AddFunc(weeklyCron, s.weeklyDigest); err != nil {
		return fmt.Errorf("register weekly digest: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunDailyNow executes the daily task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunDailyNow() {
	s.dailyTask()
}

func (s *Scheduler) dailyTask() {
	log.Println("[INFO] running daily analysis")
	bars, err := s.Collector.Collect()
	if err != nil {
		log.Printf("[ERROR] daily collect: %v", err)
		s.trySend(fmt.Sprintf("❌ Daily analysis failed to collect data: %v", err))
		return
	}

	sum, err := s.Analyzer.Latest(bars)
	if err != nil {
		log.Printf("[ERROR] daily analysis: %v", err)
		s.trySend(fmt.Sprintf("❌ Daily analysis failed: %v", err))
		return
	}

	report := notifier.FormatLatestReport(s.Collector.Symbol, sum)

	before, after, changed := s.Exposure.Apply(sum)
	if changed {
		report += "\n" + notifier.FormatExposureStatus(s.Collector.Symbol, s.Exposure.GetState())
		if err := s.Recorder.RecordExposure(&recorder.ExposureEvent{
			Symbol:       s.Collector.Symbol,
			Signal:       sum.Signal,
			TargetBefore: before,
			TargetAfter:  after,
			Streak:       s.Exposure.Streak(),
			At:           time.Now(),
		}); err != nil {
			log.Printf("[ERROR] record exposure event: %v", err)
		}
	}

	s.trySend(report)

	if err := s.Recorder.RecordSnapshot(&recorder.SignalSnapshot{
		Symbol:  s.Collector.Symbol,
		Summary: sum,
	}); err != nil {
		log.Printf("[ERROR] record snapshot: %v", err)
	}
}

func (s *Scheduler) weeklyDigest() {
	log.Println("[INFO] running weekly digest")
	bars, err := s.Collector.Collect()
	if err != nil {
		log.Printf("[ERROR] digest collect: %v", err)
		return
	}
	recs, err := s.Analyzer.Analyze(bars)
	if err != nil {
		log.Printf("[ERROR] digest analysis: %v", err)
		return
	}
	s.trySend(notifier.FormatDigest(s.Collector.Symbol, recs, digestBars))
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/latest":
		s.dailyTask()
		return ""
	case "/digest":
		s.weeklyDigest()
		return ""
	case "/status":
		return notifier.FormatExposureStatus(s.Collector.Symbol, s.Exposure.GetState())
	default:
		return "Available commands:\n• /latest - run analysis on fresh data\n• /digest - signal distribution over recent bars\n• /status - current exposure state"
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
