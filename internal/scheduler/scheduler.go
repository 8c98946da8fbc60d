package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"CycleSentinel/internal/collector"
	"CycleSentinel/internal/model"
	"CycleSentinel/internal/notifier"
	"CycleSentinel/internal/recorder"
	"CycleSentinel/internal/report"
	"CycleSentinel/internal/store"
	"CycleSentinel/internal/strategy"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Notifier delivers formatted messages.
type Notifier interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler manages the daily analysis job and on-demand runs.
type Scheduler struct {
	Cron       *cron.Cron
	Collector  *collector.Collector
	Engine     *strategy.Engine
	Store      *store.Store
	Recorder   recorder.Recorder
	Notifier   Notifier
	ReportPath string
	Ctx        context.Context

	log    *logrus.Entry
	tracer trace.Tracer
	now    func() time.Time
	mu     sync.Mutex
}

// NewScheduler creates a new Scheduler. n may be nil when no delivery channel
// is configured.
func NewScheduler(ctx context.Context, col *collector.Collector, eng *strategy.Engine, st *store.Store,
	rec recorder.Recorder, n Notifier, reportPath string, log *logrus.Entry) *Scheduler {
	return &Scheduler{
		Cron:       cron.New(cron.WithSeconds()),
		Collector:  col,
		Engine:     eng,
		Store:      st,
		Recorder:   rec,
		Notifier:   n,
		ReportPath: reportPath,
		Ctx:        ctx,
		log:        log,
		tracer:     otel.Tracer("scheduler"),
		now:        time.Now,
	}
}

// Register adds the daily analysis job.
func (s *Scheduler) Register(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info("scheduler started")
}

// Stop stops the cron scheduler and waits for a running job.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Info("scheduler stopped")
}

// RunNow collects data, runs the engine and persists the result. Runs are
// serialized.
func (s *Scheduler) RunNow(ctx context.Context) (*model.AnalysisResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, span := s.tracer.Start(ctx, "scheduler.run-analysis")
	defer span.End()

	series, err := s.Collector.Collect(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("collect: %w", err)
	}

	res, err := s.Engine.Analyze(series.Bars, s.now().UTC())
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("analyze: %w", err)
	}
	res.Symbol = series.Symbol
	span.SetAttributes(
		attribute.String("category", string(res.Category)),
		attribute.Float64("total_score", res.TotalScore),
		attribute.Bool("degraded", res.Degraded),
	)

	entry := s.log.WithFields(logrus.Fields{
		"category": res.Category,
		"score":    fmt.Sprintf("%+.2f", res.TotalScore),
		"peak":     res.Peak.Score,
		"price":    res.Price,
	})
	if res.Degraded {
		entry = entry.WithField("warnings", len(res.Warnings))
	}
	entry.Info("analysis complete")

	if err := s.Store.Set(res); err != nil {
		s.log.WithError(err).Error("save latest analysis")
	}
	if _, err := s.Recorder.RecordAnalysis(ctx, res); err != nil {
		s.log.WithError(err).Error("record analysis")
	}
	if s.ReportPath != "" {
		if err := report.WriteFile(s.ReportPath, res, s.now()); err != nil {
			s.log.WithError(err).Error("write report")
		}
	}
	return res, nil
}

func (s *Scheduler) dailyTask() {
	s.log.Info("running daily analysis")
	res, err := s.RunNow(s.Ctx)
	if err != nil {
		s.log.WithError(err).Error("daily analysis failed")
		s.trySend(fmt.Sprintf("❌ Daily analysis failed: %v", err))
		return
	}
	s.trySend(notifier.FormatAnalysis(res))
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	switch command {
	case "/analysis":
		res, err := s.RunNow(ctx)
		if err != nil {
			s.log.WithError(err).Error("on-demand analysis failed")
			return fmt.Sprintf("❌ Analysis failed: %v", err)
		}
		return notifier.FormatAnalysis(res)
	case "/latest":
		return notifier.FormatLatest(s.Store.Latest())
	default:
		return notifier.FormatHelp()
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		s.log.WithError(err).Error("send notification")
	}
}
