package scheduler

import (
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Reloader refreshes the dataset and reports whether a new version was
// installed.
type Reloader interface {
	ReloadDataset() (bool, error)
}

type Scheduler struct {
	reloader Reloader
	logger   *zap.Logger
	spec     string
	cron     *cron.Cron
	entryID  cron.EntryID
	mu       sync.Mutex
	running  bool
	lastRun  time.Time
	lastErr  error
	reloads  int
}

func NewScheduler(reloader Reloader, spec string, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		reloader: reloader,
		logger:   logger,
		spec:     spec,
		cron: cron.New(
			cron.WithLogger(cronLogger{logger.Sugar()}),
			cron.WithChain(cron.Recover(cronLogger{logger.Sugar()}), cron.SkipIfStillRunning(cronLogger{logger.Sugar()})),
		),
	}
}

// Start registers the reload job and starts the cron loop. It does not run
// the job immediately; the caller loads the dataset once at startup.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	id, err := s.cron.AddFunc(s.spec, s.runReload)
	if err != nil {
		return err
	}
	s.entryID = id
	s.running = true
	s.cron.Start()

	s.logger.Info("Scheduler started",
		zap.String("schedule", s.spec),
		zap.Time("next_run", s.cron.Entry(id).Next))

	return nil
}

func (s *Scheduler) runReload() {
	startTime := time.Now()
	s.logger.Debug("Starting scheduled dataset reload")

	changed, err := s.reloader.ReloadDataset()

	s.mu.Lock()
	s.lastRun = startTime
	s.lastErr = err
	if changed {
		s.reloads++
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("Scheduled dataset reload failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(startTime)))
		return
	}

	s.logger.Info("Scheduled dataset reload completed",
		zap.Bool("changed", changed),
		zap.Duration("duration", time.Since(startTime)))
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	s.logger.Info("Stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) ForceRun() {
	s.logger.Info("Manually triggering dataset reload")
	go s.runReload()
}

func (s *Scheduler) GetStatus() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := map[string]interface{}{
		"running":  s.running,
		"schedule": s.spec,
		"last_run": s.lastRun,
		"reloads":  s.reloads,
	}
	if s.running {
		status["next_run"] = s.cron.Entry(s.entryID).Next
	}
	if s.lastErr != nil {
		status["last_error"] = s.lastErr.Error()
	}
	return status
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	sugar *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, append(keysAndValues, "error", err)...)
}
