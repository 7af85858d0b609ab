package server

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jacksmith/shelf/internal/ops"
	"github.com/robfig/cron/v3"
)

// cronParser accepts standard five-field specs and descriptors like @daily.
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ValidateSchedule reports whether BackupScheduler accepts schedule.
func ValidateSchedule(schedule string) error {
	if _, err := cronParser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid backup schedule %q: %w", schedule, err)
	}
	return nil
}

// BackupScheduler periodically copies the stored book list to its backup key.
type BackupScheduler struct {
	shelf    *Shelf
	schedule string
	logger   *slog.Logger

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.RWMutex
	isRunning bool
}

func NewBackupScheduler(shelf *Shelf, schedule string, logger *slog.Logger) *BackupScheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &BackupScheduler{
		shelf:    shelf,
		schedule: schedule,
		logger:   logger.With("component", "backup"),
		cron:     cron.New(cron.WithParser(cronParser)),
	}
}

// Start schedules backups until ctx is done or Stop is called.
// An empty schedule leaves the scheduler disabled.
func (s *BackupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if s.schedule == "" {
		s.logger.Info("scheduler disabled")
		return nil
	}
	if err := ValidateSchedule(s.schedule); err != nil {
		return err
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.run()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule backup job: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true
	s.logger.Info("scheduler started", "schedule", s.schedule, "next_run", s.cron.Entry(entryID).Next)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running backup to finish and stops the scheduler.
func (s *BackupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	<-s.cron.Stop().Done()
	s.cron.Remove(s.entryID)
	s.isRunning = false
	s.logger.Info("scheduler stopped")
}

// RunNow takes a backup immediately and returns the number of books copied.
func (s *BackupScheduler) RunNow() (int, error) {
	var n int
	err := s.shelf.Do(func(bs *ops.BookStore) error {
		var err error
		n, err = bs.Backup()
		return err
	})
	return n, err
}

func (s *BackupScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns when the next backup is due, or nil if not running.
func (s *BackupScheduler) NextRun() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	next := s.cron.Entry(s.entryID).Next
	return &next
}

func (s *BackupScheduler) run() {
	start := time.Now()
	n, err := s.RunNow()
	if err != nil {
		s.logger.Error("backup failed", "error", err)
		return
	}
	s.logger.Info("backup complete", "books", n, "duration", time.Since(start).Round(time.Millisecond))
}
