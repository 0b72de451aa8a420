// Package scheduler runs the automatic monthly bill generation job.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"waterbill-backend-go/internal/core"
)

// runTimeout bounds one generation run. Generation is a handful of Firestore
// queries plus one batch commit, so a minute is generous.
const runTimeout = time.Minute

// Scheduler triggers bill generation on a cron expression. The settings flag
// is re-read on every tick, so toggling autoBillGeneration takes effect
// without a restart. Because generation skips already-billed customers, a
// missed or doubled tick cannot produce duplicates.
type Scheduler struct {
	cron    *cron.Cron
	billing core.BillingService
	logger  *zap.Logger
}

// New creates a Scheduler that fires on the given cron expression
// (standard five-field syntax, e.g. "0 0 1 * *" for midnight on the 1st).
func New(cronSpec string, billing core.BillingService, logger *zap.Logger) (*Scheduler, error) {
	if billing == nil {
		panic("Scheduler requires a non-nil BillingService")
	}
	if logger == nil {
		panic("Scheduler requires a non-nil zap.Logger instance")
	}

	s := &Scheduler{
		cron:    cron.New(),
		billing: billing,
		logger:  logger,
	}
	if _, err := s.cron.AddFunc(cronSpec, s.run); err != nil {
		return nil, err
	}
	return s, nil
}

// Start launches the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Bill generation scheduler started")
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Bill generation scheduler stopped")
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	settings, err := s.billing.GetSettings(ctx)
	if err != nil {
		s.logger.Error("Scheduled generation: failed to load settings", zap.Error(err))
		return
	}
	if !settings.AutoBillGeneration {
		s.logger.Info("Scheduled generation skipped: automatic generation is disabled")
		return
	}

	created, err := s.billing.GenerateMonthlyBills(ctx)
	if err != nil {
		s.logger.Error("Scheduled generation failed", zap.Error(err))
		return
	}
	s.logger.Info("Scheduled generation completed", zap.Int("created", created))
}
