package jobs

import (
	"context"
	"log/slog"

	"velostore/internal/pkg/clock"
	"velostore/internal/pkg/config"
	"velostore/internal/pkg/errs"
	"velostore/internal/usecase/shared"

	"github.com/robfig/cron/v3"
)

// OverdueSweeper periodically flips rentals past their due date to Overdue.
type OverdueSweeper struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	cron   *cron.Cron
	spec   string
	logger *slog.Logger
}

func NewOverdueSweeper(uow shared.UnitOfWork, clk clock.Clock, cfg config.RentalConfig, logger *slog.Logger) *OverdueSweeper {
	return &OverdueSweeper{
		uow:    uow,
		clock:  clk,
		cron:   cron.New(),
		spec:   cfg.OverdueSweepSpec,
		logger: logger,
	}
}

func (s *OverdueSweeper) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		if err := s.SweepOnce(context.Background()); err != nil {
			s.logger.Error("overdue sweep failed", "error", err)
		}
	})
	if err != nil {
		return errs.Wrap(err, "failed to schedule overdue sweep")
	}
	s.cron.Start()
	s.logger.Info("overdue sweeper started", "spec", s.spec)
	return nil
}

func (s *OverdueSweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *OverdueSweeper) SweepOnce(ctx context.Context) error {
	return s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		flipped, err := tx.RentalOrders().MarkOverdue(ctx, tx.DB(), s.clock.Now())
		if err != nil {
			return err
		}
		if flipped > 0 {
			s.logger.Info("marked rentals overdue", "count", flipped)
		}
		return nil
	})
}
