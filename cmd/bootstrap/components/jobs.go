package components

import (
	"context"

	"velostore/internal/jobs"

	"go.uber.org/fx"
)

var JobsModule = fx.Module("jobs",
	fx.Provide(
		jobs.NewOverdueSweeper,
	),
	fx.Invoke(runOverdueSweeper),
)

func runOverdueSweeper(lc fx.Lifecycle, sweeper *jobs.OverdueSweeper) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			return sweeper.Start()
		},
		OnStop: func(_ context.Context) error {
			sweeper.Stop()
			return nil
		},
	})
}
