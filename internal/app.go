package internal

import (
	"context"

	"tablecrm_cashier/internal/cli"
	"tablecrm_cashier/internal/config"
	"tablecrm_cashier/internal/logging"
	"tablecrm_cashier/internal/pos"
	"tablecrm_cashier/internal/tablecrm"

	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
)

func Run() error {
	var runner *cli.Runner

	app := fx.New(
		logger.Module(),
		logger.WithFxDefaultLogger(),
		config.Module(),
		logging.Module(),
		tablecrm.Module(),
		pos.Module(),
		cli.Module(),
		fx.Populate(&runner),
	)

	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		return err
	}
	defer func() {
		_ = app.Stop(ctx)
	}()

	return runner.Execute()
}
