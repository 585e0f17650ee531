package tablecrm

import "go.uber.org/fx"

func Module() fx.Option {
	return fx.Module(
		"tablecrm",
		fx.Provide(NewClient),
	)
}
