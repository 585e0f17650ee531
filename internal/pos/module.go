package pos

import (
	"tablecrm_cashier/internal/config"
	"tablecrm_cashier/internal/tablecrm"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Module() fx.Option {
	return fx.Module(
		"pos",
		fx.Provide(func(cfg config.Config) *TokenStore {
			return NewTokenStore(cfg.TokenFile)
		}),
		fx.Provide(func(client *tablecrm.Client, store *TokenStore, logger *zap.Logger) *Session {
			return NewSession(client, store, logger)
		}),
		fx.Provide(NewService),
	)
}
