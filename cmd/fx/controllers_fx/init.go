package controllers_fx

import (
	"go.uber.org/fx"
	"schoolpay/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewTransactionController),
	fx.Provide(controllers.NewWebhookController),
	fx.Provide(controllers.NewImportController),
	fx.Provide(controllers.NewHealthController))
