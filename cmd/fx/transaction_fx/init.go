package transaction_fx

import (
	"go.uber.org/fx"
	"schoolpay/internal/services"
)

var Module = fx.Provide(
	services.NewTransactionQueryService,
	services.NewStatusUpdateService,
)
