package import_fx

import (
	"go.uber.org/fx"
	"schoolpay/internal/services"
)

var Module = fx.Provide(services.NewImportService)
