package usecase

import (
	"go.uber.org/fx"

	"github.com/smartkart/smartkart/internal/config"
)

// Module provides core business use cases to the fx container.
var Module = fx.Options(
	fx.Provide(
		NewAuthUseCase,
		NewOrderUseCase,
		NewGroupUseCase,
		NewSearchUseCase,
		NewRatingUseCase,
		NewPaymentUseCase,
	),
	fx.Provide(func(cfg *config.Config) UPIConfig {
		return UPIConfig{MerchantVPA: cfg.UPIMerchantVPA, MerchantName: cfg.UPIMerchantName}
	}),
)
