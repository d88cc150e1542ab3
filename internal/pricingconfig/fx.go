package pricingconfig

import (
	"github.com/movelar/proforma/internal/pricingconfig/repository"
	"github.com/movelar/proforma/internal/pricingconfig/service"
	"go.uber.org/fx"
)

var Module = fx.Module("pricingconfig.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
