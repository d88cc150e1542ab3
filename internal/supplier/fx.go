package supplier

import (
	"github.com/movelar/proforma/internal/supplier/repository"
	"github.com/movelar/proforma/internal/supplier/service"
	"go.uber.org/fx"
)

var Module = fx.Module("supplier.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
