package catalog

import (
	"github.com/movelar/proforma/internal/catalog/repository"
	"github.com/movelar/proforma/internal/catalog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
