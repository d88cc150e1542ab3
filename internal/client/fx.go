package client

import (
	"github.com/movelar/proforma/internal/client/repository"
	"github.com/movelar/proforma/internal/client/service"
	"go.uber.org/fx"
)

var Module = fx.Module("client.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
