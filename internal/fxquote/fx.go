package fxquote

import (
	"github.com/movelar/proforma/internal/fxquote/service"
	"go.uber.org/fx"
)

var Module = fx.Module("fxquote.service",
	fx.Provide(service.New),
)
