package proforma

import (
	"github.com/movelar/proforma/internal/proforma/render"
	"github.com/movelar/proforma/internal/proforma/repository"
	"github.com/movelar/proforma/internal/proforma/service"
	"go.uber.org/fx"
)

var Module = fx.Module("proforma.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
	fx.Provide(render.NewHTMLRenderer),
)
