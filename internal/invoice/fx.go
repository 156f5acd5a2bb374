package invoice

import (
	"github.com/smallbiznis/invoicegen/internal/invoice/repository"
	"github.com/smallbiznis/invoicegen/internal/invoice/service"
	"github.com/smallbiznis/invoicegen/internal/render"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(
		repository.Provide,
		func(r *render.PDF) service.Renderer { return r },
		service.New,
	),
)
