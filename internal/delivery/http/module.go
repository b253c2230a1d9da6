package http

import (
	"go.uber.org/fx"

	"commerce-api/internal/delivery/http/handler"
	"commerce-api/internal/delivery/http/router"
)

var Module = fx.Module("http",
	fx.Provide(
		handler.NewHealthHandler,
		handler.NewLogHandler,
		handler.NewFeeHandler,
		router.NewRouter,
	),
)
