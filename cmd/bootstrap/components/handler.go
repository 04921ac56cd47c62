package components

import (
	"seatly/internal/handler"
	"seatly/internal/handler/api"
	"seatly/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewReservationHandler,
		api.NewPaymentHandler,
		api.NewMatchHandler,
		middleware.NewAuthMiddleware,
		func(r *api.ReservationHandler, p *api.PaymentHandler, m *api.MatchHandler) handler.Handlers {
			return handler.Handlers{Reservation: r, Payment: p, Match: m}
		},
	),
	fx.Invoke(handler.NewRouter),
)
