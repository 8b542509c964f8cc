package router

import (
	"tablebook/internal/handlers/reservation"
	"tablebook/internal/handlers/table"
	"tablebook/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Reservation reservation.Handler
	Table       table.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	Auth           middleware.Auth
}

// SetupRoutes mounts the domain routes. They sit behind the API key check; health and docs do not.
func (r *Router) SetupRoutes(router chi.Router) {
	router.Group(func(routerGroup chi.Router) {
		routerGroup.Use(r.Auth.APIKey)

		r.DomainHandlers.Reservation.Router(routerGroup)
		r.DomainHandlers.Table.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, auth middleware.Auth) Router {
	return Router{
		DomainHandlers: domainHandlers,
		Auth:           auth,
	}
}
