package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// setupFrontendRoutes sets up all routes with authentication
func setupFrontendRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware, startupTime time.Time) {
	r.Get("/health", healthCheck(startupTime))

	r.Route("/api", func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		// Read endpoints stay open
		r.Group(func(r chi.Router) {
			r.Get("/columns", handlers.columnHandler.getAllColumns())
			r.Get("/offers", handlers.offerHandler.getAllOffers())
			r.Get("/offers/{offerID}", handlers.offerHandler.getOffer())
		})

		// Mutating endpoints require the backend password when one is configured
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			// Column Handler endpoints
			r.Post("/columns", handlers.columnHandler.createColumn())
			r.Put("/columns/{fieldID}", handlers.columnHandler.updateColumn())
			r.Delete("/columns", handlers.columnHandler.deleteColumn())

			// Offer Handler endpoints
			r.Post("/offers", handlers.offerHandler.createOffer())
			r.Put("/offers/{offerID}", handlers.offerHandler.updateOffer())
			r.Delete("/offers/{offerID}", handlers.offerHandler.deleteOffer())
		})
	})
}

// healthCheck reports process uptime
func healthCheck(startupTime time.Time) http.HandlerFunc {
	responder := NewResponder(log.With().Str("handlerName", "healthCheck").Logger())
	return func(w http.ResponseWriter, r *http.Request) {
		responder.WriteJSON(w, map[string]string{
			"status": "ok",
			"uptime": time.Since(startupTime).Round(time.Second).String(),
		})
	}
}
