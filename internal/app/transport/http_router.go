package transport

import (
	"log/slog"
	"net/http"

	"github.com/avelora/flight-booking-service/internal/app/config"
	"github.com/avelora/flight-booking-service/internal/app/dto"
	"github.com/avelora/flight-booking-service/internal/app/endpoints"
	httptransport "github.com/avelora/flight-booking-service/internal/pkg/transport/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// MakeHTTPRouter builds the HTTP router with all the service endpoints.
func MakeHTTPRouter(
	cfg *config.Config,
	endpts endpoints.Endpoints,
) *chi.Mux {
	router := chi.NewRouter()

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Route("/api/v1/offers", func(router chi.Router) {
		router.Use(
			httptransport.RequestID(),
			httptransport.CORSMiddleware(),
			httptransport.Recoverer(slog.Default()),
			render.SetContentType(render.ContentTypeJSON),
		)

		router.Post("/search", httptransport.MakeHandlerFunc(
			endpts.ShoppingEndpoint.SearchOffers,
			httptransport.DecodeRequest[dto.SearchCriteria],
			httptransport.ResponseWithBody,
		))

		router.Post("/price", httptransport.MakeHandlerFunc(
			endpts.ShoppingEndpoint.PriceOffer,
			httptransport.DecodeRequest[dto.PriceCriteria],
			httptransport.ResponseWithBody,
		))
	})

	return router
}
