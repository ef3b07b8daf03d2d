package endpoints

import (
	"context"
	"errors"
	"fmt"

	"github.com/avelora/flight-booking-service/internal/app/dto"
	"github.com/go-kit/kit/endpoint"
)

type ShoppingService interface {
	SearchOffers(ctx context.Context, req dto.SearchCriteria) (dto.SearchOffersResponse, error)
	PriceOffer(ctx context.Context, req dto.PriceCriteria) (dto.PriceOfferResponse, error)
}

type ShoppingEndpoint struct {
	SearchOffers endpoint.Endpoint
	PriceOffer   endpoint.Endpoint
}

func MakeShoppingEndpoint(service ShoppingService) ShoppingEndpoint {
	return ShoppingEndpoint{
		SearchOffers: makeSearchOffersEndpoint(service),
		PriceOffer:   makePriceOfferEndpoint(service),
	}
}

func makeSearchOffersEndpoint(service ShoppingService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.SearchCriteria)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		offers, err := service.SearchOffers(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("shopping service: %w", err)
		}

		return offers, nil
	}
}

func makePriceOfferEndpoint(service ShoppingService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.PriceCriteria)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		price, err := service.PriceOffer(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("shopping service: %w", err)
		}

		return price, nil
	}
}
