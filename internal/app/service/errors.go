package service

import (
	"net/http"

	"github.com/avelora/flight-booking-service/internal/pkg/exception"
)

var ErrNoOffersFound = exception.ApplicationError{
	Message:    "no offers found",
	StatusCode: http.StatusNotFound,
}

var ErrSessionNotFound = exception.ApplicationError{
	Message:    "shopping session not found or expired",
	StatusCode: http.StatusNotFound,
}

var ErrOfferNotFound = exception.ApplicationError{
	Message:    "offer not found in shopping session",
	StatusCode: http.StatusNotFound,
}

var ErrInvalidUpstreamResponse = exception.ApplicationError{
	Message:    "invalid response from distribution system",
	StatusCode: http.StatusBadGateway,
}
