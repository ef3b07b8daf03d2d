package distribution

import (
	"net/http"

	"github.com/avelora/flight-booking-service/internal/pkg/exception"
)

var ErrUpstreamUnavailable = exception.ApplicationError{
	StatusCode: http.StatusBadGateway,
	Message:    "distribution API error or temporarily unavailable",
}

var ErrRetryExceeded = exception.ApplicationError{
	StatusCode: http.StatusBadGateway,
	Message:    "distribution API retry exceeded",
}

var ErrRateLimitExceeded = exception.ApplicationError{
	StatusCode: http.StatusTooManyRequests,
	Message:    "distribution API rate limit exceeded",
}
