package http

import (
	"context"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-kit/kit/endpoint"
)

// DecodeRequestFunc decodes the HTTP request into an endpoint request object.
type DecodeRequestFunc func(ctx context.Context, r *http.Request) (interface{}, error)

// EncodeResponseFunc writes an endpoint response object to the client.
type EncodeResponseFunc func(ctx context.Context, w http.ResponseWriter, response interface{}) error

// DecodeRequest binds the JSON body into T. T must implement render.Binder
// on its pointer receiver so validation runs during binding.
func DecodeRequest[T any](_ context.Context, r *http.Request) (interface{}, error) {
	request := new(T)

	if err := render.Bind(r, any(request).(render.Binder)); err != nil {
		return nil, err
	}

	return request, nil
}

// MakeHandlerFunc adapts an endpoint into a chi handler: decode, invoke, encode.
func MakeHandlerFunc(endpt endpoint.Endpoint,
	decoder DecodeRequestFunc, encoder EncodeResponseFunc,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		request, err := decoder(ctx, r)
		if err != nil {
			ErrorResponse(ctx, err, w)

			return
		}

		response, err := endpt(ctx, request)
		if err != nil {
			ErrorResponse(ctx, err, w)

			return
		}

		if err := encoder(ctx, w, response); err != nil {
			ErrorResponse(ctx, err, w)
		}
	}
}
