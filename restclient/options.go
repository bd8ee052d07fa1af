package restclient

import (
	"errors"

	"github.com/libreshelf/library-console-go/resource"
)

var ErrNilHTTPClient = errors.New("nil http client supplied")

// Option defines a functional option for configuring an Endpoint.
type Option[T resource.Entity, D any] func(*Endpoint[T, D]) error

// WithHTTPClient sets the HTTP transport used by the Endpoint.
// Useful for tests and for callers who need custom timeouts or middleware.
func WithHTTPClient[T resource.Entity, D any](client HTTPDoer) Option[T, D] {
	return func(ep *Endpoint[T, D]) error {
		if client == nil {
			return ErrNilHTTPClient
		}

		ep.httpClient = client

		return nil
	}
}

// WithLogger sets the logger for the Endpoint.
// Round trips are logged at debug level with method, URL, status and duration.
func WithLogger[T resource.Entity, D any](logger resource.Logger) Option[T, D] {
	return func(ep *Endpoint[T, D]) error {
		ep.logger = logger
		return nil
	}
}
