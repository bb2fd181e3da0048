package acl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jsamuelsen/quote-sync/internal/adapters/clients"
)

// BaseAdapter holds what every remote adapter needs: the instrumented client
// and the remote's name for error mapping.
type BaseAdapter struct {
	client      *clients.Client
	serviceName string
}

// NewBaseAdapter creates a BaseAdapter.
func NewBaseAdapter(client *clients.Client, serviceName string) BaseAdapter {
	return BaseAdapter{client: client, serviceName: serviceName}
}

// ServiceName returns the remote's name.
func (a *BaseAdapter) ServiceName() string {
	return a.serviceName
}

// Get performs a GET and returns the body of a 2xx response; the caller
// closes it. Other outcomes are mapped with MapHTTPError.
func (a *BaseAdapter) Get(ctx context.Context, path, operation string) (io.ReadCloser, error) {
	resp, err := a.client.Get(ctx, path)

	return a.body(resp, err, operation)
}

// Post sends v as JSON and returns the body of a 2xx response.
func (a *BaseAdapter) Post(ctx context.Context, path string, v any, operation string) (io.ReadCloser, error) {
	resp, err := a.client.Post(ctx, path, v)

	return a.body(resp, err, operation)
}

func (a *BaseAdapter) body(resp *http.Response, err error, operation string) (io.ReadCloser, error) {
	if err != nil {
		return nil, MapHTTPError(nil, err, a.serviceName, operation)
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		defer func() { _ = resp.Body.Close() }()

		return nil, MapHTTPError(resp, nil, a.serviceName, operation)
	}

	return resp.Body, nil
}

// DecodeResponse decodes a JSON body into T and closes it.
func DecodeResponse[T any](body io.ReadCloser) (*T, error) {
	if body == nil {
		return nil, errors.New("response body is nil")
	}
	defer func() { _ = body.Close() }()

	var result T
	if err := json.NewDecoder(body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &result, nil
}

// Translator converts one external DTO into a domain value, or reports why it can't.
type Translator[External any, Domain any] func(ext *External) (Domain, error)

// TranslateValid applies translate to every item and keeps only the ones that
// translate cleanly. The dropped items are returned as errors, in input order.
func TranslateValid[E any, D any](items []E, translate Translator[E, D]) ([]D, []error) {
	result := make([]D, 0, len(items))

	var dropped []error

	for i := range items {
		translated, err := translate(&items[i])
		if err != nil {
			dropped = append(dropped, fmt.Errorf("item %d: %w", i, err))
			continue
		}

		result = append(result, translated)
	}

	return result, dropped
}
