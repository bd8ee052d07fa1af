package restclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/libreshelf/library-console-go/resource"
)

var ErrEmptyBaseURL = errors.New("empty base URL supplied")
var ErrEmptyCollectionPath = errors.New("empty collection path supplied")

var json = jsoniter.ConfigFastest

const (
	headerContentType    = "Content-Type"
	headerAccept         = "Accept"
	headerRequestID      = "X-Request-ID"
	mediaTypeJSON        = "application/json"
	logMsgRequestDone    = "http request completed"
	logAttrMethod        = "method"
	logAttrURL           = "url"
	logAttrStatus        = "status"
	logAttrDurationMS    = "duration_ms"
	msgDecodingFailed    = "decoding response body failed"
	msgRequestFailed     = "performing http request failed"
	msgBuildingReqFailed = "building http request failed"
	defaultTimeout       = 30 * time.Second
)

// HTTPDoer abstracts the HTTP transport so tests can substitute a double.
// *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// errorPayload is the structured error body used by the remote authority.
type errorPayload struct {
	Error string `json:"error"`
}

// Endpoint is a typed HTTP client for one resource collection.
// It implements resource.RemoteClient[T, D].
type Endpoint[T resource.Entity, D any] struct {
	baseURL    string
	path       string
	httpClient HTTPDoer
	logger     resource.Logger
}

// NewEndpoint creates an Endpoint for the collection at baseURL+path with
// optional configuration. The default transport is an http.Client with a
// 30 second timeout.
func NewEndpoint[T resource.Entity, D any](
	baseURL string,
	path string,
	options ...Option[T, D],
) (*Endpoint[T, D], error) {

	if baseURL == "" {
		return nil, ErrEmptyBaseURL
	}

	if path == "" {
		return nil, ErrEmptyCollectionPath
	}

	ep := &Endpoint[T, D]{
		baseURL:    strings.TrimRight(baseURL, "/"),
		path:       "/" + strings.Trim(path, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}

	for _, option := range options {
		if err := option(ep); err != nil {
			return nil, err
		}
	}

	return ep, nil
}

// List fetches the full collection in authoritative order.
func (ep *Endpoint[T, D]) List(ctx context.Context) ([]T, error) {
	var listed []T
	if err := ep.do(ctx, http.MethodGet, ep.collectionURL(), nil, &listed); err != nil {
		return nil, err
	}

	return listed, nil
}

// Get fetches the canonical representation of a single entity.
func (ep *Endpoint[T, D]) Get(ctx context.Context, id resource.ID) (T, error) {
	var entity T
	if err := ep.do(ctx, http.MethodGet, ep.entityURL(id), nil, &entity); err != nil {
		var empty T
		return empty, err
	}

	return entity, nil
}

// Create sends the identity-less draft and returns the server-populated entity.
func (ep *Endpoint[T, D]) Create(ctx context.Context, draft D) (T, error) {
	var created T
	if err := ep.do(ctx, http.MethodPost, ep.collectionURL(), draft, &created); err != nil {
		var empty T
		return empty, err
	}

	return created, nil
}

// Update sends the patch keyed by id. The response body is an acknowledgement
// and is discarded.
func (ep *Endpoint[T, D]) Update(ctx context.Context, id resource.ID, patch D) error {
	return ep.do(ctx, http.MethodPut, ep.entityURL(id), patch, nil)
}

// Delete removes the entity keyed by id.
func (ep *Endpoint[T, D]) Delete(ctx context.Context, id resource.ID) error {
	return ep.do(ctx, http.MethodDelete, ep.entityURL(id), nil, nil)
}

// Action invokes a custom collection action keyed by id, e.g. the borrow
// return action PUT /borrowrecords/return/{id}. The response body is an
// acknowledgement and is discarded.
func (ep *Endpoint[T, D]) Action(ctx context.Context, action string, id resource.ID) error {
	url := fmt.Sprintf("%s%s/%s/%d", ep.baseURL, ep.path, strings.Trim(action, "/"), id)

	return ep.do(ctx, http.MethodPut, url, nil, nil)
}

func (ep *Endpoint[T, D]) collectionURL() string {
	return ep.baseURL + ep.path
}

func (ep *Endpoint[T, D]) entityURL(id resource.ID) string {
	return fmt.Sprintf("%s%s/%d", ep.baseURL, ep.path, id)
}

// do performs one HTTP round trip: encodes body (when non-nil), maps failure
// statuses onto the resource error taxonomy, and decodes the response into out
// (when non-nil).
func (ep *Endpoint[T, D]) do(ctx context.Context, method string, url string, body any, out any) error {
	var reqBody io.Reader

	if body != nil {
		encoded, encodeErr := json.Marshal(body)
		if encodeErr != nil {
			return resource.NewRemoteError(resource.ErrTransport, encodeErr.Error(), 0)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, buildErr := http.NewRequestWithContext(ctx, method, url, reqBody)
	if buildErr != nil {
		return resource.NewRemoteError(resource.ErrTransport, msgBuildingReqFailed+": "+buildErr.Error(), 0)
	}

	req.Header.Set(headerAccept, mediaTypeJSON)
	req.Header.Set(headerRequestID, uuid.NewString())
	if body != nil {
		req.Header.Set(headerContentType, mediaTypeJSON)
	}

	start := time.Now()
	resp, doErr := ep.httpClient.Do(req)
	duration := time.Since(start)

	if doErr != nil {
		return resource.NewRemoteError(resource.ErrTransport, msgRequestFailed+": "+doErr.Error(), 0)
	}
	defer ep.closeBody(resp.Body)

	ep.logRequest(method, url, resp.StatusCode, duration)

	if resp.StatusCode >= http.StatusBadRequest {
		return ep.errorFromResponse(resp)
	}

	if out != nil {
		if decodeErr := json.NewDecoder(resp.Body).Decode(out); decodeErr != nil {
			return resource.NewRemoteError(resource.ErrTransport, msgDecodingFailed+": "+decodeErr.Error(), resp.StatusCode)
		}
	}

	return nil
}

// errorFromResponse classifies a failure status and extracts the server's
// message verbatim.
func (ep *Endpoint[T, D]) errorFromResponse(resp *http.Response) error {
	raw, _ := io.ReadAll(resp.Body)

	message := strings.TrimSpace(string(raw))
	payload := errorPayload{}
	if unmarshalErr := json.Unmarshal(raw, &payload); unmarshalErr == nil && payload.Error != "" {
		message = payload.Error
	}

	return resource.NewRemoteError(classForStatus(resp.StatusCode), message, resp.StatusCode)
}

func classForStatus(statusCode int) error {
	switch statusCode {
	case http.StatusNotFound:
		return resource.ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return resource.ErrValidation
	case http.StatusConflict:
		return resource.ErrConflict
	default:
		return resource.ErrTransport
	}
}

func (ep *Endpoint[T, D]) closeBody(body io.ReadCloser) {
	if closeErr := body.Close(); closeErr != nil {
		if ep.logger != nil {
			ep.logger.Warn("failed to close response body", "error", closeErr.Error())
		}
	}
}

// logRequest logs the round trip at debug level if the logger is configured.
func (ep *Endpoint[T, D]) logRequest(method string, url string, status int, duration time.Duration) {
	if ep.logger != nil {
		ep.logger.Debug(logMsgRequestDone,
			logAttrMethod, method,
			logAttrURL, url,
			logAttrStatus, status,
			logAttrDurationMS, float64(duration.Nanoseconds())/1e6)
	}
}
