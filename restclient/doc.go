// Package restclient implements resource.RemoteClient over HTTP/JSON.
//
// An Endpoint is bound to one collection path below a base URL and maps the
// backend's responses onto the resource error taxonomy:
//   - network and 5xx failures become resource.ErrTransport
//   - 400 and 422 become resource.ErrValidation
//   - 404 becomes resource.ErrNotFound
//   - 409 becomes resource.ErrConflict
//
// Error payloads of the shape {"error": "..."} surface their message verbatim
// through resource.RemoteError. Every request carries an X-Request-ID header
// with a fresh UUID for correlation, and honors the caller's context.
package restclient
