// Package httpapi serves the docchat JSON API over HTTP.
//
// Every body is a status envelope: {"status": "success"|"error", ...}.
// Service failures keep HTTP 200 and report status "error"; transport
// failures (bad JSON, wrong method, rate limit, panic) use the matching
// HTTP status code as well.
package httpapi

import "errors"

// ErrMissingIngestService is returned when the ingest service is not provided.
var ErrMissingIngestService = errors.New("httpapi: ingest service is required")

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("httpapi: search service is required")

// ErrMissingChatService is returned when the chat service is not provided.
var ErrMissingChatService = errors.New("httpapi: chat service is required")

// Messages returned by the transport itself.
const (
	msgOnlyPOST      = "only POST requests are allowed"
	msgInvalidJSON   = "request body must be valid JSON"
	msgBodyTooLarge  = "request body is too large"
	msgTooMany       = "too many requests, slow down"
	msgInternal      = "internal server error"
	msgNoDocuments   = "document listing is not available"
	msgMultipartForm = "failed to parse the upload form"
)
