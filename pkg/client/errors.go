package client

import "fmt"

// The client never retries and never swallows a failure: every error that
// crosses the package boundary is one of the types below, so callers can
// branch with errors.As. The single deliberate exception is an indexed lookup
// that matches nothing, which is a successful empty result.

// TransportError reports a failure of the underlying HTTP transport (or of
// request construction) before a server response was available.
type TransportError struct {
	Op  string // the client operation that was in progress
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// NotFoundError reports that no entity exists at the requested URL (HTTP 404
// on a direct entity GET).
type NotFoundError struct {
	URL string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no entity found at %s", e.URL)
}

// DatabaseError reports a non-success HTTP status from the server. Body holds
// the raw response for diagnostics.
type DatabaseError struct {
	StatusCode int
	Body       []byte
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("database error (status %d): %s", e.StatusCode, e.Body)
}

// ConfigurationError reports that the server's service map lacks a capability
// this client needs.
type ConfigurationError struct {
	Missing string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("server configuration error: missing %s", e.Missing)
}

// AmbiguousQueryError reports a success status whose content signals failure
// by convention: the server answers some invalid Cypher queries with an empty
// HTTP 204 instead of an error status. Query carries the submitted query text
// verbatim for diagnostics.
type AmbiguousQueryError struct {
	Query string
}

func (e *AmbiguousQueryError) Error() string {
	return fmt.Sprintf("server returned no content, query may be invalid: %q", e.Query)
}
