// Package client provides a Go client for the legacy Neo4j REST API.
//
// It resolves the server's self-describing discovery metadata, and offers a
// type-safe way to perform the read-side operations of the API, including:
//   - Cypher queries with parameters, with typed Node/Relationship results.
//   - Indexed lookup of nodes and relationships by property/value.
//   - Direct retrieval of nodes and relationships by ID or URL.
//
// The client handles HTTP communication, JSON serialization/deserialization,
// discovery-metadata caching, and standardized error handling. It performs no
// retries; every failure is adapted to one of the error types in this package
// and returned to the caller.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/neorest/neorest/pkg/metrics"
)

// GraphDatabase is a handle on one Neo4j server, identified by its discovery
// root URL. It owns the cached discovery metadata; Node and Relationship
// values it returns keep a back-reference to it but are otherwise independent.
//
// A GraphDatabase is safe for concurrent use.
type GraphDatabase struct {
	url        string
	httpClient *http.Client
	username   string
	password   string
	log        *slog.Logger

	// Discovery cache. Both values are fetched at most once until PurgeCache.
	// gen guards against an in-flight fetch re-populating a purged cache.
	mu       sync.Mutex
	gen      uint64
	root     *Root
	services *Services
	flight   singleflight.Group
}

// Option configures a GraphDatabase.
type Option func(*GraphDatabase)

// WithHTTPClient replaces the default HTTP client (30s timeout). Use this to
// control timeouts, TLS, or connection pooling.
func WithHTTPClient(hc *http.Client) Option {
	return func(db *GraphDatabase) { db.httpClient = hc }
}

// WithBasicAuth sends the given credentials with every request.
func WithBasicAuth(username, password string) Option {
	return func(db *GraphDatabase) {
		db.username = username
		db.password = password
	}
}

// WithLogger replaces slog.Default() for the client's debug logging.
func WithLogger(l *slog.Logger) Option {
	return func(db *GraphDatabase) { db.log = l }
}

// New creates a client for the Neo4j server whose discovery document lives at
// url, e.g. "http://localhost:7474". No network I/O happens until the first
// operation.
func New(url string, opts ...Option) *GraphDatabase {
	db := &GraphDatabase{
		url:        url,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

// URL returns the configured discovery root URL.
func (db *GraphDatabase) URL() string { return db.url }

// do executes one HTTP exchange against the server. It returns the status
// code and raw body; only transport-level failures (including request
// marshalling) produce an error, always a *TransportError. Status handling is
// left to the caller since it differs per operation.
func (db *GraphDatabase) do(ctx context.Context, op, method, rawURL string, payload any) (int, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, &TransportError{Op: op, Err: fmt.Errorf("marshal request body: %w", err)}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return 0, nil, &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-Id", reqID)
	if db.username != "" {
		req.SetBasicAuth(db.username, db.password)
	}

	start := time.Now()
	resp, err := db.httpClient.Do(req)
	if err != nil {
		metrics.RequestsTotal.WithLabelValues(op, "error").Inc()
		return 0, nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RequestsTotal.WithLabelValues(op, "error").Inc()
		return 0, nil, &TransportError{Op: op, Err: fmt.Errorf("read response body: %w", err)}
	}

	duration := time.Since(start)
	metrics.RequestsTotal.WithLabelValues(op, strconv.Itoa(resp.StatusCode)).Inc()
	metrics.RequestDuration.WithLabelValues(op).Observe(duration.Seconds())
	db.log.Debug("neo4j request",
		"op", op,
		"method", method,
		"url", rawURL,
		"status", resp.StatusCode,
		"duration", duration.String(),
		"request_id", reqID,
	)

	return resp.StatusCode, body, nil
}
