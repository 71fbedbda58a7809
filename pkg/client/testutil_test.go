package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

// testServer fakes the Neo4j REST discovery chain: "/" serves the discovery
// root, "/db/data/" the service map. Everything else is routed to the extra
// handler, so each test wires only the endpoints it exercises.
type testServer struct {
	*httptest.Server
	rootHits     atomic.Int64
	servicesHits atomic.Int64

	// overridden per test where needed
	services func(ts *testServer) map[string]any
}

func defaultServices(ts *testServer) map[string]any {
	return map[string]any{
		"node":               ts.URL + "/db/data/node",
		"node_index":         ts.URL + "/db/data/index/node",
		"relationship_index": ts.URL + "/db/data/index/relationship",
		"cypher":             ts.URL + "/db/data/cypher",
		"neo4j_version":      "1.8.2",
	}
}

func newTestServer(t *testing.T, extra http.HandlerFunc) *testServer {
	t.Helper()
	ts := &testServer{services: defaultServices}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			ts.rootHits.Add(1)
			writeJSON(t, w, map[string]any{"data": ts.URL + "/db/data/"})
		case "/db/data/":
			ts.servicesHits.Add(1)
			writeJSON(t, w, ts.services(ts))
		default:
			if extra != nil {
				extra(w, r)
				return
			}
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(ts.Close)
	return ts
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encoding test response: %v", err)
	}
}

// nodeJSON builds the wire shape of a node as the server would return it.
func nodeJSON(ts *testServer, id string, props map[string]any) map[string]any {
	if props == nil {
		props = map[string]any{}
	}
	return map[string]any{
		"self": ts.URL + "/db/data/node/" + id,
		"data": props,
	}
}

// relJSON builds the wire shape of a relationship.
func relJSON(ts *testServer, id, relType, startID, endID string) map[string]any {
	return map[string]any{
		"self":  ts.URL + "/db/data/relationship/" + id,
		"type":  relType,
		"start": ts.URL + "/db/data/node/" + startID,
		"end":   ts.URL + "/db/data/node/" + endID,
		"data":  map[string]any{},
	}
}
