package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// defaultVersion is assumed when the service map carries no version string;
// servers that old predate the neo4j_version field entirely.
const defaultVersion = 1.4

// Root is the server's top-level discovery document. The client only consumes
// Data, the URL of the service-endpoint map.
type Root struct {
	Data       string `json:"data"`
	Management string `json:"management,omitempty"`
}

// Services is the service-endpoint map: the URLs and capabilities the server
// advertises. Relationship collection URL is notably absent from the wire
// format, see relationshipBase.
type Services struct {
	Node              string                       `json:"node"`
	NodeIndex         string                       `json:"node_index"`
	RelationshipIndex string                       `json:"relationship_index"`
	ReferenceNode     string                       `json:"reference_node,omitempty"`
	Cypher            string                       `json:"cypher,omitempty"`
	Neo4jVersion      string                       `json:"neo4j_version,omitempty"`
	Extensions        map[string]map[string]string `json:"extensions,omitempty"`
}

// cypherEndpoint returns the URL to POST Cypher queries to. Servers since 1.6
// advertise it natively; older ones only through the bundled Cypher plugin.
// Empty means the server has no Cypher support at all.
func (s *Services) cypherEndpoint() string {
	if s.Cypher != "" {
		return s.Cypher
	}
	return s.Extensions["CypherPlugin"]["execute_query"]
}

// Root returns the discovery root, fetching it on first use only. Concurrent
// first callers share a single fetch; the cached value is immutable until
// PurgeCache.
func (db *GraphDatabase) Root(ctx context.Context) (*Root, error) {
	db.mu.Lock()
	if db.root != nil {
		root := db.root
		db.mu.Unlock()
		return root, nil
	}
	db.mu.Unlock()

	// The cache store happens inside the flight so that a caller arriving
	// right after the winning call completes still observes the published
	// value instead of issuing a second fetch.
	v, err, _ := db.flight.Do("root", func() (any, error) {
		db.mu.Lock()
		if db.root != nil {
			root := db.root
			db.mu.Unlock()
			return root, nil
		}
		gen := db.gen
		db.mu.Unlock()

		root, err := db.fetchRoot(ctx)
		if err != nil {
			return nil, err
		}

		db.mu.Lock()
		if db.gen == gen && db.root == nil {
			db.root = root
		}
		db.mu.Unlock()
		return root, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Root), nil
}

func (db *GraphDatabase) fetchRoot(ctx context.Context) (*Root, error) {
	status, body, err := db.do(ctx, "get_root", http.MethodGet, db.url, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &DatabaseError{StatusCode: status, Body: body}
	}
	var root Root
	if err := json.Unmarshal(body, &root); err != nil {
		return nil, fmt.Errorf("invalid JSON response for discovery root: %w", err)
	}
	return &root, nil
}

// Services returns the service-endpoint map, obtaining the root first (which
// may trigger its own fetch) and fetching the map on first use only. Same
// caching contract as Root.
func (db *GraphDatabase) Services(ctx context.Context) (*Services, error) {
	db.mu.Lock()
	if db.services != nil {
		svc := db.services
		db.mu.Unlock()
		return svc, nil
	}
	db.mu.Unlock()

	v, err, _ := db.flight.Do("services", func() (any, error) {
		db.mu.Lock()
		if db.services != nil {
			svc := db.services
			db.mu.Unlock()
			return svc, nil
		}
		gen := db.gen
		db.mu.Unlock()

		root, err := db.Root(ctx)
		if err != nil {
			return nil, err
		}
		svc, err := db.fetchServices(ctx, root)
		if err != nil {
			return nil, err
		}

		db.mu.Lock()
		if db.gen == gen && db.services == nil {
			db.services = svc
		}
		db.mu.Unlock()
		return svc, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Services), nil
}

func (db *GraphDatabase) fetchServices(ctx context.Context, root *Root) (*Services, error) {
	status, body, err := db.do(ctx, "get_services", http.MethodGet, root.Data, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &DatabaseError{StatusCode: status, Body: body}
	}
	var svc Services
	if err := json.Unmarshal(body, &svc); err != nil {
		return nil, fmt.Errorf("invalid JSON response for service map: %w", err)
	}
	return &svc, nil
}

// PurgeCache discards the cached discovery metadata. The next operation
// re-fetches it. A fetch already in flight when the purge happens completes
// normally for its callers but does not re-populate the cache.
func (db *GraphDatabase) PurgeCache() {
	db.flight.Forget("root")
	db.flight.Forget("services")
	db.mu.Lock()
	db.gen++
	db.root = nil
	db.services = nil
	db.mu.Unlock()
}

// Version reports the server version as a float, e.g. 1.9 for "1.9.M01".
// Milestone and patch qualifiers are intentionally discarded; a server that
// does not report a version at all is assumed to be 1.4.
func (db *GraphDatabase) Version(ctx context.Context) (float64, error) {
	svc, err := db.Services(ctx)
	if err != nil {
		return 0, err
	}
	return parseVersion(svc.Neo4jVersion), nil
}

// parseVersion extracts the leading major.minor prefix of a version string.
// Best effort: anything unparseable falls back to defaultVersion.
func parseVersion(s string) float64 {
	end := 0
	seenDot := false
	for end < len(s) {
		c := s[end]
		if c >= '0' && c <= '9' {
			end++
			continue
		}
		if c == '.' && !seenDot {
			seenDot = true
			end++
			continue
		}
		break
	}
	prefix := strings.TrimSuffix(s[:end], ".")
	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return defaultVersion
	}
	return v
}

// relationshipBase derives the relationship collection URL from the node
// collection URL by substituting the trailing "node" path segment. The
// discovery document never advertises this URL, so deriving it textually is
// the only option; kept isolated here so a future server that does advertise
// it only requires changing this function.
func relationshipBase(svc *Services) (string, error) {
	u, err := url.Parse(svc.Node)
	if err != nil {
		return "", &ConfigurationError{Missing: "valid node collection URL"}
	}
	path := strings.TrimSuffix(u.Path, "/")
	if !strings.HasSuffix(path, "/node") {
		return "", &ConfigurationError{Missing: "relationship collection URL (cannot derive from " + svc.Node + ")"}
	}
	u.Path = strings.TrimSuffix(path, "node") + "relationship"
	return u.String(), nil
}
