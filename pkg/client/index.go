package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// GetIndexedNodes looks up all nodes registered in the named index under the
// given property/value pair. A server that reports no matches yields an empty
// slice and a nil error: emptiness is a normal outcome, not a failure.
func (db *GraphDatabase) GetIndexedNodes(ctx context.Context, index, property, value string) ([]*Node, error) {
	svc, err := db.Services(ctx)
	if err != nil {
		return nil, err
	}
	u, err := indexLookupURL(svc.NodeIndex, index, property, value)
	if err != nil {
		return nil, err
	}
	return db.fetchNodeList(ctx, "get_indexed_nodes", u)
}

// GetIndexedNode returns the first node matching the index lookup. ok is
// false when nothing matched; that is not an error.
func (db *GraphDatabase) GetIndexedNode(ctx context.Context, index, property, value string) (node *Node, ok bool, err error) {
	nodes, err := db.GetIndexedNodes(ctx, index, property, value)
	if err != nil {
		return nil, false, err
	}
	if len(nodes) == 0 {
		return nil, false, nil
	}
	return nodes[0], true, nil
}

// GetIndexedRelationships looks up all relationships registered in the named
// index under the given property/value pair. Same empty-result contract as
// GetIndexedNodes.
func (db *GraphDatabase) GetIndexedRelationships(ctx context.Context, index, property, value string) ([]*Relationship, error) {
	svc, err := db.Services(ctx)
	if err != nil {
		return nil, err
	}
	u, err := indexLookupURL(svc.RelationshipIndex, index, property, value)
	if err != nil {
		return nil, err
	}
	return db.fetchRelationshipList(ctx, "get_indexed_relationships", u)
}

// GetIndexedRelationship returns the first relationship matching the index
// lookup, comma-ok style like GetIndexedNode.
func (db *GraphDatabase) GetIndexedRelationship(ctx context.Context, index, property, value string) (rel *Relationship, ok bool, err error) {
	rels, err := db.GetIndexedRelationships(ctx, index, property, value)
	if err != nil {
		return nil, false, err
	}
	if len(rels) == 0 {
		return nil, false, nil
	}
	return rels[0], true, nil
}

// QueryNodeIndex runs a native index-engine query (Lucene syntax on stock
// servers) against the named node index.
func (db *GraphDatabase) QueryNodeIndex(ctx context.Context, index, query string) ([]*Node, error) {
	svc, err := db.Services(ctx)
	if err != nil {
		return nil, err
	}
	u, err := indexQueryURL(svc.NodeIndex, index, query)
	if err != nil {
		return nil, err
	}
	return db.fetchNodeList(ctx, "query_node_index", u)
}

// fetchEntityList GETs a URL whose 200 response is a JSON array of
// entity-shaped objects, and maps each element through the entity factory.
func (db *GraphDatabase) fetchEntityList(ctx context.Context, op, rawURL string) ([]Entity, error) {
	status, body, err := db.do(ctx, op, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &DatabaseError{StatusCode: status, Body: body}
	}

	var raws []map[string]any
	if err := json.Unmarshal(body, &raws); err != nil {
		return nil, fmt.Errorf("invalid JSON response for %s: %w", op, err)
	}

	entities := make([]Entity, 0, len(raws))
	for _, raw := range raws {
		ent := db.entityFromJSON(raw)
		if ent == nil {
			return nil, fmt.Errorf("%s: response element is not a graph entity", op)
		}
		entities = append(entities, ent)
	}
	return entities, nil
}

func (db *GraphDatabase) fetchNodeList(ctx context.Context, op, rawURL string) ([]*Node, error) {
	entities, err := db.fetchEntityList(ctx, op, rawURL)
	if err != nil {
		return nil, err
	}
	nodes := make([]*Node, 0, len(entities))
	for _, ent := range entities {
		node, ok := ent.(*Node)
		if !ok {
			return nil, fmt.Errorf("%s: expected nodes, got a relationship (%s)", op, ent.SelfURL())
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func (db *GraphDatabase) fetchRelationshipList(ctx context.Context, op, rawURL string) ([]*Relationship, error) {
	entities, err := db.fetchEntityList(ctx, op, rawURL)
	if err != nil {
		return nil, err
	}
	rels := make([]*Relationship, 0, len(entities))
	for _, ent := range entities {
		rel, ok := ent.(*Relationship)
		if !ok {
			return nil, fmt.Errorf("%s: expected relationships, got a node (%s)", op, ent.SelfURL())
		}
		rels = append(rels, rel)
	}
	return rels, nil
}
