package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// GetNodeByID fetches the node with the given server-assigned ID.
// A missing node is a *NotFoundError, not an empty result.
func (db *GraphDatabase) GetNodeByID(ctx context.Context, id int64) (*Node, error) {
	svc, err := db.Services(ctx)
	if err != nil {
		return nil, err
	}
	u, err := entityByIDURL(svc.Node, id)
	if err != nil {
		return nil, err
	}
	return db.GetNode(ctx, u)
}

// GetRelationshipByID fetches the relationship with the given server-assigned
// ID. The relationship collection URL is derived from the node collection URL
// (see relationshipBase) since the server does not advertise it.
func (db *GraphDatabase) GetRelationshipByID(ctx context.Context, id int64) (*Relationship, error) {
	svc, err := db.Services(ctx)
	if err != nil {
		return nil, err
	}
	base, err := relationshipBase(svc)
	if err != nil {
		return nil, err
	}
	u, err := entityByIDURL(base, id)
	if err != nil {
		return nil, err
	}
	return db.GetRelationship(ctx, u)
}

// GetNode fetches the node at the given URL.
func (db *GraphDatabase) GetNode(ctx context.Context, rawURL string) (*Node, error) {
	ent, err := db.getEntity(ctx, "get_node", rawURL)
	if err != nil {
		return nil, err
	}
	node, ok := ent.(*Node)
	if !ok {
		return nil, fmt.Errorf("get_node: entity at %s is a relationship, not a node", rawURL)
	}
	return node, nil
}

// GetRelationship fetches the relationship at the given URL.
func (db *GraphDatabase) GetRelationship(ctx context.Context, rawURL string) (*Relationship, error) {
	ent, err := db.getEntity(ctx, "get_relationship", rawURL)
	if err != nil {
		return nil, err
	}
	rel, ok := ent.(*Relationship)
	if !ok {
		return nil, fmt.Errorf("get_relationship: entity at %s is a node, not a relationship", rawURL)
	}
	return rel, nil
}

// getEntity GETs an entity self-URL directly. 200 yields a typed entity, 404
// a *NotFoundError, anything else a *DatabaseError.
func (db *GraphDatabase) getEntity(ctx context.Context, op, rawURL string) (Entity, error) {
	status, body, err := db.do(ctx, op, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	switch status {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, &NotFoundError{URL: rawURL}
	default:
		return nil, &DatabaseError{StatusCode: status, Body: body}
	}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON response for %s: %w", op, err)
	}
	ent := db.entityFromJSON(raw)
	if ent == nil {
		return nil, fmt.Errorf("%s: response from %s is not a graph entity", op, rawURL)
	}
	return ent, nil
}
