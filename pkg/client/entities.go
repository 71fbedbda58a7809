package client

import (
	"strconv"
	"strings"
)

// Entity is a typed graph entity: either a *Node or a *Relationship.
type Entity interface {
	// ID returns the server-assigned numeric identifier, parsed from the
	// entity's self URL. -1 if the URL does not end in a number.
	ID() int64
	// SelfURL returns the entity's canonical URL on the server.
	SelfURL() string
	// Properties returns the entity's property map.
	Properties() map[string]any
}

// Node is a graph vertex. Two fetches of the same remote node yield two
// independent, equal-by-value Node instances; the client keeps no identity
// cache.
type Node struct {
	Self  string
	Props map[string]any

	db *GraphDatabase // for future operations against this node's URL
}

func (n *Node) ID() int64 { return idFromSelf(n.Self) }

func (n *Node) SelfURL() string { return n.Self }

func (n *Node) Properties() map[string]any { return n.Props }

// Relationship is a graph edge. StartURL and EndURL are back-references to
// the endpoint nodes, not ownership.
type Relationship struct {
	Self     string
	Type     string
	StartURL string
	EndURL   string
	Props    map[string]any

	db *GraphDatabase
}

func (r *Relationship) ID() int64 { return idFromSelf(r.Self) }

func (r *Relationship) SelfURL() string { return r.Self }

func (r *Relationship) Properties() map[string]any { return r.Props }

// StartID returns the numeric ID of the start node.
func (r *Relationship) StartID() int64 { return idFromSelf(r.StartURL) }

// EndID returns the numeric ID of the end node.
func (r *Relationship) EndID() int64 { return idFromSelf(r.EndURL) }

// idFromSelf parses the trailing path segment of an entity URL as the
// entity's numeric ID. -1 when the URL has no numeric tail.
func idFromSelf(self string) int64 {
	idx := strings.LastIndexByte(self, '/')
	if idx < 0 {
		return -1
	}
	id, err := strconv.ParseInt(self[idx+1:], 10, 64)
	if err != nil {
		return -1
	}
	return id
}

type jsonKind int

const (
	kindScalar jsonKind = iota
	kindNode
	kindRelationship
	kindSequence
)

// classify decides what a raw JSON value returned by the server represents.
// Graph entities always carry a "self" URL; a "type" label on top of that
// marks a relationship. Entity construction and query result mapping both go
// through this one function, so the discrimination rule lives in exactly one
// place.
func classify(v any) jsonKind {
	switch val := v.(type) {
	case []any:
		return kindSequence
	case map[string]any:
		if _, ok := val["self"].(string); !ok {
			return kindScalar
		}
		if _, ok := val["type"].(string); ok {
			return kindRelationship
		}
		return kindNode
	default:
		return kindScalar
	}
}

// entityFromJSON builds the typed wrapper for an entity-shaped JSON object.
// Pure construction, no I/O. Returns nil when the object is not
// entity-shaped.
func (db *GraphDatabase) entityFromJSON(raw map[string]any) Entity {
	self, _ := raw["self"].(string)
	props, _ := raw["data"].(map[string]any)

	switch classify(raw) {
	case kindRelationship:
		relType, _ := raw["type"].(string)
		start, _ := raw["start"].(string)
		end, _ := raw["end"].(string)
		return &Relationship{
			Self:     self,
			Type:     relType,
			StartURL: start,
			EndURL:   end,
			Props:    props,
			db:       db,
		}
	case kindNode:
		return &Node{Self: self, Props: props, db: db}
	}
	return nil
}
