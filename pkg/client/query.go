package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Row maps a column name (as declared in the query) to its transformed value.
// Values are typed entities where the server returned entity-shaped JSON, and
// untouched scalars otherwise.
type Row map[string]any

// Result is a full Cypher query result. Columns preserves the declared column
// order, which Row (a map) cannot.
type Result struct {
	Columns []string
	Rows    []Row
}

// cypherResponse is the wire shape of a successful query response.
type cypherResponse struct {
	Columns []string `json:"columns"`
	Data    [][]any  `json:"data"`
}

// Query runs a Cypher query against the server. Use params instead of
// interpolating user input into the query text; the server substitutes them
// safely. params may be nil.
//
// An HTTP 204 response is converted into a *AmbiguousQueryError: the server
// reports some invalid queries this way instead of an error status. A server
// without Cypher support yields a *ConfigurationError.
func (db *GraphDatabase) Query(ctx context.Context, query string, params map[string]any) (*Result, error) {
	svc, err := db.Services(ctx)
	if err != nil {
		return nil, err
	}
	endpoint := svc.cypherEndpoint()
	if endpoint == "" {
		return nil, &ConfigurationError{Missing: "Cypher endpoint (neither native support nor the Cypher plugin is available)"}
	}

	payload := map[string]any{"query": query}
	if params != nil {
		payload["params"] = params
	}

	status, body, err := db.do(ctx, "query", http.MethodPost, endpoint, payload)
	if err != nil {
		return nil, err
	}
	switch {
	case status == http.StatusNoContent:
		return nil, &AmbiguousQueryError{Query: query}
	case status != http.StatusOK:
		return nil, &DatabaseError{StatusCode: status, Body: body}
	}

	var resp cypherResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("invalid JSON response for query: %w", err)
	}

	rows := make([]Row, 0, len(resp.Data))
	for _, cells := range resp.Data {
		row := make(Row, len(resp.Columns))
		for i, col := range resp.Columns {
			if i < len(cells) {
				row[col] = db.transformValue(cells[i])
			}
		}
		rows = append(rows, row)
	}
	return &Result{Columns: resp.Columns, Rows: rows}, nil
}

// transformValue rewrites one query result cell. Entity-shaped objects become
// typed entities; arrays are rewritten element-wise exactly one level deep —
// an array inside an array passes through untransformed, a known limitation
// kept for compatibility. Scalars pass through unchanged and the original
// JSON value is never mutated.
func (db *GraphDatabase) transformValue(v any) any {
	switch classify(v) {
	case kindNode, kindRelationship:
		return db.entityFromJSON(v.(map[string]any))
	case kindSequence:
		arr := v.([]any)
		out := make([]any, len(arr))
		for i, elem := range arr {
			switch classify(elem) {
			case kindNode, kindRelationship:
				out[i] = db.entityFromJSON(elem.(map[string]any))
			default:
				out[i] = elem
			}
		}
		return out
	default:
		return v
	}
}
