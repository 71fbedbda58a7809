package client

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestGetNodeByID(t *testing.T) {
	var ts *testServer
	ts = newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/db/data/node/42" {
			http.NotFound(w, r)
			return
		}
		writeJSON(t, w, nodeJSON(ts, "42", map[string]any{"name": "aseemk"}))
	})
	db := New(ts.URL)
	ctx := context.Background()

	node, err := db.GetNodeByID(ctx, 42)
	if err != nil {
		t.Fatalf("GetNodeByID failed: %v", err)
	}
	if node.ID() != 42 || node.Props["name"] != "aseemk" {
		t.Errorf("unexpected node: %+v", node)
	}

	// Missing IDs are a hard failure, unlike index lookups
	_, err = db.GetNodeByID(ctx, 99)
	var nfErr *NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("expected *NotFoundError, got %v", err)
	}
	if nfErr.URL != ts.URL+"/db/data/node/99" {
		t.Errorf("error should carry the entity URL, got %s", nfErr.URL)
	}
}

func TestGetRelationshipByID(t *testing.T) {
	// The relationship collection URL is never advertised; it must be derived
	// from the node collection URL.
	var ts *testServer
	ts = newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/db/data/relationship/7" {
			http.NotFound(w, r)
			return
		}
		writeJSON(t, w, relJSON(ts, "7", "KNOWS", "1", "2"))
	})
	db := New(ts.URL)

	rel, err := db.GetRelationshipByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetRelationshipByID failed: %v", err)
	}
	if rel.ID() != 7 || rel.Type != "KNOWS" {
		t.Errorf("unexpected relationship: %+v", rel)
	}
	if rel.StartID() != 1 || rel.EndID() != 2 {
		t.Errorf("unexpected endpoints: %d -> %d", rel.StartID(), rel.EndID())
	}
}

func TestGetNodeRejectsRelationshipShape(t *testing.T) {
	var ts *testServer
	ts = newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, relJSON(ts, "7", "KNOWS", "1", "2"))
	})
	db := New(ts.URL)

	if _, err := db.GetNode(context.Background(), ts.URL+"/db/data/node/7"); err == nil {
		t.Fatal("expected an error for a relationship-shaped response")
	}
}

func TestGetEntityErrorStatus(t *testing.T) {
	ts := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "server on fire", http.StatusServiceUnavailable)
	})
	db := New(ts.URL)

	_, err := db.GetNode(context.Background(), ts.URL+"/db/data/node/1")
	var dbErr *DatabaseError
	if !errors.As(err, &dbErr) {
		t.Fatalf("expected *DatabaseError, got %v", err)
	}
	if dbErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", dbErr.StatusCode)
	}
}
