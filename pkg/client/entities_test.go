package client

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want jsonKind
	}{
		{"node shape", map[string]any{"self": "http://x/db/data/node/1", "data": map[string]any{}}, kindNode},
		{"relationship shape", map[string]any{"self": "http://x/db/data/relationship/1", "type": "KNOWS"}, kindRelationship},
		{"object without self", map[string]any{"name": "aseemk"}, kindScalar},
		{"array", []any{1.0, 2.0}, kindSequence},
		{"string", "hello", kindScalar},
		{"number", 42.0, kindScalar},
		{"bool", true, kindScalar},
		{"null", nil, kindScalar},
		{"non-string self", map[string]any{"self": 7.0}, kindScalar},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := classify(c.in); got != c.want {
				t.Errorf("classify(%v) = %d, want %d", c.in, got, c.want)
			}
		})
	}
}

func TestEntityFromJSON(t *testing.T) {
	db := New("http://example.com:7474")

	// 1. Node construction
	raw := map[string]any{
		"self": "http://example.com:7474/db/data/node/42",
		"data": map[string]any{"name": "aseemk"},
	}
	ent := db.entityFromJSON(raw)
	node, ok := ent.(*Node)
	if !ok {
		t.Fatalf("expected *Node, got %T", ent)
	}
	if node.ID() != 42 {
		t.Errorf("expected ID 42, got %d", node.ID())
	}
	if node.Props["name"] != "aseemk" {
		t.Errorf("unexpected props: %v", node.Props)
	}

	// 2. Relationship construction
	raw = map[string]any{
		"self":  "http://example.com:7474/db/data/relationship/7",
		"type":  "KNOWS",
		"start": "http://example.com:7474/db/data/node/1",
		"end":   "http://example.com:7474/db/data/node/2",
		"data":  map[string]any{"since": 2010.0},
	}
	ent = db.entityFromJSON(raw)
	rel, ok := ent.(*Relationship)
	if !ok {
		t.Fatalf("expected *Relationship, got %T", ent)
	}
	if rel.ID() != 7 || rel.Type != "KNOWS" {
		t.Errorf("unexpected relationship: %+v", rel)
	}
	if rel.StartID() != 1 || rel.EndID() != 2 {
		t.Errorf("unexpected endpoints: start=%d end=%d", rel.StartID(), rel.EndID())
	}

	// 3. Non-entity input
	if got := db.entityFromJSON(map[string]any{"name": "x"}); got != nil {
		t.Errorf("expected nil for a non-entity object, got %v", got)
	}
}

func TestIDFromSelf(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"http://x:7474/db/data/node/0", 0},
		{"http://x:7474/db/data/node/12345", 12345},
		{"http://x:7474/db/data/node/abc", -1},
		{"no-slashes", -1},
	}
	for _, c := range cases {
		if got := idFromSelf(c.in); got != c.want {
			t.Errorf("idFromSelf(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}
