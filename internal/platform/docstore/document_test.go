package docstore

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewDocumentHasEveryCollection(t *testing.T) {
	doc := NewDocument()
	data, err := doc.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, name := range Collections {
		if string(top[name]) != "[]" {
			t.Fatalf("collection %s = %s", name, top[name])
		}
	}
	if string(top[CounterKey]) != "0" {
		t.Fatalf("counter = %s", top[CounterKey])
	}
}

func TestNextIDIsStrictlyIncreasing(t *testing.T) {
	doc := NewDocument()
	seen := map[int64]bool{}
	var last int64
	for i := 0; i < 50; i++ {
		id := doc.NextID()
		if id <= last || seen[id] {
			t.Fatalf("id %d after %d", id, last)
		}
		seen[id] = true
		last = id
	}
	if last != 50 {
		t.Fatalf("expected 50, got %d", last)
	}
}

func TestCounterBootstrapsFromHighestID(t *testing.T) {
	raw := `{"roles":[{"role_id":3,"role_name":"Admin"}],"employees":[{"employee_id":7,"manager_id":12}]}`
	doc := &Document{}
	if err := json.Unmarshal([]byte(raw), doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if counter := doc.Counter(); counter != 12 {
		t.Fatalf("expected counter adopted from highest id, got %d", counter)
	}
	if id := doc.NextID(); id != 13 {
		t.Fatalf("expected 13, got %d", id)
	}
}

func TestCounterBelowStoredIDsIsRaised(t *testing.T) {
	doc := &Document{}
	if err := json.Unmarshal([]byte(`{"persons":[{"person_id":40}],"_next_id":5}`), doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if id := doc.NextID(); id != 41 {
		t.Fatalf("expected 41, got %d", id)
	}
}

func TestMissingCollectionsLoadEmpty(t *testing.T) {
	doc := &Document{}
	if err := json.Unmarshal([]byte(`{"users":[{"user_id":1}]}`), doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := doc.Records(CollectionDeals); len(got) != 0 {
		t.Fatalf("expected empty deals, got %d", len(got))
	}
	if got := doc.Records(CollectionUsers); len(got) != 1 {
		t.Fatalf("expected one user, got %d", len(got))
	}
}

func TestUnknownKeysSurviveEncode(t *testing.T) {
	doc := &Document{}
	if err := json.Unmarshal([]byte(`{"notes":[{"note_id":2}],"_next_id":2}`), doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	data, err := doc.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(string(data), `"notes"`) {
		t.Fatalf("unknown key dropped: %s", data)
	}
	if !strings.HasPrefix(string(data), "{\n    \"roles\": []") {
		t.Fatalf("unexpected layout: %s", data)
	}
}

func TestEncodeOrderIsStable(t *testing.T) {
	doc := NewDocument()
	doc.Append(CollectionContracts, json.RawMessage(`{"contract_id":1}`))
	doc.Append(CollectionRoles, json.RawMessage(`{"role_id":2}`))
	data, err := doc.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	text := string(data)
	prev := -1
	for _, name := range append(append([]string{}, Collections...), CounterKey) {
		idx := strings.Index(text, `"`+name+`"`)
		if idx <= prev {
			t.Fatalf("key %s out of order", name)
		}
		prev = idx
	}
}

func TestRecordsReturnsCopies(t *testing.T) {
	doc := NewDocument()
	doc.Append(CollectionBrands, json.RawMessage(`{"brand_id":1}`))
	recs := doc.Records(CollectionBrands)
	recs[0][2] = 'X'
	if string(doc.Records(CollectionBrands)[0]) != `{"brand_id":1}` {
		t.Fatal("caller mutation leaked into document")
	}
}

func TestRejectsNonObjectRoot(t *testing.T) {
	doc := &Document{}
	if err := json.Unmarshal([]byte(`[1,2]`), doc); err == nil {
		t.Fatal("expected error for array root")
	}
	if err := json.Unmarshal([]byte(`{"users":{"a":1}}`), doc); err == nil {
		t.Fatal("expected error for non-list collection")
	}
}

func TestObserveRaisesCounter(t *testing.T) {
	doc := NewDocument()
	doc.Observe(10)
	doc.Observe(4)
	if id := doc.NextID(); id != 11 {
		t.Fatalf("expected 11, got %d", id)
	}
}
