package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"talentcrm/internal/platform/crypto"
	"talentcrm/internal/platform/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestLoadInitializesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data.json")
	store := New(NewFileBackend(path))

	doc, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(doc.Records(CollectionRoles)) != 0 {
		t.Fatal("expected empty roles")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected file to be created: %v", err)
	}
	if !strings.Contains(string(data), `"_next_id": 0`) {
		t.Fatalf("unexpected initial file: %s", data)
	}
}

func TestLoadCorruptFileKeepsBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	corrupt := []byte("{not json")
	if err := os.WriteFile(path, corrupt, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	collector := metrics.New()
	store := New(NewFileBackend(path), WithMetrics(collector))

	doc, err := store.Load(context.Background())
	if !errors.Is(err, ErrUnreadable) {
		t.Fatalf("expected ErrUnreadable, got %v", err)
	}
	if doc == nil || len(doc.Records(CollectionUsers)) != 0 {
		t.Fatal("expected default document alongside the error")
	}

	snap, err := store.Snapshot(context.Background())
	if err != nil || snap == nil {
		t.Fatalf("snapshot should tolerate unreadable data: %v", err)
	}

	err = store.Update(context.Background(), func(doc *Document) (bool, error) {
		doc.Append(CollectionRoles, json.RawMessage(`{"role_id":1}`))
		return true, nil
	})
	if !errors.Is(err, ErrUnreadable) {
		t.Fatalf("update should abort, got %v", err)
	}
	data, _ := os.ReadFile(path)
	if !bytes.Equal(data, corrupt) {
		t.Fatalf("corrupt file was overwritten: %s", data)
	}
	expected := `
# HELP talentcrm_document_loads_total Document loads by result.
# TYPE talentcrm_document_loads_total counter
talentcrm_document_loads_total{result="error"} 3
`
	if err := testutil.GatherAndCompare(collector.Gatherer(), strings.NewReader(expected), "talentcrm_document_loads_total"); err != nil {
		t.Fatalf("load metrics: %v", err)
	}
}

func TestUpdateWithoutChangeDoesNotWrite(t *testing.T) {
	backend := NewMemoryBackend(nil)
	store := New(backend)
	ctx := context.Background()
	if _, err := store.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	before := backend.Bytes()
	writes := backend.Writes()

	err := store.Update(ctx, func(doc *Document) (bool, error) {
		doc.NextID()
		return false, nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if backend.Writes() != writes || !bytes.Equal(before, backend.Bytes()) {
		t.Fatal("unchanged update should not write")
	}
}

func TestUpdateErrorDoesNotWrite(t *testing.T) {
	backend := NewMemoryBackend(nil)
	store := New(backend)
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.Update(ctx, func(doc *Document) (bool, error) {
		doc.Append(CollectionDeals, json.RawMessage(`{"deal_id":1}`))
		return true, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	doc, _ := store.Load(ctx)
	if len(doc.Records(CollectionDeals)) != 0 {
		t.Fatal("failed update was persisted")
	}
}

func TestUpdatePersistsCounter(t *testing.T) {
	backend := NewMemoryBackend(nil)
	collector := metrics.New()
	store := New(backend, WithMetrics(collector))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := store.Update(ctx, func(doc *Document) (bool, error) {
			id := doc.NextID()
			rec, _ := json.Marshal(map[string]int64{"person_id": id})
			doc.Append(CollectionPersons, rec)
			return true, nil
		})
		if err != nil {
			t.Fatalf("update %d: %v", i, err)
		}
	}
	doc, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if counter := doc.Counter(); counter != 3 {
		t.Fatalf("expected counter 3, got %d", counter)
	}
	expected := `
# HELP talentcrm_ids_allocated_total Identifiers handed out by the id counter.
# TYPE talentcrm_ids_allocated_total counter
talentcrm_ids_allocated_total 3
`
	if err := testutil.GatherAndCompare(collector.Gatherer(), strings.NewReader(expected), "talentcrm_ids_allocated_total"); err != nil {
		t.Fatalf("id metrics: %v", err)
	}
}

func TestLoadHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(NewMemoryBackend(nil)).Load(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSQLiteBackendRoundTrip(t *testing.T) {
	backend, err := OpenSQLite(filepath.Join(t.TempDir(), "crm.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer backend.Close()
	ctx := context.Background()
	store := New(backend)

	err = store.Update(ctx, func(doc *Document) (bool, error) {
		doc.Append(CollectionBrands, json.RawMessage(`{"brand_id":1,"brand_name":"Acme"}`))
		doc.NextID()
		return true, nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	doc, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	brands := doc.Records(CollectionBrands)
	if len(brands) != 1 || !strings.Contains(string(brands[0]), "Acme") {
		t.Fatalf("unexpected brands: %s", brands)
	}
}

func TestEncryptedBackendSealsAtRest(t *testing.T) {
	sealer, err := crypto.New("000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f")
	if err != nil {
		t.Fatalf("crypto: %v", err)
	}
	inner := NewMemoryBackend(nil)
	store := New(NewEncryptedBackend(inner, sealer))
	ctx := context.Background()

	err = store.Update(ctx, func(doc *Document) (bool, error) {
		doc.Append(CollectionUsers, json.RawMessage(`{"user_id":1,"username":"alice"}`))
		return true, nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if bytes.Contains(inner.Bytes(), []byte("alice")) || !crypto.IsSealed(inner.Bytes()) {
		t.Fatal("document stored in the clear")
	}
	doc, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(doc.Records(CollectionUsers)) != 1 {
		t.Fatal("expected user after reopening")
	}
}
