// Package repository gives typed CRUD access to one collection of the CRM
// document. Every call reads the document again; nothing is cached.
package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"talentcrm/internal/model"
	"talentcrm/internal/platform/docstore"
)

// Fields names record fields by their serialized name.
type Fields map[string]any

// Ptr constrains the pointer type of a record so ids can be assigned.
type Ptr[T any] interface {
	*T
	SetRecordID(id int64)
}

type Repository[T model.Record, P Ptr[T]] struct {
	store      *docstore.Store
	collection string
	idField    string
	known      map[string]struct{}
}

func New[T model.Record, P Ptr[T]](store *docstore.Store) *Repository[T, P] {
	var zero T
	return &Repository[T, P]{
		store:      store,
		collection: zero.Collection(),
		idField:    zero.IDField(),
		known:      fieldNames(zero),
	}
}

func (r *Repository[T, P]) Collection() string { return r.collection }

func (r *Repository[T, P]) All(ctx context.Context) ([]T, error) {
	doc, err := r.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return r.FindIn(doc, nil)
}

func (r *Repository[T, P]) Get(ctx context.Context, id int64) (T, error) {
	doc, err := r.store.Snapshot(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	return r.GetIn(doc, id)
}

// GetBy returns the first record whose field equals value.
func (r *Repository[T, P]) GetBy(ctx context.Context, field string, value any) (T, error) {
	var zero T
	doc, err := r.store.Snapshot(ctx)
	if err != nil {
		return zero, err
	}
	for i, raw := range doc.Records(r.collection) {
		if !matches(gjson.GetBytes(raw, gjson.Escape(field)), value) {
			continue
		}
		return r.decode(i, raw)
	}
	return zero, fmt.Errorf("%s %s=%v: %w", r.collection, field, value, ErrNotFound)
}

func (r *Repository[T, P]) Find(ctx context.Context, pred func(T) bool) ([]T, error) {
	doc, err := r.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return r.FindIn(doc, pred)
}

// Add stores item, assigning the next id when its id is zero.
func (r *Repository[T, P]) Add(ctx context.Context, item T) (T, error) {
	var out T
	err := r.store.Update(ctx, func(doc *docstore.Document) (bool, error) {
		added, err := r.InsertInto(doc, item)
		if err != nil {
			return false, err
		}
		out = added
		return true, nil
	})
	return out, err
}

// Update merges fields into the record with the given id and returns the
// stored result. Nothing is written when the record is missing.
func (r *Repository[T, P]) Update(ctx context.Context, id int64, fields Fields) (T, error) {
	var out T
	err := r.store.Update(ctx, func(doc *docstore.Document) (bool, error) {
		updated, err := r.UpdateIn(doc, id, fields)
		if err != nil {
			return false, err
		}
		out = updated
		return true, nil
	})
	return out, err
}

// Delete removes every record with the given id and reports whether any
// existed. The document is only saved when something was removed.
func (r *Repository[T, P]) Delete(ctx context.Context, id int64) (bool, error) {
	var removed bool
	err := r.store.Update(ctx, func(doc *docstore.Document) (bool, error) {
		removed = r.DeleteIn(doc, id)
		return removed, nil
	})
	return removed, err
}

// The *In variants work on a document already loaded by the caller so that
// several collections can change within one store.Update.

func (r *Repository[T, P]) FindIn(doc *docstore.Document, pred func(T) bool) ([]T, error) {
	records := doc.Records(r.collection)
	out := make([]T, 0, len(records))
	for i, raw := range records {
		item, err := r.decode(i, raw)
		if err != nil {
			return nil, err
		}
		if pred == nil || pred(item) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *Repository[T, P]) GetIn(doc *docstore.Document, id int64) (T, error) {
	for i, raw := range doc.Records(r.collection) {
		if r.hasID(raw, id) {
			return r.decode(i, raw)
		}
	}
	var zero T
	return zero, fmt.Errorf("%s %d: %w", r.collection, id, ErrNotFound)
}

func (r *Repository[T, P]) InsertInto(doc *docstore.Document, item T) (T, error) {
	id := item.RecordID()
	if id == 0 {
		P(&item).SetRecordID(doc.NextID())
	} else {
		for _, raw := range doc.Records(r.collection) {
			if r.hasID(raw, id) {
				return item, fmt.Errorf("%s %d: %w", r.collection, id, ErrDuplicateID)
			}
		}
		doc.Observe(id)
	}
	raw, err := json.Marshal(item)
	if err != nil {
		return item, fmt.Errorf("encode %s: %w", r.collection, err)
	}
	doc.Append(r.collection, raw)
	return item, nil
}

func (r *Repository[T, P]) UpdateIn(doc *docstore.Document, id int64, fields Fields) (T, error) {
	var zero T
	for name := range fields {
		if _, ok := r.known[name]; !ok {
			return zero, fmt.Errorf("%s.%s: %w", r.collection, name, ErrUnknownField)
		}
	}
	records := doc.Records(r.collection)
	for i, raw := range records {
		if !r.hasID(raw, id) {
			continue
		}
		merged := map[string]json.RawMessage{}
		if err := json.Unmarshal(raw, &merged); err != nil {
			return zero, fmt.Errorf("decode %s %d: %w", r.collection, id, err)
		}
		for name, value := range fields {
			encoded, err := json.Marshal(value)
			if err != nil {
				return zero, fmt.Errorf("%s.%s: %w", r.collection, name, ErrInvalidValue)
			}
			merged[name] = encoded
		}
		mergedRaw, err := json.Marshal(merged)
		if err != nil {
			return zero, fmt.Errorf("encode %s %d: %w", r.collection, id, err)
		}
		var item T
		if err := json.Unmarshal(mergedRaw, &item); err != nil {
			return zero, fmt.Errorf("%s %d: %w: %v", r.collection, id, ErrInvalidValue, err)
		}
		if item.RecordID() != id {
			return zero, fmt.Errorf("%s.%s: %w", r.collection, r.idField, ErrImmutableField)
		}
		canonical, err := json.Marshal(item)
		if err != nil {
			return zero, fmt.Errorf("encode %s %d: %w", r.collection, id, err)
		}
		records[i] = canonical
		doc.SetRecords(r.collection, records)
		return item, nil
	}
	return zero, fmt.Errorf("%s %d: %w", r.collection, id, ErrNotFound)
}

func (r *Repository[T, P]) DeleteIn(doc *docstore.Document, id int64) bool {
	records := doc.Records(r.collection)
	kept := records[:0]
	for _, raw := range records {
		if !r.hasID(raw, id) {
			kept = append(kept, raw)
		}
	}
	if len(kept) == len(records) {
		return false
	}
	doc.SetRecords(r.collection, kept)
	return true
}

func (r *Repository[T, P]) hasID(raw json.RawMessage, id int64) bool {
	res := gjson.GetBytes(raw, r.idField)
	return res.Type == gjson.Number && res.Int() == id
}

func (r *Repository[T, P]) decode(index int, raw json.RawMessage) (T, error) {
	var item T
	if err := json.Unmarshal(raw, &item); err != nil {
		return item, fmt.Errorf("decode %s[%d]: %w", r.collection, index, err)
	}
	return item, nil
}

func fieldNames(zero any) map[string]struct{} {
	out := map[string]struct{}{}
	raw, err := json.Marshal(zero)
	if err != nil {
		return out
	}
	gjson.ParseBytes(raw).ForEach(func(key, _ gjson.Result) bool {
		out[key.Str] = struct{}{}
		return true
	})
	return out
}

// matches compares a stored JSON value with a Go value without decoding the
// whole record.
func matches(res gjson.Result, value any) bool {
	switch v := value.(type) {
	case nil:
		return !res.Exists() || res.Type == gjson.Null
	case string:
		return res.Type == gjson.String && res.Str == v
	case bool:
		return (res.Type == gjson.True || res.Type == gjson.False) && res.Bool() == v
	case int:
		return res.Type == gjson.Number && res.Int() == int64(v)
	case int64:
		return res.Type == gjson.Number && res.Int() == v
	case float64:
		return res.Type == gjson.Number && res.Num == v
	default:
		encoded, err := json.Marshal(v)
		if err != nil || !res.Exists() {
			return false
		}
		return string(encoded) == res.Raw
	}
}
