package docstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

const (
	CollectionRoles                = "roles"
	CollectionPersons              = "persons"
	CollectionUsers                = "users"
	CollectionEmployees            = "employees"
	CollectionClients              = "clients"
	CollectionSocialMediaAccounts  = "social_media_accounts"
	CollectionBrands               = "brands"
	CollectionBrandRepresentatives = "brand_representatives"
	CollectionDeals                = "deals"
	CollectionContracts            = "contracts"

	CounterKey = "_next_id"
)

// Collections lists every known collection in serialization order.
var Collections = []string{
	CollectionRoles,
	CollectionPersons,
	CollectionUsers,
	CollectionEmployees,
	CollectionClients,
	CollectionSocialMediaAccounts,
	CollectionBrands,
	CollectionBrandRepresentatives,
	CollectionDeals,
	CollectionContracts,
}

func IsCollection(name string) bool {
	for _, known := range Collections {
		if known == name {
			return true
		}
	}
	return false
}

// Document is the whole persisted state: one ordered list of flat JSON
// records per collection plus the id counter. Records are kept as raw JSON so
// fields this version does not model survive a load/save cycle.
type Document struct {
	collections map[string][]json.RawMessage
	extra       map[string]json.RawMessage
	nextID      int64
	allocated   int
}

// NewDocument returns an empty document with every collection present and
// the counter at zero.
func NewDocument() *Document {
	doc := &Document{
		collections: make(map[string][]json.RawMessage, len(Collections)),
	}
	for _, name := range Collections {
		doc.collections[name] = []json.RawMessage{}
	}
	return doc
}

// Records returns a copy of the named collection; unknown names yield an
// empty slice.
func (d *Document) Records(name string) []json.RawMessage {
	src := d.collections[name]
	out := make([]json.RawMessage, len(src))
	for i, rec := range src {
		out[i] = cloneRaw(rec)
	}
	return out
}

// SetRecords replaces the named collection.
func (d *Document) SetRecords(name string, records []json.RawMessage) {
	if d.collections == nil {
		d.collections = make(map[string][]json.RawMessage, len(Collections))
	}
	out := make([]json.RawMessage, len(records))
	for i, rec := range records {
		out[i] = cloneRaw(rec)
	}
	d.collections[name] = out
}

func (d *Document) Append(name string, record json.RawMessage) {
	if d.collections == nil {
		d.collections = make(map[string][]json.RawMessage, len(Collections))
	}
	d.collections[name] = append(d.collections[name], cloneRaw(record))
}

// NextID allocates the next identifier.
func (d *Document) NextID() int64 {
	d.nextID++
	d.allocated++
	return d.nextID
}

// Observe raises the counter to id so explicitly assigned ids are never
// handed out again.
func (d *Document) Observe(id int64) {
	if id > d.nextID {
		d.nextID = id
	}
}

// Counter reports the last allocated id.
func (d *Document) Counter() int64 {
	return d.nextID
}

func (d *Document) takeAllocated() int {
	n := d.allocated
	d.allocated = 0
	return n
}

func (d *Document) maxRecordID() int64 {
	var max int64
	scan := func(record []byte) {
		gjson.ParseBytes(record).ForEach(func(key, value gjson.Result) bool {
			if !strings.HasSuffix(key.Str, "_id") || value.Type != gjson.Number {
				return true
			}
			n := value.Int()
			if float64(n) == value.Num && n > max {
				max = n
			}
			return true
		})
	}
	for _, records := range d.collections {
		for _, rec := range records {
			scan(rec)
		}
	}
	for _, raw := range d.extra {
		parsed := gjson.ParseBytes(raw)
		if !parsed.IsArray() {
			continue
		}
		parsed.ForEach(func(_, item gjson.Result) bool {
			if item.IsObject() {
				scan([]byte(item.Raw))
			}
			return true
		})
	}
	return max
}

// UnmarshalJSON accepts any JSON object. Missing collections load empty. A
// missing counter, or one lower than the highest stored id, is set to that id
// so the next save persists it before any record can be deleted.
func (d *Document) UnmarshalJSON(data []byte) error {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return err
	}
	if top == nil {
		return fmt.Errorf("document root must be an object")
	}
	fresh := NewDocument()
	for key, raw := range top {
		switch {
		case key == CounterKey:
			var counter int64
			if err := json.Unmarshal(raw, &counter); err != nil {
				return fmt.Errorf("decode %s: %w", CounterKey, err)
			}
			fresh.nextID = counter
		case IsCollection(key):
			var records []json.RawMessage
			if err := json.Unmarshal(raw, &records); err != nil {
				return fmt.Errorf("decode %s: %w", key, err)
			}
			if records == nil {
				records = []json.RawMessage{}
			}
			fresh.collections[key] = records
		default:
			if fresh.extra == nil {
				fresh.extra = make(map[string]json.RawMessage)
			}
			fresh.extra[key] = cloneRaw(raw)
		}
	}
	if max := fresh.maxRecordID(); max > fresh.nextID {
		fresh.nextID = max
	}
	*d = *fresh
	return nil
}

// MarshalJSON writes collections in a fixed order, then unknown keys sorted,
// then the counter.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	writeKey := func(key string) {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		name, _ := json.Marshal(key)
		buf.Write(name)
		buf.WriteByte(':')
	}
	for _, name := range Collections {
		writeKey(name)
		buf.WriteByte('[')
		for i, rec := range d.collections[name] {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := json.Compact(&buf, rec); err != nil {
				return nil, fmt.Errorf("encode %s record %d: %w", name, i, err)
			}
		}
		buf.WriteByte(']')
	}
	extraKeys := make([]string, 0, len(d.extra))
	for key := range d.extra {
		extraKeys = append(extraKeys, key)
	}
	sort.Strings(extraKeys)
	for _, key := range extraKeys {
		writeKey(key)
		if err := json.Compact(&buf, d.extra[key]); err != nil {
			return nil, fmt.Errorf("encode %s: %w", key, err)
		}
	}
	writeKey(CounterKey)
	fmt.Fprintf(&buf, "%d", d.nextID)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Encode returns the on-disk form: MarshalJSON indented by four spaces.
func (d *Document) Encode() ([]byte, error) {
	compact, err := d.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "    "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func cloneRaw(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return nil
	}
	out := make(json.RawMessage, len(raw))
	copy(out, raw)
	return out
}
