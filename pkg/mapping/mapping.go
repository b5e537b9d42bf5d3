// Package mapping implements the field -> type schema manager: automatic
// type inference on ingest, stable auto-extension, and document validation
// (spec §4.4). Modeled as a small struct with a Default-style constructor
// and plain methods, following the teacher's pkg/resorank/types.go
// (ResoRankConfig/FieldParam) shape — there is no direct teacher analogue
// since GoKitt's documents are static Go structs, not dynamically mapped.
package mapping

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Inquir-search/search-engine-sub000/pkg/document"
	"github.com/Inquir-search/search-engine-sub000/pkg/engineerr"
)

// Type names a field's declared or inferred data type.
type Type string

const (
	TypeText     Type = "text"
	TypeKeyword  Type = "keyword"
	TypeEmail    Type = "email"
	TypeURL      Type = "url"
	TypePhone    Type = "phone"
	TypeDate     Type = "date"
	TypeBoolean  Type = "boolean"
	TypeInteger  Type = "integer"
	TypeLong     Type = "long"
	TypeShort    Type = "short"
	TypeByte     Type = "byte"
	TypeFloat    Type = "float"
	TypeDouble   Type = "double"
	TypeNumber   Type = "number"
	TypeGeoPoint Type = "geo_point"
	TypeObject   Type = "object"
)

// IsNumeric reports whether t is one of the numeric type tags.
func (t Type) IsNumeric() bool {
	switch t {
	case TypeInteger, TypeLong, TypeShort, TypeByte, TypeFloat, TypeDouble, TypeNumber:
		return true
	}
	return false
}

// Tokenized reports whether values of type t are run through an analyzer
// and indexed as tokens, per spec §4.11 ("numeric/bool/date not
// token-indexed; geo_point not token-indexed").
func (t Type) Tokenized() bool {
	switch t {
	case TypeNumber, TypeInteger, TypeLong, TypeShort, TypeByte, TypeFloat, TypeDouble,
		TypeBoolean, TypeDate, TypeGeoPoint, TypeObject:
		return false
	}
	return true
}

// Field is a single field's mapping.
type Field struct {
	Type     Type
	Analyzer string // optional analyzer override; "" means type-default
	Boost    float64
}

// textFieldNames is the case-insensitive substring list that forces a
// short, whitespace-free string to map as text anyway (spec §4.4).
var textFieldNames = []string{
	"name", "title", "description", "content", "text", "summary", "city",
	"country", "address", "street", "location", "comment", "note",
	"message", "subject", "body", "caption", "label", "tag", "category",
}

var isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}([T ]\d{2}:\d{2}(:\d{2})?(\.\d+)?(Z|[+-]\d{2}:?\d{2})?)?$`)
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
var urlRe = regexp.MustCompile(`^https?://`)

// Manager is the field -> type schema store.
type Manager struct {
	mu     sync.RWMutex
	fields map[string]Field
}

// New creates an empty Manager.
func New() *Manager {
	return &Manager{fields: make(map[string]Field)}
}

// Get returns the mapping for field, and whether it is declared.
func (m *Manager) Get(field string) (Field, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.fields[field]
	return f, ok
}

// Set declares field's mapping. Once set, the type is stable; Set always
// overwrites explicitly (this is the only path that may change an
// existing mapping — auto-extension never does, per spec §3).
func (m *Manager) Set(field string, mapping Field) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fields[field] = mapping
}

// Fields returns a snapshot of every declared field name.
func (m *Manager) Fields() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.fields))
	for f := range m.fields {
		out = append(out, f)
	}
	return out
}

// AutoMap infers and declares a mapping for every field in doc not already
// mapped. Existing mappings are left untouched (auto-extend only adds new
// fields, per spec §3/§4.4).
func (m *Manager) AutoMap(doc document.Doc) {
	for _, leaf := range document.Flatten(withoutID(doc)) {
		m.mu.Lock()
		if _, ok := m.fields[leaf.Path]; !ok {
			m.fields[leaf.Path] = Field{Type: inferType(leaf.Path, leaf.Value)}
		}
		m.mu.Unlock()
	}
}

// AutoExtend is an alias for AutoMap: both only add mappings for
// previously-unseen fields. They are kept as distinct names because
// spec §4.11's ingest pipeline chooses one or the other by config flag
// (autoMap vs autoExtend), not because the underlying behavior differs.
func (m *Manager) AutoExtend(doc document.Doc) {
	m.AutoMap(doc)
}

func withoutID(doc document.Doc) document.Doc {
	if _, ok := doc["id"]; !ok {
		return doc
	}
	out := make(document.Doc, len(doc)-1)
	for k, v := range doc {
		if k == "id" {
			continue
		}
		out[k] = v
	}
	return out
}

// inferType applies the spec §4.4 rule order to a single flattened leaf.
func inferType(path string, value any) Type {
	switch v := value.(type) {
	case document.GeoPoint:
		return TypeGeoPoint
	case time.Time:
		return TypeDate
	case bool:
		return TypeBoolean
	case float64, float32, int, int64, int32:
		return TypeNumber
	case string:
		return inferStringType(path, v)
	default:
		return TypeKeyword
	}
}

func inferStringType(path, v string) Type {
	if isoDateRe.MatchString(v) {
		return TypeDate
	}
	if emailRe.MatchString(v) {
		return TypeEmail
	}
	if urlRe.MatchString(v) {
		return TypeURL
	}
	if v != "" {
		if _, err := strconv.ParseFloat(v, 64); err == nil {
			return TypeNumber
		}
	}
	if len(v) > 100 {
		return TypeText
	}
	if words := strings.Fields(v); len(words) > 1 {
		return TypeText
	}
	leaf := path
	if idx := strings.LastIndex(path, "."); idx >= 0 {
		leaf = path[idx+1:]
	}
	lowerLeaf := strings.ToLower(leaf)
	for _, name := range textFieldNames {
		if strings.Contains(lowerLeaf, name) {
			return TypeText
		}
	}
	return TypeKeyword
}

// Validate checks doc against declared mappings, per spec §4.4: requires
// an id, and rejects values incompatible with their field's type.
func (m *Manager) Validate(doc document.Doc) error {
	if _, ok := document.ID(doc); !ok {
		return engineerr.NewValidationError("document missing required id field")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, leaf := range document.Flatten(withoutID(doc)) {
		field, ok := m.fields[leaf.Path]
		if !ok {
			continue
		}
		if err := validateValue(leaf.Path, field.Type, leaf.Value); err != nil {
			return err
		}
	}
	return nil
}

func validateValue(path string, t Type, value any) error {
	switch t {
	case TypeGeoPoint:
		gp, ok := value.(document.GeoPoint)
		if !ok {
			return engineerr.NewFieldValidationError(path, "expected geo_point shape")
		}
		if gp.Lat < -90 || gp.Lat > 90 {
			return engineerr.NewFieldValidationError(path, "latitude out of range [-90,90]")
		}
		if gp.Lon < -180 || gp.Lon > 180 {
			return engineerr.NewFieldValidationError(path, "longitude out of range [-180,180]")
		}
		return nil
	case TypeBoolean:
		if _, ok := value.(bool); !ok {
			return engineerr.NewFieldValidationError(path, "expected boolean")
		}
		return nil
	case TypeEmail:
		s, ok := value.(string)
		if !ok || !emailRe.MatchString(s) {
			return engineerr.NewFieldValidationError(path, "expected email-shaped string")
		}
		return nil
	case TypeURL:
		s, ok := value.(string)
		if !ok || !urlRe.MatchString(s) {
			return engineerr.NewFieldValidationError(path, "expected url-shaped string")
		}
		return nil
	}

	if t.IsNumeric() {
		if !isNumeric(value) {
			return engineerr.NewFieldValidationError(path, "expected numeric value")
		}
	}
	return nil
}

func isNumeric(v any) bool {
	switch v.(type) {
	case float64, float32, int, int64, int32:
		return true
	default:
		return false
	}
}
