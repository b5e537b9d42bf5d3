// Package document defines the document value model shared across the
// engine: a JSON-compatible map, modeled as Go's natural dynamic-typing
// vehicle (map[string]any) rather than a hand-rolled tagged-variant enum,
// per spec.md §9 ("dynamic typing -> tagged variants" — here the "tag" is
// simply the runtime type held in the any, inspected with type switches at
// the two boundaries that care: mapping inference and validation).
package document

// Doc is a JSON-compatible document body: string keys to arbitrary values
// (nil, bool, float64/int, string, time.Time, GeoPoint, []any, Doc).
type Doc map[string]any

// ID extracts the document's id field as a string. Returns ("", false) if
// absent or not a string.
func ID(d Doc) (string, bool) {
	v, ok := d["id"]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// Clone performs a deep-enough copy for storage: top-level map and any
// nested Doc/[]any are copied; scalars are copied by value (Go semantics).
func Clone(d Doc) Doc {
	return cloneValue(d).(Doc)
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case Doc:
		out := make(Doc, len(t))
		for k, vv := range t {
			out[k] = cloneValue(vv)
		}
		return out
	case map[string]any:
		out := make(Doc, len(t))
		for k, vv := range t {
			out[k] = cloneValue(vv)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, vv := range t {
			out[i] = cloneValue(vv)
		}
		return out
	default:
		return v
	}
}

// Flatten walks nested objects and arrays, returning a flat list of
// (dottedPath, value) pairs for every leaf (non-object) value. Arrays
// yield one entry per element at the same path (callers that need facet
// semantics treat repeated paths as "multi-valued").
func Flatten(d Doc) []FlatField {
	var out []FlatField
	flattenInto(d, "", &out)
	return out
}

// FlatField is one leaf value reached while flattening a document.
type FlatField struct {
	Path  string
	Value any
}

func flattenInto(v any, prefix string, out *[]FlatField) {
	switch t := v.(type) {
	case nil:
		// skipped entirely, per mapping inference rule (null/undefined -> skipped)
	case Doc:
		if gp, ok := AsGeoPoint(t); ok {
			*out = append(*out, FlatField{Path: prefix, Value: gp})
			return
		}
		flattenMap(t, prefix, out)
	case map[string]any:
		if gp, ok := AsGeoPoint(t); ok {
			*out = append(*out, FlatField{Path: prefix, Value: gp})
			return
		}
		flattenMap(t, prefix, out)
	case []any:
		if gp, ok := geoPointFromPair(t); ok {
			*out = append(*out, FlatField{Path: prefix, Value: gp})
			return
		}
		for _, item := range t {
			flattenInto(item, prefix, out)
		}
	default:
		*out = append(*out, FlatField{Path: prefix, Value: v})
	}
}

// AsGeoPoint reports whether m has numeric "lat" and "lon" keys, per the
// mapping inference rule for geo_point objects.
func AsGeoPoint(m map[string]any) (GeoPoint, bool) {
	lat, okLat := asFloat(m["lat"])
	lon, okLon := asFloat(m["lon"])
	if okLat && okLon {
		return GeoPoint{Lat: lat, Lon: lon}, true
	}
	return GeoPoint{}, false
}

func geoPointFromPair(arr []any) (GeoPoint, bool) {
	if len(arr) != 2 {
		return GeoPoint{}, false
	}
	lat, okLat := asFloat(arr[0])
	lon, okLon := asFloat(arr[1])
	if okLat && okLon {
		return GeoPoint{Lat: lat, Lon: lon}, true
	}
	return GeoPoint{}, false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func flattenMap(m map[string]any, prefix string, out *[]FlatField) {
	if len(m) == 0 {
		if prefix != "" {
			*out = append(*out, FlatField{Path: prefix, Value: m})
		}
		return
	}
	for k, v := range m {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		flattenInto(v, path, out)
	}
}

// GeoPoint is a latitude/longitude pair recognized by mapping inference
// and the geo_distance query node.
type GeoPoint struct {
	Lat float64
	Lon float64
}
