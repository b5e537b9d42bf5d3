package mapping

import (
	"testing"
	"time"

	"github.com/Inquir-search/search-engine-sub000/pkg/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutoMap_InfersBasicTypes(t *testing.T) {
	m := New()
	m.AutoMap(document.Doc{
		"id":       "1",
		"name":     "Alice Smith",
		"login_id": "alice",
		"age":      float64(30),
		"active":   true,
		"bio":      "A very long biography that goes on and on and on and on and on and on and on and on and on.",
		"email":    "alice@example.com",
		"site":     "https://example.com",
		"created":  "2024-01-15",
	})

	f, ok := m.Get("name")
	require.True(t, ok)
	assert.Equal(t, TypeText, f.Type)

	f, ok = m.Get("login_id")
	require.True(t, ok)
	assert.Equal(t, TypeKeyword, f.Type)

	f, ok = m.Get("age")
	require.True(t, ok)
	assert.Equal(t, TypeNumber, f.Type)

	f, ok = m.Get("active")
	require.True(t, ok)
	assert.Equal(t, TypeBoolean, f.Type)

	f, ok = m.Get("bio")
	require.True(t, ok)
	assert.Equal(t, TypeText, f.Type)

	f, ok = m.Get("email")
	require.True(t, ok)
	assert.Equal(t, TypeEmail, f.Type)

	f, ok = m.Get("site")
	require.True(t, ok)
	assert.Equal(t, TypeURL, f.Type)

	f, ok = m.Get("created")
	require.True(t, ok)
	assert.Equal(t, TypeDate, f.Type)
}

func TestAutoMap_GeoPointObjectAndArray(t *testing.T) {
	m := New()
	m.AutoMap(document.Doc{"id": "1", "loc": document.Doc{"lat": 40.7, "lon": -74.0}})
	f, ok := m.Get("loc")
	require.True(t, ok)
	assert.Equal(t, TypeGeoPoint, f.Type)

	m2 := New()
	m2.AutoMap(document.Doc{"id": "1", "loc": []any{40.7, -74.0}})
	f2, ok := m2.Get("loc")
	require.True(t, ok)
	assert.Equal(t, TypeGeoPoint, f2.Type)
}

func TestAutoMap_NestedObjectDottedPaths(t *testing.T) {
	m := New()
	m.AutoMap(document.Doc{"id": "1", "address": document.Doc{"city": "NYC", "zip": "10001"}})
	f, ok := m.Get("address.city")
	require.True(t, ok)
	assert.Equal(t, TypeText, f.Type)
}

func TestAutoMap_DateTimeValue(t *testing.T) {
	m := New()
	m.AutoMap(document.Doc{"id": "1", "when": time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)})
	f, ok := m.Get("when")
	require.True(t, ok)
	assert.Equal(t, TypeDate, f.Type)
}

func TestAutoMap_DoesNotOverwriteExistingMapping(t *testing.T) {
	m := New()
	m.Set("count", Field{Type: TypeKeyword})
	m.AutoMap(document.Doc{"id": "1", "count": float64(5)})
	f, _ := m.Get("count")
	assert.Equal(t, TypeKeyword, f.Type)
}

func TestAutoMap_NumericStringInfersNumber(t *testing.T) {
	m := New()
	m.AutoMap(document.Doc{"id": "1", "code": "12345"})
	f, ok := m.Get("code")
	require.True(t, ok)
	assert.Equal(t, TypeNumber, f.Type)
}

func TestValidate_RequiresID(t *testing.T) {
	m := New()
	err := m.Validate(document.Doc{"name": "no id"})
	assert.Error(t, err)
}

func TestValidate_GeoPointRange(t *testing.T) {
	m := New()
	m.Set("loc", Field{Type: TypeGeoPoint})

	err := m.Validate(document.Doc{"id": "1", "loc": document.Doc{"lat": 40.7, "lon": -74.0}})
	assert.NoError(t, err)

	err = m.Validate(document.Doc{"id": "1", "loc": document.Doc{"lat": 190.0, "lon": -74.0}})
	assert.Error(t, err)
}

func TestValidate_EmailShape(t *testing.T) {
	m := New()
	m.Set("email", Field{Type: TypeEmail})

	assert.NoError(t, m.Validate(document.Doc{"id": "1", "email": "a@b.com"}))
	assert.Error(t, m.Validate(document.Doc{"id": "1", "email": "not-an-email"}))
}

func TestValidate_NumericField(t *testing.T) {
	m := New()
	m.Set("age", Field{Type: TypeInteger})

	assert.NoError(t, m.Validate(document.Doc{"id": "1", "age": float64(10)}))
	assert.Error(t, m.Validate(document.Doc{"id": "1", "age": "ten"}))
}

func TestType_TokenizedAndNumeric(t *testing.T) {
	assert.True(t, TypeText.Tokenized())
	assert.False(t, TypeNumber.Tokenized())
	assert.False(t, TypeGeoPoint.Tokenized())
	assert.True(t, TypeNumber.IsNumeric())
	assert.False(t, TypeText.IsNumeric())
}
