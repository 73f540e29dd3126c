package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vektah/gqlparser/v2/ast"
)

func TestNew_Deterministic(t *testing.T) {
	vars := map[string]interface{}{"id": "111", "filter": map[string]interface{}{"a": 1, "b": []interface{}{true, "x"}}}

	a := New("OperationA", vars)
	b := New("OperationA", vars)

	assert.Equal(t, a.Base(), b.Base())
	assert.Equal(t, a.At(ast.Path{ast.PathName("queryShape")}), b.At(ast.Path{ast.PathName("queryShape")}))
}

func TestNew_CanonicalVariables(t *testing.T) {
	tests := []struct {
		name string
		a, b map[string]interface{}
	}{
		{
			name: "key order",
			a:    map[string]interface{}{"a": 1, "b": 2},
			b:    map[string]interface{}{"b": 2, "a": 1},
		},
		{
			name: "int and float",
			a:    map[string]interface{}{"n": 1},
			b:    map[string]interface{}{"n": float64(1)},
		},
		{
			name: "int64 and int",
			a:    map[string]interface{}{"n": int64(7)},
			b:    map[string]interface{}{"n": 7},
		},
		{
			name: "nil and empty",
			a:    nil,
			b:    map[string]interface{}{},
		},
		{
			name: "nested key order",
			a:    map[string]interface{}{"in": map[string]interface{}{"x": "1", "y": "2"}},
			b:    map[string]interface{}{"in": map[string]interface{}{"y": "2", "x": "1"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, New("Op", tt.a).Base(), New("Op", tt.b).Base())
		})
	}
}

func TestNew_Sensitivity(t *testing.T) {
	base := New("OperationA", map[string]interface{}{"shapeId": "123"})

	assert.NotEqual(t, base.Base(), New("OperationA", map[string]interface{}{"shapeId": "124"}).Base())
	assert.NotEqual(t, base.Base(), New("OperationB", map[string]interface{}{"shapeId": "123"}).Base())
	assert.NotEqual(t, base.Base(), New("OperationA", nil).Base())
}

func TestSeeder_At_PathSalt(t *testing.T) {
	s := New("Op", nil)

	item0 := ast.Path{ast.PathName("items"), ast.PathIndex(0), ast.PathName("id")}
	item1 := ast.Path{ast.PathName("items"), ast.PathIndex(1), ast.PathName("id")}
	aliased := ast.Path{ast.PathName("other"), ast.PathIndex(0), ast.PathName("id")}

	assert.NotEqual(t, s.At(item0), s.At(item1))
	assert.NotEqual(t, s.At(item0), s.At(aliased))
	assert.NotEqual(t, s.At(nil), s.At(item0))
}

func TestSeeder_Rand(t *testing.T) {
	s := New("Op", map[string]interface{}{"id": "1"})
	path := ast.Path{ast.PathName("user"), ast.PathName("age")}

	r1 := s.Rand(path)
	r2 := s.Rand(path)
	for i := 0; i < 5; i++ {
		assert.Equal(t, r1.Uint64(), r2.Uint64())
	}
}

func TestCanonical(t *testing.T) {
	assert.Equal(t, `{}`, string(Canonical(nil)))
	assert.Equal(t, `{"a":1,"b":"x"}`, string(Canonical(map[string]interface{}{"b": "x", "a": 1.0})))
}

func TestNew_InvalidUTF8(t *testing.T) {
	a := New("OperationA", map[string]interface{}{"id": "\xff"})
	b := New("OperationA", map[string]interface{}{"id": "\xfe"})
	c := New("OperationA", map[string]interface{}{"id": "\uFFFD"})

	assert.NotEqual(t, a.Base(), b.Base())
	assert.NotEqual(t, a.Base(), c.Base())
	assert.Equal(t, a.Base(), New("OperationA", map[string]interface{}{"id": "\xff"}).Base())

	nested := New("OperationA", map[string]interface{}{"filter": []interface{}{map[string]interface{}{"\xfe": "x"}}})
	other := New("OperationA", map[string]interface{}{"filter": []interface{}{map[string]interface{}{"\xff": "x"}}})
	assert.NotEqual(t, nested.Base(), other.Base())
}
