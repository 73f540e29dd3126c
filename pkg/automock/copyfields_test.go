package automock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileCopyRules_DottedKeysNest(t *testing.T) {
	tree, err := compileCopyRules(map[string]interface{}{
		"user.id":      "id",
		"user.profile": map[string]interface{}{"name": "input.name"},
	})
	require.NoError(t, err)

	user, ok := tree["user"].(map[string]interface{})
	require.True(t, ok)
	leaf, ok := user["id"].(*copyLeaf)
	require.True(t, ok)
	assert.Equal(t, "id", leaf.ref)

	profile, ok := user["profile"].(map[string]interface{})
	require.True(t, ok)
	assert.IsType(t, &copyLeaf{}, profile["name"])
}

func TestLookupVariable(t *testing.T) {
	vars := map[string]interface{}{
		"id":    "111",
		"input": map[string]interface{}{"name": "Ada", "tags": []interface{}{"a", "b"}},
		"empty": nil,
	}

	tests := []struct {
		ref    string
		want   interface{}
		wantOK bool
	}{
		{"id", "111", true},
		{"$.id", "111", true},
		{"input.name", "Ada", true},
		{"input.tags[1]", "b", true},
		{"missing", nil, false},
		{"input.missing", nil, false},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			leaf, err := compileCopyLeaf(tt.ref)
			require.NoError(t, err)

			got, ok := lookupVariable(leaf, vars)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	leaf, err := compileCopyLeaf("id")
	require.NoError(t, err)
	_, ok := lookupVariable(leaf, nil)
	assert.False(t, ok)
}

func TestCompileCopyFieldsFromVariables_Wildcard(t *testing.T) {
	byOp, wildcard, err := compileCopyFieldsFromVariables(CopyFieldsFromVariables{
		WildcardOperation: {"user.id": "userId", "node.id": "nodeId"},
		"GetUser":         {"user.id": "id"},
	})
	require.NoError(t, err)
	require.NotNil(t, wildcard)

	rules := byOp["GetUser"]
	user := rules["user"].(map[string]interface{})
	assert.Equal(t, "id", user["id"].(*copyLeaf).ref)

	node := rules["node"].(map[string]interface{})
	assert.Equal(t, "nodeId", node["id"].(*copyLeaf).ref)

	// The wildcard itself is left untouched by the overlay.
	assert.Equal(t, "userId", wildcard["user"].(map[string]interface{})["id"].(*copyLeaf).ref)
}

func TestStripTypename(t *testing.T) {
	data := map[string]interface{}{
		"user": map[string]interface{}{
			"__typename": "User",
			"posts": []interface{}{
				map[string]interface{}{"__typename": "Post", "id": "1"},
			},
		},
	}

	annotateTypename(data, false)

	assert.Equal(t, map[string]interface{}{
		"user": map[string]interface{}{
			"posts": []interface{}{map[string]interface{}{"id": "1"}},
		},
	}, data)
}

func TestDeepCopyValue_NormalizesNamedTypes(t *testing.T) {
	src := Literal{
		"list":  []map[string]interface{}{{"a": 1}},
		"rules": CopyRules{"id": "id"},
		"raw":   []byte("x"),
	}

	got := deepCopyMap(src)

	assert.Equal(t, []interface{}{map[string]interface{}{"a": 1}}, got["list"])
	assert.Equal(t, map[string]interface{}{"id": "id"}, got["rules"])
	assert.Equal(t, []byte("x"), got["raw"])

	got["list"].([]interface{})[0].(map[string]interface{})["a"] = 2
	assert.Equal(t, 1, src["list"].([]map[string]interface{})[0]["a"])
}
