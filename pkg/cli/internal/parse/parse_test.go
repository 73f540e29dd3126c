package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyValue(t *testing.T) {
	tests := []struct {
		input     string
		delims    []rune
		wantKey   string
		wantValue string
		wantOK    bool
	}{
		{"id=42", nil, "id", "42", true},
		{"expr=a=b", nil, "expr", "a=b", true},
		{"Content-Type: json", []rune{':'}, "Content-Type", " json", true},
		{"novalue", nil, "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			key, value, ok := KeyValue(tt.input, tt.delims...)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantKey, key)
			assert.Equal(t, tt.wantValue, value)
		})
	}
}

func TestVariables(t *testing.T) {
	vars, err := Variables([]byte(`{"id": "1", "first": 10, "filter": {"tags": ["a"]}}`))
	require.NoError(t, err)
	assert.Equal(t, "1", vars["id"])
	assert.EqualValues(t, 10, vars["first"])
	assert.Equal(t, map[string]interface{}{"tags": []interface{}{"a"}}, vars["filter"])

	vars, err = Variables([]byte("  \n"))
	require.NoError(t, err)
	assert.Nil(t, vars)

	_, err = Variables([]byte(`[1, 2]`))
	assert.Error(t, err)

	_, err = Variables([]byte(`{"id":`))
	assert.Error(t, err)
}

func TestVariableAssignments(t *testing.T) {
	vars, err := VariableAssignments(map[string]interface{}{"id": "old"}, []string{
		"id=new",
		"first=3",
		`ids=["a","b"]`,
		"active=true",
		"quoted=\"7\"",
	})
	require.NoError(t, err)
	assert.Equal(t, "new", vars["id"])
	assert.EqualValues(t, 3, vars["first"])
	assert.Equal(t, []interface{}{"a", "b"}, vars["ids"])
	assert.Equal(t, true, vars["active"])
	assert.Equal(t, "7", vars["quoted"])

	_, err = VariableAssignments(nil, []string{"=1"})
	assert.Error(t, err)

	vars, err = VariableAssignments(nil, nil)
	require.NoError(t, err)
	assert.Nil(t, vars)
}
