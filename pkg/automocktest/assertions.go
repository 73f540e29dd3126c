package automocktest

import (
	"reflect"
	"strings"
	"testing"

	"github.com/ohler55/ojg/jp"

	"github.com/getmockd/automock/pkg/recorder"
)

// Field returns the value at path in data. Paths use dots for fields and
// brackets for list indices: "shapes[0].owner.name".
func Field(data map[string]interface{}, path string) (interface{}, bool) {
	expr, err := jp.ParseString(toJSONPath(path))
	if err != nil {
		return nil, false
	}
	results := expr.Get(data)
	if len(results) == 0 {
		return nil, false
	}
	return results[0], true
}

func toJSONPath(path string) string {
	switch {
	case strings.HasPrefix(path, "$"):
		return path
	case strings.HasPrefix(path, "["):
		return "$" + path
	}
	return "$." + path
}

// AssertField asserts that the value at path in data equals expected.
func AssertField(t testing.TB, data map[string]interface{}, path string, expected interface{}) {
	t.Helper()

	actual, ok := Field(data, path)
	if !ok {
		t.Errorf("field %q not found in response", path)
		return
	}
	if !reflect.DeepEqual(actual, expected) {
		t.Errorf("field %q: expected %v (%T), got %v (%T)", path, expected, expected, actual, actual)
	}
}

// AssertFieldExists asserts that data holds a value at path.
func AssertFieldExists(t testing.TB, data map[string]interface{}, path string) {
	t.Helper()

	if _, ok := Field(data, path); !ok {
		t.Errorf("field %q not found in response", path)
	}
}

// AssertVariable asserts that call was made with variable name set to expected.
func AssertVariable(t testing.TB, call recorder.Call, name string, expected interface{}) {
	t.Helper()

	actual, ok := call.Variables[name]
	if !ok {
		t.Errorf("operation %q: variable %q not set", call.OperationName, name)
		return
	}
	if !reflect.DeepEqual(actual, expected) {
		t.Errorf("operation %q: variable %q: expected %v, got %v", call.OperationName, name, expected, actual)
	}
}

// AssertNoErrors asserts that call produced a response without errors.
func AssertNoErrors(t testing.TB, call recorder.Call) {
	t.Helper()

	if call.HasErrors() {
		t.Errorf("operation %q: unexpected errors: %v", call.OperationName, call.Response.Errors)
	}
}
