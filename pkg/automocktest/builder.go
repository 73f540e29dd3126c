package automocktest

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/getmockd/automock/pkg/automock"
	"github.com/getmockd/automock/pkg/graphql"
)

// MockBuilder builds the mock for one operation using a fluent API.
type MockBuilder struct {
	harness   *Harness
	operation string
	data      map[string]interface{}
	fn        automock.MockFunc
	times     int   // 0 means unlimited
	err       error // First error encountered during building
}

// setError records the first error encountered during building.
func (b *MockBuilder) setError(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Err returns any error encountered during building.
func (b *MockBuilder) Err() error {
	return b.err
}

// WithField sets the value at a dotted response path such as
// "queryShape.owner.name". Intermediate objects are created as needed.
func (b *MockBuilder) WithField(path string, value interface{}) *MockBuilder {
	segments := strings.Split(path, ".")
	node := b.data
	for i, seg := range segments {
		if seg == "" {
			b.setError(fmt.Errorf("invalid field path %q", path))
			return b
		}
		if i == len(segments)-1 {
			node[seg] = copyValue(value)
			break
		}
		next, ok := node[seg].(map[string]interface{})
		if !ok {
			if _, exists := node[seg]; exists {
				b.setError(fmt.Errorf("field path %q crosses a non-object value at %q", path, seg))
				return b
			}
			next = make(map[string]interface{})
			node[seg] = next
		}
		node = next
	}
	return b
}

// WithData merges a partial response into the mock. Later values win.
func (b *MockBuilder) WithData(data map[string]interface{}) *MockBuilder {
	mergeInto(b.data, data)
	return b
}

// WithTypename pins the concrete type of the object at path, for fields of
// interface or union type.
func (b *MockBuilder) WithTypename(path, typeName string) *MockBuilder {
	return b.WithField(path+"."+graphql.TypenameField, typeName)
}

// WithFunc computes the partial response per operation instead. Data set
// with WithField or WithData is merged on top of the function's result.
func (b *MockBuilder) WithFunc(fn automock.MockFunc) *MockBuilder {
	b.fn = fn
	return b
}

// Times sets how many operations this mock applies to. After n uses the
// operation gets generated values only. Use 0 for unlimited (default).
func (b *MockBuilder) Times(n int) *MockBuilder {
	b.times = n
	return b
}

// Once is a convenience method for Times(1).
func (b *MockBuilder) Once() *MockBuilder {
	return b.Times(1)
}

// Twice is a convenience method for Times(2).
func (b *MockBuilder) Twice() *MockBuilder {
	return b.Times(2)
}

// Build registers the mock and returns the Harness. A builder error fails
// the test.
func (b *MockBuilder) Build() *Harness {
	b.harness.t.Helper()

	if b.err != nil {
		b.harness.t.Fatalf("invalid mock for operation %q: %v", b.operation, b.err)
		return b.harness
	}
	b.harness.addMock(b.operation, b.mock())
	return b.harness
}

// Reply is an alias for Build.
// More readable in fluent chains:
//
//	h.Mock("GetUser").WithField("user.name", "Ada").Reply()
func (b *MockBuilder) Reply() {
	b.harness.t.Helper()
	b.Build()
}

func (b *MockBuilder) mock() automock.Mock {
	data := automock.Literal(copyValue(b.data).(map[string]interface{}))
	fn := b.fn
	if fn == nil && b.times == 0 {
		return data
	}

	var used atomic.Int64
	limit := int64(b.times)
	return automock.MockFunc(func(ctx context.Context, op *graphql.Operation) (map[string]interface{}, error) {
		if limit > 0 && used.Add(1) > limit {
			return nil, nil
		}

		out := make(map[string]interface{})
		if fn != nil {
			computed, err := fn(ctx, op)
			if err != nil {
				return nil, err
			}
			mergeInto(out, computed)
		}
		fixed, _ := data.MockData(ctx, op)
		mergeInto(out, fixed)
		return out, nil
	})
}

// mergeInto deep-merges src into dst; src wins on conflicts. dst never
// shares maps or slices with src.
func mergeInto(dst, src map[string]interface{}) {
	for k, v := range src {
		srcMap, srcOK := v.(map[string]interface{})
		dstMap, dstOK := dst[k].(map[string]interface{})
		if srcOK && dstOK {
			mergeInto(dstMap, srcMap)
			continue
		}
		dst[k] = copyValue(v)
	}
}

func copyValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, child := range t {
			out[k] = copyValue(child)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, item := range t {
			out[i] = copyValue(item)
		}
		return out
	}
	return v
}
