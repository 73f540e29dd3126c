package automocktest

import (
	"context"
	"fmt"
	"testing"

	"github.com/getmockd/automock/pkg/automock"
	"github.com/getmockd/automock/pkg/graphql"
)

const testSDL = `
type Query {
	queryShape(id: ID, shapeId: ID): Shape
	shapes: [Shape!]!
	node(id: ID!): Node
}

interface Node { id: ID! }

type Shape implements Node {
	id: ID!
	returnString: String
	returnInt: Int!
	owner: User
}

type User implements Node {
	id: ID!
	name: String!
}
`

const operationA = `query OperationA($shapeId: ID) {
	queryShape(shapeId: $shapeId) { id returnString returnInt owner { name } }
}`

// fakeT records failures instead of stopping the test.
type fakeT struct {
	testing.TB
	errors []string
	fatals []string
}

func (f *fakeT) Helper() {}

func (f *fakeT) Errorf(format string, args ...interface{}) {
	f.errors = append(f.errors, fmt.Sprintf(format, args...))
}

func (f *fakeT) Fatalf(format string, args ...interface{}) {
	f.fatals = append(f.fatals, fmt.Sprintf(format, args...))
}

func TestNew(t *testing.T) {
	h := New(t, testSDL)
	if h == nil {
		t.Fatal("New() returned nil")
	}
	if h.Provider() == nil {
		t.Fatal("Provider() returned nil")
	}
	if h.Provider() != h.Provider() {
		t.Error("Provider() rebuilt without new mocks")
	}
}

func TestNew_InvalidSchema(t *testing.T) {
	ft := &fakeT{TB: t}
	New(ft, "type Query {")
	if len(ft.fatals) != 1 {
		t.Errorf("expected one fatal, got %v", ft.fatals)
	}
}

func TestQuery_GeneratedData(t *testing.T) {
	h := New(t, testSDL)

	data := h.Query(operationA, map[string]interface{}{"shapeId": "1"})
	AssertFieldExists(t, data, "queryShape.id")
	AssertFieldExists(t, data, "queryShape.owner.name")
	AssertField(t, data, "queryShape.__typename", "Shape")

	again := h.Query(operationA, map[string]interface{}{"shapeId": "1"})
	first, _ := Field(data, "queryShape.returnString")
	second, _ := Field(again, "queryShape.returnString")
	if first != second {
		t.Errorf("same variables gave %v and %v", first, second)
	}
}

func TestMock_WithField(t *testing.T) {
	h := New(t, testSDL)

	h.Mock("OperationA").
		WithField("queryShape.returnString", "John Doe").
		WithField("queryShape.owner.name", "Ada").
		Reply()

	data := h.Query(operationA, nil)
	AssertField(t, data, "queryShape.returnString", "John Doe")
	AssertField(t, data, "queryShape.owner.name", "Ada")
}

func TestMock_WithDataAndTypename(t *testing.T) {
	h := New(t, `
type Query { node(id: ID!): Node }
interface Node { id: ID! }
type Shape implements Node { id: ID! }
type User implements Node { id: ID! name: String! }
`)

	h.Mock("GetNode").
		WithData(map[string]interface{}{"node": map[string]interface{}{"id": "u-1"}}).
		WithTypename("node", "User").
		WithData(map[string]interface{}{"node": map[string]interface{}{"name": "Ada"}}).
		Reply()

	data := h.Query(`query GetNode { node(id: "1") { id ... on User { name } } }`, nil)
	AssertField(t, data, "node.__typename", "User")
	AssertField(t, data, "node.id", "u-1")
	AssertField(t, data, "node.name", "Ada")
}

func TestMock_DoesNotShareMaps(t *testing.T) {
	h := New(t, testSDL)

	owner := map[string]interface{}{"name": "Ada"}
	data := map[string]interface{}{"queryShape": map[string]interface{}{"owner": owner}}

	b := h.Mock("OperationA").
		WithData(data).
		WithField("queryShape.owner.id", "u-1").
		WithField("queryShape.returnString", "John Doe")
	b.Reply()

	if _, ok := owner["id"]; ok {
		t.Errorf("WithField wrote into the caller's map: %v", owner)
	}
	if len(data["queryShape"].(map[string]interface{})) != 1 {
		t.Errorf("WithField wrote into the caller's map: %v", data)
	}

	owner["name"] = "changed by caller"
	b.WithField("queryShape.returnString", "changed after Reply")

	got := h.Query(operationA, nil)
	AssertField(t, got, "queryShape.owner.name", "Ada")
	AssertField(t, got, "queryShape.returnString", "John Doe")
}

func TestMock_WithFunc(t *testing.T) {
	h := New(t, testSDL)

	h.Mock("OperationA").
		WithFunc(func(_ context.Context, op *graphql.Operation) (map[string]interface{}, error) {
			return map[string]interface{}{
				"queryShape": map[string]interface{}{
					"returnString": fmt.Sprintf("Shape %v", op.Variables["shapeId"]),
					"returnInt":    1,
				},
			}, nil
		}).
		WithField("queryShape.returnInt", 2).
		Reply()

	data := h.Query(operationA, map[string]interface{}{"shapeId": "123"})
	AssertField(t, data, "queryShape.returnString", "Shape 123")
	AssertField(t, data, "queryShape.returnInt", 2)
}

func TestMock_Times(t *testing.T) {
	h := New(t, testSDL)

	h.Mock("OperationA").WithField("queryShape.returnString", "John Doe").Once().Reply()

	first := h.Query(operationA, nil)
	AssertField(t, first, "queryShape.returnString", "John Doe")

	second := h.Query(operationA, nil)
	if v, _ := Field(second, "queryShape.returnString"); v == "John Doe" {
		t.Error("mock applied after its limit")
	}
}

func TestMock_InvalidPath(t *testing.T) {
	ft := &fakeT{TB: t}
	h := New(ft, testSDL)

	b := h.Mock("OperationA").WithField("queryShape..id", "x")
	if b.Err() == nil {
		t.Fatal("expected builder error")
	}
	b.Reply()
	if len(ft.fatals) != 1 {
		t.Errorf("expected one fatal, got %v", ft.fatals)
	}

	b = h.Mock("OperationA").WithField("queryShape", "x").WithField("queryShape.id", "y")
	if b.Err() == nil {
		t.Error("expected error for path through a leaf")
	}
}

func TestQueryErr(t *testing.T) {
	h := New(t, testSDL)

	errs := h.QueryErr(`{ queryShape { missing } }`, nil)
	if len(errs) == 0 {
		t.Fatal("QueryErr() returned no errors")
	}
	if code := errs[0].Extensions["code"]; code != graphql.CodeValidationFailed {
		t.Errorf("code = %v, want %s", code, graphql.CodeValidationFailed)
	}
}

func TestCallAssertions(t *testing.T) {
	h := New(t, testSDL)

	h.Query(operationA, map[string]interface{}{"shapeId": "42"})
	h.Query(operationA, map[string]interface{}{"shapeId": "43"})

	h.AssertCalled(t, "OperationA")
	h.AssertCallCount(t, "OperationA", 2)
	h.AssertNotCalled(t, "OperationB")

	call := h.LastCall()
	AssertVariable(t, call, "shapeId", "43")
	AssertNoErrors(t, call)

	if got := len(h.Calls()); got != 2 {
		t.Errorf("Calls() = %d, want 2", got)
	}

	ft := &fakeT{TB: t}
	h.AssertCalled(ft, "OperationB")
	h.AssertCallCount(ft, "OperationA", 5)
	h.AssertNotCalled(ft, "OperationA")
	AssertVariable(ft, call, "missing", "x")
	if len(ft.errors) != 4 {
		t.Errorf("expected 4 failures, got %v", ft.errors)
	}
}

func TestReset(t *testing.T) {
	h := New(t, testSDL, automock.WithAddTypename(false))

	h.Mock("OperationA").WithField("queryShape.returnString", "John Doe").Reply()
	h.Query(operationA, nil)

	h.Reset()
	h.AssertCallCount(t, "OperationA", 0)

	data := h.Query(operationA, nil)
	if v, _ := Field(data, "queryShape.returnString"); v == "John Doe" {
		t.Error("mock survived Reset()")
	}
	if _, ok := Field(data, "queryShape.__typename"); ok {
		t.Error("options were lost on Reset()")
	}
}

func TestField_Paths(t *testing.T) {
	data := map[string]interface{}{
		"shapes": []interface{}{
			map[string]interface{}{"owner": map[string]interface{}{"name": "Ada"}},
		},
	}

	AssertField(t, data, "shapes[0].owner.name", "Ada")
	AssertField(t, data, "$.shapes[0].owner.name", "Ada")
	if _, ok := Field(data, "shapes[1].owner"); ok {
		t.Error("Field() found a missing index")
	}
}
