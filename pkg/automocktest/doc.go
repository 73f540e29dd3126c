// Package automocktest runs automock providers inside Go tests.
//
// A Harness owns a schema, a set of provider options and a call history,
// and fails the test on unexpected errors:
//
//	func TestShapeCard(t *testing.T) {
//	    h := automocktest.New(t, schemaSDL)
//
//	    h.Mock("OperationA").
//	        WithField("queryShape.returnString", "John Doe").
//	        Reply()
//
//	    data := h.Query(`query OperationA { queryShape { id returnString } }`, nil)
//	    automocktest.AssertField(t, data, "queryShape.returnString", "John Doe")
//
//	    h.AssertCalled(t, "OperationA")
//	}
//
// # Mocks
//
// Mock returns a builder for one operation. Fields are addressed by dotted
// paths; WithData merges a whole partial response and WithFunc computes it
// from the operation:
//
//	h.Mock("GetUser").
//	    WithData(map[string]interface{}{"user": map[string]interface{}{"name": "Ada"}}).
//	    Once().
//	    Reply()
//
// A mock limited with Times stops applying after that many operations and
// the operation falls back to generated values.
//
// # Assertions
//
//	h.AssertCalled(t, "GetUser")
//	h.AssertCallCount(t, "GetUser", 2)
//	h.AssertNotCalled(t, "DeleteUser")
//
//	call := h.LastCall()
//	AssertVariable(t, call, "id", "42")
//
// Reset clears mocks and the call history between scenarios.
package automocktest
