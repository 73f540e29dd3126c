package recorder

import (
	"time"

	"github.com/getmockd/automock/pkg/graphql"
)

// Call is one intercepted operation and the response produced for it.
type Call struct {
	// Seq is the 1-based position of the call in its Store.
	Seq int64 `json:"seq"`

	// Timestamp is when resolution finished.
	Timestamp time.Time `json:"timestamp"`

	// OperationName is the operation name, empty for anonymous operations.
	OperationName string `json:"operationName"`

	// Variables are the variables sent with the operation.
	Variables map[string]interface{} `json:"variables,omitempty"`

	// Operation is the parsed operation. It is nil when the request could
	// not be parsed.
	Operation *graphql.Operation `json:"-"`

	// Response is what the transport received.
	Response *graphql.Response `json:"response"`

	// Duration is how long resolution took.
	Duration time.Duration `json:"duration"`

	// Mocked reports whether a mock entry existed for the operation.
	Mocked bool `json:"mocked"`
}

// HasErrors reports whether the call's response carried errors.
func (c Call) HasErrors() bool {
	return c.Response.HasErrors()
}

// Recorder receives calls as they complete.
type Recorder interface {
	Record(call Call)
}

// Func adapts an ordinary function to the Recorder interface.
type Func func(call Call)

// Record calls f(call).
func (f Func) Record(call Call) {
	f(call)
}

// Filter defines criteria for listing calls.
type Filter struct {
	// OperationName keeps only calls with this operation name.
	OperationName string

	// HasErrors filters by error presence.
	HasErrors *bool

	// Limit is the maximum number of calls to return.
	Limit int

	// Offset is the number of matching calls to skip.
	Offset int
}

func (f *Filter) matches(c Call) bool {
	if f == nil {
		return true
	}
	if f.OperationName != "" && c.OperationName != f.OperationName {
		return false
	}
	if f.HasErrors != nil && c.HasErrors() != *f.HasErrors {
		return false
	}
	return true
}
