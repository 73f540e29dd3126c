package recorder

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/getmockd/automock/pkg/graphql"
)

func okCall(name string) Call {
	return Call{
		OperationName: name,
		Response:      &graphql.Response{Data: map[string]interface{}{"ok": true}},
	}
}

func errCall(name string) Call {
	return Call{
		OperationName: name,
		Response:      graphql.ErrorResponse(gqlerror.Errorf("boom")),
	}
}

// =============================================================================
// Recording
// =============================================================================

func TestStore_RecordAssignsSequence(t *testing.T) {
	s := NewStore()
	s.Record(okCall("A"))
	s.Record(okCall("B"))
	s.Record(okCall("A"))

	calls := s.Calls()
	require.Len(t, calls, 3)
	for i, c := range calls {
		assert.Equal(t, int64(i+1), c.Seq)
		assert.False(t, c.Timestamp.IsZero())
	}
	assert.Equal(t, []string{"A", "B", "A"}, []string{calls[0].OperationName, calls[1].OperationName, calls[2].OperationName})
}

func TestStore_KeepsTimestamp(t *testing.T) {
	s := NewStore()
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	c := okCall("A")
	c.Timestamp = ts
	s.Record(c)

	last, ok := s.Last()
	require.True(t, ok)
	assert.Equal(t, ts, last.Timestamp)
}

func TestStore_Last_Empty(t *testing.T) {
	_, ok := NewStore().Last()
	assert.False(t, ok)
}

func TestStore_ClearKeepsSequence(t *testing.T) {
	s := NewStore()
	s.Record(okCall("A"))
	s.Clear()
	assert.Equal(t, 0, s.Count())

	s.Record(okCall("B"))
	last, _ := s.Last()
	assert.Equal(t, int64(2), last.Seq)
}

// =============================================================================
// Filtering
// =============================================================================

func TestStore_List(t *testing.T) {
	s := NewStore()
	s.Record(okCall("A"))
	s.Record(errCall("A"))
	s.Record(okCall("B"))
	s.Record(okCall("A"))

	yes, no := true, false

	tests := []struct {
		name    string
		filter  *Filter
		wantSeq []int64
	}{
		{"nil filter", nil, []int64{1, 2, 3, 4}},
		{"by name", &Filter{OperationName: "A"}, []int64{1, 2, 4}},
		{"errors only", &Filter{HasErrors: &yes}, []int64{2}},
		{"no errors", &Filter{HasErrors: &no}, []int64{1, 3, 4}},
		{"limit", &Filter{Limit: 2}, []int64{1, 2}},
		{"offset", &Filter{OperationName: "A", Offset: 1}, []int64{2, 4}},
		{"offset and limit", &Filter{Offset: 1, Limit: 2}, []int64{2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := s.List(tt.filter)
			seqs := make([]int64, 0, len(calls))
			for _, c := range calls {
				seqs = append(seqs, c.Seq)
			}
			assert.Equal(t, tt.wantSeq, seqs)
		})
	}

	assert.Len(t, s.ForOperation("B"), 1)
}

// =============================================================================
// Subscriptions and concurrency
// =============================================================================

func TestStore_Subscribe(t *testing.T) {
	s := NewStore()
	ch, unsubscribe := s.Subscribe()

	s.Record(okCall("A"))

	select {
	case c := <-ch:
		assert.Equal(t, "A", c.OperationName)
		assert.Equal(t, int64(1), c.Seq)
	case <-time.After(time.Second):
		t.Fatal("expected call on subscriber channel")
	}

	unsubscribe()
	unsubscribe()

	_, open := <-ch
	assert.False(t, open)

	// Recording after unsubscribe must not panic.
	s.Record(okCall("B"))
}

func TestStore_ConcurrentRecord(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Record(okCall("A"))
		}()
	}
	wg.Wait()

	calls := s.Calls()
	require.Len(t, calls, 50)
	for i, c := range calls {
		assert.Equal(t, int64(i+1), c.Seq)
	}
}

func TestStore_SubscriberSeesSequenceOrder(t *testing.T) {
	s := NewStore()
	ch, unsubscribe := s.Subscribe()
	defer unsubscribe()

	// Stay under the subscriber buffer so nothing is dropped.
	const workers = 8
	const perWorker = 10

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				s.Record(okCall("A"))
			}
		}()
	}
	wg.Wait()

	for want := int64(1); want <= workers*perWorker; want++ {
		select {
		case c := <-ch:
			require.Equal(t, want, c.Seq)
		case <-time.After(time.Second):
			t.Fatalf("missing call %d", want)
		}
	}
}

func TestMulti(t *testing.T) {
	var got []string
	m := Multi{Func(func(c Call) { got = append(got, "first:"+c.OperationName) }), nil, Func(func(c Call) { got = append(got, "second:"+c.OperationName) })}
	m.Record(okCall("A"))
	assert.Equal(t, []string{"first:A", "second:A"}, got)
}
