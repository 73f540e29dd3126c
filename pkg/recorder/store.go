package recorder

import (
	"sync"
	"time"
)

// subscriberBuffer is the channel capacity given to each subscriber.
const subscriberBuffer = 100

// Store is an in-memory, append-only Recorder.
type Store struct {
	mu      sync.RWMutex
	calls   []Call
	nextSeq int64

	subMu       sync.RWMutex
	subscribers map[chan Call]struct{}
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		subscribers: make(map[chan Call]struct{}),
	}
}

// Record appends call, assigning its sequence number and, when unset, its
// timestamp. Subscribers receive calls in sequence order.
func (s *Store) Record(call Call) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSeq++
	call.Seq = s.nextSeq
	if call.Timestamp.IsZero() {
		call.Timestamp = time.Now()
	}
	s.calls = append(s.calls, call)

	// Notify subscribers (non-blocking) while mu still orders them.
	s.subMu.RLock()
	for sub := range s.subscribers {
		select {
		case sub <- call:
		default:
			// Drop if subscriber is slow
		}
	}
	s.subMu.RUnlock()
}

// Calls returns every recorded call in interception order.
func (s *Store) Calls() []Call {
	return s.List(nil)
}

// List returns the calls matching filter, oldest first.
func (s *Store) List(filter *Filter) []Call {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Call, 0, len(s.calls))
	skipped := 0
	for _, c := range s.calls {
		if !filter.matches(c) {
			continue
		}
		if filter != nil && skipped < filter.Offset {
			skipped++
			continue
		}
		result = append(result, c)
		if filter != nil && filter.Limit > 0 && len(result) >= filter.Limit {
			break
		}
	}
	return result
}

// ForOperation returns the calls for one operation name.
func (s *Store) ForOperation(name string) []Call {
	return s.List(&Filter{OperationName: name})
}

// Last returns the most recent call.
func (s *Store) Last() (Call, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.calls) == 0 {
		return Call{}, false
	}
	return s.calls[len(s.calls)-1], true
}

// Count returns the number of recorded calls.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.calls)
}

// Clear removes all calls. Sequence numbers keep increasing.
func (s *Store) Clear() {
	s.mu.Lock()
	s.calls = nil
	s.mu.Unlock()
}

// Subscribe registers a subscriber to receive new calls.
// Returns a channel that will receive calls and an unsubscribe function.
// Calls are dropped for a subscriber whose buffer is full.
func (s *Store) Subscribe() (<-chan Call, func()) {
	ch := make(chan Call, subscriberBuffer)

	s.subMu.Lock()
	s.subscribers[ch] = struct{}{}
	s.subMu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subscribers, ch)
			s.subMu.Unlock()
			close(ch)
		})
	}

	return ch, unsubscribe
}

// Multi fans a call out to several recorders in order.
type Multi []Recorder

// Record forwards call to every recorder.
func (m Multi) Record(call Call) {
	for _, r := range m {
		if r != nil {
			r.Record(call)
		}
	}
}
