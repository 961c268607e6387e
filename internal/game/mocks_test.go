package game

import (
	"sync"

	"github.com/stretchr/testify/mock"
)

// --- WordSource ---

type MockWordSource struct {
	mock.Mock
}

func (m *MockWordSource) Pick(exclude map[string]struct{}) (string, string) {
	args := m.Called(exclude)
	return args.String(0), args.String(1)
}

// queueWords hands out words in a fixed order, cycling at the end. Keeps
// hub scenarios deterministic without mock bookkeeping per turn.
type queueWords struct {
	words    []string
	category string
	next     int
}

func (q *queueWords) Pick(exclude map[string]struct{}) (string, string) {
	w := q.words[q.next%len(q.words)]
	q.next++
	return w, q.category
}

// --- Sender ---

// recordedEvent is one message delivered to a recordingSender.
type recordedEvent struct {
	event string
	data  any
}

// recordingSender captures everything sent to a connection. Safe for the
// concurrent sends coming from timer goroutines.
type recordingSender struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (r *recordingSender) Send(event string, data any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{event: event, data: data})
	return nil
}

func (r *recordingSender) count(event string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.event == event {
			n++
		}
	}
	return n
}

func (r *recordingSender) last(event string) (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].event == event {
			return r.events[i].data, true
		}
	}
	return nil, false
}
