package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics keeps in-memory request and error counters keyed by
// path|method|status (or error code). There is no exporter; counters are
// read through Snapshot, mainly in tests and debug sessions.
type Metrics struct {
	mu       sync.Mutex
	requests map[string]int64
	errors   map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requests: make(map[string]int64),
		errors:   make(map[string]int64),
	}
}

// RecordRequest counts a completed request.
func (m *Metrics) RecordRequest(path, method string, status int, _ time.Duration) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + strconv.Itoa(status)
	m.mu.Lock()
	m.requests[key]++
	m.mu.Unlock()
}

// RecordError counts an error response by its error code.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	m.errors[key]++
	m.mu.Unlock()
}

// Snapshot returns copies of the request and error counters.
func (m *Metrics) Snapshot() (requests, errors map[string]int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	requests = make(map[string]int64, len(m.requests))
	for k, v := range m.requests {
		requests[k] = v
	}
	errors = make(map[string]int64, len(m.errors))
	for k, v := range m.errors {
		errors[k] = v
	}
	return requests, errors
}
