// Package qbtest provides an in-memory Transport for tests that execute
// compiled queries without a live connection. It records every call and
// serves configurable per-entity results.
package qbtest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	qbsql "github.com/Exotik850/quick-oxibooks-sql"
)

// Call is one recorded Execute invocation.
type Call struct {
	// RequestID uniquely identifies the call.
	RequestID uuid.UUID
	// Query is the serialized query string as received.
	Query string
	// Entity is the entity name as received.
	Entity string
}

// Transport is a fake qbsql.Transport. The zero value is usable and returns
// no rows for every entity; construct with New to preconfigure results.
// All methods are safe for concurrent use.
type Transport struct {
	mu      sync.Mutex
	results map[string][]map[string]any
	errs    map[string]error
	calls   []Call
}

var _ qbsql.Transport = (*Transport)(nil)

// Option configures the fake.
type Option func(*Transport)

// WithResults preloads the rows returned for an entity.
func WithResults(entity string, rows ...map[string]any) Option {
	return func(t *Transport) {
		t.results[entity] = rows
	}
}

// WithError preloads the error returned for an entity.
func WithError(entity string, err error) Option {
	return func(t *Transport) {
		t.errs[entity] = err
	}
}

// New builds a fake transport.
//
// Example:
//
//	fake := qbtest.New(
//	    qbtest.WithResults("Customer", map[string]any{"Id": "1", "DisplayName": "Acme"}),
//	    qbtest.WithError("Invoice", errors.New("rate limited")),
//	)
//	rows, err := query.Execute(ctx, fake)
func New(opts ...Option) *Transport {
	t := &Transport{
		results: make(map[string][]map[string]any),
		errs:    make(map[string]error),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetResults replaces the rows returned for an entity.
func (t *Transport) SetResults(entity string, rows ...map[string]any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.results == nil {
		t.results = make(map[string][]map[string]any)
	}
	t.results[entity] = rows
}

// SetError replaces the error returned for an entity. A nil err clears it.
func (t *Transport) SetError(entity string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.errs == nil {
		t.errs = make(map[string]error)
	}
	if err == nil {
		delete(t.errs, entity)
		return
	}
	t.errs[entity] = err
}

// Execute implements qbsql.Transport. The call is recorded before any
// configured error is returned.
func (t *Transport) Execute(ctx context.Context, query, entity string) ([]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.calls = append(t.calls, Call{RequestID: uuid.New(), Query: query, Entity: entity})

	if err, ok := t.errs[entity]; ok {
		return nil, err
	}
	rows := t.results[entity]
	out := make([]map[string]any, len(rows))
	copy(out, rows)
	return out, nil
}

// Calls returns a copy of all recorded calls in execution order.
func (t *Transport) Calls() []Call {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Call, len(t.calls))
	copy(out, t.calls)
	return out
}

// LastCall returns the most recent recorded call.
func (t *Transport) LastCall() (Call, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.calls) == 0 {
		return Call{}, false
	}
	return t.calls[len(t.calls)-1], true
}

// CallCount returns the number of recorded calls.
func (t *Transport) CallCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.calls)
}

// Reset discards the recorded calls. Configured results and errors are kept.
func (t *Transport) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls = nil
}
