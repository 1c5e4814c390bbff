package runner

import (
	"context"
	"sync"
)

// Handler produces the outcome for a fake invocation
type Handler func(inv Invocation) (Result, error)

// Fake records invocations instead of running them. Without a handler
// every invocation succeeds with empty output.
type Fake struct {
	mu      sync.Mutex
	Handler Handler
	Calls   []Invocation
}

// NewFake creates a Fake that answers through handler (may be nil)
func NewFake(handler Handler) *Fake {
	return &Fake{Handler: handler}
}

// Run records inv and returns the handler's answer
func (f *Fake) Run(_ context.Context, inv Invocation) (Result, error) {
	f.mu.Lock()
	f.Calls = append(f.Calls, inv)
	handler := f.Handler
	f.mu.Unlock()

	if handler == nil {
		return Result{Invocation: inv}, nil
	}
	res, err := handler(inv)
	res.Invocation = inv
	return res, err
}

// Commands returns the recorded invocations rendered as strings
func (f *Fake) Commands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		out[i] = c.String()
	}
	return out
}
