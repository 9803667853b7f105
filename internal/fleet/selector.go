package fleet

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/brunoga/deep"
)

// Loader produces a result for a date.
type Loader interface {
	Load(ctx context.Context, date string) (*Result, error)
}

// Selector tracks the result currently on display. Requests are numbered as
// they arrive; a result is published only if no later request has published
// already, so a slow load cannot overwrite a newer one.
type Selector struct {
	loader Loader
	seq    atomic.Uint64

	mu        sync.Mutex
	published uint64
	current   *Result
}

// NewSelector creates a selector over loader.
func NewSelector(loader Loader) *Selector {
	return &Selector{loader: loader}
}

// Select loads date and publishes the result unless a newer request won.
// The returned result is always the one loaded for this request; published
// reports whether it became current.
func (s *Selector) Select(ctx context.Context, date string) (res *Result, published bool, err error) {
	n := s.seq.Add(1)
	res, err = s.loader.Load(ctx, date)
	if err != nil {
		return res, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if n <= s.published {
		return res, false, nil
	}
	s.published = n
	s.current = res
	return res, true, nil
}

// Current returns a copy of the published result, or nil before the first
// successful load.
func (s *Selector) Current() *Result {
	s.mu.Lock()
	cur := s.current
	s.mu.Unlock()
	if cur == nil {
		return nil
	}
	return deep.MustCopy(cur)
}
