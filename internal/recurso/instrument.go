package recurso

import (
	"context"
	"time"
)

// LookupObserver receives the latency and result of every backend call.
type LookupObserver interface {
	ObserveLookup(backend string, operation string, elapsed time.Duration, err error)
}

type instrumented struct {
	next     Service
	backend  string
	observer LookupObserver
	now      func() time.Time
}

// Instrument reports each Find and Query on next to observer under backend.
func Instrument(next Service, backend string, observer LookupObserver) Service {
	if observer == nil {
		return next
	}
	return &instrumented{next: next, backend: backend, observer: observer, now: time.Now}
}

func (s *instrumented) Find(ctx context.Context, id int64) (Response, error) {
	started := s.now()
	response, err := s.next.Find(ctx, id)
	s.observer.ObserveLookup(s.backend, "find", s.now().Sub(started), err)
	return response, err
}

func (s *instrumented) Query(ctx context.Context, page int, size int) (Page, error) {
	started := s.now()
	result, err := s.next.Query(ctx, page, size)
	s.observer.ObserveLookup(s.backend, "query", s.now().Sub(started), err)
	return result, err
}
