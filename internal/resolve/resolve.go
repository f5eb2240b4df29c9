// Package resolve fetches the entity named by a route's id parameter before
// its view is activated, and sends the request to the not-found page when the
// lookup comes back empty.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"recursoweb/framework"
)

// IDParam is the route parameter carrying the entity identifier.
const IDParam = "id"

// NotFoundCommands is the navigation issued when a lookup finds nothing.
var NotFoundCommands = []string{"404"}

// ErrLookup wraps every error returned by a Finder. A failed lookup never
// navigates; the caller decides how to answer it.
var ErrLookup = errors.New("entity lookup failed")

// Response is the envelope a lookup returns. A nil Body reports absence.
type Response[E interface{}] struct {
	StatusCode int
	Body       *E
}

// Found wraps a located entity in a 200 response.
func Found[E interface{}](entity *E) Response[E] {
	return Response[E]{StatusCode: http.StatusOK, Body: entity}
}

// Absent is the response for an id the backend does not know.
func Absent[E interface{}]() Response[E] {
	return Response[E]{StatusCode: http.StatusNotFound}
}

// Finder looks up one entity by id.
type Finder[E interface{}, ID interface{}] interface {
	Find(ctx context.Context, id ID) (Response[E], error)
}

// FinderFunc adapts a plain function to Finder.
type FinderFunc[E interface{}, ID interface{}] func(ctx context.Context, id ID) (Response[E], error)

func (f FinderFunc[E, ID]) Find(ctx context.Context, id ID) (Response[E], error) {
	return f(ctx, id)
}

// Outcome is how a resolution ended.
type Outcome int

const (
	// OutcomeNew means the route carried no id: nothing was looked up.
	OutcomeNew Outcome = iota
	OutcomeFound
	// OutcomeNotFound means the lookup was empty and navigation to the
	// not-found page was requested.
	OutcomeNotFound
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNew:
		return "new"
	case OutcomeFound:
		return "found"
	case OutcomeNotFound:
		return "not_found"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Resolution is the result of Resolve. Entity is set only for OutcomeFound.
type Resolution[E interface{}] struct {
	Outcome Outcome
	Entity  *E
}

// EntityResolver loads the entity behind a route's id parameter with one
// Finder call. A missing id resolves to nothing without a lookup, and an
// empty lookup asks the Navigator for the not-found page.
type EntityResolver[E interface{}, ID interface{}] struct {
	finder    Finder[E, ID]
	navigator framework.Navigator
	parseID   func(raw string) (ID, error)
	logger    *zap.Logger
}

type Option func(*options)

type options struct {
	logger *zap.Logger
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// New builds a resolver. parseID turns the raw route parameter into the
// Finder's id type; an unparseable id counts as not found.
func New[E interface{}, ID interface{}](
	finder Finder[E, ID],
	navigator framework.Navigator,
	parseID func(raw string) (ID, error),
	opts ...Option,
) *EntityResolver[E, ID] {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	return &EntityResolver[E, ID]{
		finder:    finder,
		navigator: navigator,
		parseID:   parseID,
		logger:    o.logger,
	}
}

// Resolve blocks until the lookup for snapshot's id completes. The Finder is
// called at most once and the Navigator only for OutcomeNotFound.
func (r *EntityResolver[E, ID]) Resolve(ctx context.Context, snapshot framework.RouteSnapshot) (Resolution[E], error) {
	raw, ok := snapshot.Params.Get(IDParam)
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		return Resolution[E]{Outcome: OutcomeNew}, nil
	}

	id, err := r.parseID(raw)
	if err != nil {
		r.logger.Debug("unparseable route id", zap.String("id", raw), zap.Error(err))
		return r.notFound(ctx, snapshot)
	}

	response, err := r.finder.Find(ctx, id)
	if err != nil {
		return Resolution[E]{}, fmt.Errorf("%w: id %s: %w", ErrLookup, raw, err)
	}
	if response.Body == nil {
		return r.notFound(ctx, snapshot)
	}

	return Resolution[E]{Outcome: OutcomeFound, Entity: response.Body}, nil
}

func (r *EntityResolver[E, ID]) notFound(ctx context.Context, snapshot framework.RouteSnapshot) (Resolution[E], error) {
	r.logger.Debug("entity not found, navigating",
		zap.String("path", snapshot.Path),
		zap.Strings("commands", NotFoundCommands),
	)
	if _, err := r.navigator.Navigate(ctx, NotFoundCommands); err != nil {
		return Resolution[E]{}, fmt.Errorf("navigate to not found page: %w", err)
	}
	return Resolution[E]{Outcome: OutcomeNotFound}, nil
}

// ResolveAsync runs Resolve in its own goroutine. The channel yields a nil
// entity for OutcomeNew, the entity for OutcomeFound, and no value at all for
// OutcomeNotFound or a failed lookup. It is always closed.
func (r *EntityResolver[E, ID]) ResolveAsync(ctx context.Context, snapshot framework.RouteSnapshot) <-chan *E {
	out := make(chan *E, 1)

	go func() {
		defer close(out)

		resolution, err := r.Resolve(ctx, snapshot)
		if err != nil {
			r.logger.Warn("resolve failed", zap.String("path", snapshot.Path), zap.Error(err))
			return
		}
		if resolution.Outcome == OutcomeNotFound {
			return
		}
		out <- resolution.Entity
	}()

	return out
}
