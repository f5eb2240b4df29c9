package appcore

import (
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"recursoweb/framework"
	"recursoweb/internal/recurso"
	"recursoweb/internal/resolve"
)

var errRecursoServiceUnavailable = errors.New("recurso service unavailable")

// ResolveObserver counts resolver outcomes per route pattern.
type ResolveObserver interface {
	ObserveResolve(route string, outcome string)
}

type Context struct {
	service  recurso.Service
	resolver *resolve.EntityResolver[recurso.Recurso, int64]
	observer ResolveObserver
	logger   *zap.Logger
	pageSize int
	rootURL  string
}

type Option func(*Context)

func WithObserver(observer ResolveObserver) Option {
	return func(c *Context) {
		c.observer = observer
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Context) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithPageSize(size int) Option {
	return func(c *Context) {
		if size > 0 {
			c.pageSize = size
		}
	}
}

// WithRootURL sets the public origin used to keep same-site links in
// descriptions relative.
func WithRootURL(rootURL string) Option {
	return func(c *Context) {
		c.rootURL = strings.TrimSpace(rootURL)
	}
}

func NewContext(service recurso.Service, navigator framework.Navigator, opts ...Option) *Context {
	appCtx := &Context{
		service:  service,
		logger:   zap.NewNop(),
		pageSize: 20,
	}
	for _, opt := range opts {
		opt(appCtx)
	}
	if navigator == nil {
		navigator = framework.NewRouter()
	}
	if service != nil {
		appCtx.resolver = resolve.New[recurso.Recurso, int64](
			service,
			navigator,
			recurso.ParseID,
			resolve.WithLogger(appCtx.logger.Named("resolve")),
		)
	}
	return appCtx
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, recurso.ErrNotFound)
}

func (c *Context) observe(route string, outcome string) {
	if c.observer != nil {
		c.observer.ObserveResolve(route, outcome)
	}
}

func BuildListURL(page int) string {
	if page <= 1 {
		return "/recurso"
	}
	return "/recurso?page=" + strconv.Itoa(page)
}

func BuildNewURL() string {
	return "/recurso/new"
}

func BuildViewURL(id int64) string {
	return "/recurso/" + strconv.FormatInt(id, 10) + "/view"
}

func BuildEditURL(id int64) string {
	return "/recurso/" + strconv.FormatInt(id, 10) + "/edit"
}
