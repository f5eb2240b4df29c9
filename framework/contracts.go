package framework

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/a-h/templ"
)

// RouteParams holds the values bound to the matched pattern's [param] segments.
type RouteParams map[string]string

func (p RouteParams) Get(name string) (string, bool) {
	if p == nil {
		return "", false
	}
	value, ok := p[name]
	return value, ok
}

// RouteSnapshot is the state of the route being activated.
type RouteSnapshot struct {
	Pattern string
	Path    string
	Params  RouteParams
	Query   url.Values
}

type PageLoader[C interface{}, VM interface{}] func(
	ctx context.Context,
	appCtx C,
	r *http.Request,
	snapshot RouteSnapshot,
) (VM, error)

type PageRenderer[VM interface{}] func(view VM) templ.Component

type LayoutRenderer[VM interface{}] func(view VM, child templ.Component) templ.Component

type PageModule[C interface{}, VM interface{}] struct {
	Pattern string
	Load    PageLoader[C, VM]
	Render  PageRenderer[VM]
	Layouts []LayoutRenderer[VM]
}

type RuntimeContext[C interface{}] interface {
	AppContext() C
	IsPartialRequest(r *http.Request) bool
	RenderPage(r *http.Request, w http.ResponseWriter, component templ.Component) error
	IsNotFound(err error) bool
	Redirect(w http.ResponseWriter, r *http.Request, target string)
	RespondNotFound(w http.ResponseWriter, r *http.Request, notFoundContext NotFoundContext)
	RespondServerError(w http.ResponseWriter, err error)
}

type NotFoundSource string

const (
	NotFoundSourcePageLoad       NotFoundSource = "page_load"
	NotFoundSourceUnmatchedRoute NotFoundSource = "unmatched_route"
	NotFoundSourceNavigation     NotFoundSource = "navigation"
)

type NotFoundContext struct {
	RequestPath         string
	MatchedRoutePattern string
	Source              NotFoundSource
}

type RouteHandler[C interface{}] interface {
	RoutePattern() string
	Serve(runtime RuntimeContext[C], w http.ResponseWriter, r *http.Request, snapshot RouteSnapshot)
}

type PageRouteHandler[C interface{}, VM interface{}] struct {
	Page PageModule[C, VM]
}

func (h PageRouteHandler[C, VM]) RoutePattern() string {
	return h.Page.Pattern
}

func (h PageRouteHandler[C, VM]) Serve(
	runtime RuntimeContext[C],
	w http.ResponseWriter,
	r *http.Request,
	snapshot RouteSnapshot,
) {
	servePageModule(runtime, w, r, snapshot, h.Page)
}

func applyLayouts[VM interface{}](
	layouts []LayoutRenderer[VM],
	view VM,
	child templ.Component,
) templ.Component {
	wrapped := child
	for idx := len(layouts) - 1; idx >= 0; idx-- {
		wrapped = layouts[idx](view, wrapped)
	}
	return wrapped
}

func servePageModule[C interface{}, VM interface{}](
	runtime RuntimeContext[C],
	w http.ResponseWriter,
	r *http.Request,
	snapshot RouteSnapshot,
	module PageModule[C, VM],
) {
	view, err := module.Load(r.Context(), runtime.AppContext(), r, snapshot)

	// A navigation requested during load wins over both the view and the error.
	if navigation, ok := NavigationFrom(r.Context()); ok {
		if target, pending := navigation.Target(); pending {
			runtime.Redirect(w, r, target)
			return
		}
	}

	if err != nil {
		handleLoadError(runtime, w, r, err, module.Pattern, NotFoundSourcePageLoad)
		return
	}

	component := module.Render(view)
	if !runtime.IsPartialRequest(r) {
		component = applyLayouts(module.Layouts, view, component)
	}
	if err := runtime.RenderPage(r, w, component); err != nil {
		runtime.RespondServerError(w, fmt.Errorf("render route %q: %w", module.Pattern, err))
	}
}

func handleLoadError[C interface{}](
	runtime RuntimeContext[C],
	w http.ResponseWriter,
	r *http.Request,
	err error,
	routePattern string,
	source NotFoundSource,
) {
	if runtime.IsNotFound(err) {
		runtime.RespondNotFound(w, r, NotFoundContext{
			RequestPath:         r.URL.Path,
			MatchedRoutePattern: routePattern,
			Source:              source,
		})
		return
	}

	runtime.RespondServerError(w, fmt.Errorf("load route %q: %w", routePattern, err))
}

// CommandsPath joins navigation commands into an absolute URL path.
func CommandsPath(commands []string) string {
	escaped := make([]string, 0, len(commands))
	for _, command := range commands {
		command = strings.Trim(strings.TrimSpace(command), "/")
		if command == "" {
			continue
		}
		for _, part := range strings.Split(command, "/") {
			escaped = append(escaped, url.PathEscape(part))
		}
	}
	return "/" + strings.Join(escaped, "/")
}
