package engine

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/a-h/templ"
	"recursoweb/framework"
	"recursoweb/framework/router"
)

type Config[C interface{}] struct {
	AppContext C
	Handlers   []framework.RouteHandler[C]

	RenderPage       func(r *http.Request, w http.ResponseWriter, component templ.Component) error
	IsPartialRequest func(r *http.Request) bool

	IsNotFoundError   func(err error) bool
	HandleNotFound    func(w http.ResponseWriter, r *http.Request, notFoundContext framework.NotFoundContext)
	HandleRedirect    func(w http.ResponseWriter, r *http.Request, target string)
	HandleServerError func(w http.ResponseWriter, err error)
}

type Engine[C interface{}] struct {
	appContext C
	router     *router.AppRouter
	handlers   map[string]framework.RouteHandler[C]

	renderPage func(r *http.Request, w http.ResponseWriter, component templ.Component) error
	isPartial  func(r *http.Request) bool

	isNotFound  func(err error) bool
	notFound    func(w http.ResponseWriter, r *http.Request, notFoundContext framework.NotFoundContext)
	redirect    func(w http.ResponseWriter, r *http.Request, target string)
	serverError func(w http.ResponseWriter, err error)
}

func New[C interface{}](cfg Config[C]) (*Engine[C], error) {
	if cfg.RenderPage == nil {
		return nil, errors.New("render page callback is required")
	}
	if len(cfg.Handlers) == 0 {
		return nil, errors.New("at least one route handler is required")
	}

	patterns := make([]string, 0, len(cfg.Handlers))
	handlers := make(map[string]framework.RouteHandler[C], len(cfg.Handlers))
	for _, handler := range cfg.Handlers {
		id, err := router.NormalizePattern(handler.RoutePattern())
		if err != nil {
			return nil, fmt.Errorf("route handler pattern: %w", err)
		}
		patterns = append(patterns, handler.RoutePattern())
		handlers[id] = handler
	}

	appRouter, err := router.NewAppRouter(patterns)
	if err != nil {
		return nil, fmt.Errorf("build route table: %w", err)
	}

	isPartial := cfg.IsPartialRequest
	if isPartial == nil {
		isPartial = func(r *http.Request) bool {
			return r.Header.Get("HX-Request") == "true"
		}
	}

	isNotFound := cfg.IsNotFoundError
	if isNotFound == nil {
		isNotFound = func(error) bool { return false }
	}

	notFound := cfg.HandleNotFound
	if notFound == nil {
		notFound = func(w http.ResponseWriter, r *http.Request, _ framework.NotFoundContext) {
			http.NotFound(w, r)
		}
	}

	redirect := cfg.HandleRedirect
	if redirect == nil {
		redirect = func(w http.ResponseWriter, r *http.Request, target string) {
			http.Redirect(w, r, target, http.StatusFound)
		}
	}

	serverError := cfg.HandleServerError
	if serverError == nil {
		serverError = func(w http.ResponseWriter, _ error) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}

	return &Engine[C]{
		appContext:  cfg.AppContext,
		router:      appRouter,
		handlers:    handlers,
		renderPage:  cfg.RenderPage,
		isPartial:   isPartial,
		isNotFound:  isNotFound,
		notFound:    notFound,
		redirect:    redirect,
		serverError: serverError,
	}, nil
}

// ServeRoute reports whether a registered route matched the request path.
func (engine *Engine[C]) ServeRoute(w http.ResponseWriter, r *http.Request) bool {
	match, ok := engine.router.Match(r.URL.Path)
	if !ok {
		return false
	}

	handler, ok := engine.handlers[match.ID]
	if !ok {
		return false
	}

	ctx, _ := framework.WithNavigation(r.Context())
	r = r.WithContext(ctx)

	handler.Serve(engine, w, r, framework.RouteSnapshot{
		Pattern: handler.RoutePattern(),
		Path:    r.URL.Path,
		Params:  framework.RouteParams(match.Params),
		Query:   r.URL.Query(),
	})
	return true
}

func (engine *Engine[C]) AppContext() C {
	return engine.appContext
}

func (engine *Engine[C]) IsPartialRequest(r *http.Request) bool {
	return engine.isPartial(r)
}

func (engine *Engine[C]) RenderPage(
	r *http.Request,
	w http.ResponseWriter,
	component templ.Component,
) error {
	return engine.renderPage(r, w, component)
}

func (engine *Engine[C]) IsNotFound(err error) bool {
	return engine.isNotFound(err)
}

func (engine *Engine[C]) Redirect(w http.ResponseWriter, r *http.Request, target string) {
	engine.redirect(w, r, target)
}

func (engine *Engine[C]) RespondNotFound(
	w http.ResponseWriter,
	r *http.Request,
	notFoundContext framework.NotFoundContext,
) {
	engine.notFound(w, r, notFoundContext)
}

func (engine *Engine[C]) RespondServerError(w http.ResponseWriter, err error) {
	engine.serverError(w, err)
}
