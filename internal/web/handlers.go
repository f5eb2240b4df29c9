package web

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"go.uber.org/zap"
	"recursoweb/framework"
	"recursoweb/framework/httpserver"
	"recursoweb/internal/web/appcore"
	"recursoweb/internal/web/views"
)

const notFoundPattern = "404"

type Options struct {
	StaticDir   string
	Logger      *zap.Logger
	Metrics     http.Handler
	CachePolicy httpserver.CachePolicies
}

func NewHandler(appCtx *appcore.Context, opts Options) (http.Handler, error) {
	handler, err := httpserver.New(httpserver.Config[*appcore.Context]{
		AppContext:      appCtx,
		Handlers:        Handlers(),
		IsNotFoundError: appcore.IsNotFoundError,
		NotFoundPage:    NotFoundPage,
		Logger:          opts.Logger,
		Metrics:         opts.Metrics,
		CachePolicies:   opts.CachePolicy,
		Static: httpserver.StaticMount{
			URLPrefix: "/static/",
			Dir:       opts.StaticDir,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create web handler: %w", err)
	}
	return handler, nil
}

func Handlers() []framework.RouteHandler[*appcore.Context] {
	return []framework.RouteHandler[*appcore.Context]{
		framework.PageRouteHandler[*appcore.Context, appcore.ListPageView]{
			Page: framework.PageModule[*appcore.Context, appcore.ListPageView]{
				Pattern: "recurso",
				Load:    appcore.LoadListPage,
				Render:  views.ListPage,
				Layouts: []framework.LayoutRenderer[appcore.ListPageView]{layout[appcore.ListPageView]},
			},
		},
		framework.PageRouteHandler[*appcore.Context, appcore.FormPageView]{
			Page: framework.PageModule[*appcore.Context, appcore.FormPageView]{
				Pattern: "recurso/new",
				Load:    appcore.LoadNewPage,
				Render:  views.FormPage,
				Layouts: []framework.LayoutRenderer[appcore.FormPageView]{layout[appcore.FormPageView]},
			},
		},
		framework.PageRouteHandler[*appcore.Context, appcore.DetailPageView]{
			Page: framework.PageModule[*appcore.Context, appcore.DetailPageView]{
				Pattern: "recurso/[id]/view",
				Load:    appcore.LoadViewPage,
				Render:  views.DetailPage,
				Layouts: []framework.LayoutRenderer[appcore.DetailPageView]{layout[appcore.DetailPageView]},
			},
		},
		framework.PageRouteHandler[*appcore.Context, appcore.FormPageView]{
			Page: framework.PageModule[*appcore.Context, appcore.FormPageView]{
				Pattern: "recurso/[id]/edit",
				Load:    appcore.LoadEditPage,
				Render:  views.FormPage,
				Layouts: []framework.LayoutRenderer[appcore.FormPageView]{layout[appcore.FormPageView]},
			},
		},
		notFoundRoute{},
	}
}

func layout[VM appcore.LayoutView](view VM, child templ.Component) templ.Component {
	return views.Layout(view, child)
}

// notFoundRoute is the navigation target for missing entities. It always
// answers with the not-found page and status 404.
type notFoundRoute struct{}

func (notFoundRoute) RoutePattern() string {
	return notFoundPattern
}

func (notFoundRoute) Serve(
	runtime framework.RuntimeContext[*appcore.Context],
	w http.ResponseWriter,
	r *http.Request,
	snapshot framework.RouteSnapshot,
) {
	runtime.RespondNotFound(w, r, framework.NotFoundContext{
		RequestPath:         snapshot.Path,
		MatchedRoutePattern: snapshot.Pattern,
		Source:              framework.NotFoundSourceNavigation,
	})
}

func NotFoundPage(notFoundContext framework.NotFoundContext) templ.Component {
	path := strings.TrimSpace(notFoundContext.RequestPath)
	view := appcore.NewNotFoundPageView(path)
	return views.Layout(view, views.NotFound(view))
}
