package engine

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"recursoweb/framework"
)

type testAppContext struct{}

type componentFunc func(ctx context.Context, w io.Writer) error

func (f componentFunc) Render(ctx context.Context, w io.Writer) error {
	return f(ctx, w)
}

func textComponent(value string) templ.Component {
	return componentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, value)
		return err
	})
}

func wrapComponent(tag string, child templ.Component) templ.Component {
	return componentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "["+tag+"]"); err != nil {
			return err
		}
		if err := child.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "[/"+tag+"]")
		return err
	})
}

func pageHandler(
	pattern string,
	load framework.PageLoader[*testAppContext, string],
	layouts ...framework.LayoutRenderer[string],
) framework.RouteHandler[*testAppContext] {
	return framework.PageRouteHandler[*testAppContext, string]{
		Page: framework.PageModule[*testAppContext, string]{
			Pattern: pattern,
			Load:    load,
			Render:  func(view string) templ.Component { return textComponent(view) },
			Layouts: layouts,
		},
	}
}

func renderInto(target *string) func(*http.Request, http.ResponseWriter, templ.Component) error {
	return func(_ *http.Request, _ http.ResponseWriter, component templ.Component) error {
		var b bytes.Buffer
		if err := component.Render(context.Background(), &b); err != nil {
			return err
		}
		*target = b.String()
		return nil
	}
}

func TestServeRoutePage(t *testing.T) {
	var rendered string

	routeEngine, err := New(Config[*testAppContext]{
		AppContext: &testAppContext{},
		Handlers: []framework.RouteHandler[*testAppContext]{
			pageHandler("recurso", func(context.Context, *testAppContext, *http.Request, framework.RouteSnapshot) (string, error) {
				return "page", nil
			}),
		},
		RenderPage: renderInto(&rendered),
	})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	if !routeEngine.ServeRoute(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/recurso", nil)) {
		t.Fatal("expected route to match")
	}
	if rendered != "page" {
		t.Fatalf("expected page content, got %q", rendered)
	}

	if routeEngine.ServeRoute(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil)) {
		t.Fatal("did not expect missing route to match")
	}
}

func TestServeRoutePassesSnapshot(t *testing.T) {
	var snapshot framework.RouteSnapshot
	var rendered string

	routeEngine, err := New(Config[*testAppContext]{
		AppContext: &testAppContext{},
		Handlers: []framework.RouteHandler[*testAppContext]{
			pageHandler("recurso/[id]/view", func(_ context.Context, _ *testAppContext, _ *http.Request, s framework.RouteSnapshot) (string, error) {
				snapshot = s
				return "view", nil
			}),
		},
		RenderPage: renderInto(&rendered),
	})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	if !routeEngine.ServeRoute(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/recurso/123/view?tab=info", nil)) {
		t.Fatal("expected route to match")
	}
	if snapshot.Pattern != "recurso/[id]/view" {
		t.Fatalf("expected pattern, got %q", snapshot.Pattern)
	}
	if snapshot.Path != "/recurso/123/view" {
		t.Fatalf("expected path, got %q", snapshot.Path)
	}
	if id, _ := snapshot.Params.Get("id"); id != "123" {
		t.Fatalf("expected id param 123, got %q", id)
	}
	if snapshot.Query.Get("tab") != "info" {
		t.Fatalf("expected query to be carried, got %v", snapshot.Query)
	}
}

func TestServeRouteSkipsLayoutsForPartialRequests(t *testing.T) {
	var rendered string

	routeEngine, err := New(Config[*testAppContext]{
		AppContext: &testAppContext{},
		Handlers: []framework.RouteHandler[*testAppContext]{
			pageHandler("recurso", func(context.Context, *testAppContext, *http.Request, framework.RouteSnapshot) (string, error) {
				return "body", nil
			}, func(_ string, child templ.Component) templ.Component {
				return wrapComponent("layout", child)
			}),
		},
		RenderPage: renderInto(&rendered),
	})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/recurso", nil)
	req.Header.Set("HX-Request", "true")
	if !routeEngine.ServeRoute(httptest.NewRecorder(), req) {
		t.Fatal("expected route to match")
	}
	if rendered != "body" {
		t.Fatalf("expected partial body without layout, got %q", rendered)
	}
}

func TestServeRouteRedirectsOnNavigation(t *testing.T) {
	rendered := ""
	redirectTarget := ""
	serverErrorCalled := false
	router := framework.NewRouter()

	routeEngine, err := New(Config[*testAppContext]{
		AppContext: &testAppContext{},
		Handlers: []framework.RouteHandler[*testAppContext]{
			pageHandler("recurso/[id]/view", func(ctx context.Context, _ *testAppContext, _ *http.Request, _ framework.RouteSnapshot) (string, error) {
				if _, err := router.Navigate(ctx, []string{"404"}); err != nil {
					return "", err
				}
				return "", errors.New("load aborted")
			}),
		},
		RenderPage: renderInto(&rendered),
		HandleRedirect: func(_ http.ResponseWriter, _ *http.Request, target string) {
			redirectTarget = target
		},
		HandleServerError: func(http.ResponseWriter, error) {
			serverErrorCalled = true
		},
	})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	if !routeEngine.ServeRoute(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/recurso/9/view", nil)) {
		t.Fatal("expected route to match")
	}
	if redirectTarget != "/404" {
		t.Fatalf("expected redirect to /404, got %q", redirectTarget)
	}
	if serverErrorCalled {
		t.Fatal("did not expect server error callback after navigation")
	}
	if rendered != "" {
		t.Fatalf("did not expect a render, got %q", rendered)
	}
}

func TestServeRouteDefaultRedirectStatus(t *testing.T) {
	router := framework.NewRouter()
	rendered := ""

	routeEngine, err := New(Config[*testAppContext]{
		AppContext: &testAppContext{},
		Handlers: []framework.RouteHandler[*testAppContext]{
			pageHandler("recurso/[id]/edit", func(ctx context.Context, _ *testAppContext, _ *http.Request, _ framework.RouteSnapshot) (string, error) {
				_, err := router.Navigate(ctx, []string{"404"})
				return "", err
			}),
		},
		RenderPage: renderInto(&rendered),
	})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	recorder := httptest.NewRecorder()
	routeEngine.ServeRoute(recorder, httptest.NewRequest(http.MethodGet, "/recurso/1/edit", nil))
	if recorder.Code != http.StatusFound {
		t.Fatalf("expected status %d, got %d", http.StatusFound, recorder.Code)
	}
	if got := recorder.Header().Get("Location"); got != "/404" {
		t.Fatalf("expected location /404, got %q", got)
	}
}

func TestNotFoundAndServerErrorClassification(t *testing.T) {
	errNotFound := errors.New("not found")
	errBoom := errors.New("boom")

	t.Run("not found", func(t *testing.T) {
		notFoundCalled := false
		serverErrorCalled := false
		var notFoundContext framework.NotFoundContext

		routeEngine, err := New(Config[*testAppContext]{
			AppContext: &testAppContext{},
			Handlers: []framework.RouteHandler[*testAppContext]{
				pageHandler("recurso", func(context.Context, *testAppContext, *http.Request, framework.RouteSnapshot) (string, error) {
					return "", errNotFound
				}),
			},
			RenderPage:      func(*http.Request, http.ResponseWriter, templ.Component) error { return nil },
			IsNotFoundError: func(err error) bool { return errors.Is(err, errNotFound) },
			HandleNotFound: func(_ http.ResponseWriter, _ *http.Request, ctx framework.NotFoundContext) {
				notFoundCalled = true
				notFoundContext = ctx
			},
			HandleServerError: func(http.ResponseWriter, error) {
				serverErrorCalled = true
			},
		})
		if err != nil {
			t.Fatalf("new engine: %v", err)
		}

		if !routeEngine.ServeRoute(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/recurso", nil)) {
			t.Fatal("expected route to match")
		}
		if !notFoundCalled {
			t.Fatal("expected not found callback")
		}
		if notFoundContext.Source != framework.NotFoundSourcePageLoad {
			t.Fatalf("expected not-found source %q, got %q", framework.NotFoundSourcePageLoad, notFoundContext.Source)
		}
		if notFoundContext.MatchedRoutePattern != "recurso" {
			t.Fatalf("expected matched route pattern recurso, got %q", notFoundContext.MatchedRoutePattern)
		}
		if notFoundContext.RequestPath != "/recurso" {
			t.Fatalf("expected request path /recurso, got %q", notFoundContext.RequestPath)
		}
		if serverErrorCalled {
			t.Fatal("did not expect server error callback")
		}
	})

	t.Run("server error", func(t *testing.T) {
		notFoundCalled := false
		var serverErr error

		routeEngine, err := New(Config[*testAppContext]{
			AppContext: &testAppContext{},
			Handlers: []framework.RouteHandler[*testAppContext]{
				pageHandler("recurso", func(context.Context, *testAppContext, *http.Request, framework.RouteSnapshot) (string, error) {
					return "", errBoom
				}),
			},
			RenderPage:      func(*http.Request, http.ResponseWriter, templ.Component) error { return nil },
			IsNotFoundError: func(error) bool { return false },
			HandleNotFound: func(http.ResponseWriter, *http.Request, framework.NotFoundContext) {
				notFoundCalled = true
			},
			HandleServerError: func(_ http.ResponseWriter, err error) {
				serverErr = err
			},
		})
		if err != nil {
			t.Fatalf("new engine: %v", err)
		}

		if !routeEngine.ServeRoute(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/recurso", nil)) {
			t.Fatal("expected route to match")
		}
		if notFoundCalled {
			t.Fatal("did not expect not found callback")
		}
		if !errors.Is(serverErr, errBoom) {
			t.Fatalf("expected wrapped boom error, got %v", serverErr)
		}
	})
}

func TestLayoutOrder(t *testing.T) {
	var rendered string

	routeEngine, err := New(Config[*testAppContext]{
		AppContext: &testAppContext{},
		Handlers: []framework.RouteHandler[*testAppContext]{
			pageHandler("recurso", func(context.Context, *testAppContext, *http.Request, framework.RouteSnapshot) (string, error) {
				return "body", nil
			},
				func(_ string, child templ.Component) templ.Component {
					return wrapComponent("outer", child)
				},
				func(_ string, child templ.Component) templ.Component {
					return wrapComponent("inner", child)
				},
			),
		},
		RenderPage: renderInto(&rendered),
	})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	if !routeEngine.ServeRoute(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/recurso", nil)) {
		t.Fatal("expected route to match")
	}
	if rendered != "[outer][inner]body[/inner][/outer]" {
		t.Fatalf("unexpected render output: %q", rendered)
	}
}

func TestNewRejectsConflictingPatterns(t *testing.T) {
	load := func(context.Context, *testAppContext, *http.Request, framework.RouteSnapshot) (string, error) {
		return "", nil
	}

	_, err := New(Config[*testAppContext]{
		AppContext: &testAppContext{},
		Handlers: []framework.RouteHandler[*testAppContext]{
			pageHandler("recurso/[id]/view", load),
			pageHandler("recurso/[key]/view", load),
		},
		RenderPage: func(*http.Request, http.ResponseWriter, templ.Component) error { return nil },
	})
	if err == nil {
		t.Fatal("expected conflicting patterns to be rejected")
	}
}
