package appcore

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"recursoweb/framework"
	"recursoweb/internal/markdown"
	"recursoweb/internal/recurso"
	"recursoweb/internal/resolve"
)

const outcomeError = "error"

func LoadListPage(
	ctx context.Context,
	appCtx *Context,
	_ *http.Request,
	snapshot framework.RouteSnapshot,
) (ListPageView, error) {
	service, err := recursoService(appCtx)
	if err != nil {
		return ListPageView{}, err
	}

	page := parsePositive(snapshot.Query.Get("page"), 1)
	size := parsePositive(snapshot.Query.Get("size"), appCtx.pageSize)

	result, err := service.Query(ctx, page, size)
	if err != nil {
		return ListPageView{}, err
	}
	if result.TotalCount > 0 && page > result.TotalPages {
		return ListPageView{}, fmt.Errorf("recurso page %d of %d: %w", page, result.TotalPages, recurso.ErrNotFound)
	}

	return newListPageView(result), nil
}

// LoadNewPage renders an empty form. The route has no id so the resolver
// answers null without calling the backend.
func LoadNewPage(
	ctx context.Context,
	appCtx *Context,
	_ *http.Request,
	snapshot framework.RouteSnapshot,
) (FormPageView, error) {
	resolution, err := resolveRecurso(ctx, appCtx, snapshot)
	if err != nil || resolution.Outcome == resolve.OutcomeNotFound {
		return FormPageView{}, err
	}

	return FormPageView{
		PageTitle: "Novo recurso",
		Mode:      FormModeNew,
		Recurso:   recurso.Recurso{Ativo: true},
		CancelURL: BuildListURL(1),
	}, nil
}

func LoadViewPage(
	ctx context.Context,
	appCtx *Context,
	_ *http.Request,
	snapshot framework.RouteSnapshot,
) (DetailPageView, error) {
	resolution, err := resolveRecurso(ctx, appCtx, snapshot)
	if err != nil || resolution.Entity == nil {
		return DetailPageView{}, err
	}

	item := *resolution.Entity
	description := markdown.ToHTML(item.Descricao, markdown.Options{
		RootURL:    appCtx.rootURL,
		EntityPath: BuildViewURL,
	})
	return DetailPageView{
		PageTitle:       RecursoTitle(item),
		Recurso:         item,
		DescriptionHTML: description,
		EditURL:         BuildEditURL(item.ID),
		ListURL:         BuildListURL(1),
	}, nil
}

func LoadEditPage(
	ctx context.Context,
	appCtx *Context,
	_ *http.Request,
	snapshot framework.RouteSnapshot,
) (FormPageView, error) {
	resolution, err := resolveRecurso(ctx, appCtx, snapshot)
	if err != nil || resolution.Entity == nil {
		return FormPageView{}, err
	}

	return newEditView(*resolution.Entity), nil
}

// resolveRecurso runs the entity resolver for the route. A not-found
// outcome has already requested navigation; callers return an empty view
// and the engine redirects.
func resolveRecurso(
	ctx context.Context,
	appCtx *Context,
	snapshot framework.RouteSnapshot,
) (resolve.Resolution[recurso.Recurso], error) {
	if appCtx == nil || appCtx.resolver == nil {
		return resolve.Resolution[recurso.Recurso]{}, errRecursoServiceUnavailable
	}

	resolution, err := appCtx.resolver.Resolve(ctx, snapshot)
	if err != nil {
		appCtx.observe(snapshot.Pattern, outcomeError)
		return resolution, err
	}

	appCtx.observe(snapshot.Pattern, resolution.Outcome.String())
	appCtx.logger.Debug("route resolved",
		zap.String("route", snapshot.Pattern),
		zap.String("path", snapshot.Path),
		zap.Stringer("outcome", resolution.Outcome),
	)
	return resolution, nil
}

func newEditView(item recurso.Recurso) FormPageView {
	return FormPageView{
		PageTitle: "Editar " + RecursoTitle(item),
		Mode:      FormModeEdit,
		Recurso:   item,
		CancelURL: BuildViewURL(item.ID),
	}
}

func recursoService(appCtx *Context) (recurso.Service, error) {
	if appCtx == nil || appCtx.service == nil {
		return nil, errRecursoServiceUnavailable
	}
	return appCtx.service, nil
}

func parsePositive(raw string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
