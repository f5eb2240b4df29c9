package appcore

import (
	"html/template"
	"strconv"

	"recursoweb/internal/recurso"
)

// LayoutView is what the root layout needs from any page view.
type LayoutView interface {
	LayoutPageTitle() string
}

type PaginationView struct {
	Page       int
	TotalPages int
	HasPrev    bool
	HasNext    bool
	PrevURL    string
	NextURL    string
}

type ListPageView struct {
	PageTitle  string
	Items      []recurso.Recurso
	TotalCount int
	Pagination PaginationView
	NewURL     string
}

type DetailPageView struct {
	PageTitle       string
	Recurso         recurso.Recurso
	DescriptionHTML template.HTML
	EditURL         string
	ListURL         string
}

type FormMode string

const (
	FormModeNew  FormMode = "new"
	FormModeEdit FormMode = "edit"
)

type FormPageView struct {
	PageTitle string
	Mode      FormMode
	Recurso   recurso.Recurso
	CancelURL string
}

type NotFoundPageView struct {
	PageTitle   string
	RequestPath string
	ListURL     string
}

func (v ListPageView) LayoutPageTitle() string {
	return v.PageTitle
}

func (v DetailPageView) LayoutPageTitle() string {
	return v.PageTitle
}

func (v FormPageView) LayoutPageTitle() string {
	return v.PageTitle
}

func (v NotFoundPageView) LayoutPageTitle() string {
	return v.PageTitle
}

func (v FormPageView) IsNew() bool {
	return v.Mode == FormModeNew
}

func NewNotFoundPageView(requestPath string) NotFoundPageView {
	if requestPath == "" {
		requestPath = "/"
	}
	return NotFoundPageView{
		PageTitle:   "404 Not Found",
		RequestPath: requestPath,
		ListURL:     BuildListURL(1),
	}
}

func newListPageView(result recurso.Page) ListPageView {
	return ListPageView{
		PageTitle:  "Recursos",
		Items:      result.Items,
		TotalCount: result.TotalCount,
		Pagination: newPaginationView(result.Page, result.TotalPages),
		NewURL:     BuildNewURL(),
	}
}

func newPaginationView(page int, totalPages int) PaginationView {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}

	prevPage := page - 1
	if prevPage < 1 {
		prevPage = 1
	}

	return PaginationView{
		Page:       page,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
		PrevURL:    BuildListURL(prevPage),
		NextURL:    BuildListURL(page + 1),
	}
}

func PagerStatusText(p PaginationView) string {
	return "page " + strconv.Itoa(p.Page) + " / " + strconv.Itoa(p.TotalPages)
}

func StatusLabel(ativo bool) string {
	if ativo {
		return "ativo"
	}
	return "inativo"
}

func RecursoTitle(item recurso.Recurso) string {
	if item.Nome != "" {
		return item.Nome
	}
	return "Recurso #" + strconv.FormatInt(item.ID, 10)
}
