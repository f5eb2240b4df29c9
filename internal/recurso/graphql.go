package recurso

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	genqlientgraphql "github.com/Khan/genqlient/graphql"
	"recursoweb/internal/gql"
	"recursoweb/internal/resolve"
)

// GraphQLService reads recursos through a GraphQL gateway. A null recurso
// field is the gateway's not-found answer.
type GraphQLService struct {
	client genqlientgraphql.Client
}

func NewGraphQLService(client genqlientgraphql.Client) *GraphQLService {
	return &GraphQLService{client: client}
}

func (s *GraphQLService) Find(ctx context.Context, id int64) (Response, error) {
	response, err := gql.RecursoByID(ctx, s.client, strconv.FormatInt(id, 10))
	if err != nil {
		return Response{}, fmt.Errorf("find recurso %d: %w", id, err)
	}
	if response == nil || response.Recurso == nil {
		return resolve.Absent[Recurso](), nil
	}

	entity, err := mapRecursoFields(*response.Recurso)
	if err != nil {
		return Response{}, err
	}
	return Response{StatusCode: http.StatusOK, Body: &entity}, nil
}

func (s *GraphQLService) Query(ctx context.Context, page int, size int) (Page, error) {
	page = sanitizePage(page)
	size = sanitizeSize(size)

	response, err := gql.ListRecursos(ctx, s.client, page-1, size)
	if err != nil {
		return Page{}, fmt.Errorf("query recursos: %w", err)
	}
	if response == nil || response.Recursos == nil {
		return newPage(nil, page, size, 0), nil
	}

	items := make([]Recurso, 0, len(response.Recursos.Items))
	for _, fields := range response.Recursos.Items {
		entity, err := mapRecursoFields(fields)
		if err != nil {
			return Page{}, err
		}
		items = append(items, entity)
	}

	return newPage(items, page, size, response.Recursos.TotalCount), nil
}

func mapRecursoFields(fields gql.RecursoFields) (Recurso, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(fields.Id), 10, 64)
	if err != nil {
		return Recurso{}, fmt.Errorf("gateway returned recurso id %q: %w", fields.Id, err)
	}

	return Recurso{
		ID:        id,
		Nome:      strOr(fields.Nome, ""),
		Descricao: strOr(fields.Descricao, ""),
		Ativo:     fields.Ativo != nil && *fields.Ativo,
	}, nil
}

func strOr(value *string, fallback string) string {
	if value == nil {
		return fallback
	}
	return *value
}
