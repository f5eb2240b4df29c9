package recurso

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackend(t *testing.T, handler http.HandlerFunc) *RESTService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewRESTService(srv.URL+"/", "secret", 0)
}

func TestRESTServiceFind(t *testing.T) {
	var gotPath, gotAuth string
	service := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":123,"nome":"Sala 101","descricao":"# Sala","ativo":true}`))
	})

	response, err := service.Find(context.Background(), 123)
	require.NoError(t, err)

	assert.Equal(t, "/api/recursos/123", gotPath)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, http.StatusOK, response.StatusCode)
	require.NotNil(t, response.Body)
	assert.Equal(t, Recurso{ID: 123, Nome: "Sala 101", Descricao: "# Sala", Ativo: true}, *response.Body)
}

func TestRESTServiceFindNotFound(t *testing.T) {
	service := newBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"title":"Not Found"}`, http.StatusNotFound)
	})

	response, err := service.Find(context.Background(), 9)
	require.NoError(t, err)
	assert.Nil(t, response.Body)
	assert.Equal(t, http.StatusNotFound, response.StatusCode)
}

func TestRESTServiceFindNullBody(t *testing.T) {
	service := newBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("null"))
	})

	response, err := service.Find(context.Background(), 9)
	require.NoError(t, err)
	assert.Nil(t, response.Body)
}

func TestRESTServiceFindUnexpectedStatus(t *testing.T) {
	service := newBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := service.Find(context.Background(), 9)
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr), "expected StatusError, got %v", err)
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
}

func TestRESTServiceFindMalformedBody(t *testing.T) {
	service := newBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":`))
	})

	_, err := service.Find(context.Background(), 9)
	assert.Error(t, err)
}

func TestRESTServiceQuery(t *testing.T) {
	var gotQuery string
	service := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("X-Total-Count", "45")
		_, _ = w.Write([]byte(`[{"id":21,"nome":"a"},{"id":22,"nome":"b"}]`))
	})

	page, err := service.Query(context.Background(), 2, 20)
	require.NoError(t, err)

	assert.Equal(t, "page=1&size=20&sort=id%2Casc", gotQuery)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 45, page.TotalCount)
	assert.Equal(t, 3, page.TotalPages)
}

func TestRESTServiceQueryWithoutTotalHeader(t *testing.T) {
	service := newBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	page, err := service.Query(context.Background(), 0, 0)
	require.NoError(t, err)

	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, defaultPageSize, page.Size)
	assert.Equal(t, 1, page.TotalPages)
}

func TestParseID(t *testing.T) {
	id, err := ParseID(" 123 ")
	require.NoError(t, err)
	assert.Equal(t, int64(123), id)

	for _, raw := range []string{"", "abc", "0", "-4", "1.5"} {
		_, err := ParseID(raw)
		assert.ErrorIs(t, err, ErrInvalidID, raw)
	}
}
