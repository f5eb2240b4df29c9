package recurso

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"recursoweb/internal/gql"
	"recursoweb/internal/resolve"
)

const restResourcePath = "/api/recursos"
const totalCountHeader = "X-Total-Count"

// RESTService reads recursos from the backend REST API:
// GET /api/recursos/{id} answers 200 with the entity or 404.
type RESTService struct {
	client  *http.Client
	baseURL string
}

func NewRESTService(baseURL string, token string, timeout time.Duration) *RESTService {
	return &RESTService{
		client:  gql.NewHTTPClient(token, timeout),
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
	}
}

// NewRESTServiceWithClient is used when the caller owns the HTTP client.
func NewRESTServiceWithClient(baseURL string, client *http.Client) *RESTService {
	if client == nil {
		client = http.DefaultClient
	}
	return &RESTService{client: client, baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/")}
}

func (s *RESTService) Find(ctx context.Context, id int64) (Response, error) {
	endpoint := s.baseURL + restResourcePath + "/" + strconv.FormatInt(id, 10)
	resp, body, err := s.get(ctx, endpoint)
	if err != nil {
		return Response{}, fmt.Errorf("find recurso %d: %w", id, err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return resolve.Absent[Recurso](), nil
	default:
		return Response{}, &StatusError{Operation: "find recurso " + strconv.FormatInt(id, 10), StatusCode: resp.StatusCode}
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Response{StatusCode: resp.StatusCode}, nil
	}

	var entity Recurso
	if err := json.Unmarshal(trimmed, &entity); err != nil {
		return Response{}, fmt.Errorf("decode recurso %d: %w", id, err)
	}
	return Response{StatusCode: resp.StatusCode, Body: &entity}, nil
}

func (s *RESTService) Query(ctx context.Context, page int, size int) (Page, error) {
	page = sanitizePage(page)
	size = sanitizeSize(size)

	q := make(url.Values)
	q.Set("page", strconv.Itoa(page-1))
	q.Set("size", strconv.Itoa(size))
	q.Set("sort", "id,asc")

	resp, body, err := s.get(ctx, s.baseURL+restResourcePath+"?"+q.Encode())
	if err != nil {
		return Page{}, fmt.Errorf("query recursos: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Page{}, &StatusError{Operation: "query recursos", StatusCode: resp.StatusCode}
	}

	var items []Recurso
	if err := json.Unmarshal(body, &items); err != nil {
		return Page{}, fmt.Errorf("decode recursos: %w", err)
	}

	totalCount := len(items)
	if raw := strings.TrimSpace(resp.Header.Get(totalCountHeader)); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return Page{}, fmt.Errorf("parse %s %q: %w", totalCountHeader, raw, err)
		}
		totalCount = parsed
	}

	return newPage(items, page, size, totalCount), nil
}

func (s *RESTService) get(ctx context.Context, endpoint string) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read response body: %w", err)
	}
	return resp, body, nil
}
