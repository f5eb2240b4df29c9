package recurso

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"recursoweb/internal/resolve"
)

const defaultPageSize = 20
const maxPageSize = 100

var ErrInvalidID = errors.New("invalid recurso id")

// ErrNotFound reports a list page past the last one.
var ErrNotFound = errors.New("not found")

type Recurso struct {
	ID        int64  `json:"id" yaml:"id"`
	Nome      string `json:"nome" yaml:"nome"`
	Descricao string `json:"descricao,omitempty" yaml:"descricao"`
	Ativo     bool   `json:"ativo" yaml:"ativo"`
}

type Response = resolve.Response[Recurso]

type Page struct {
	Items      []Recurso
	Page       int
	Size       int
	TotalCount int
	TotalPages int
}

// Service is the backend that owns Recurso entities.
type Service interface {
	Find(ctx context.Context, id int64) (Response, error)
	Query(ctx context.Context, page int, size int) (Page, error)
}

// StatusError reports a backend answer that is neither a hit nor a miss.
type StatusError struct {
	Operation  string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected backend status %d", e.Operation, e.StatusCode)
}

func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %w", ErrInvalidID, raw, err)
	}
	if id < 1 {
		return 0, fmt.Errorf("%w %q: must be positive", ErrInvalidID, raw)
	}
	return id, nil
}

func sanitizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func sanitizeSize(size int) int {
	if size < 1 {
		return defaultPageSize
	}
	if size > maxPageSize {
		return maxPageSize
	}
	return size
}

func newPage(items []Recurso, page int, size int, totalCount int) Page {
	if items == nil {
		items = []Recurso{}
	}
	totalPages := 1
	if totalCount > 0 {
		totalPages = (totalCount + size - 1) / size
	}
	return Page{
		Items:      items,
		Page:       page,
		Size:       size,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}
