package handler

import (
	"net/http"
	"net/url"

	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/tripstore/internal/domain"
)

// Page is the envelope of every paginated list.
type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Pagination describes the slice of the collection a Page holds.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

func paginate[T any](items []T, p domain.PaginationParams) Page[T] {
	return Page[T]{
		Data:       domain.Paginate(items, p),
		Pagination: Pagination{Page: p.Page, Limit: p.Limit, Total: len(items)},
	}
}

// queryString binds an optional string query parameter. Absent means "".
func queryString(q url.Values, name string) (string, error) {
	var v *string
	if err := runtime.BindQueryParameter("form", true, false, name, q, &v); err != nil {
		return "", err
	}
	if v == nil {
		return "", nil
	}
	return *v, nil
}

// paginationParams binds ?page= and ?limit= (defaults: page=1, limit=20, max=100).
func paginationParams(q url.Values) (domain.PaginationParams, error) {
	var page, limit *int
	if err := runtime.BindQueryParameter("form", true, false, "page", q, &page); err != nil {
		return domain.PaginationParams{}, err
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &limit); err != nil {
		return domain.PaginationParams{}, err
	}
	return domain.NewPaginationParams(page, limit), nil
}

func badQuery(w http.ResponseWriter, err error) {
	writeError(w, http.StatusBadRequest, "bad_request", err.Error())
}
