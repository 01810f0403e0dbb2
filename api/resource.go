package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// Page is one page of a listing endpoint
type Page[T any] struct {
	Items    []T `json:"items"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Total    int `json:"total"`
}

// resource implements the CRUD endpoints shared by the admin collections
type resource[T any, In any] struct {
	c    *Client
	path string
}

func (r resource[T, In]) list(ctx context.Context, query url.Values) (Page[T], error) {
	var raw json.RawMessage
	if err := r.c.do(ctx, http.MethodGet, r.path, query, nil, &raw); err != nil {
		return Page[T]{}, err
	}
	return decodePage[T](raw)
}

func (r resource[T, In]) get(ctx context.Context, id string) (T, error) {
	var out T
	err := r.c.do(ctx, http.MethodGet, r.path+"/"+url.PathEscape(id), nil, nil, &out)
	return out, err
}

func (r resource[T, In]) create(ctx context.Context, in In) (T, error) {
	var out T
	err := r.c.do(ctx, http.MethodPost, r.path, nil, in, &out)
	return out, err
}

func (r resource[T, In]) update(ctx context.Context, id string, in In) (T, error) {
	var out T
	err := r.c.do(ctx, http.MethodPatch, r.path+"/"+url.PathEscape(id), nil, in, &out)
	return out, err
}

func (r resource[T, In]) delete(ctx context.Context, id string) error {
	return r.c.do(ctx, http.MethodDelete, r.path+"/"+url.PathEscape(id), nil, nil, nil)
}

// decodePage accepts either a bare array or a paged object
func decodePage[T any](raw []byte) (Page[T], error) {
	var page Page[T]
	if len(raw) == 0 {
		return page, nil
	}
	if gjson.ParseBytes(raw).IsArray() {
		if err := json.Unmarshal(raw, &page.Items); err != nil {
			return page, errors.Wrap(err, "decode page items")
		}
		page.Page = 1
		page.PageSize = len(page.Items)
		page.Total = len(page.Items)
		return page, nil
	}
	if err := json.Unmarshal(raw, &page); err != nil {
		return page, errors.Wrap(err, "decode page")
	}
	return page, nil
}

func pagingQuery(page, pageSize int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", itoa(page))
	}
	if pageSize > 0 {
		q.Set("pageSize", itoa(pageSize))
	}
	return q
}
