package apiclient

import (
	"context"
	"net/url"
	"strings"
)

// Collection - REST-коллекция со списком, поиском, фильтром и деталями:
//
//	GET {path}           list
//	GET {path}/search    search
//	GET {path}/filter    filter
//	GET {path}/{id}      detail
type Collection[T any, D any] struct {
	client *Client
	path   string
	name   string
}

func NewCollection[T any, D any](client *Client, path string) *Collection[T, D] {
	path = "/" + strings.Trim(path, "/")
	return &Collection[T, D]{
		client: client,
		path:   path,
		name:   strings.TrimPrefix(path, "/"),
	}
}

func (c *Collection[T, D]) List(ctx context.Context, query url.Values) (*Page[T], error) {
	return c.page(ctx, c.name+".list", c.path, query)
}

func (c *Collection[T, D]) Search(ctx context.Context, query url.Values) (*Page[T], error) {
	return c.page(ctx, c.name+".search", c.path+"/search", query)
}

func (c *Collection[T, D]) Filter(ctx context.Context, query url.Values) (*Page[T], error) {
	return c.page(ctx, c.name+".filter", c.path+"/filter", query)
}

// Get загружает расширенную запись по идентификатору. Идентификатор экранируется в пути.
func (c *Collection[T, D]) Get(ctx context.Context, id string) (*D, error) {
	var detail D
	err := c.client.get(ctx, c.name+".get", c.path+"/{id}", map[string]string{"id": id}, nil, &detail)
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (c *Collection[T, D]) page(ctx context.Context, endpoint, path string, query url.Values) (*Page[T], error) {
	var page Page[T]
	if err := c.client.get(ctx, endpoint, path, nil, query, &page); err != nil {
		return nil, err
	}
	if page.Items == nil {
		page.Items = []T{}
	}
	return &page, nil
}
