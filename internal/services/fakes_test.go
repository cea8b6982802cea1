package services

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"

	"bus-admin/pkg/apiclient"
	"bus-admin/pkg/contextkeys"
)

func userCtx(id uint64) context.Context {
	return context.WithValue(context.Background(), contextkeys.UserIDKey, id)
}

// fakeSource is an in-memory backend collection.
type fakeSource[T any, D any] struct {
	mu    sync.Mutex
	calls []string
	page  func(op string, q url.Values) (*apiclient.Page[T], error)
	get   func(id string) (*D, error)
}

func (f *fakeSource[T, D]) call(op string, q url.Values) (*apiclient.Page[T], error) {
	f.mu.Lock()
	f.calls = append(f.calls, op)
	f.mu.Unlock()
	return f.page(op, q)
}

func (f *fakeSource[T, D]) List(_ context.Context, q url.Values) (*apiclient.Page[T], error) {
	return f.call("list", q)
}

func (f *fakeSource[T, D]) Search(_ context.Context, q url.Values) (*apiclient.Page[T], error) {
	return f.call("search", q)
}

func (f *fakeSource[T, D]) Filter(_ context.Context, q url.Values) (*apiclient.Page[T], error) {
	return f.call("filter", q)
}

func (f *fakeSource[T, D]) Get(_ context.Context, id string) (*D, error) {
	return f.get(id)
}

func staticPage[T any](items ...T) func(string, url.Values) (*apiclient.Page[T], error) {
	return func(string, url.Values) (*apiclient.Page[T], error) {
		return &apiclient.Page[T]{Items: items, Pagination: apiclient.Pagination{CurrentPage: 1, TotalPages: 1}}, nil
	}
}

// fakeFetcher answers GetResult from canned values keyed by endpoint.
type fakeFetcher struct {
	mu      sync.Mutex
	results map[string]any
	errs    map[string]error
	queries map[string]url.Values
}

func (f *fakeFetcher) GetResult(_ context.Context, endpoint, _ string, query url.Values, out any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.queries == nil {
		f.queries = make(map[string]url.Values)
	}
	f.queries[endpoint] = query
	if err := f.errs[endpoint]; err != nil {
		return err
	}
	raw, err := json.Marshal(f.results[endpoint])
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
