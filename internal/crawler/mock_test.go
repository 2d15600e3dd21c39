package crawler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"sjsage522/dealcollector/helpers"
	"sjsage522/dealcollector/services/cache"
)

// MockCacheService implements a simple in-memory cache for testing
type MockCacheService struct {
	cache map[string][]byte
}

func NewMockCacheService() *MockCacheService {
	return &MockCacheService{
		cache: make(map[string][]byte),
	}
}

func (m *MockCacheService) Get(key string) ([]byte, error) {
	if val, ok := m.cache[key]; ok {
		return val, nil
	}
	return nil, cache.ErrNotFound
}

func (m *MockCacheService) Set(key string, value []byte, expiration time.Duration) error {
	m.cache[key] = value
	return nil
}

// MockFetcher serves canned responses by URL and records every request
type MockFetcher struct {
	mu        sync.Mutex
	responses map[string]*helpers.Response
	errs      map[string]error
	calls     []string
}

func NewMockFetcher() *MockFetcher {
	return &MockFetcher{
		responses: make(map[string]*helpers.Response),
		errs:      make(map[string]error),
	}
}

func (m *MockFetcher) Serve(url, contentType string, body []byte) {
	m.responses[url] = &helpers.Response{URL: url, StatusCode: 200, ContentType: contentType, Body: body}
}

func (m *MockFetcher) Fail(url string, err error) {
	m.errs[url] = err
}

func (m *MockFetcher) Fetch(ctx context.Context, url string) (*helpers.Response, error) {
	m.mu.Lock()
	m.calls = append(m.calls, url)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := m.errs[url]; ok {
		return nil, err
	}
	if resp, ok := m.responses[url]; ok {
		return resp, nil
	}
	return nil, fmt.Errorf("no response for %s", url)
}

func (m *MockFetcher) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}
