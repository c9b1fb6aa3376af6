package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/xiaorui77/ifacex-watch/internal/engine/types"
	"github.com/xiaorui77/ifacex-watch/internal/storage"
	"github.com/xiaorui77/ifacex-watch/pkg/model"
)

type fetchFunc func(ctx context.Context, call int) (*model.TaskList, error)

// fakeFetcher counts calls and delegates to fn.
type fakeFetcher struct {
	mu   sync.Mutex
	urls []string
	fn   fetchFunc
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string, _ time.Duration) (*model.TaskList, error) {
	f.mu.Lock()
	f.urls = append(f.urls, url)
	call := len(f.urls)
	fn := f.fn
	f.mu.Unlock()
	if fn == nil {
		return &model.TaskList{}, nil
	}
	return fn(ctx, call)
}

func (f *fakeFetcher) url(i int) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.urls[i]
}

func (f *fakeFetcher) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.urls)
}

type recorder struct {
	mu       sync.Mutex
	triggers []types.Trigger
	updates  [][]model.Task
	failures []error
	vibrate  int
	alert    int
	routes   []types.Route
}

func (r *recorder) PollStarted(t types.Trigger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.triggers = append(r.triggers, t)
}

func (r *recorder) TasksUpdated(tasks []model.Task) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, tasks)
}

func (r *recorder) PollFailed(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, err)
}

func (r *recorder) Vibrate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vibrate++
}

func (r *recorder) Alert() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alert++
}

func (r *recorder) Replace(route types.Route) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, route)
}

func (r *recorder) counts() (updates, failures, vibrate, alert int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.updates), len(r.failures), r.vibrate, r.alert
}

func (r *recorder) lastRoute() (types.Route, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.routes) == 0 {
		return 0, false
	}
	return r.routes[len(r.routes)-1], true
}

// brokenStore injects Save and Clear failures in front of a real store.
type brokenStore struct {
	storage.Store
	saveErr  error
	clearErr error
}

func (s *brokenStore) Save(c model.Credentials) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	return s.Store.Save(c)
}

func (s *brokenStore) Clear() error {
	if s.clearErr != nil {
		return s.clearErr
	}
	return s.Store.Clear()
}

var errDisk = errors.New("disk full")

func task(id, active, status string) model.Task {
	return model.Task{ID: id, Name: "task-" + id, Active: active, LastStatus: status}
}

func loggedIn() *storage.MemoryStore {
	s := storage.NewMemoryStore()
	_ = s.Save(model.Credentials{EndpointURL: "http://example.com:8080/", APIKey: "abc123"})
	return s
}
