package feature

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/rushteam/eventrec/core"
	"github.com/rushteam/eventrec/pkg/metrics"
	"github.com/rushteam/eventrec/store"
)

// faultyStore 包装 MemoryStore，对指定集合或文档返回错误。
type faultyStore struct {
	*store.MemoryStore

	mu       sync.Mutex
	failAll  map[string]error // collection -> err
	failDocs map[string]error // collection/id -> err
	gets     []string
}

func newFaultyStore() *faultyStore {
	return &faultyStore{
		MemoryStore: store.NewMemoryStore(),
		failAll:     map[string]error{},
		failDocs:    map[string]error{},
	}
}

func (f *faultyStore) Query(ctx context.Context, collection string, q core.Query) ([]core.Document, error) {
	if err := f.failAll[collection]; err != nil {
		return nil, err
	}
	return f.MemoryStore.Query(ctx, collection, q)
}

func (f *faultyStore) Get(ctx context.Context, collection, id string) (core.Document, error) {
	f.mu.Lock()
	f.gets = append(f.gets, collection+"/"+id)
	f.mu.Unlock()
	if err := f.failAll[collection]; err != nil {
		return core.Document{}, err
	}
	if err := f.failDocs[collection+"/"+id]; err != nil {
		return core.Document{}, err
	}
	return f.MemoryStore.Get(ctx, collection, id)
}

func (f *faultyStore) put(t *testing.T, collection, id string, data map[string]any) {
	t.Helper()
	if err := f.Put(context.Background(), collection, core.Document{ID: id, Data: data}); err != nil {
		t.Fatalf("Put(%s/%s) error = %v", collection, id, err)
	}
}

func testDegrader(t *testing.T) (*Degrader, *prometheus.Registry, *bytes.Buffer) {
	t.Helper()
	reg := prometheus.NewRegistry()
	var buf bytes.Buffer
	d := NewDegrader(zerolog.New(&buf), metrics.NewRecorder(metrics.WithRegistry(reg), metrics.WithNamespace("test")), time.Second)
	return d, reg, &buf
}

func fetchFailures(t *testing.T, reg *prometheus.Registry) int {
	t.Helper()
	n, err := testutil.GatherAndCount(reg, "test_store_fetch_failures_total")
	if err != nil {
		t.Fatalf("GatherAndCount() error = %v", err)
	}
	return n
}

func TestFetchOrDefault(t *testing.T) {
	ctx := context.Background()

	t.Run("success returns value", func(t *testing.T) {
		d, reg, _ := testDegrader(t)
		got := FetchOrDefault(ctx, d, "op", zerolog.WarnLevel, 0, func(context.Context) (int, error) {
			return 7, nil
		})
		if got != 7 {
			t.Errorf("FetchOrDefault() = %d, want 7", got)
		}
		if n := fetchFailures(t, reg); n != 0 {
			t.Errorf("fetch failure series = %d, want 0", n)
		}
	})

	t.Run("error returns default and is recorded", func(t *testing.T) {
		d, reg, buf := testDegrader(t)
		got := FetchOrDefault(ctx, d, "profile", zerolog.WarnLevel, -1, func(context.Context) (int, error) {
			return 0, errors.New("connection reset")
		})
		if got != -1 {
			t.Errorf("FetchOrDefault() = %d, want -1", got)
		}
		if n := fetchFailures(t, reg); n != 1 {
			t.Errorf("fetch failure series = %d, want 1", n)
		}
		if !strings.Contains(buf.String(), "connection reset") || !strings.Contains(buf.String(), `"op":"profile"`) {
			t.Errorf("log output = %q, want error and op", buf.String())
		}
	})

	t.Run("not found is silent", func(t *testing.T) {
		d, reg, buf := testDegrader(t)
		got := FetchOrDefault(ctx, d, "profile", zerolog.WarnLevel, "def", func(context.Context) (string, error) {
			return "", core.ErrStoreNotFound
		})
		if got != "def" {
			t.Errorf("FetchOrDefault() = %q, want def", got)
		}
		if n := fetchFailures(t, reg); n != 0 {
			t.Errorf("fetch failure series = %d, want 0", n)
		}
		if buf.Len() != 0 {
			t.Errorf("unexpected log output %q", buf.String())
		}
	})

	t.Run("timeout applies per call", func(t *testing.T) {
		d, _, _ := testDegrader(t)
		d.Timeout = 10 * time.Millisecond
		got := FetchOrDefault(ctx, d, "slow", zerolog.WarnLevel, "def", func(ctx context.Context) (string, error) {
			<-ctx.Done()
			return "late", ctx.Err()
		})
		if got != "def" {
			t.Errorf("FetchOrDefault() = %q, want def", got)
		}
	})

	t.Run("nil degrader", func(t *testing.T) {
		got := FetchOrDefault(ctx, nil, "op", zerolog.WarnLevel, 3, func(context.Context) (int, error) {
			return 0, errors.New("boom")
		})
		if got != 3 {
			t.Errorf("FetchOrDefault() = %d, want 3", got)
		}
	})
}
