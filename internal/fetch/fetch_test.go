package fetch

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
)

type countingFetcher struct {
	calls atomic.Int32
}

func (f *countingFetcher) Fetch(_ context.Context, url string) (string, error) {
	f.calls.Add(1)
	if url == "bad" {
		return "", fmt.Errorf("boom")
	}
	return "content:" + url, nil
}

func TestCache_FetchesOncePerURL(t *testing.T) {
	fetcher := &countingFetcher{}
	cache := NewCache(fetcher)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			content, err := cache.Get(context.Background(), "https://example.com/rules.list")
			if err != nil {
				t.Errorf("Get() error = %v", err)
			}
			if content != "content:https://example.com/rules.list" {
				t.Errorf("Get() = %q", content)
			}
		}()
	}
	wg.Wait()

	if fetcher.calls.Load() != 1 {
		t.Errorf("fetch calls = %d, want 1", fetcher.calls.Load())
	}
}

func TestCache_DistinctURLsFetchedSeparately(t *testing.T) {
	fetcher := &countingFetcher{}
	cache := NewCache(fetcher)

	if _, err := cache.Get(context.Background(), "a"); err != nil {
		t.Fatalf("Get(a) error = %v", err)
	}
	if _, err := cache.Get(context.Background(), "b"); err != nil {
		t.Fatalf("Get(b) error = %v", err)
	}
	if fetcher.calls.Load() != 2 {
		t.Errorf("fetch calls = %d, want 2", fetcher.calls.Load())
	}
}

func TestCache_FetchErrorWrapped(t *testing.T) {
	cache := NewCache(&countingFetcher{})
	_, err := cache.Get(context.Background(), "bad")
	if err == nil {
		t.Fatal("expected fetch error")
	}
}
