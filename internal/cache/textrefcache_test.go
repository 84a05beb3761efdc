package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestGetOrComputeConcurrentMissesCoalesce(t *testing.T) {
	c := New(16, 0)
	var calls int64

	var wg sync.WaitGroup
	results := make([]Result, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			v, err := c.GetOrCompute(context.Background(), "k", func(ctx context.Context) (Result, error) {
				atomic.AddInt64(&calls, 1)
				time.Sleep(5 * time.Millisecond)
				return "computed", nil
			})
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			results[idx] = v
		}(i)
	}
	wg.Wait()

	if calls != 1 {
		t.Fatalf("compute called %d times, want 1", calls)
	}
	for _, r := range results {
		if r != "computed" {
			t.Fatalf("got %v, want computed", r)
		}
	}
}

func TestGetOrComputeFailurePropagatesToAllWaiters(t *testing.T) {
	c := New(16, 0)
	wantErr := errors.New("backend down")

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, err := c.GetOrCompute(context.Background(), "k", func(ctx context.Context) (Result, error) {
				return nil, wantErr
			})
			errs[idx] = err
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if !errors.Is(err, wantErr) {
			t.Fatalf("got %v, want %v", err, wantErr)
		}
	}

	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected nothing cached after a failed compute")
	}
}

func TestCacheHitMissStats(t *testing.T) {
	c := New(16, 0)
	key := Key("stub", "es-mx", "ola")

	if _, ok := c.Get(key); ok {
		t.Fatalf("expected miss on empty cache")
	}
	c.Set(key, "o l a")
	if v, ok := c.Get(key); !ok || v != "o l a" {
		t.Fatalf("expected hit with value 'o l a', got %v, %v", v, ok)
	}

	stats := c.StatsSnapshot()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Fatalf("stats = %+v, want 1 hit 1 miss", stats)
	}
}

func TestGetOrComputeRecordsOneMissOneHit(t *testing.T) {
	c := New(16, 0)
	key := Key("stub", "es-mx", "ola")

	v, err := c.GetOrCompute(context.Background(), key, func(ctx context.Context) (Result, error) {
		return "o l a", nil
	})
	if err != nil || v != "o l a" {
		t.Fatalf("unexpected result: %v, %v", v, err)
	}

	v, err = c.GetOrCompute(context.Background(), key, func(ctx context.Context) (Result, error) {
		t.Fatal("compute should not be called on the second call")
		return nil, nil
	})
	if err != nil || v != "o l a" {
		t.Fatalf("unexpected result: %v, %v", v, err)
	}

	stats := c.StatsSnapshot()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Fatalf("stats = %+v, want 1 hit 1 miss", stats)
	}
}

func TestCacheEvictsOldestOverCapacity(t *testing.T) {
	c := New(2, 0)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3) // evicts "a"

	if _, ok := c.Get("a"); ok {
		t.Fatalf("expected 'a' evicted")
	}
	if _, ok := c.Get("b"); !ok {
		t.Fatalf("expected 'b' still present")
	}
	if _, ok := c.Get("c"); !ok {
		t.Fatalf("expected 'c' still present")
	}
}

func TestCacheTTLExpiry(t *testing.T) {
	c := New(16, 10*time.Millisecond)
	c.Set("k", "v")
	if _, ok := c.Get("k"); !ok {
		t.Fatalf("expected fresh hit")
	}
	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected expired entry to miss")
	}
}
