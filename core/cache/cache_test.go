package cache

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

func TestBasicOperations(t *testing.T) {
	c := New[string, int](Config{MaxSize: 3})

	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)

	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %d, %v; want 1, true", v, ok)
	}
	if _, ok := c.Get("d"); ok {
		t.Error("Get(d) should return false")
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}
}

func TestLRUEviction(t *testing.T) {
	c := New[string, int](Config{MaxSize: 2})

	c.Put("a", 1)
	c.Put("b", 2)
	c.Get("a") // make "b" the least recently used
	c.Put("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("a should still be cached")
	}

	stats := c.Stats()
	if stats.Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", stats.Evictions)
	}
}

func TestUnlimitedNeverEvicts(t *testing.T) {
	c := New[int, int](Config{MaxSize: 0})

	for i := 0; i < 1000; i++ {
		c.Put(i, i)
	}
	if c.Len() != 1000 {
		t.Errorf("Len() = %d, want 1000", c.Len())
	}
	if ev := c.Stats().Evictions; ev != 0 {
		t.Errorf("Evictions = %d, want 0", ev)
	}
}

func TestGetOrCompute(t *testing.T) {
	c := New[string, int](Config{})

	calls := 0
	compute := func() (int, error) {
		calls++
		return 42, nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.GetOrCompute("k", compute)
		if err != nil {
			t.Fatalf("GetOrCompute failed: %v", err)
		}
		if v != 42 {
			t.Errorf("GetOrCompute = %d, want 42", v)
		}
	}
	if calls != 1 {
		t.Errorf("compute ran %d times, want 1", calls)
	}
}

func TestGetOrComputeError(t *testing.T) {
	c := New[string, int](Config{})
	wantErr := errors.New("boom")

	_, err := c.GetOrCompute("k", func() (int, error) { return 0, wantErr })
	if !errors.Is(err, wantErr) {
		t.Errorf("error = %v, want %v", err, wantErr)
	}
	if c.Len() != 0 {
		t.Error("failed computations must not be cached")
	}
}

func TestOnEvict(t *testing.T) {
	var evicted []string
	c := New[string, int](Config{
		MaxSize: 1,
		OnEvict: func(key, _ interface{}) { evicted = append(evicted, key.(string)) },
	})

	c.Put("a", 1)
	c.Put("b", 2)

	if len(evicted) != 1 || evicted[0] != "a" {
		t.Errorf("evicted = %v, want [a]", evicted)
	}
}

func TestStats(t *testing.T) {
	c := New[string, int](Config{MaxSize: 10})

	c.Put("a", 1)
	c.Get("a")
	c.Get("a")
	c.Get("miss")

	s := c.Stats()
	if s.Hits != 2 || s.Misses != 1 {
		t.Errorf("Stats = %+v, want 2 hits, 1 miss", s)
	}
	if s.Size != 1 || s.MaxSize != 10 {
		t.Errorf("Stats = %+v, want size 1, max 10", s)
	}
}

func TestClear(t *testing.T) {
	c := New[string, int](Config{})
	c.Put("a", 1)
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", c.Len())
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New[string, int](Config{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d", j%10)
				c.Put(key, n)
				c.Get(key)
				_, _ = c.GetOrCompute(key, func() (int, error) { return n, nil })
			}
		}(i)
	}
	wg.Wait()

	if c.Len() != 10 {
		t.Errorf("Len() = %d, want 10", c.Len())
	}
}
