package html2md

import "testing"

func TestServicePool_AcquireRelease(t *testing.T) {
	t.Parallel()

	pool := NewServicePool(2)

	first := pool.Acquire()
	if first == nil {
		t.Fatal("Acquire() returned nil")
	}
	second := pool.Acquire()
	if second == nil {
		t.Fatal("Acquire() returned nil")
	}
	if first == second {
		t.Error("two live acquisitions returned the same service")
	}

	pool.Release(first)
	third := pool.Acquire()
	if third != first {
		t.Error("Acquire() after Release() should reuse the released service")
	}
}

func TestServicePool_LazyCreation(t *testing.T) {
	t.Parallel()

	pool := NewServicePool(4)
	if pool.created != 0 {
		t.Errorf("pool created %d services at construction, want 0", pool.created)
	}

	svc := pool.Acquire()
	if pool.created != 1 {
		t.Errorf("pool created %d services after one acquire, want 1", pool.created)
	}
	pool.Release(svc)

	// A released service satisfies the next acquire without a new one.
	pool.Acquire()
	if pool.created != 1 {
		t.Errorf("pool created %d services, want 1", pool.created)
	}
}

func TestNewServicePool_MinimumSize(t *testing.T) {
	t.Parallel()

	if got := NewServicePool(0).Size(); got != 1 {
		t.Errorf("Size() = %d, want 1", got)
	}
	if got := NewServicePool(-3).Size(); got != 1 {
		t.Errorf("Size() = %d, want 1", got)
	}
}

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	if got := ResolvePoolSize(5); got != 5 {
		t.Errorf("ResolvePoolSize(5) = %d, want explicit value", got)
	}

	auto := ResolvePoolSize(0)
	if auto < MinPoolSize || auto > MaxPoolSize {
		t.Errorf("ResolvePoolSize(0) = %d, want within [%d, %d]", auto, MinPoolSize, MaxPoolSize)
	}
}
