package playbook

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"testing"
	"time"
)

// Compile-time interface check.
var _ interface {
	Acquire(context.Context) (*Converter, error)
	Release(*Converter)
	Size() int
	Close() error
} = (*ConverterPool)(nil)

func newTestPool(n int) *ConverterPool {
	return NewConverterPool(n, withPDFConverter(&mockPDFConverter{}))
}

// ---------------------------------------------------------------------------
// TestResolvePoolSize - Pool Sizing
// ---------------------------------------------------------------------------

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	gomaxprocs := runtime.GOMAXPROCS(0)

	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{"explicit takes priority", 4, 4},
		{"explicit=1 for sequential", 1, 1},
		{"explicit can exceed max", 20, 20},
		{"zero uses auto calculation", 0, min(max(gomaxprocs/cpuDivisor, MinPoolSize), MaxPoolSize)},
		{"negative uses auto calculation", -3, min(max(gomaxprocs/cpuDivisor, MinPoolSize), MaxPoolSize)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ResolvePoolSize(tt.workers); got != tt.want {
				t.Errorf("ResolvePoolSize(%d) = %d, want %d", tt.workers, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConverterPool - Acquire/Release Lifecycle
// ---------------------------------------------------------------------------

func TestNewConverterPool_MinimumSize(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, -1} {
		if got := NewConverterPool(n).Size(); got != 1 {
			t.Errorf("NewConverterPool(%d).Size() = %d, want 1", n, got)
		}
	}
}

func TestConverterPool_ReusesReleased(t *testing.T) {
	t.Parallel()

	pool := newTestPool(1)
	t.Cleanup(func() { _ = pool.Close() })

	first, err := pool.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	pool.Release(first)

	second, err := pool.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if first != second {
		t.Error("released converter was not reused")
	}
}

func TestConverterPool_BlocksUntilRelease(t *testing.T) {
	t.Parallel()

	pool := newTestPool(1)
	t.Cleanup(func() { _ = pool.Close() })

	held, err := pool.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	got := make(chan *Converter, 1)
	go func() {
		c, err := pool.Acquire(context.Background())
		if err == nil {
			got <- c
		}
	}()

	select {
	case <-got:
		t.Fatal("Acquire returned while pool exhausted")
	case <-time.After(50 * time.Millisecond):
	}

	pool.Release(held)
	select {
	case c := <-got:
		if c != held {
			t.Error("waiter received a different converter")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Acquire did not return after Release")
	}
}

func TestConverterPool_AcquireHonorsContext(t *testing.T) {
	t.Parallel()

	pool := newTestPool(1)
	t.Cleanup(func() { _ = pool.Close() })

	if _, err := pool.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := pool.Acquire(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Acquire() error = %v, want DeadlineExceeded", err)
	}
}

func TestConverterPool_Concurrent(t *testing.T) {
	t.Parallel()

	pool := newTestPool(3)
	t.Cleanup(func() { _ = pool.Close() })

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := pool.Acquire(context.Background())
			if err != nil {
				errs <- err
				return
			}
			defer pool.Release(c)
			if _, err := c.Convert(context.Background(), Input{Text: converterSource, HTMLOnly: true}); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("worker error: %v", err)
	}

	pool.mu.Lock()
	created := pool.created
	pool.mu.Unlock()
	if created > 3 {
		t.Errorf("created %d converters, want at most 3", created)
	}
}

func TestConverterPool_Close(t *testing.T) {
	t.Parallel()

	pool := newTestPool(2)
	c, err := pool.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	pool.Release(c)

	if err := pool.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := pool.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if _, err := pool.Acquire(context.Background()); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("Acquire() after Close error = %v, want ErrPoolClosed", err)
	}

	// Release after close must not panic.
	pool.Release(c)
}
