package packet

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryBoundsOutstandingPackets(t *testing.T) {
	f := NewFactory[int](2)

	p1, err := f.Acquire(context.Background())
	require.NoError(t, err)
	p2, err := f.Acquire(context.Background())
	require.NoError(t, err)

	_, ok := f.TryAcquire()
	assert.False(t, ok, "factory should be full with 2 outstanding packets")

	p1.Release()

	p3, ok := f.TryAcquire()
	assert.True(t, ok, "slot should free up after release")

	p2.Release()
	p3.Release()
}

func TestAcquireBlocksUntilRelease(t *testing.T) {
	f := NewFactory[string](1)
	p1, err := f.Acquire(context.Background())
	require.NoError(t, err)

	acquired := make(chan struct{})
	go func() {
		p2, err := f.Acquire(context.Background())
		assert.NoError(t, err)
		close(acquired)
		p2.Release()
	}()

	select {
	case <-acquired:
		t.Fatal("acquire should have blocked while pool is full")
	case <-time.After(50 * time.Millisecond):
	}

	p1.Release()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("acquire should have unblocked after release")
	}
}

func TestCloneIncrementsRefcountAndDelaysUniqueness(t *testing.T) {
	f := NewFactory[int](1)
	p1, err := f.Acquire(context.Background())
	require.NoError(t, err)
	*p1.Content() = 42

	p2 := p1.Clone()
	assert.Equal(t, 42, *p2.Content())

	_, ok := f.TryAcquire()
	assert.False(t, ok)

	p1.Release()
	_, ok = f.TryAcquire()
	assert.False(t, ok, "factory slot should still be held while p2 is outstanding")

	p2.Release()
	p3, ok := f.TryAcquire()
	assert.True(t, ok, "slot should free once every clone is released")
	p3.Release()
}

func TestAcquireRespectsContextCancellation(t *testing.T) {
	f := NewFactory[int](1)
	p1, err := f.Acquire(context.Background())
	require.NoError(t, err)
	defer p1.Release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = f.Acquire(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCloseRejectsNewAcquires(t *testing.T) {
	f := NewFactory[int](2)
	f.Close()

	_, err := f.Acquire(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
}

func TestConcurrentAcquireReleaseStaysWithinBound(t *testing.T) {
	const n = 4
	f := NewFactory[int](n)
	var wg sync.WaitGroup
	var outstanding int32
	var mu sync.Mutex
	var maxSeen int

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := f.Acquire(context.Background())
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			outstanding++
			if int(outstanding) > maxSeen {
				maxSeen = int(outstanding)
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			outstanding--
			mu.Unlock()
			p.Release()
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, maxSeen, n)
}
