package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/5G-MAG/rt-v3c-decoder-plugin-sub000/packet"
)

func mustPacket(t *testing.T, v int) packet.Packet[int] {
	t.Helper()
	f := packet.NewFactory[int](1)
	p, err := f.Acquire(context.Background())
	require.NoError(t, err)
	*p.Content() = v
	return p
}

func TestInputFIFOOrder(t *testing.T) {
	in := NewInput[int]()
	in.Push(mustPacket(t, 1))
	in.Push(mustPacket(t, 2))
	in.Push(mustPacket(t, 3))

	assert.Equal(t, 3, in.Pending())

	for _, want := range []int{1, 2, 3} {
		p, ok := in.Pop()
		require.True(t, ok)
		assert.Equal(t, want, *p.Content())
		p.Release()
	}

	_, ok := in.Pop()
	assert.False(t, ok, "pop on empty queue is a no-op")
}

func TestInputPushOnClosedIsNoOp(t *testing.T) {
	in := NewInput[int]()
	in.Close()
	in.Push(mustPacket(t, 1))
	assert.Equal(t, 0, in.Pending())
}

func TestInputWaitWakesOnClose(t *testing.T) {
	in := NewInput[int]()
	done := make(chan bool)
	go func() {
		done <- in.Wait()
	}()

	select {
	case <-done:
		t.Fatal("wait returned before close or push")
	case <-time.After(30 * time.Millisecond):
	}

	in.Close()
	select {
	case stillOpen := <-done:
		assert.False(t, stillOpen)
	case <-time.After(time.Second):
		t.Fatal("wait did not wake on close")
	}
}

func TestInputWaitWakesOnPush(t *testing.T) {
	in := NewInput[int]()
	done := make(chan bool)
	go func() {
		done <- in.Wait()
	}()

	time.Sleep(10 * time.Millisecond)
	in.Push(mustPacket(t, 7))

	select {
	case stillOpen := <-done:
		assert.True(t, stillOpen)
	case <-time.After(time.Second):
		t.Fatal("wait did not wake on push")
	}
}

func TestOutputBroadcastsToAllSubscribers(t *testing.T) {
	out := NewOutput[int]()
	a, b := NewInput[int](), NewInput[int]()
	out.Connect(a)
	out.Connect(b)

	out.Push(mustPacket(t, 42))

	pa, ok := a.Pop()
	require.True(t, ok)
	assert.Equal(t, 42, *pa.Content())
	pa.Release()

	pb, ok := b.Pop()
	require.True(t, ok)
	assert.Equal(t, 42, *pb.Content())
	pb.Release()
}

func TestOutputDisconnectStopsDelivery(t *testing.T) {
	out := NewOutput[int]()
	a := NewInput[int]()
	out.Connect(a)
	out.Disconnect(a)

	out.Push(mustPacket(t, 1))
	assert.Equal(t, 0, a.Pending())
}

func TestOutputPushWithNoSubscribersReleasesPacket(t *testing.T) {
	out := NewOutput[int]()
	out.Push(mustPacket(t, 1)) // must not panic or leak
}
