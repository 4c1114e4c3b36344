package debounce

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncer_RunsOnlyLast(t *testing.T) {
	d := New(30 * time.Millisecond)
	defer d.Stop()

	var mu sync.Mutex
	var got []int
	done := make(chan struct{}, 10)

	for i := 1; i <= 5; i++ {
		v := i
		d.Trigger(func() {
			mu.Lock()
			got = append(got, v)
			mu.Unlock()
			done <- struct{}{}
		})
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("debounced call never ran")
	}
	time.Sleep(60 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{5}, got)
}

func TestDebouncer_StopSuppresses(t *testing.T) {
	d := New(10 * time.Millisecond)
	var calls atomic.Int32

	d.Trigger(func() { calls.Add(1) })
	d.Stop()
	d.Trigger(func() { calls.Add(1) })

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestDebouncer_CancelKeepsUsable(t *testing.T) {
	d := New(10 * time.Millisecond)
	defer d.Stop()
	var calls atomic.Int32
	ran := make(chan struct{})

	d.Trigger(func() { calls.Add(1) })
	d.Cancel()
	d.Trigger(func() { calls.Add(1); close(ran) })

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("call after Cancel never ran")
	}
	require.Equal(t, int32(1), calls.Load())
}
