package evroute

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPool(t *testing.T) {
	t.Run("executes every submission", func(t *testing.T) {
		p := NewWorkerPool(4, quietLogger())
		defer p.Close()

		const n = 100
		var count atomic.Int64
		var wg sync.WaitGroup
		wg.Add(n)
		for i := 0; i < n; i++ {
			p.Submit(func() {
				count.Add(1)
				wg.Done()
			})
		}

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("submissions not drained")
		}
		if got := count.Load(); got != n {
			t.Errorf("executed %d, want %d", got, n)
		}
	})

	t.Run("close drains pending work", func(t *testing.T) {
		p := NewWorkerPool(2, quietLogger())

		var count atomic.Int64
		for i := 0; i < 20; i++ {
			p.Submit(func() { count.Add(1) })
		}
		p.Close()

		if got := count.Load(); got != 20 {
			t.Errorf("executed %d before close returned, want 20", got)
		}
	})

	t.Run("submit after close is dropped", func(t *testing.T) {
		p := NewWorkerPool(1, quietLogger())
		p.Close()

		ran := false
		p.Submit(func() { ran = true })
		time.Sleep(50 * time.Millisecond)
		if ran {
			t.Error("submission ran on closed pool")
		}
	})

	t.Run("panicking submission does not kill the worker", func(t *testing.T) {
		p := NewWorkerPool(1, quietLogger())
		defer p.Close()

		p.Submit(func() { panic("boom") })

		done := make(chan struct{})
		p.Submit(func() { close(done) })

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("worker died after panic")
		}
	})

	t.Run("size below one falls back to default", func(t *testing.T) {
		p := NewWorkerPool(0, quietLogger())
		defer p.Close()

		done := make(chan struct{})
		p.Submit(func() { close(done) })
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("default-sized pool did not run submission")
		}
	})
}
