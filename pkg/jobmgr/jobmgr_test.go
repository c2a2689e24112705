package jobmgr

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recorder struct {
	mu   sync.Mutex
	msgs []string
}

func (r *recorder) report(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func (r *recorder) has(msg string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.msgs {
		if m == msg {
			return true
		}
	}
	return false
}

func TestStartStop(t *testing.T) {
	rec := &recorder{}
	m := NewManager(rec.report)

	block := func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}
	if err := m.StartAsync(context.Background(), "a", block); err != nil {
		t.Fatal(err)
	}
	if err := m.StartAsync(context.Background(), "a", block); err == nil {
		t.Fatal("duplicate job name accepted")
	}
	if got := m.Status(); got != "Running jobs: a" {
		t.Fatalf("status = %q", got)
	}

	if err := m.Stop("a"); err != nil {
		t.Fatal(err)
	}
	if err := m.Stop("a"); err == nil {
		t.Fatal("stopping a stopped job succeeded")
	}
	if got := m.Status(); got != "No jobs are running." {
		t.Fatalf("status = %q", got)
	}
	if !rec.has("done:a") {
		t.Fatalf("messages = %v", rec.msgs)
	}
}

func TestErrorReported(t *testing.T) {
	rec := &recorder{}
	m := NewManager(rec.report)

	done := make(chan struct{})
	_ = m.StartAsync(context.Background(), "fail", func(context.Context) error {
		defer close(done)
		return errors.New("boom")
	})
	<-done

	deadline := time.Now().Add(time.Second)
	for !rec.has("error:fail:boom") {
		if time.Now().After(deadline) {
			t.Fatalf("messages = %v", rec.msgs)
		}
		time.Sleep(time.Millisecond)
	}
	m.StopAll()
}

func TestEvery(t *testing.T) {
	m := NewManager(nil)
	var calls, errs atomic.Int32

	fn := func(context.Context) error {
		if calls.Add(1)%2 == 0 {
			return errors.New("odd failure")
		}
		return nil
	}
	_ = m.StartAsync(context.Background(), "tick", Every(time.Millisecond, fn, func(error) { errs.Add(1) }))

	deadline := time.Now().Add(2 * time.Second)
	for calls.Load() < 4 {
		if time.Now().After(deadline) {
			t.Fatalf("only %d calls", calls.Load())
		}
		time.Sleep(time.Millisecond)
	}
	m.StopAll()

	if errs.Load() == 0 {
		t.Fatal("errors not reported")
	}
	if len(m.List()) != 0 {
		t.Fatalf("jobs left: %v", m.List())
	}
}
