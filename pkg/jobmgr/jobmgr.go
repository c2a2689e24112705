// Package jobmgr runs named background jobs with cancellation, status
// callbacks and in-memory tracking of running jobs.
//
// Typical usage:
//
//	jm := jobmgr.NewManager(func(msg string) {
//	    log.Println("JOB:", msg)
//	})
//
//	err := jm.StartAsync(ctx, "refresh:bazaar", jobmgr.Every(30*time.Minute, refresh, nil))
//
//	// later...
//	jm.StopAll()
//
// Jobs run in separate goroutines and are removed on completion.
package jobmgr

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Job represents a running unit of work.
type Job struct {
	Name   string
	Cancel context.CancelFunc
	done   chan struct{}
}

// StatusReporter receives lifecycle events for jobs.
// Example messages:
//
//	running:refresh:bazaar
//	error:refresh:bazaar:status 503
//	done:refresh:bazaar
type StatusReporter func(string)

// Manager orchestrates starting, stopping and tracking jobs.
// It is safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	jobs     map[string]*Job
	Reporter StatusReporter
}

// NewManager creates a new Manager. The reporter callback may be nil.
func NewManager(reporter StatusReporter) *Manager {
	return &Manager{
		jobs:     make(map[string]*Job),
		Reporter: reporter,
	}
}

// StartAsync runs a job in its own goroutine under a child of parent and
// returns immediately. Starting a name that is already running is an error.
func (m *Manager) StartAsync(parent context.Context, name string, runner func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(parent)
	job := &Job{Name: name, Cancel: cancel, done: make(chan struct{})}

	m.mu.Lock()
	if _, exists := m.jobs[name]; exists {
		m.mu.Unlock()
		cancel()
		return fmt.Errorf("job '%s' is already running", name)
	}
	m.jobs[name] = job
	m.mu.Unlock()

	go func() {
		defer close(job.done)
		defer cancel()
		m.report("running:" + name)

		if err := runner(ctx); err != nil && ctx.Err() == nil {
			m.report("error:" + name + ":" + err.Error())
		} else {
			m.report("done:" + name)
		}

		m.mu.Lock()
		if m.jobs[name] == job {
			delete(m.jobs, name)
		}
		m.mu.Unlock()
	}()

	return nil
}

// Stop cancels a running job by name and waits for it to return.
func (m *Manager) Stop(name string) error {
	m.mu.Lock()
	job, ok := m.jobs[name]
	if ok {
		delete(m.jobs, name)
	}
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("job '%s' not running", name)
	}
	job.Cancel()
	<-job.done
	return nil
}

// StopAll cancels every running job and waits for all of them.
func (m *Manager) StopAll() {
	m.mu.Lock()
	jobs := make([]*Job, 0, len(m.jobs))
	for name, job := range m.jobs {
		jobs = append(jobs, job)
		delete(m.jobs, name)
	}
	m.mu.Unlock()

	for _, job := range jobs {
		job.Cancel()
	}
	for _, job := range jobs {
		<-job.done
	}
}

// List returns the active job names, sorted.
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.jobs))
	for k := range m.jobs {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Status returns a human-readable summary of active jobs, e.g.
// "Running jobs: refresh:bazaar". If none are running: "No jobs are running."
func (m *Manager) Status() string {
	active := m.List()
	if len(active) == 0 {
		return "No jobs are running."
	}
	return fmt.Sprintf("Running jobs: %s", strings.Join(active, ", "))
}

// Every returns a runner that calls fn once per interval until cancelled.
// Errors from fn are reported through onErr and do not stop the loop.
func Every(interval time.Duration, fn func(ctx context.Context) error, onErr func(error)) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-t.C:
				if err := fn(ctx); err != nil && onErr != nil {
					onErr(err)
				}
			}
		}
	}
}

// report delivers lifecycle messages to the reporter if present.
func (m *Manager) report(msg string) {
	if m.Reporter != nil {
		m.Reporter(msg)
	}
}
