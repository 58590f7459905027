package convert

import (
	"context"
	"sync"

	"github.com/depp/pbrpack/lib/job"

	"github.com/pkg/errors"
)

// ErrBusy is returned when a job is submitted while another is running.
var ErrBusy = errors.New("a conversion is already running")

// A Worker runs one job at a time on a background goroutine.
type Worker struct {
	Converter Converter

	mu     sync.Mutex
	active *Task
}

// A Task is a job running on a Worker.
type Task struct {
	events chan Event
	cancel context.CancelFunc
	done   chan struct{}
	result *Result
}

// Submit starts a job. It fails with ErrBusy if the worker is already running
// a job. The task is cancelled if ctx is done.
func (w *Worker) Submit(ctx context.Context, j *job.Job) (*Task, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.active != nil {
		return nil, ErrBusy
	}
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{
		events: make(chan Event, 16),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	w.active = t
	go func() {
		defer cancel()
		res := w.Converter.Run(ctx, j, chanReporter(t.events))
		t.result = res
		close(t.events)
		w.mu.Lock()
		w.active = nil
		w.mu.Unlock()
		close(t.done)
	}()
	return t, nil
}

// Busy returns true if a job is running.
func (w *Worker) Busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.active != nil
}

// Events returns the channel of progress events. It is closed when the run
// ends. The channel must be drained, or Wait called, for the run to proceed.
func (t *Task) Events() <-chan Event {
	return t.events
}

// Cancel requests cancellation. It takes effect at the next checkpoint
// between files.
func (t *Task) Cancel() {
	t.cancel()
}

// Done returns a channel which is closed when the run has ended.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait waits for the run to end and returns its result. Events not yet
// received are discarded.
func (t *Task) Wait() *Result {
	for range t.events {
	}
	<-t.done
	return t.result
}
