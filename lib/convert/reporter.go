package convert

import "time"

// A Reporter receives the progress of a run. Calls are made from the goroutine
// running the job, in order.
type Reporter interface {
	// State is called on every state transition.
	State(s State)
	// Progress is called with the overall progress, from 0 to 100. Values
	// never decrease within a run.
	Progress(percent int)
	// Log is called with each status message.
	Log(msg string)
}

// An EventKind identifies the field of an Event which is set.
type EventKind uint32

const (
	// StateEvent is a state transition.
	StateEvent EventKind = iota
	// ProgressEvent is a progress update.
	ProgressEvent
	// LogEvent is a status message.
	LogEvent
)

// An Event is a Reporter call, as delivered by a Task.
type Event struct {
	Kind     EventKind
	Time     time.Time
	State    State
	Progress int
	Message  string
}

// chanReporter sends reporter calls on a channel.
type chanReporter chan<- Event

func (c chanReporter) State(s State) {
	c <- Event{Kind: StateEvent, Time: time.Now(), State: s}
}

func (c chanReporter) Progress(percent int) {
	c <- Event{Kind: ProgressEvent, Time: time.Now(), Progress: percent}
}

func (c chanReporter) Log(msg string) {
	c <- Event{Kind: LogEvent, Time: time.Now(), Message: msg}
}

type nopReporter struct{}

func (nopReporter) State(State)  {}
func (nopReporter) Progress(int) {}
func (nopReporter) Log(string)   {}
