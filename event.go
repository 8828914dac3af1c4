package passage

import "time"

// Event is a sealed interface representing progress of a run.
// Events are purely informational; failures come from Run's error return.
// The unexported marker method prevents external implementations.
type Event interface {
	event()
}

// EventPromptStarted signals that a prompt's template has been resolved.
type EventPromptStarted struct {
	Index      int
	Name       string
	Message    string
	Resolution Resolution
}

func (EventPromptStarted) event() {}

// EventResponse carries the trimmed response of a prompt.
type EventResponse struct {
	Index    int
	Response string
	Duration time.Duration // zero for pass-through prompts
}

func (EventResponse) event() {}

// EventOutputApplied signals that an output received the response.
type EventOutputApplied struct {
	Index  int
	Output Output
	Value  string // resulting destination value; the response for stdout
}

func (EventOutputApplied) event() {}

// EventOutputSkipped signals that an output was ignored because it lacks a
// name or method.
type EventOutputSkipped struct {
	Index  int
	Output Output
}

func (EventOutputSkipped) event() {}

// Interface compliance checks.
var (
	_ Event = EventPromptStarted{}
	_ Event = EventResponse{}
	_ Event = EventOutputApplied{}
	_ Event = EventOutputSkipped{}
)
