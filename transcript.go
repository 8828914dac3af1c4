package passage

import "time"

// Transcript records what a run did, prompt by prompt.
type Transcript struct {
	Input      string
	StartedAt  time.Time
	FinishedAt time.Time
	Steps      []Step
	Memory     map[string]string
}

// Step is the record of a single executed prompt.
type Step struct {
	Index    int
	Name     string
	Mode     string // "pass-through" or "invoke"
	Provider string
	Model    string
	Message  string
	Response string
	Duration time.Duration
	Applied  []Output
	Skipped  []Output
}

// Recorder folds run events into a Transcript. Pass Handle to
// WithEventHandler. Backend credentials are never recorded.
type Recorder struct {
	t   Transcript
	now func() time.Time
}

// NewRecorder creates a Recorder for a run with the given initial input.
func NewRecorder(input string) *Recorder {
	r := &Recorder{now: time.Now}
	r.t.Input = input
	r.t.StartedAt = r.now()
	return r
}

// Handle records a single event.
func (r *Recorder) Handle(evt Event) {
	switch e := evt.(type) {
	case EventPromptStarted:
		s := Step{Index: e.Index, Name: e.Name, Message: e.Message, Mode: "pass-through"}
		if inv, ok := e.Resolution.(Invoke); ok {
			s.Mode = "invoke"
			s.Provider = inv.Provider
			s.Model = inv.Model
		}
		r.t.Steps = append(r.t.Steps, s)
	case EventResponse:
		if s := r.current(e.Index); s != nil {
			s.Response = e.Response
			s.Duration = e.Duration
		}
	case EventOutputApplied:
		if s := r.current(e.Index); s != nil {
			s.Applied = append(s.Applied, e.Output)
		}
	case EventOutputSkipped:
		if s := r.current(e.Index); s != nil {
			s.Skipped = append(s.Skipped, e.Output)
		}
	}
}

func (r *Recorder) current(index int) *Step {
	if n := len(r.t.Steps); n > 0 && r.t.Steps[n-1].Index == index {
		return &r.t.Steps[n-1]
	}
	return nil
}

// Transcript returns the recorded run, stamped with the final memory.
func (r *Recorder) Transcript(memory map[string]string) Transcript {
	t := r.t
	t.Steps = append([]Step(nil), r.t.Steps...)
	t.Memory = memory
	t.FinishedAt = r.now()
	return t
}
