package detection

import (
	"fmt"
	"iter"

	"github.com/stoik/phishing-analyzer/internal/domain"
)

// EventKind tells announcement, result and verdict events apart
type EventKind int

const (
	EventAnnounce EventKind = iota
	EventResult
	EventVerdict
)

func (k EventKind) String() string {
	switch k {
	case EventAnnounce:
		return "announce"
	case EventResult:
		return "result"
	case EventVerdict:
		return "verdict"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is one step of a pipeline run
//
// Line is the newline-terminated text streamed to the caller. Result is set
// on EventResult, Verdict on EventVerdict.
type Event struct {
	Kind       EventKind
	Capability string
	Line       string
	Result     Result
	Verdict    domain.Verdict
}

// Pipeline runs the registered detectors one after the other and combines
// their results into a verdict
//
// A Pipeline holds no per-run state and can be shared between goroutines;
// each call to Events starts an independent run.
type Pipeline struct {
	registry *Registry
}

// NewPipeline creates a pipeline over the registry's capabilities
func NewPipeline(registry *Registry) *Pipeline {
	return &Pipeline{registry: registry}
}

// NewDefaultPipeline creates a pipeline over DefaultRegistry
func NewDefaultPipeline() *Pipeline {
	return NewPipeline(DefaultRegistry())
}

// Events returns the lazy event sequence for one analysis
//
// Each detector is announced before it runs and its result is yielded right
// after it returns. The verdict event is always the last one. A detector only
// runs once the consumer asked for the event following its announcement, so
// stopping the iteration early skips the remaining detectors.
//
// The email is phishing when any detector result is flagged. A handler that
// panics aborts the sequence without a verdict.
func (p *Pipeline) Events(email domain.EmailRecord) iter.Seq[Event] {
	capabilities := p.registry.Capabilities()

	return func(yield func(Event) bool) {
		verdict := domain.VerdictNotPhishing

		for _, c := range capabilities {
			if !yield(Event{
				Kind:       EventAnnounce,
				Capability: c.Name,
				Line:       c.Announcement + "\n",
			}) {
				return
			}

			result := c.Handler(email)
			if result.Flagged() {
				verdict = domain.VerdictPhishing
			}

			if !yield(Event{
				Kind:       EventResult,
				Capability: c.Name,
				Line:       fmt.Sprintf("%s: %s\n", c.Label, result),
				Result:     result,
			}) {
				return
			}
		}

		yield(Event{
			Kind:    EventVerdict,
			Line:    fmt.Sprintf("Final conclusion: %s\n", verdict),
			Verdict: verdict,
		})
	}
}

// Lines returns the text of the event sequence
func (p *Pipeline) Lines(email domain.EmailRecord) iter.Seq[string] {
	return func(yield func(string) bool) {
		for event := range p.Events(email) {
			if !yield(event.Line) {
				return
			}
		}
	}
}

// AnalyzeEmailStream streams the analysis of an email with the default
// detectors
func AnalyzeEmailStream(email domain.EmailRecord) iter.Seq[string] {
	return NewDefaultPipeline().Lines(email)
}
