package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EmailRecord is the input to a phishing analysis
//
// Every field is optional. A zero EmailRecord is a valid input and analyzes
// as "not phishing".
type EmailRecord struct {
	Sender      string       `json:"sender"`
	Subject     string       `json:"subject"`
	Body        string       `json:"body"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Attachment is a reference to a file attached to an email
//
// Only the metadata travels with the record; the content itself is never
// inspected by the detectors.
type Attachment struct {
	Filename    string `json:"filename,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Size        int64  `json:"size,omitempty"`
}

// String returns a textual form of the attachment handle
func (a Attachment) String() string {
	contentType := a.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return fmt.Sprintf("<attachment %s, %d bytes>", contentType, a.Size)
}

// DisplayName returns the filename, falling back to the handle's string form
// when the reference carries no usable name
func (a Attachment) DisplayName() string {
	if a.Filename != "" {
		return a.Filename
	}
	return a.String()
}

// Verdict is the final binary outcome of an analysis
type Verdict bool

const (
	VerdictPhishing    Verdict = true
	VerdictNotPhishing Verdict = false
)

// String renders the verdict the way it appears in the final stream line
func (v Verdict) String() string {
	if v {
		return "phishing"
	}
	return "not phishing"
}

// Analysis summarizes one run of the pipeline over an email
//
// Nothing here is persisted: the summary exists so that transports can log,
// count and correlate a run after its lines were streamed.
type Analysis struct {
	ID       uuid.UUID     `json:"id"`
	Sender   string        `json:"sender"`
	Verdict  Verdict       `json:"verdict"`
	Flagged  []string      `json:"flagged,omitempty"` // detectors whose result contributed to the verdict
	Lines    []string      `json:"lines,omitempty"`
	Duration time.Duration `json:"duration"`
}
