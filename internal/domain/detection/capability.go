package detection

import (
	"errors"
	"fmt"

	"github.com/stoik/phishing-analyzer/internal/domain"
)

// ErrUnknownCapability is returned when no detector is registered under a name
var ErrUnknownCapability = errors.New("unknown capability")

// Handler runs one detector over an email
//
// Handlers must be total: they return a result for every input and never
// panic on well-formed records.
type Handler func(email domain.EmailRecord) Result

// Capability describes one detector in a form any tool-orchestration layer
// can register: a stable name, a description, and a uniform handler
type Capability struct {
	Name        string
	Description string

	// Announcement is streamed before the handler runs, Label prefixes the
	// line carrying its result
	Announcement string
	Label        string

	Handler Handler
}

// Registry is an ordered set of capabilities
//
// The order is the execution order of the pipeline.
type Registry struct {
	capabilities []Capability
	byName       map[string]int
}

// NewRegistry creates a registry from capabilities in execution order
func NewRegistry(capabilities ...Capability) (*Registry, error) {
	r := &Registry{
		capabilities: make([]Capability, 0, len(capabilities)),
		byName:       make(map[string]int, len(capabilities)),
	}

	for _, c := range capabilities {
		if c.Name == "" {
			return nil, errors.New("capability without a name")
		}
		if c.Handler == nil {
			return nil, fmt.Errorf("capability %q has no handler", c.Name)
		}
		if _, exists := r.byName[c.Name]; exists {
			return nil, fmt.Errorf("duplicate capability %q", c.Name)
		}
		r.byName[c.Name] = len(r.capabilities)
		r.capabilities = append(r.capabilities, c)
	}

	return r, nil
}

// DefaultRegistry returns the five standard detectors in pipeline order:
// sender, links, attachments, QR codes, semantics
func DefaultRegistry() *Registry {
	r, err := NewRegistry(
		Capability{
			Name:         "check_sender_blacklist",
			Description:  "Check if sender is blacklisted",
			Announcement: "Checking sender blacklist...",
			Label:        "Sender blacklisted",
			Handler: func(email domain.EmailRecord) Result {
				return CheckSenderBlacklist(email.Sender)
			},
		},
		Capability{
			Name:         "check_links",
			Description:  "Check links for phishing",
			Announcement: "Checking links...",
			Label:        "Links flagged",
			Handler: func(email domain.EmailRecord) Result {
				return CheckLinks(email.Body)
			},
		},
		Capability{
			Name:         "check_attachments",
			Description:  "Scan attachments",
			Announcement: "Checking attachments...",
			Label:        "Attachment report",
			Handler: func(email domain.EmailRecord) Result {
				return CheckAttachments(email.Attachments, email.Body)
			},
		},
		Capability{
			Name:         "check_qr_codes",
			Description:  "Inspect QR codes",
			Announcement: "Checking QR codes...",
			Label:        "QR code report",
			Handler: func(email domain.EmailRecord) Result {
				return CheckQRCodes(email.Body)
			},
		},
		Capability{
			Name:         "check_semantics",
			Description:  "Analyze semantics",
			Announcement: "Analyzing semantics...",
			Label:        "Semantic phishing flag",
			Handler: func(email domain.EmailRecord) Result {
				return CheckSemantics(email.Subject, email.Body)
			},
		},
	)
	if err != nil {
		// The default set is static; an error here is a programming mistake.
		panic(err)
	}
	return r
}

// Capabilities returns the registered capabilities in execution order
func (r *Registry) Capabilities() []Capability {
	return append([]Capability(nil), r.capabilities...)
}

// Lookup finds a capability by name
func (r *Registry) Lookup(name string) (Capability, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Capability{}, false
	}
	return r.capabilities[i], true
}

// Invoke runs a single capability over an email
func (r *Registry) Invoke(name string, email domain.EmailRecord) (Result, error) {
	c, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCapability, name)
	}
	return c.Handler(email), nil
}
