package ports

import (
	"io"

	"github.com/stoik/phishing-analyzer/internal/domain"
)

// MessageParser builds an email record from a raw RFC 5322 message
type MessageParser interface {
	Parse(r io.Reader) (*domain.EmailRecord, error)
}
