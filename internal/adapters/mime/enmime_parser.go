package mime

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jhillyerd/enmime"
	"github.com/stoik/phishing-analyzer/internal/domain"
	"go.uber.org/zap"
)

// ErrEmptyMessage is returned when the input holds no message at all
var ErrEmptyMessage = errors.New("empty message")

// EnmimeParser implements ports.MessageParser on top of enmime
type EnmimeParser struct {
	logger *zap.Logger
}

// NewEnmimeParser creates a new parser
func NewEnmimeParser(logger *zap.Logger) *EnmimeParser {
	return &EnmimeParser{logger: logger}
}

// Parse reads a raw RFC 5322 message and extracts the fields the detectors
// look at. Attachments and inline parts both become attachment references.
func (p *EnmimeParser) Parse(r io.Reader) (*domain.EmailRecord, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read message: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, ErrEmptyMessage
	}

	env, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}

	// enmime recovers from most malformations and records them instead
	for _, perr := range env.Errors {
		p.logger.Debug("MIME parse warning", zap.String("error", perr.Error()))
	}

	record := &domain.EmailRecord{
		Sender:  p.sender(env),
		Subject: env.GetHeader("Subject"),
		Body:    env.Text,
	}
	if strings.TrimSpace(record.Body) == "" {
		record.Body = env.HTML
	}

	for _, part := range append(env.Attachments, env.Inlines...) {
		record.Attachments = append(record.Attachments, domain.Attachment{
			Filename:    part.FileName,
			ContentType: part.ContentType,
			Size:        int64(len(part.Content)),
		})
	}

	return record, nil
}

// sender returns the bare From address, or the raw header if it does not
// parse (graceful degradation)
func (p *EnmimeParser) sender(env *enmime.Envelope) string {
	addresses, err := env.AddressList("From")
	if err != nil || len(addresses) == 0 {
		from := env.GetHeader("From")
		if from != "" {
			p.logger.Debug("Failed to parse From address", zap.String("from", from), zap.Error(err))
		}
		return from
	}
	return addresses[0].Address
}
