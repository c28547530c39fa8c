package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stoik/phishing-analyzer/internal/adapters/mime"
	"github.com/stoik/phishing-analyzer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadEmail_FromFlags(t *testing.T) {
	flags := domain.EmailRecord{Sender: "a@example.com", Subject: "s", Body: "b"}

	email, err := loadEmail(zap.NewNop(), "", flags)
	require.NoError(t, err)
	assert.Equal(t, flags, *email)
}

func TestLoadEmail_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "message.eml")
	require.NoError(t, os.WriteFile(path, []byte("From: evil@malicious.com\nSubject: hi\n\nHello\n"), 0o600))

	email, err := loadEmail(zap.NewNop(), path, domain.EmailRecord{Sender: "ignored@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "evil@malicious.com", email.Sender)
	assert.Equal(t, "hi", email.Subject)
}

func TestLoadEmail_Errors(t *testing.T) {
	_, err := loadEmail(zap.NewNop(), filepath.Join(t.TempDir(), "missing.eml"), domain.EmailRecord{})
	assert.ErrorContains(t, err, "failed to open message")

	empty := filepath.Join(t.TempDir(), "empty.eml")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	_, err = loadEmail(zap.NewNop(), empty, domain.EmailRecord{})
	assert.ErrorIs(t, err, mime.ErrEmptyMessage)
}
