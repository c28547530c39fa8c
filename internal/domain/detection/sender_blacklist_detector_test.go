package detection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckSenderBlacklist(t *testing.T) {
	tests := []struct {
		name     string
		sender   string
		expected bool
	}{
		{name: "Malicious domain - blacklisted", sender: "evil@malicious.com", expected: true},
		{name: "Bare suffix - blacklisted", sender: "@malicious.com", expected: true},
		{name: "Regular sender - not blacklisted", sender: "user@example.com", expected: false},
		{name: "Empty sender - not blacklisted", sender: "", expected: false},
		{name: "Upper case domain - match is case-sensitive", sender: "evil@MALICIOUS.COM", expected: false},
		{name: "Subdomain - not an exact suffix", sender: "evil@mail.malicious.com", expected: false},
		{name: "Lookalike domain - not blacklisted", sender: "evil@notmalicious.com", expected: false},
		{name: "Trailing text - not blacklisted", sender: "evil@malicious.com.au", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CheckSenderBlacklist(tt.sender)
			assert.Equal(t, tt.expected, bool(result))
			assert.Equal(t, tt.expected, result.Flagged())
		})
	}
}
