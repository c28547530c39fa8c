package detection

import (
	"slices"
	"strconv"
	"strings"
)

// Result is the outcome of a single detector
//
// Flagged reports whether the result on its own makes the email phishing;
// String renders the result as it appears after the label on a stream line.
type Result interface {
	Flagged() bool
	String() string
}

// SenderResult reports whether the sender address is blacklisted
type SenderResult bool

func (r SenderResult) Flagged() bool  { return bool(r) }
func (r SenderResult) String() string { return strconv.FormatBool(bool(r)) }

// LinkReport maps every URL found in the body to its phishing flag
type LinkReport map[string]bool

// Flagged is true when at least one URL is marked as phishing
func (r LinkReport) Flagged() bool {
	for _, phishing := range r {
		if phishing {
			return true
		}
	}
	return false
}

// String renders the report with URLs in lexical order so that two runs
// over the same body print the same line
func (r LinkReport) String() string {
	urls := make([]string, 0, len(r))
	for url := range r {
		urls = append(urls, url)
	}
	slices.Sort(urls)

	parts := make([]string, 0, len(urls))
	for _, url := range urls {
		parts = append(parts, url+": "+strconv.FormatBool(r[url]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// AttachmentScan is the scan outcome for one attachment
type AttachmentScan struct {
	Filename  string `json:"filename"`
	Encrypted bool   `json:"encrypted"`
	Virus     bool   `json:"virus"`
}

func (s AttachmentScan) String() string {
	return "{filename: " + s.Filename +
		", encrypted: " + strconv.FormatBool(s.Encrypted) +
		", virus: " + strconv.FormatBool(s.Virus) + "}"
}

// AttachmentReport holds one scan per attachment, in input order
type AttachmentReport []AttachmentScan

// Flagged is true when any attachment carries a virus. Encryption alone does
// not flag an email.
func (r AttachmentReport) Flagged() bool {
	for _, scan := range r {
		if scan.Virus {
			return true
		}
	}
	return false
}

func (r AttachmentReport) String() string {
	parts := make([]string, 0, len(r))
	for _, scan := range r {
		parts = append(parts, scan.String())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// QRCodeReport lists the URLs decoded from QR codes
type QRCodeReport []string

// Flagged is true as soon as any QR code decoded to a URL, whatever the URL.
// Unlike LinkReport there is no per-URL flag.
func (r QRCodeReport) Flagged() bool { return len(r) > 0 }

func (r QRCodeReport) String() string {
	return "[" + strings.Join(r, ", ") + "]"
}

// SemanticResult reports whether suspicious phrasing was found in the text
type SemanticResult bool

func (r SemanticResult) Flagged() bool  { return bool(r) }
func (r SemanticResult) String() string { return strconv.FormatBool(bool(r)) }
