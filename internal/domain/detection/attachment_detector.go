package detection

import "github.com/stoik/phishing-analyzer/internal/domain"

// CheckAttachments scans every attachment for encryption and viruses
//
// The scan is a placeholder: every attachment is reported clean and
// unencrypted. The body is part of the signature for scanners that need the
// surrounding message (password hints for encrypted archives, for example).
func CheckAttachments(attachments []domain.Attachment, body string) AttachmentReport {
	report := make(AttachmentReport, 0, len(attachments))
	for _, attachment := range attachments {
		report = append(report, AttachmentScan{
			Filename:  attachment.DisplayName(),
			Encrypted: false,
			Virus:     false,
		})
	}
	return report
}
