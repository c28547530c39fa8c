package detection

import "strings"

// blacklistedDomainSuffix is matched case-sensitively against the full sender
// address, "@" included
const blacklistedDomainSuffix = "@malicious.com"

// CheckSenderBlacklist reports whether the sender address is blacklisted
//
// There is no blacklist service behind this check: an address is blacklisted
// when it ends with the malicious.com domain.
func CheckSenderBlacklist(sender string) SenderResult {
	return SenderResult(strings.HasSuffix(sender, blacklistedDomainSuffix))
}
