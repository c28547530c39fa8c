package detection

import "regexp"

// urlPattern matches an http(s) scheme followed by the longest run of
// non-whitespace characters. \s alone misses \v and the Unicode separators.
var urlPattern = regexp.MustCompile(`https?://[^\s\v\x{85}\p{Z}]+`)

// CheckLinks finds the URLs in the body and flags the suspicious ones
//
// Link reputation is not looked up yet, so every URL found is reported as
// not phishing. Repeated URLs collapse into a single entry.
func CheckLinks(body string) LinkReport {
	report := make(LinkReport)
	for _, url := range urlPattern.FindAllString(body, -1) {
		report[url] = false
	}
	return report
}
