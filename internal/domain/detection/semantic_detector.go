package detection

import "strings"

// suspiciousPhrases are matched as plain substrings of the lower-cased text,
// so "loginwall" matches "login"
var suspiciousPhrases = []string{
	"verify your account",
	"password",
	"bank",
	"urgent",
	"login",
}

// CheckSemantics looks for phishing phrasing in the subject and body
func CheckSemantics(subject, body string) SemanticResult {
	text := strings.ToLower(subject + " " + body)
	return SemanticResult(containsAny(text, suspiciousPhrases))
}
