package credential

import (
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"
)

// EmailValidationResult is produced per email check; not persisted.
type EmailValidationResult struct {
	IsValid     bool     `json:"isValid"`
	Error       string   `json:"error,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// emailPattern is anchored local-part@domain: a permissive RFC-5322-ish local
// part and dot-separated domain labels without leading/trailing hyphens.
var emailPattern = regexp.MustCompile(
	`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`,
)

// domainTypos maps frequently mistyped mail domains to their correction.
var domainTypos = map[string]string{
	"gmial.com":   "gmail.com",
	"gmai.com":    "gmail.com",
	"gmail.co":    "gmail.com",
	"outlookc.om": "outlook.com",
	"hotmial.com": "hotmail.com",
	"yaho.com":    "yahoo.com",
}

// commonDomains backs the fuzzy fallback when the typo table has no entry.
var commonDomains = []string{"gmail.com", "outlook.com", "hotmail.com", "yahoo.com"}

// ValidateEmailFormat checks the structural validity of an email address and
// suggests corrections for near-miss domains. Pure; no I/O.
func ValidateEmailFormat(email string) EmailValidationResult {
	if email == "" {
		return EmailValidationResult{Error: "Email is required"}
	}

	if !emailPattern.MatchString(email) {
		return EmailValidationResult{Error: "Please enter a valid email address"}
	}

	if len(email) > 320 {
		return EmailValidationResult{Error: "Email address is too long"}
	}

	var suggestions []string
	at := strings.IndexByte(email, '@')
	local, domain := email[:at], strings.ToLower(email[at+1:])

	if corrected, ok := domainTypos[domain]; ok {
		suggestions = append(suggestions, local+"@"+corrected)
	} else if corrected := nearestCommonDomain(domain); corrected != "" {
		suggestions = append(suggestions, local+"@"+corrected)
	}

	return EmailValidationResult{IsValid: true, Suggestions: suggestions}
}

// nearestCommonDomain returns a common mail domain one edit away from the
// given domain, or "" when nothing is close enough. Exact matches need no
// suggestion.
func nearestCommonDomain(domain string) string {
	for _, common := range commonDomains {
		if domain == common {
			return ""
		}
	}
	for _, common := range commonDomains {
		if levenshtein.ComputeDistance(domain, common) == 1 {
			return common
		}
	}
	return ""
}
