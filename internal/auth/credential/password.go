// Package credential holds the pure credential checks backing the
// registration flow: password strength scoring and email format validation.
// Everything here is side-effect free and safe to call per keystroke.
package credential

import (
	"strings"
	"unicode/utf8"
)

// PasswordStrength is the discrete strength level shown to users.
type PasswordStrength string

const (
	StrengthWeak   PasswordStrength = "weak"
	StrengthFair   PasswordStrength = "fair"
	StrengthGood   PasswordStrength = "good"
	StrengthStrong PasswordStrength = "strong"
)

// PasswordStrengthInfo reports the score, level, feedback, and the individual
// criteria so the UI can render a checklist.
type PasswordStrengthInfo struct {
	Score           float64          `json:"score"`
	Level           PasswordStrength `json:"level"`
	Feedback        []string         `json:"feedback"`
	HasMinLength    bool             `json:"hasMinLength"`
	HasUppercase    bool             `json:"hasUppercase"`
	HasLowercase    bool             `json:"hasLowercase"`
	HasNumbers      bool             `json:"hasNumbers"`
	HasSpecialChars bool             `json:"hasSpecialChars"`
}

// commonPatterns are substrings that sink a password regardless of variety.
var commonPatterns = []string{"123", "abc", "password", "qwerty", "admin"}

// CalculatePasswordStrength scores a password on an additive/subtractive
// scale. The level thresholds are evaluated on the raw score BEFORE clamping;
// only the returned numeric score is clamped to [0, 4]. Changing that order
// changes user-visible labels, so keep it.
func CalculatePasswordStrength(password string) PasswordStrengthInfo {
	feedback := []string{}
	score := 0.0

	length := utf8.RuneCountInString(password)

	hasMinLength := length >= 8
	hasUppercase := containsRange(password, 'A', 'Z')
	hasLowercase := containsRange(password, 'a', 'z')
	hasNumbers := containsRange(password, '0', '9')
	hasSpecialChars := containsSpecial(password)

	// Length scoring
	if hasMinLength {
		score += 1
	} else {
		feedback = append(feedback, "Use at least 8 characters")
	}
	if length >= 12 {
		score += 0.5
	}

	// Character variety scoring
	if hasUppercase {
		score += 1
	} else {
		feedback = append(feedback, "Add uppercase letters")
	}
	if hasLowercase {
		score += 1
	} else {
		feedback = append(feedback, "Add lowercase letters")
	}
	if hasNumbers {
		score += 1
	} else {
		feedback = append(feedback, "Add numbers")
	}
	if hasSpecialChars {
		score += 1
	} else {
		feedback = append(feedback, "Add special characters (!@#$%^&*)")
	}

	// Bonus points for longer passwords
	if length >= 16 {
		score += 0.5
	}

	// Penalties for lazy patterns
	if hasRepeatedRun(password) {
		score -= 0.5
		feedback = append(feedback, "Avoid repeating characters")
	}
	if containsCommonPattern(password) {
		score -= 1
		feedback = append(feedback, "Avoid common patterns")
	}

	// Level uses the unclamped score.
	var level PasswordStrength
	switch {
	case score >= 4.5:
		level = StrengthStrong
	case score >= 3.5:
		level = StrengthGood
	case score >= 2:
		level = StrengthFair
	default:
		level = StrengthWeak
	}

	if level == StrengthStrong && len(feedback) == 0 {
		feedback = append(feedback, "Excellent password strength!")
	} else if level == StrengthGood && len(feedback) == 0 {
		feedback = append(feedback, "Good password strength")
	}

	return PasswordStrengthInfo{
		Score:           clamp(score, 0, 4),
		Level:           level,
		Feedback:        feedback,
		HasMinLength:    hasMinLength,
		HasUppercase:    hasUppercase,
		HasLowercase:    hasLowercase,
		HasNumbers:      hasNumbers,
		HasSpecialChars: hasSpecialChars,
	}
}

func containsRange(s string, lo, hi rune) bool {
	for _, r := range s {
		if r >= lo && r <= hi {
			return true
		}
	}
	return false
}

func containsSpecial(s string) bool {
	for _, r := range s {
		if !isASCIIAlnum(r) {
			return true
		}
	}
	return false
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// hasRepeatedRun reports whether any character appears 3+ times in a row.
func hasRepeatedRun(s string) bool {
	var prev rune
	run := 0
	for _, r := range s {
		if r == prev {
			run++
			if run >= 3 {
				return true
			}
		} else {
			prev = r
			run = 1
		}
	}
	return false
}

func containsCommonPattern(s string) bool {
	lower := strings.ToLower(s)
	for _, p := range commonPatterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
