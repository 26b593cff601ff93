package passgen

import "strings"

const strongFeedback = "Strong password!"

// Result is a strength score in [0, 100] with a short hint on how to improve.
type Result struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

// Strength scores a password by length and by the character classes present.
//
//	length >= 12: +25, length >= 8: +15
//	upper +20, lower +20, digit +20, symbol +15
func Strength(password string) Result {
	var (
		score    int
		feedback []string
	)

	switch n := len([]rune(password)); {
	case n >= 12:
		score += 25
	case n >= 8:
		score += 15
	default:
		feedback = append(feedback, "Use at least 8 characters")
	}

	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			symbol = true
		}
	}

	for _, check := range []struct {
		ok     bool
		points int
		hint   string
	}{
		{upper, 20, "Add uppercase letters"},
		{lower, 20, "Add lowercase letters"},
		{digit, 20, "Add numbers"},
		{symbol, 15, "Add symbols"},
	} {
		if check.ok {
			score += check.points
		} else {
			feedback = append(feedback, check.hint)
		}
	}

	if len(feedback) == 0 {
		return Result{Score: min(score, 100), Feedback: strongFeedback}
	}
	return Result{Score: min(score, 100), Feedback: strings.Join(feedback, ", ")}
}

// Label buckets a score for display.
func (r Result) Label() string {
	switch {
	case r.Score >= 80:
		return "strong"
	case r.Score >= 50:
		return "medium"
	default:
		return "weak"
	}
}
