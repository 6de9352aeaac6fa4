// Package strength scores candidate passwords.
//
// Two independent scorers are provided. Strict wraps a zxcvbn estimate and
// gates registration through Policy. Live is a cheap length and
// character-class count meant for feedback while the user types; it never
// gates anything.
package strength

import (
	"math"
	"strings"
)

// Scorer rates a password
type Scorer interface {
	Name() string
	Score(password string) Result
}

// Result is the outcome of scoring a password
type Result struct {
	Score        int      // 0..MaxScore
	MaxScore     int      // 4 for Strict, 6 for Live
	Label        string   // Human readable bucket
	Suggestions  []string // Actionable hints, may be empty
	Log10Guesses float64  // Strict only
	CrackTime    string   // Strict only
}

// Feedback returns the suggestions joined into one sentence, or the label
// when there is nothing to suggest.
func (r Result) Feedback() string {
	if len(r.Suggestions) == 0 {
		return r.Label
	}
	return strings.Join(r.Suggestions, ". ")
}

// StrictLabels maps strict scores 0..4 to labels
var StrictLabels = []string{
	"Very Weak",
	"Weak",
	"Moderate",
	"Strong",
	"Very Strong",
}

// CrackTimes are ordered by floor(log10(guesses))
var CrackTimes = []string{
	"Instant",
	"Less than a second",
	"Few seconds",
	"Minutes",
	"Hours",
	"Days",
	"Weeks",
	"Months",
	"Years",
	"Centuries",
}

// crackTimeBucket clamps floor(log10Guesses) into CrackTimes
func crackTimeBucket(log10Guesses float64) string {
	if math.IsNaN(log10Guesses) {
		return CrackTimes[0]
	}
	idx := int(math.Floor(log10Guesses))
	if idx < 0 {
		idx = 0
	}
	if idx > len(CrackTimes)-1 {
		idx = len(CrackTimes) - 1
	}
	return CrackTimes[idx]
}

func strictLabel(score int) string {
	return StrictLabels[clamp(score, 0, len(StrictLabels)-1)]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
