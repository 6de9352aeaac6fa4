package strength

import "strings"

const (
	LiveMaxScore = 6

	LabelWeak     = "Weak"
	LabelModerate = "Moderate"
	LabelStrong   = "Strong"

	liveSymbols = "!@#$%^&*()_+-=[]{};':\"\\|,.<>/?"
)

// Live is the lightweight length and character-class scorer
type Live struct{}

// Name implements Scorer
func (Live) Name() string {
	return "live"
}

// Score implements Scorer
func (Live) Score(password string) Result {
	return Quick(password)
}

// Quick scores by length (>=12 chars +2, >=8 chars +1) plus one point for
// each of uppercase, lowercase, digit and symbol present.
func Quick(password string) Result {
	score := 0
	switch n := len([]rune(password)); {
	case n >= 12:
		score += 2
	case n >= 8:
		score++
	}

	c := classify(password)
	for _, ok := range []bool{c.upper, c.lower, c.digit, c.symbol} {
		if ok {
			score++
		}
	}

	label := LabelStrong
	switch {
	case score <= 2:
		label = LabelWeak
	case score <= 4:
		label = LabelModerate
	}

	return Result{
		Score:    score,
		MaxScore: LiveMaxScore,
		Label:    label,
	}
}

type classes struct {
	upper, lower, digit, symbol bool
}

func classify(password string) classes {
	var c classes
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			c.upper = true
		case r >= 'a' && r <= 'z':
			c.lower = true
		case r >= '0' && r <= '9':
			c.digit = true
		case strings.ContainsRune(liveSymbols, r):
			c.symbol = true
		}
	}
	return c
}
