package strength

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/nbutton23/zxcvbn-go"
)

const (
	StrictMaxScore     = 4
	RecommendedLength  = 12
	minUserInputLength = 3
	// zxcvbn matching is superlinear in length; only this prefix is scored
	maxScoredRunes = 100
)

// Strict estimates guessability with zxcvbn
type Strict struct {
	// UserInputs are penalised when they appear in the password
	UserInputs []string
}

// Name implements Scorer
func (Strict) Name() string {
	return "strict"
}

// Score implements Scorer
func (s Strict) Score(password string) Result {
	return Estimate(password, s.UserInputs...)
}

// Estimate scores password with zxcvbn. userInputs, such as the username,
// lower the score when the password contains them.
func Estimate(password string, userInputs ...string) Result {
	result := Result{
		MaxScore:  StrictMaxScore,
		CrackTime: CrackTimes[0],
	}

	if password != "" {
		match := zxcvbn.PasswordStrength(scoredPrefix(password), userInputs)
		result.Score = clamp(match.Score, 0, StrictMaxScore)
		result.Log10Guesses = match.Entropy * math.Log10(2)
		result.CrackTime = crackTimeBucket(result.Log10Guesses)
	}

	result.Label = strictLabel(result.Score)
	result.Suggestions = suggest(password, result.Score, userInputs)
	return result
}

// scoredPrefix returns at most maxScoredRunes runes of password
func scoredPrefix(password string) string {
	n := 0
	for i := range password {
		if n == maxScoredRunes {
			return password[:i]
		}
		n++
	}
	return password
}

func suggest(password string, score int, userInputs []string) []string {
	var out []string

	if password == "" {
		return []string{"Enter a password"}
	}

	if len([]rune(password)) < RecommendedLength {
		out = append(out, fmt.Sprintf("Use at least %d characters", RecommendedLength))
	}

	c := classify(password)
	var missing []string
	if !c.upper {
		missing = append(missing, "uppercase letters")
	}
	if !c.lower {
		missing = append(missing, "lowercase letters")
	}
	if !c.digit {
		missing = append(missing, "digits")
	}
	if !c.symbol {
		missing = append(missing, "symbols")
	}
	if len(missing) > 0 && score < StrictMaxScore {
		out = append(out, "Add "+joinWords(missing))
	}

	if hasRepeat(password, 3) {
		out = append(out, "Avoid repeated characters like \"aaa\"")
	}
	if hasSequence(password, 3) {
		out = append(out, "Avoid sequences like \"abc\" or \"123\"")
	}

	lower := strings.ToLower(password)
	for _, in := range userInputs {
		if len(in) >= minUserInputLength && strings.Contains(lower, strings.ToLower(in)) {
			out = append(out, "Avoid using your username in the password")
			break
		}
	}

	if len(out) == 0 && score < 3 {
		out = append(out, "Add another word or two. Uncommon words are better")
	}
	return out
}

func joinWords(words []string) string {
	switch len(words) {
	case 0:
		return ""
	case 1:
		return words[0]
	}
	return strings.Join(words[:len(words)-1], ", ") + " and " + words[len(words)-1]
}

func hasRepeat(s string, n int) bool {
	run := 1
	rs := []rune(s)
	for i := 1; i < len(rs); i++ {
		if rs[i] == rs[i-1] {
			run++
			if run >= n {
				return true
			}
		} else {
			run = 1
		}
	}
	return false
}

func hasSequence(s string, n int) bool {
	run := 1
	rs := []rune(strings.ToLower(s))
	for i := 1; i < len(rs); i++ {
		if rs[i] == rs[i-1]+1 && (unicode.IsLetter(rs[i]) || unicode.IsDigit(rs[i])) {
			run++
			if run >= n {
				return true
			}
		} else {
			run = 1
		}
	}
	return false
}
