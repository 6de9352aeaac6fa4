package strength

import (
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuick(t *testing.T) {
	tests := []struct {
		password string
		score    int
		label    string
	}{
		{"", 0, LabelWeak},
		{"abc", 1, LabelWeak},
		{"abcdefgh", 2, LabelWeak},
		{"abcdefghijkl", 3, LabelModerate},
		{"Abcdefgh1", 4, LabelModerate},
		{"Abcdefgh1!", 5, LabelStrong},
		{"Abcdefghijk1!", 6, LabelStrong},
		{"ABC123", 2, LabelWeak},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			r := Quick(tt.password)
			assert.Equal(t, tt.score, r.Score)
			assert.Equal(t, tt.label, r.Label)
			assert.Equal(t, LiveMaxScore, r.MaxScore)
		})
	}
}

func TestEstimate_WeakPassword(t *testing.T) {
	r := Estimate("password")
	assert.Equal(t, 0, r.Score)
	assert.Equal(t, "Very Weak", r.Label)
	assert.NotEmpty(t, r.Suggestions)
	assert.Contains(t, CrackTimes, r.CrackTime)
	assert.Equal(t, StrictMaxScore, r.MaxScore)
}

func TestEstimate_StrongPassword(t *testing.T) {
	r := Estimate("x7#Kq9!vLm2$Rw8@Tz")
	assert.GreaterOrEqual(t, r.Score, 3)
	assert.Greater(t, r.Log10Guesses, 5.0)
	assert.Contains(t, CrackTimes, r.CrackTime)
}

func TestEstimate_Empty(t *testing.T) {
	r := Estimate("")
	assert.Equal(t, 0, r.Score)
	assert.Equal(t, CrackTimes[0], r.CrackTime)
	assert.Equal(t, []string{"Enter a password"}, r.Suggestions)
}

func TestEstimate_UserInputSuggestion(t *testing.T) {
	r := Estimate("AliceAlice2024!", "alice")
	assert.Contains(t, r.Suggestions, "Avoid using your username in the password")
}

func TestCrackTimeBucket_Clamps(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{-3, "Instant"},
		{0, "Instant"},
		{0.99, "Instant"},
		{1.5, "Less than a second"},
		{9.2, "Centuries"},
		{42, "Centuries"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, crackTimeBucket(tt.in), "log10=%v", tt.in)
	}
}

func TestSuggest_Patterns(t *testing.T) {
	s := suggest("aaab", 0, nil)
	assert.Contains(t, s, "Avoid repeated characters like \"aaa\"")
	assert.Contains(t, s, "Use at least 12 characters")
	assert.Contains(t, s, "Add uppercase letters, digits and symbols")

	s = suggest("xabcx", 0, nil)
	assert.Contains(t, s, "Avoid sequences like \"abc\" or \"123\"")
}

func TestResult_Feedback(t *testing.T) {
	assert.Equal(t, "Strong", Result{Label: "Strong"}.Feedback())
	assert.Equal(t, "a. b", Result{Label: "Weak", Suggestions: []string{"a", "b"}}.Feedback())
}

func TestScorers_AreIndependent(t *testing.T) {
	scorers := []Scorer{Strict{}, Live{}}
	names := map[string]bool{}
	for _, s := range scorers {
		names[s.Name()] = true
	}
	assert.Len(t, names, 2)

	// "Password1!" looks strong to the class counter but is a common password
	live := Live{}.Score("Password1!")
	strict := Strict{}.Score("Password1!")
	assert.Equal(t, LabelStrong, live.Label)
	assert.Less(t, strict.Score, 3)
}

func TestPolicy(t *testing.T) {
	p := NewPolicy(DefaultMinScore)

	result, err := p.Check("password")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPasswordTooWeak))

	var weak *WeakPasswordError
	require.ErrorAs(t, err, &weak)
	assert.Equal(t, result.Suggestions, weak.Result.Suggestions)
	assert.NotEmpty(t, weak.Result.Suggestions)

	_, err = p.Check("x7#Kq9!vLm2$Rw8@Tz")
	assert.NoError(t, err)
}

func TestPolicy_Clamp(t *testing.T) {
	assert.Equal(t, 0, NewPolicy(-1).MinScore)
	assert.Equal(t, StrictMaxScore, NewPolicy(10).MinScore)

	// Even a zero threshold never accepts an empty password
	_, err := NewPolicy(0).Check("")
	assert.ErrorIs(t, err, ErrPasswordTooWeak)
}

func TestEstimate_LongPasswordIsBounded(t *testing.T) {
	long := strings.Repeat("x9!Kq", 2000)

	start := time.Now()
	result := Estimate(long)
	elapsed := time.Since(start)

	assert.Less(t, elapsed, 2*time.Second)
	assert.Equal(t, StrictMaxScore, result.MaxScore)
	assert.NotEmpty(t, result.Label)
}

func TestScoredPrefix(t *testing.T) {
	assert.Equal(t, "short", scoredPrefix("short"))

	exact := strings.Repeat("a", maxScoredRunes)
	assert.Equal(t, exact, scoredPrefix(exact))

	multi := strings.Repeat("é", maxScoredRunes+50)
	got := scoredPrefix(multi)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, maxScoredRunes, utf8.RuneCountInString(got))
}
