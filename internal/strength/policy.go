package strength

import (
	"errors"
	"fmt"
)

const DefaultMinScore = 3

var ErrPasswordTooWeak = errors.New("password too weak")

// WeakPasswordError carries the strict estimate of a rejected password so
// callers can show its suggestions.
type WeakPasswordError struct {
	Result   Result
	MinScore int
}

func (e *WeakPasswordError) Error() string {
	return fmt.Sprintf("%s: %s (score %d, need %d)", ErrPasswordTooWeak, e.Result.Label, e.Result.Score, e.MinScore)
}

func (e *WeakPasswordError) Unwrap() error {
	return ErrPasswordTooWeak
}

// Policy gates passwords on the strict score
type Policy struct {
	MinScore int
}

// NewPolicy clamps minScore into 0..4
func NewPolicy(minScore int) Policy {
	return Policy{MinScore: clamp(minScore, 0, StrictMaxScore)}
}

// Check returns the strict estimate and a *WeakPasswordError when the score
// is below MinScore.
func (p Policy) Check(password string, userInputs ...string) (Result, error) {
	result := Estimate(password, userInputs...)
	if result.Score < p.MinScore || password == "" {
		return result, &WeakPasswordError{Result: result, MinScore: p.MinScore}
	}
	return result, nil
}
