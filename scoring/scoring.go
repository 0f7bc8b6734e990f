// Package scoring turns the options selected in a questionnaire submission into a total score,
// a result label and, for multi-dimensional instruments, per-dimension results.
//
// The package performs no I/O: callers load the answers and the rule set of a test first and
// hand them to Engine.Score, which is safe for concurrent use.
package scoring

import (
	"errors"
	"strconv"
)

// TestType selects the scoring strategy of a test.
type TestType string

const (
	TypeAdditive TestType = "additive"
	TypeMBTI     TestType = "mbti"
	TypeHPLP     TestType = "hpls"
	TypeMPS      TestType = "mps"
)

// ParseTestType maps a stored test_type to its strategy. Unknown types score additively so
// that new point-scale questionnaires need no code.
func ParseTestType(s string) TestType {
	switch TestType(s) {
	case TypeMBTI, TypeHPLP, TypeMPS:
		return TestType(s)
	}
	return TypeAdditive
}

// Separator joins a rule title and its description in a stored result label.
// Clients split on it, so it must not change.
const Separator = "<SEP>"

// UndefinedResult is stored when no total-score rule matches.
const UndefinedResult = "undefined result"

// PointValue is an option score read as points.
type PointValue int

// TraitCode is an option score read as an MBTI trait identifier (1..8).
type TraitCode int

// Answer is one selected option as seen by the engine.
type Answer struct {
	// OrderIndex is the 1-based position of the answered question; 0 when the question could
	// not be resolved.
	OrderIndex int
	Score      int
}

// Points reads the score as a point value.
func (a Answer) Points() PointValue { return PointValue(a.Score) }

// Trait reads the score as an MBTI trait code.
func (a Answer) Trait() TraitCode { return TraitCode(a.Score) }

// Rule is a scoring range rule. A nil DimensionCode scopes the rule to the total score.
type Rule struct {
	MinScore      int
	MaxScore      *int
	ResultRange   string
	Description   *string
	DimensionCode *string
}

// Label is a resolved result title with its optional description.
type Label struct {
	Title       string
	Description string
}

// String renders the label in its stored form.
func (l Label) String() string {
	if l.Description == "" {
		return l.Title
	}
	return l.Title + Separator + l.Description
}

// DimensionResult is the score and label of one dimension.
type DimensionResult struct {
	Code        string `json:"dimension_code"`
	Score       int    `json:"score"`
	ResultRange string `json:"result_range"`
}

// Result is the outcome of scoring one submission.
type Result struct {
	TotalScore int               `json:"total_score"`
	Result     string            `json:"result"`
	Dimensions []DimensionResult `json:"dimensions"`
}

// ValidationError rejects a submission before anything is scored or stored.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

var (
	ErrNoAnswers     = &ValidationError{Reason: "no answers submitted"}
	ErrInvalidOption = &ValidationError{Reason: "invalid option reference"}
)

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func itoa(n int) string { return strconv.Itoa(n) }
