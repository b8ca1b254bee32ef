package quiz

import (
	"fmt"
	"math"
	"strconv"
)

// GradeResult is the outcome of auto-scoring one submission.
type GradeResult struct {
	// Score is nil when manual grading is required: the quiz contains
	// an open question, or there is nothing auto-gradable.
	Score            *float64
	TotalAutoPoints  float64
	EarnedAutoPoints float64
	HasOpen          bool
}

// Grade scores answers against the question list. Questions are matched
// to answers by their zero-based position, stringified, which is how
// submissions key their answer maps. The pass is deterministic: the
// same (questions, answers) pair always yields the same result.
//
// A quiz mixing auto-gradable and open questions is not partially
// scored; the whole submission waits for a grader.
func Grade(scale float64, qs []Question, answers map[string]interface{}) GradeResult {
	var res GradeResult
	for i, q := range qs {
		ans := answers[strconv.Itoa(i)]
		pts := q.PointsOrDefault()
		switch q.Type {
		case QTypeSingleChoice:
			res.TotalAutoPoints += pts
			if coerceString(ans) == coerceString(q.CorrectOption) {
				res.EarnedAutoPoints += pts
			}
		case QTypeBoolean:
			res.TotalAutoPoints += pts
			if coerceBool(ans) == coerceBool(q.CorrectBool) {
				res.EarnedAutoPoints += pts
			}
		default:
			// open, and anything unrecognized, needs a human
			res.HasOpen = true
		}
	}
	if !res.HasOpen && res.TotalAutoPoints > 0 {
		s := round2(res.EarnedAutoPoints / res.TotalAutoPoints * scale)
		res.Score = &s
	}
	return res
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// coerceString mirrors the comparison the portal has always done:
// both sides become strings before the equality check.
func coerceString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// coerceBool accepts a native bool or the literal strings
// "true"/"false"; anything else is falsy.
func coerceBool(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "true"
	}
	return false
}
