package quiz_test

import (
	"errors"
	"testing"

	"github.com/ecoleweb/portail/internal/quiz"
)

func TestGradeSingleChoice(t *testing.T) {
	// scale 20, two single_choice at 10 points, one right answer
	qs := []quiz.Question{
		{Type: quiz.QTypeSingleChoice, Points: 10.0, CorrectOption: "B"},
		{Type: quiz.QTypeSingleChoice, Points: 10.0, CorrectOption: "C"},
	}
	answers := map[string]interface{}{"0": "B", "1": "D"}

	res := quiz.Grade(20, qs, answers)
	if res.Score == nil {
		t.Fatal("fully auto-gradable quiz must produce a score")
	}
	if *res.Score != 10.0 {
		t.Fatalf("want 10.0, got %v", *res.Score)
	}
	if res.TotalAutoPoints != 20 || res.EarnedAutoPoints != 10 {
		t.Fatalf("unexpected point pools: %+v", res)
	}
}

func TestGradeOpenQuestionDefersToManual(t *testing.T) {
	// one boolean (answered right) plus one open: no auto score at all
	qs := []quiz.Question{
		{Type: quiz.QTypeBoolean, Points: 10.0, CorrectBool: true},
		{Type: quiz.QTypeOpen, Points: 10.0},
	}
	answers := map[string]interface{}{"0": "true", "1": "some text"}

	res := quiz.Grade(20, qs, answers)
	if res.Score != nil {
		t.Fatalf("open question present: score must stay nil, got %v", *res.Score)
	}
	if !res.HasOpen {
		t.Fatal("HasOpen must be set")
	}
	if res.TotalAutoPoints != 10 || res.EarnedAutoPoints != 10 {
		t.Fatalf("auto pools must still be tallied: %+v", res)
	}
}

func TestGradeBooleanNormalization(t *testing.T) {
	q := []quiz.Question{{Type: quiz.QTypeBoolean, Points: 5.0, CorrectBool: true}}
	for _, tc := range []struct {
		answer interface{}
		earned bool
	}{
		{true, true},
		{"true", true},
		{"false", false},
		{false, false},
		{"yes", false}, // only the literal strings count
		{nil, false},
		{1.0, false},
	} {
		res := quiz.Grade(5, q, map[string]interface{}{"0": tc.answer})
		got := res.EarnedAutoPoints == 5
		if got != tc.earned {
			t.Fatalf("answer %v: earned=%v, want %v", tc.answer, got, tc.earned)
		}
	}
}

func TestGradeCoercesAnswersToStrings(t *testing.T) {
	// numeric correct option, string answer
	qs := []quiz.Question{{Type: quiz.QTypeSingleChoice, Points: 2.0, CorrectOption: 3.0}}
	res := quiz.Grade(2, qs, map[string]interface{}{"0": "3"})
	if res.EarnedAutoPoints != 2 {
		t.Fatalf("\"3\" must match numeric 3, got %+v", res)
	}
}

func TestGradeDefaultPoints(t *testing.T) {
	// missing and malformed points count as 1
	qs := []quiz.Question{
		{Type: quiz.QTypeSingleChoice, CorrectOption: "A"},
		{Type: quiz.QTypeSingleChoice, Points: "not-a-number", CorrectOption: "B"},
	}
	res := quiz.Grade(2, qs, map[string]interface{}{"0": "A", "1": "B"})
	if res.TotalAutoPoints != 2 || res.EarnedAutoPoints != 2 {
		t.Fatalf("default points not applied: %+v", res)
	}
}

func TestGradeRoundsToTwoDecimals(t *testing.T) {
	qs := []quiz.Question{
		{Type: quiz.QTypeSingleChoice, Points: 1.0, CorrectOption: "A"},
		{Type: quiz.QTypeSingleChoice, Points: 1.0, CorrectOption: "B"},
		{Type: quiz.QTypeSingleChoice, Points: 1.0, CorrectOption: "C"},
	}
	res := quiz.Grade(20, qs, map[string]interface{}{"0": "A"})
	if res.Score == nil || *res.Score != 6.67 {
		t.Fatalf("want 6.67 (20/3 rounded), got %+v", res.Score)
	}
}

func TestGradeNothingAutoGradable(t *testing.T) {
	res := quiz.Grade(20, nil, map[string]interface{}{})
	if res.Score != nil {
		t.Fatal("no questions: score must stay nil")
	}
	res = quiz.Grade(20, []quiz.Question{{Type: quiz.QTypeOpen}}, map[string]interface{}{"0": "essay"})
	if res.Score != nil {
		t.Fatal("open-only quiz: score must stay nil")
	}
}

func TestGradeIsDeterministic(t *testing.T) {
	qs := []quiz.Question{
		{Type: quiz.QTypeSingleChoice, Points: 7.0, CorrectOption: "B"},
		{Type: quiz.QTypeBoolean, Points: 13.0, CorrectBool: false},
	}
	answers := map[string]interface{}{"0": "B", "1": "false"}
	first := quiz.Grade(20, qs, answers)
	for i := 0; i < 50; i++ {
		again := quiz.Grade(20, qs, answers)
		if *again.Score != *first.Score ||
			again.TotalAutoPoints != first.TotalAutoPoints ||
			again.EarnedAutoPoints != first.EarnedAutoPoints {
			t.Fatalf("run %d diverged: %+v vs %+v", i, again, first)
		}
	}
}

func TestValidatePointsSumMustEqualScale(t *testing.T) {
	end := int64(1790000000)
	q := quiz.Quiz{
		Title:   "Contrôle",
		Scale:   20,
		EndTime: end,
		Questions: []quiz.Question{
			{Type: quiz.QTypeSingleChoice, Points: 10.0, CorrectOption: "A"},
			{Type: quiz.QTypeSingleChoice, Points: 5.0, CorrectOption: "B"},
		},
	}
	err := q.Validate()
	if err == nil {
		t.Fatal("points sum 15 != scale 20 must be a validation error")
	}
	var verr quiz.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("want ValidationError, got %T", err)
	}

	q.Questions[1].Points = 10.0
	if err := q.Validate(); err != nil {
		t.Fatalf("matching sum must validate: %v", err)
	}
}

func TestValidateRejectsUnknownTypeAndMissingKeys(t *testing.T) {
	end := int64(1790000000)
	bad := quiz.Quiz{Title: "t", Scale: 1, EndTime: end,
		Questions: []quiz.Question{{Type: "essay", Points: 1.0}}}
	if bad.Validate() == nil {
		t.Fatal("unknown question type must be rejected")
	}
	noKey := quiz.Quiz{Title: "t", Scale: 1, EndTime: end,
		Questions: []quiz.Question{{Type: quiz.QTypeSingleChoice, Points: 1.0}}}
	if noKey.Validate() == nil {
		t.Fatal("single_choice without correct_option must be rejected")
	}
}
