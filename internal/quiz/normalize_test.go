package quiz_test

import (
	"testing"

	"github.com/ecoleweb/portail/internal/quiz"
)

func TestParseQuestionsBareArray(t *testing.T) {
	raw := []byte(`[{"type":"single_choice","points":10,"correct_option":"B"},
		{"type":"single_choice","points":10,"correct_option":"C"}]`)
	scale, qs := quiz.ParseQuestions(raw)
	if scale != quiz.DefaultScale {
		t.Fatalf("bare array: scale must default to %d, got %g", quiz.DefaultScale, scale)
	}
	if len(qs) != 2 || qs[0].Type != quiz.QTypeSingleChoice {
		t.Fatalf("unexpected questions: %+v", qs)
	}
}

func TestParseQuestionsWrapper(t *testing.T) {
	raw := []byte(`{"scale":10,"questions":[{"type":"boolean","correct_boolean":true}]}`)
	scale, qs := quiz.ParseQuestions(raw)
	if scale != 10 {
		t.Fatalf("wrapper scale: want 10, got %g", scale)
	}
	if len(qs) != 1 || qs[0].Type != quiz.QTypeBoolean {
		t.Fatalf("unexpected questions: %+v", qs)
	}
}

func TestParseQuestionsScaleFallback(t *testing.T) {
	for _, raw := range []string{
		`{"questions":[]}`,
		`{"scale":"twenty","questions":[]}`,
		`{"scale":null,"questions":[]}`,
		`{"scale":-3,"questions":[]}`,
	} {
		scale, _ := quiz.ParseQuestions([]byte(raw))
		if scale != quiz.DefaultScale {
			t.Fatalf("%s: want default scale, got %g", raw, scale)
		}
	}
}

func TestParseQuestionsMalformedDegradesToEmpty(t *testing.T) {
	for _, raw := range []string{
		``,
		`not json at all`,
		`42`,
		`"just a string"`,
		`{"scale":20,"questions":"oops"}`,
		`{"scale":20}`,
	} {
		scale, qs := quiz.ParseQuestions([]byte(raw))
		if len(qs) != 0 {
			t.Fatalf("%q: want zero questions, got %d", raw, len(qs))
		}
		if scale != quiz.DefaultScale {
			t.Fatalf("%q: want default scale, got %g", raw, scale)
		}
	}
}

// A quiz stored as a bare sequence and one stored wrapped with the same
// scale and questions must score identically.
func TestShapeRoundTripScoresIdentically(t *testing.T) {
	bare := []byte(`[{"type":"single_choice","points":10,"correct_option":"B"},
		{"type":"single_choice","points":10,"correct_option":"C"}]`)
	wrapped := []byte(`{"scale":20,"questions":[
		{"type":"single_choice","points":10,"correct_option":"B"},
		{"type":"single_choice","points":10,"correct_option":"C"}]}`)
	answers := map[string]interface{}{"0": "B", "1": "C"}

	s1, q1 := quiz.ParseQuestions(bare)
	s2, q2 := quiz.ParseQuestions(wrapped)
	r1 := quiz.Grade(s1, q1, answers)
	r2 := quiz.Grade(s2, q2, answers)
	if r1.Score == nil || r2.Score == nil || *r1.Score != *r2.Score {
		t.Fatalf("shapes diverged: %+v vs %+v", r1, r2)
	}
}

func TestEncodeParseRoundTrip(t *testing.T) {
	qs := []quiz.Question{
		{Type: quiz.QTypeSingleChoice, Points: 10.0, CorrectOption: "B"},
		{Type: quiz.QTypeOpen, Points: 10.0},
	}
	raw, err := quiz.EncodeQuestions(20, qs)
	if err != nil {
		t.Fatalf("EncodeQuestions: %v", err)
	}
	scale, parsed := quiz.ParseQuestions(raw)
	if scale != 20 || len(parsed) != 2 {
		t.Fatalf("round trip lost data: scale=%g, %d questions", scale, len(parsed))
	}
	if parsed[0].CorrectOption != "B" || parsed[1].Type != quiz.QTypeOpen {
		t.Fatalf("round trip mangled questions: %+v", parsed)
	}
}
