package quiz

import "encoding/json"

// DefaultScale is used when a stored quiz carries no usable scale.
const DefaultScale = 20

type questionEnvelope struct {
	Scale     interface{}     `json:"scale"`
	Questions json.RawMessage `json:"questions"`
}

// ParseQuestions normalizes the flexible question-container shape found
// in stored quizzes: either a bare question array or a
// {scale, questions} wrapper. Malformed data never errors; it degrades
// to zero questions, and a missing or non-numeric scale falls back to
// DefaultScale. Scoring downstream only ever sees the normalized form.
func ParseQuestions(raw []byte) (scale float64, qs []Question) {
	scale = DefaultScale
	if len(raw) == 0 {
		return scale, nil
	}

	// bare array first: the older storage format
	var bare []Question
	if err := json.Unmarshal(raw, &bare); err == nil {
		return scale, bare
	}

	var env questionEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return scale, nil
	}
	if f, ok := coerceNumber(env.Scale); ok && f > 0 {
		scale = f
	}
	if len(env.Questions) > 0 {
		var wrapped []Question
		if err := json.Unmarshal(env.Questions, &wrapped); err == nil {
			qs = wrapped
		}
	}
	return scale, qs
}

// EncodeQuestions stores the wrapper shape, keeping scale and questions
// in one column.
func EncodeQuestions(scale float64, qs []Question) ([]byte, error) {
	return json.Marshal(struct {
		Scale     float64    `json:"scale"`
		Questions []Question `json:"questions"`
	}{Scale: scale, Questions: qs})
}

func coerceNumber(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	}
	return 0, false
}
