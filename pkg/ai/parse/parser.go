package parse

import (
	"bytes"
	"encoding/json"
	"strings"

	"ai-mathteach-be/internal/entity"
)

// ParsedQuestion is one question extracted from a structured response.
type ParsedQuestion struct {
	QuestionText  string   `json:"questionText"`
	QuestionType  string   `json:"questionType"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty"`
}

// ParsedQuiz is the structured shape of a quiz generation response.
type ParsedQuiz struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	TimeLimit   int              `json:"timeLimit"`
	Questions   []ParsedQuestion `json:"questions"`
}

// ParsedActivity mirrors a lesson plan activity block.
type ParsedActivity struct {
	Title        string `json:"title"`
	Duration     int    `json:"duration"`
	Description  string `json:"description"`
	TeacherNotes string `json:"teacherNotes,omitempty"`
}

// ParsedLessonPlan is the structured shape of a lesson plan response.
type ParsedLessonPlan struct {
	Title              string           `json:"title"`
	GradeLevel         string           `json:"gradeLevel"`
	Duration           int              `json:"duration"`
	LearningObjectives []string         `json:"learningObjectives"`
	Materials          []string         `json:"materials"`
	Activities         []ParsedActivity `json:"activities"`
	Assessment         string           `json:"assessment"`
	Homework           string           `json:"homework,omitempty"`
}

// Result carries the interpreted generation response. RawText is always
// the unmodified model output. When Malformed is set, structured parsing
// failed and the raw text is the only usable content.
type Result struct {
	Kind       entity.AiRequestType
	RawText    string
	Malformed  bool
	Text       string
	Questions  []ParsedQuestion
	Quiz       *ParsedQuiz
	LessonPlan *ParsedLessonPlan
}

// Parse interprets rawText according to the generation kind. Free-text
// kinds (chat, feedback, recommendations, rephrase) pass through
// unchanged. Structured kinds attempt a strict JSON parse and fall back
// to the raw text with Malformed set when the model output does not
// match the expected shape. Parse never returns an error: a malformed
// response is still best-effort content worth showing.
func Parse(kind entity.AiRequestType, rawText string) Result {
	result := Result{
		Kind:    kind,
		RawText: rawText,
	}

	switch kind {
	case entity.AiRequestTypeQuestion:
		questions, ok := parseQuestions(rawText)
		if !ok {
			result.Malformed = true
			result.Text = rawText
			return result
		}
		result.Questions = questions
	case entity.AiRequestTypeQuiz:
		quiz, ok := parseQuiz(rawText)
		if !ok {
			result.Malformed = true
			result.Text = rawText
			return result
		}
		result.Quiz = quiz
		result.Questions = quiz.Questions
	case entity.AiRequestTypeLessonPlan:
		plan, ok := parseLessonPlan(rawText)
		if !ok {
			result.Malformed = true
			result.Text = rawText
			return result
		}
		result.LessonPlan = plan
	default:
		result.Text = rawText
	}
	return result
}

// stripFences removes markdown code fences models wrap JSON payloads in.
func stripFences(raw string) []byte {
	b := bytes.TrimSpace([]byte(raw))
	b = bytes.TrimPrefix(b, []byte("```json"))
	b = bytes.TrimPrefix(b, []byte("```"))
	b = bytes.TrimSuffix(b, []byte("```"))
	return bytes.TrimSpace(b)
}

func parseQuestions(raw string) ([]ParsedQuestion, bool) {
	payload := stripFences(raw)

	var questions []ParsedQuestion
	if err := json.Unmarshal(payload, &questions); err != nil {
		// Some models wrap the array in an object anyway
		var wrapped struct {
			Questions []ParsedQuestion `json:"questions"`
		}
		if err := json.Unmarshal(payload, &wrapped); err != nil || wrapped.Questions == nil {
			return nil, false
		}
		questions = wrapped.Questions
	}
	if len(questions) == 0 {
		return nil, false
	}
	for _, q := range questions {
		if q.QuestionText == "" || q.CorrectAnswer == "" {
			return nil, false
		}
	}
	return questions, true
}

func parseQuiz(raw string) (*ParsedQuiz, bool) {
	payload := stripFences(raw)

	var quiz ParsedQuiz
	if err := json.Unmarshal(payload, &quiz); err != nil {
		return nil, false
	}
	if len(quiz.Questions) == 0 {
		return nil, false
	}
	for _, q := range quiz.Questions {
		if q.QuestionText == "" || q.CorrectAnswer == "" {
			return nil, false
		}
	}
	return &quiz, true
}

func parseLessonPlan(raw string) (*ParsedLessonPlan, bool) {
	payload := stripFences(raw)

	var plan ParsedLessonPlan
	if err := json.Unmarshal(payload, &plan); err != nil {
		return nil, false
	}
	if plan.Title == "" && len(plan.Activities) == 0 && len(plan.LearningObjectives) == 0 {
		return nil, false
	}
	return &plan, true
}

// NormalizeQuestionType maps loose model vocabulary onto the canonical
// question types. Unknown values default to multiple choice.
func NormalizeQuestionType(raw string) entity.QuestionType {
	switch strings.ToLower(strings.ReplaceAll(strings.ReplaceAll(raw, "_", ""), "-", "")) {
	case "truefalse":
		return entity.QuestionTypeTrueFalse
	case "shortanswer", "short":
		return entity.QuestionTypeShortAnswer
	case "essay", "openended":
		return entity.QuestionTypeEssay
	default:
		return entity.QuestionTypeMultipleChoice
	}
}
