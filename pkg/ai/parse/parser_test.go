package parse

import (
	"testing"

	"ai-mathteach-be/internal/entity"
)

func TestParseQuestionsArray(t *testing.T) {
	raw := `[
		{"questionText": "What is 2+2?", "questionType": "multiple_choice", "options": ["3", "4", "5", "6"], "correctAnswer": "4", "explanation": "Basic addition."},
		{"questionText": "Is 7 prime?", "questionType": "true_false", "correctAnswer": "true"}
	]`

	result := Parse(entity.AiRequestTypeQuestion, raw)

	if result.Malformed {
		t.Fatal("Parse() marked valid questions as malformed")
	}
	if len(result.Questions) != 2 {
		t.Fatalf("len(Questions) = %d, want 2", len(result.Questions))
	}
	if result.Questions[0].CorrectAnswer != "4" {
		t.Errorf("Questions[0].CorrectAnswer = %q, want %q", result.Questions[0].CorrectAnswer, "4")
	}
	if len(result.Questions[0].Options) != 4 {
		t.Errorf("len(Questions[0].Options) = %d, want 4", len(result.Questions[0].Options))
	}
}

func TestParseQuestionsWithFences(t *testing.T) {
	raw := "```json\n[{\"questionText\": \"What is 3*3?\", \"correctAnswer\": \"9\"}]\n```"

	result := Parse(entity.AiRequestTypeQuestion, raw)

	if result.Malformed {
		t.Fatal("Parse() marked fenced JSON as malformed")
	}
	if len(result.Questions) != 1 {
		t.Fatalf("len(Questions) = %d, want 1", len(result.Questions))
	}
}

func TestParseQuestionsWrappedObject(t *testing.T) {
	raw := `{"questions": [{"questionText": "What is 10/2?", "correctAnswer": "5"}]}`

	result := Parse(entity.AiRequestTypeQuestion, raw)

	if result.Malformed {
		t.Fatal("Parse() marked wrapped questions object as malformed")
	}
	if len(result.Questions) != 1 {
		t.Fatalf("len(Questions) = %d, want 1", len(result.Questions))
	}
}

func TestParseMalformedPreservesRawText(t *testing.T) {
	raw := "Sure! Here are some questions about algebra: 1) What is x if x+2=5?"

	result := Parse(entity.AiRequestTypeQuestion, raw)

	if !result.Malformed {
		t.Fatal("Parse() should mark non-JSON as malformed")
	}
	if result.RawText != raw {
		t.Errorf("RawText = %q, want original input preserved", result.RawText)
	}
	if result.Text != raw {
		t.Errorf("Text = %q, want original input preserved", result.Text)
	}
}

func TestParseQuiz(t *testing.T) {
	raw := `{
		"title": "Algebra Fundamentals Quiz",
		"description": "Covers the basics.",
		"timeLimit": 30,
		"questions": [
			{"questionText": "Solve x+1=2", "correctAnswer": "1"},
			{"questionText": "Solve 2x=8", "correctAnswer": "4"}
		]
	}`

	result := Parse(entity.AiRequestTypeQuiz, raw)

	if result.Malformed {
		t.Fatal("Parse() marked valid quiz as malformed")
	}
	if result.Quiz == nil {
		t.Fatal("Quiz is nil")
	}
	if result.Quiz.Title != "Algebra Fundamentals Quiz" {
		t.Errorf("Quiz.Title = %q", result.Quiz.Title)
	}
	if len(result.Questions) != 2 {
		t.Errorf("len(Questions) = %d, want 2", len(result.Questions))
	}
}

func TestParseQuizMissingQuestions(t *testing.T) {
	raw := `{"title": "Empty Quiz", "timeLimit": 15}`

	result := Parse(entity.AiRequestTypeQuiz, raw)

	if !result.Malformed {
		t.Fatal("Parse() should mark quiz without questions as malformed")
	}
	if result.RawText != raw {
		t.Errorf("RawText = %q, want original input preserved", result.RawText)
	}
}

func TestParseLessonPlan(t *testing.T) {
	raw := `{
		"title": "Introduction to Linear Equations",
		"gradeLevel": "high",
		"duration": 45,
		"learningObjectives": ["Solve one-variable equations"],
		"materials": ["Whiteboard", "Worksheets"],
		"activities": [
			{"title": "Warm-up", "duration": 10, "description": "Review of variables", "teacherNotes": "Pair weaker students"}
		],
		"assessment": "Exit ticket with three problems",
		"homework": "Worksheet section B"
	}`

	result := Parse(entity.AiRequestTypeLessonPlan, raw)

	if result.Malformed {
		t.Fatal("Parse() marked valid lesson plan as malformed")
	}
	if result.LessonPlan == nil {
		t.Fatal("LessonPlan is nil")
	}
	if len(result.LessonPlan.Activities) != 1 {
		t.Errorf("len(Activities) = %d, want 1", len(result.LessonPlan.Activities))
	}
	if result.LessonPlan.Activities[0].TeacherNotes != "Pair weaker students" {
		t.Errorf("TeacherNotes = %q", result.LessonPlan.Activities[0].TeacherNotes)
	}
}

func TestParseFreeTextKinds(t *testing.T) {
	raw := "Great attempt! Remember to isolate the variable first."

	for _, kind := range []entity.AiRequestType{
		entity.AiRequestTypeChat,
		entity.AiRequestTypeFeedback,
		entity.AiRequestTypeRecommendations,
		entity.AiRequestTypeRephrase,
	} {
		result := Parse(kind, raw)
		if result.Malformed {
			t.Errorf("Parse(%s) marked free text as malformed", kind)
		}
		if result.Text != raw {
			t.Errorf("Parse(%s) Text = %q, want passthrough", kind, result.Text)
		}
	}
}

func TestNormalizeQuestionType(t *testing.T) {
	tests := []struct {
		raw  string
		want entity.QuestionType
	}{
		{"multiple_choice", entity.QuestionTypeMultipleChoice},
		{"MultipleChoice", entity.QuestionTypeMultipleChoice},
		{"true-false", entity.QuestionTypeTrueFalse},
		{"TrueFalse", entity.QuestionTypeTrueFalse},
		{"short_answer", entity.QuestionTypeShortAnswer},
		{"essay", entity.QuestionTypeEssay},
		{"", entity.QuestionTypeMultipleChoice},
		{"banana", entity.QuestionTypeMultipleChoice},
	}

	for _, tt := range tests {
		if got := NormalizeQuestionType(tt.raw); got != tt.want {
			t.Errorf("NormalizeQuestionType(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
