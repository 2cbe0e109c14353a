package prompt

import (
	"errors"
	"strings"
	"testing"

	"ai-mathteach-be/internal/entity"
	"ai-mathteach-be/internal/pkg/apperrors"
)

func validLessonPlanFields() Fields {
	return Fields{
		Topic:              "Linear Equations",
		GradeLevel:         "high",
		Duration:           45,
		TeacherId:          "3f6c1c8e-0a50-4a0e-9a3f-8b1d2c4e5f60",
		LevelId:            3,
		Grade:              10,
		LearningObjectives: []string{"solve single-variable equations"},
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	fields := validLessonPlanFields()

	first, err := Build(entity.AiRequestTypeLessonPlan, fields)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	second, err := Build(entity.AiRequestTypeLessonPlan, fields)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if first != second {
		t.Errorf("Build() not deterministic:\nfirst  = %q\nsecond = %q", first, second)
	}
}

func TestBuildLessonPlanEmbedsFields(t *testing.T) {
	out, err := Build(entity.AiRequestTypeLessonPlan, validLessonPlanFields())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	for _, want := range []string{
		"Topic: Linear Equations",
		"Grade Level: high (grade 10)",
		"Duration: 45 minutes",
		"solve single-variable equations",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("prompt missing %q:\n%s", want, out)
		}
	}
}

func TestBuildValidation(t *testing.T) {
	tests := []struct {
		name      string
		kind      entity.AiRequestType
		fields    Fields
		wantField string
	}{
		{
			name:      "lesson plan missing topic",
			kind:      entity.AiRequestTypeLessonPlan,
			fields:    Fields{GradeLevel: "high", Duration: 45, TeacherId: "t", LevelId: 3, Grade: 10},
			wantField: "topic",
		},
		{
			name: "lesson plan duration too short",
			kind: entity.AiRequestTypeLessonPlan,
			fields: func() Fields {
				f := validLessonPlanFields()
				f.Duration = 15
				return f
			}(),
			wantField: "duration",
		},
		{
			name: "lesson plan grade out of range",
			kind: entity.AiRequestTypeLessonPlan,
			fields: func() Fields {
				f := validLessonPlanFields()
				f.Grade = 13
				return f
			}(),
			wantField: "grade",
		},
		{
			name:      "questions count too high",
			kind:      entity.AiRequestTypeQuestion,
			fields:    Fields{Topic: "Fractions", Count: 21},
			wantField: "count",
		},
		{
			name:      "questions count zero",
			kind:      entity.AiRequestTypeQuestion,
			fields:    Fields{Topic: "Fractions"},
			wantField: "count",
		},
		{
			name:      "quiz question count below minimum",
			kind:      entity.AiRequestTypeQuiz,
			fields:    Fields{Title: "Quick Quiz", Topic: "Geometry", QuestionCount: 3},
			wantField: "questionCount",
		},
		{
			name:      "quiz time limit out of range",
			kind:      entity.AiRequestTypeQuiz,
			fields:    Fields{Title: "Long Quiz", Topic: "Geometry", QuestionCount: 10, TimeLimit: 200},
			wantField: "timeLimit",
		},
		{
			name:      "chat missing message",
			kind:      entity.AiRequestTypeChat,
			fields:    Fields{},
			wantField: "message",
		},
		{
			name:      "feedback missing student answer",
			kind:      entity.AiRequestTypeFeedback,
			fields:    Fields{Question: "2+2?", CorrectAnswer: "4"},
			wantField: "studentAnswer",
		},
		{
			name:      "rephrase missing content",
			kind:      entity.AiRequestTypeRephrase,
			fields:    Fields{Style: "casual"},
			wantField: "content",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.kind, tt.fields)
			if err == nil {
				t.Fatal("Build() expected error, got nil")
			}
			var vErr *apperrors.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("Build() error = %v, want ValidationError", err)
			}
			if vErr.Field != tt.wantField {
				t.Errorf("ValidationError.Field = %q, want %q", vErr.Field, tt.wantField)
			}
		})
	}
}

func TestBuildQuizDefaultsTimeLimit(t *testing.T) {
	out, err := Build(entity.AiRequestTypeQuiz, Fields{
		Title:         "Algebra Fundamentals Quiz",
		Topic:         "Basic Algebra",
		QuestionCount: 10,
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !strings.Contains(out, "Time Limit: 30 minutes") {
		t.Errorf("prompt missing default time limit:\n%s", out)
	}
}

func TestBuildRecommendations(t *testing.T) {
	out, err := Build(entity.AiRequestTypeRecommendations, Fields{
		WeakTopics:   []string{"Fractions", "Word Problems"},
		StrongTopics: []string{"Geometry"},
		RecentScores: []float64{62, 71, 58.5},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	for _, want := range []string{
		"Weak Topics: Fractions, Word Problems",
		"Strong Topics: Geometry",
		"Recent Scores: 62, 71, 58.5",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("prompt missing %q:\n%s", want, out)
		}
	}
}

func TestBuildUnsupportedKind(t *testing.T) {
	_, err := Build(entity.AiRequestType("Unknown"), Fields{})
	if err == nil {
		t.Fatal("Build() expected error for unsupported kind")
	}
}
