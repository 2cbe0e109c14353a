package dto

import (
	"time"

	"github.com/google/uuid"
)

// Lesson plan generation

type GenerateLessonPlanRequest struct {
	Topic              string   `json:"topic" validate:"required"`
	GradeLevel         string   `json:"gradeLevel" validate:"required"`
	Duration           int      `json:"duration" validate:"required,min=30,max=90"`
	LearningObjectives []string `json:"learningObjectives,omitempty"`
	AdditionalNotes    string   `json:"additionalNotes,omitempty"`
	TeacherId          string   `json:"teacherId" validate:"required,uuid4"`
	LevelId            int      `json:"levelId" validate:"required,min=1"`
	Grade              int      `json:"grade" validate:"required,min=1,max=12"`
}

type LessonActivityDTO struct {
	Title        string `json:"title"`
	Duration     int    `json:"duration"`
	Description  string `json:"description"`
	TeacherNotes string `json:"teacherNotes,omitempty"`
}

type PreviewLessonPlanResponse struct {
	Title              string              `json:"title"`
	GradeLevel         string              `json:"gradeLevel"`
	Duration           int                 `json:"duration"`
	LearningObjectives []string            `json:"learningObjectives"`
	Materials          []string            `json:"materials"`
	Activities         []LessonActivityDTO `json:"activities"`
	Assessment         string              `json:"assessment"`
	Homework           *string             `json:"homework,omitempty"`
	Malformed          bool                `json:"malformed,omitempty"`
	RawContent         *string             `json:"rawContent,omitempty"`
}

type GenerateLessonPlanResponse struct {
	LessonPlanId uuid.UUID `json:"lessonPlanId"`
	Title        string    `json:"title"`
	Topic        string    `json:"topic"`
	Duration     int       `json:"duration"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Question generation

type GenerateQuestionsRequest struct {
	Topic        string     `json:"topic" validate:"required"`
	Count        int        `json:"count" validate:"required,min=1,max=20"`
	QuestionType string     `json:"questionType,omitempty"`
	GradeLevel   string     `json:"gradeLevel,omitempty"`
	DifficultyId *uuid.UUID `json:"difficultyId,omitempty"`
}

type GeneratedQuestionDTO struct {
	QuestionText  string   `json:"questionText"`
	QuestionType  string   `json:"questionType"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty"`
}

type PreviewQuestionsResponse struct {
	Questions  []GeneratedQuestionDTO `json:"questions"`
	Malformed  bool                   `json:"malformed,omitempty"`
	RawContent *string                `json:"rawContent,omitempty"`
}

type GenerateQuestionsResponse struct {
	Count       int         `json:"count"`
	QuestionIds []uuid.UUID `json:"questionIds"`
	Message     string      `json:"message"`
}

// Quiz generation

type GenerateQuizRequest struct {
	Title         string `json:"title" validate:"required"`
	Topic         string `json:"topic" validate:"required"`
	QuestionCount int    `json:"questionCount" validate:"required,min=5,max=50"`
	TimeLimit     int    `json:"timeLimit,omitempty" validate:"omitempty,min=5,max=180"`
	GradeLevel    string `json:"gradeLevel,omitempty"`
}

type PreviewQuizResponse struct {
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	TimeLimit   int                    `json:"timeLimit"`
	TotalScore  int                    `json:"totalScore"`
	Questions   []GeneratedQuestionDTO `json:"questions"`
	Malformed   bool                   `json:"malformed,omitempty"`
	RawContent  *string                `json:"rawContent,omitempty"`
}

type GenerateQuizResponse struct {
	QuizId        uuid.UUID `json:"quizId"`
	Title         string    `json:"title"`
	QuestionCount int       `json:"questionCount"`
	TotalScore    int       `json:"totalScore"`
	TimeLimit     int       `json:"timeLimit"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Chat

type ChatTurnDTO struct {
	Role      string    `json:"role" validate:"required,oneof=user assistant"`
	Content   string    `json:"content" validate:"required"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

type ChatRequest struct {
	Message             string        `json:"message" validate:"required"`
	ConversationId      string        `json:"conversationId,omitempty"`
	Topic               string        `json:"topic,omitempty"`
	ConversationHistory []ChatTurnDTO `json:"conversationHistory,omitempty" validate:"omitempty,dive"`
}

type ChatResponse struct {
	Message        string    `json:"message"`
	ConversationId string    `json:"conversationId"`
	Timestamp      time.Time `json:"timestamp"`
}

// Feedback

type FeedbackRequest struct {
	Question      string `json:"question" validate:"required"`
	StudentAnswer string `json:"studentAnswer" validate:"required"`
	CorrectAnswer string `json:"correctAnswer" validate:"required"`
	Topic         string `json:"topic,omitempty"`
}

type FeedbackResponse struct {
	Feedback string `json:"feedback"`
}

// Recommendations

type RecommendationsRequest struct {
	WeakTopics   []string  `json:"weakTopics,omitempty"`
	StrongTopics []string  `json:"strongTopics,omitempty"`
	RecentScores []float64 `json:"recentScores,omitempty"`
}

type RecommendationsResponse struct {
	Recommendations string `json:"recommendations"`
}

// Rephrase

type RephraseRequest struct {
	Content string `json:"content" validate:"required"`
	Style   string `json:"style,omitempty"`
}

type RephraseResponse struct {
	Rephrased string `json:"rephrased"`
}
