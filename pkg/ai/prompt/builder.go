package prompt

import (
	"fmt"
	"strings"

	"ai-mathteach-be/internal/entity"
	"ai-mathteach-be/internal/pkg/apperrors"
)

// Fields carries the structured inputs for every generation kind.
// Only the fields relevant to the requested kind are read.
type Fields struct {
	// Lesson plan
	Topic              string
	GradeLevel         string
	Duration           int // minutes
	LearningObjectives []string
	AdditionalNotes    string
	TeacherId          string
	LevelId            int
	Grade              int

	// Question set
	Count        int
	QuestionType string
	Difficulty   string

	// Quiz
	Title         string
	QuestionCount int
	TimeLimit     int // minutes

	// Chat
	Message string

	// Feedback
	Question      string
	StudentAnswer string
	CorrectAnswer string

	// Recommendations
	WeakTopics   []string
	StrongTopics []string
	RecentScores []float64

	// Rephrase
	Content string
	Style   string
}

const defaultQuizTimeLimit = 30

// Build renders the prompt template for the given generation kind.
// It is deterministic: identical fields always produce an identical
// string. Missing or out-of-range required fields fail with a
// ValidationError before anything else happens.
func Build(kind entity.AiRequestType, fields Fields) (string, error) {
	switch kind {
	case entity.AiRequestTypeLessonPlan:
		return buildLessonPlan(fields)
	case entity.AiRequestTypeQuestion:
		return buildQuestions(fields)
	case entity.AiRequestTypeQuiz:
		return buildQuiz(fields)
	case entity.AiRequestTypeChat:
		return buildChat(fields)
	case entity.AiRequestTypeFeedback:
		return buildFeedback(fields)
	case entity.AiRequestTypeRecommendations:
		return buildRecommendations(fields)
	case entity.AiRequestTypeRephrase:
		return buildRephrase(fields)
	default:
		return "", apperrors.NewValidationError("kind", fmt.Sprintf("unsupported generation kind: %s", kind))
	}
}

func buildLessonPlan(f Fields) (string, error) {
	if f.Topic == "" {
		return "", apperrors.NewValidationError("topic", "topic is required")
	}
	if f.GradeLevel == "" {
		return "", apperrors.NewValidationError("gradeLevel", "gradeLevel is required")
	}
	if f.Duration < 30 || f.Duration > 90 {
		return "", apperrors.NewValidationError("duration", "duration must be between 30 and 90 minutes")
	}
	if f.TeacherId == "" {
		return "", apperrors.NewValidationError("teacherId", "teacherId is required")
	}
	if f.LevelId <= 0 {
		return "", apperrors.NewValidationError("levelId", "levelId is required")
	}
	if f.Grade < 1 || f.Grade > 12 {
		return "", apperrors.NewValidationError("grade", "grade must be between 1 and 12")
	}

	var sb strings.Builder
	sb.WriteString("You are an expert math teacher. Generate a comprehensive lesson plan for the following:\n")
	fmt.Fprintf(&sb, "Topic: %s\n", f.Topic)
	fmt.Fprintf(&sb, "Grade Level: %s (grade %d)\n", f.GradeLevel, f.Grade)
	fmt.Fprintf(&sb, "Duration: %d minutes\n", f.Duration)
	if len(f.LearningObjectives) > 0 {
		fmt.Fprintf(&sb, "Learning Objectives: %s\n", strings.Join(f.LearningObjectives, ", "))
	}
	if f.AdditionalNotes != "" {
		fmt.Fprintf(&sb, "Additional Notes: %s\n", f.AdditionalNotes)
	}
	sb.WriteString("\nPlease provide:\n")
	sb.WriteString("1. Learning objectives\n")
	sb.WriteString("2. Key concepts to cover\n")
	sb.WriteString("3. Real-world examples\n")
	sb.WriteString("4. A sequence of timed activities with teacher notes\n")
	sb.WriteString("5. Assessment strategies\n")
	sb.WriteString("\nRespond with a JSON object containing: title, gradeLevel, duration, learningObjectives, materials, activities (each with title, duration, description, teacherNotes), assessment, homework.")
	return sb.String(), nil
}

func buildQuestions(f Fields) (string, error) {
	if f.Topic == "" {
		return "", apperrors.NewValidationError("topic", "topic is required")
	}
	if f.Count < 1 || f.Count > 20 {
		return "", apperrors.NewValidationError("count", "count must be between 1 and 20")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Generate %d math questions for the following:\n", f.Count)
	fmt.Fprintf(&sb, "Topic: %s\n", f.Topic)
	if f.GradeLevel != "" {
		fmt.Fprintf(&sb, "Grade Level: %s\n", f.GradeLevel)
	}
	if f.Difficulty != "" {
		fmt.Fprintf(&sb, "Difficulty: %s\n", f.Difficulty)
	}
	if f.QuestionType != "" {
		fmt.Fprintf(&sb, "Question Type: %s\n", f.QuestionType)
	}
	sb.WriteString("\nFor each question, provide:\n")
	sb.WriteString("1. The question text\n")
	sb.WriteString("2. Multiple choice options (4 options) where applicable\n")
	sb.WriteString("3. The correct answer\n")
	sb.WriteString("4. An explanation\n")
	sb.WriteString("\nFormat as a JSON array with objects containing: questionText, questionType, options, correctAnswer, explanation")
	return sb.String(), nil
}

func buildQuiz(f Fields) (string, error) {
	if f.Title == "" {
		return "", apperrors.NewValidationError("title", "title is required")
	}
	if f.Topic == "" {
		return "", apperrors.NewValidationError("topic", "topic is required")
	}
	if f.QuestionCount < 5 || f.QuestionCount > 50 {
		return "", apperrors.NewValidationError("questionCount", "questionCount must be between 5 and 50")
	}
	timeLimit := f.TimeLimit
	if timeLimit == 0 {
		timeLimit = defaultQuizTimeLimit
	}
	if timeLimit < 5 || timeLimit > 180 {
		return "", apperrors.NewValidationError("timeLimit", "timeLimit must be between 5 and 180 minutes")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Generate a math quiz titled %q with %d questions:\n", f.Title, f.QuestionCount)
	fmt.Fprintf(&sb, "Topic: %s\n", f.Topic)
	fmt.Fprintf(&sb, "Time Limit: %d minutes\n", timeLimit)
	if f.GradeLevel != "" {
		fmt.Fprintf(&sb, "Grade Level: %s\n", f.GradeLevel)
	}
	sb.WriteString("\nFor each question, provide:\n")
	sb.WriteString("1. The question text\n")
	sb.WriteString("2. Multiple choice options (4 options)\n")
	sb.WriteString("3. The correct answer\n")
	sb.WriteString("4. An explanation\n")
	sb.WriteString("\nFormat as a JSON object containing: title, description, timeLimit, questions (array of objects with questionText, questionType, options, correctAnswer, explanation)")
	return sb.String(), nil
}

func buildChat(f Fields) (string, error) {
	if f.Message == "" {
		return "", apperrors.NewValidationError("message", "message is required")
	}

	var sb strings.Builder
	sb.WriteString("You are a friendly and patient math tutor. Answer the student's question clearly, showing the steps of your reasoning.\n")
	if f.Topic != "" {
		fmt.Fprintf(&sb, "Current Topic: %s\n", f.Topic)
	}
	fmt.Fprintf(&sb, "\nStudent: %s", f.Message)
	return sb.String(), nil
}

func buildFeedback(f Fields) (string, error) {
	if f.Question == "" {
		return "", apperrors.NewValidationError("question", "question is required")
	}
	if f.StudentAnswer == "" {
		return "", apperrors.NewValidationError("studentAnswer", "studentAnswer is required")
	}
	if f.CorrectAnswer == "" {
		return "", apperrors.NewValidationError("correctAnswer", "correctAnswer is required")
	}

	var sb strings.Builder
	sb.WriteString("As a math tutor, provide constructive feedback for a student's answer:\n")
	fmt.Fprintf(&sb, "Question: %s\n", f.Question)
	if f.Topic != "" {
		fmt.Fprintf(&sb, "Topic: %s\n", f.Topic)
	}
	fmt.Fprintf(&sb, "Student's Answer: %s\n", f.StudentAnswer)
	fmt.Fprintf(&sb, "Correct Answer: %s\n", f.CorrectAnswer)
	sb.WriteString("\nPlease provide:\n")
	sb.WriteString("1. Whether the answer is correct or incorrect\n")
	sb.WriteString("2. Explanation of the correct approach\n")
	sb.WriteString("3. Common mistakes to avoid\n")
	sb.WriteString("4. Tips for improvement\n")
	sb.WriteString("5. Related concepts to review")
	return sb.String(), nil
}

func buildRecommendations(f Fields) (string, error) {
	if len(f.WeakTopics) == 0 && len(f.StrongTopics) == 0 {
		return "", apperrors.NewValidationError("weakTopics", "at least one weak or strong topic is required")
	}

	var sb strings.Builder
	sb.WriteString("Based on a student's learning profile, provide personalized study recommendations:\n")
	fmt.Fprintf(&sb, "Weak Topics: %s\n", strings.Join(f.WeakTopics, ", "))
	fmt.Fprintf(&sb, "Strong Topics: %s\n", strings.Join(f.StrongTopics, ", "))
	fmt.Fprintf(&sb, "Recent Scores: %s\n", joinScores(f.RecentScores))
	sb.WriteString("\nPlease provide:\n")
	sb.WriteString("1. Priority topics to focus on\n")
	sb.WriteString("2. Recommended practice problems\n")
	sb.WriteString("3. Study strategies\n")
	sb.WriteString("4. Resources to review\n")
	sb.WriteString("5. Estimated time to mastery")
	return sb.String(), nil
}

func buildRephrase(f Fields) (string, error) {
	if f.Content == "" {
		return "", apperrors.NewValidationError("content", "content is required")
	}
	style := f.Style
	if style == "" {
		style = "simpler"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Rephrase the following math lesson content in a %s style. Make it clearer and more engaging for students:\n\n", style)
	sb.WriteString(f.Content)
	sb.WriteString("\n\nMaintain all the mathematical accuracy and key concepts.")
	return sb.String(), nil
}

func joinScores(scores []float64) string {
	parts := make([]string, 0, len(scores))
	for _, s := range scores {
		parts = append(parts, fmt.Sprintf("%g", s))
	}
	return strings.Join(parts, ", ")
}
