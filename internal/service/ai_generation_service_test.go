package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-mathteach-be/internal/dto"
	"ai-mathteach-be/internal/entity"
	"ai-mathteach-be/internal/pkg/apperrors"
	"ai-mathteach-be/internal/repository/memory"
	"ai-mathteach-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

const quizJSON = `{
	"title": "Fractions Basics",
	"description": "A short check on fraction arithmetic",
	"timeLimit": 20,
	"questions": [
		{"questionText": "What is 1/2 + 1/4?", "questionType": "multiple_choice", "options": ["3/4", "2/6", "1/8", "1"], "correctAnswer": "3/4"},
		{"questionText": "Is 2/4 equal to 1/2?", "questionType": "true_false", "correctAnswer": "True"}
	]
}`

const questionsJSON = `[
	{"questionText": "Solve 3x = 12", "questionType": "short_answer", "correctAnswer": "4", "explanation": "Divide both sides by 3"},
	{"questionText": "What is 7 * 8?", "questionType": "multiple_choice", "options": ["54", "56", "58", "64"], "correctAnswer": "56"}
]`

const lessonPlanJSON = `{
	"title": "Introduction to Fractions",
	"gradeLevel": "Elementary",
	"duration": 45,
	"learningObjectives": ["Understand halves and quarters"],
	"materials": ["Fraction circles"],
	"activities": [{"title": "Warm up", "duration": 10, "description": "Review previous lesson"}],
	"assessment": "Exit ticket with three problems",
	"homework": "Worksheet page 12"
}`

func newGenerationHarness(provider *fakeProvider) (IAiGenerationService, *fakeStore, *fakePublisher, *fakeUsage) {
	store := newFakeStore()
	publisher := &fakePublisher{}
	usage := &fakeUsage{}
	svc := NewAiGenerationService(
		&fakeFactory{store: store},
		provider,
		usage,
		publisher,
		memory.NewConversationRepository(),
		noopLogger{},
	)
	return svc, store, publisher, usage
}

func validLessonPlanRequest() *dto.GenerateLessonPlanRequest {
	return &dto.GenerateLessonPlanRequest{
		Topic:      "Fractions",
		GradeLevel: "Elementary",
		Duration:   45,
		TeacherId:  uuid.NewString(),
		LevelId:    1,
		Grade:      4,
	}
}

func TestPreviewQuizLeavesNoLedgerRecord(t *testing.T) {
	provider := &fakeProvider{response: quizJSON}
	svc, store, publisher, usage := newGenerationHarness(provider)

	res, err := svc.PreviewQuiz(context.Background(), uuid.New(), &dto.GenerateQuizRequest{
		Title:         "Fractions Quiz",
		Topic:         "Fractions",
		QuestionCount: 5,
	})

	assert.NoError(t, err)
	assert.False(t, res.Malformed)
	assert.Equal(t, "Fractions Basics", res.Title)
	assert.Equal(t, 20, res.TimeLimit)
	assert.Len(t, res.Questions, 2)
	assert.Equal(t, 2*pointsPerQuestion, res.TotalScore)

	assert.Empty(t, store.requests, "preview must not write to the ledger")
	assert.Empty(t, store.quizzes, "preview must not persist a quiz")
	assert.Empty(t, publisher.events, "preview must not publish events")
	assert.Equal(t, 1, usage.calls, "preview still counts against the daily quota")
}

func TestGenerateLessonPlanSealsCompletedWithLinkage(t *testing.T) {
	provider := &fakeProvider{response: lessonPlanJSON}
	svc, store, publisher, _ := newGenerationHarness(provider)
	userId := uuid.New()

	res, err := svc.GenerateLessonPlan(context.Background(), userId, validLessonPlanRequest())
	assert.NoError(t, err)
	assert.Equal(t, "Introduction to Fractions", res.Title)
	assert.Equal(t, entity.LessonPlanStatusGenerated, res.Status)

	assert.Len(t, store.lessonPlans, 1)
	plan := store.lessonPlans[0]
	assert.Equal(t, res.LessonPlanId, plan.Id)
	assert.Equal(t, userId, plan.TeacherId)
	assert.Nil(t, plan.RawContent)
	assert.Equal(t, []string{"Understand halves and quarters"}, plan.LearningObjectives)

	assert.Len(t, store.requests, 1)
	for _, record := range store.requests {
		assert.Equal(t, entity.AiRequestStatusCompleted, record.Status)
		assert.Equal(t, entity.AiRequestTypeLessonPlan, record.RequestType)
		assert.NotNil(t, record.Response)
		assert.Nil(t, record.Error)
		assert.Equal(t, plan.Id.String(), record.Metadata["lessonPlanId"])
		assert.NotNil(t, plan.AiRequestId)
		assert.Equal(t, record.Id, *plan.AiRequestId)
	}

	assert.Equal(t, []string{events.TypeGenerationCompleted}, publisher.eventTypes())
}

func TestGenerateLessonPlanProviderFailureSealsFailed(t *testing.T) {
	provider := &fakeProvider{err: errors.New("model unavailable")}
	svc, store, publisher, _ := newGenerationHarness(provider)

	res, err := svc.GenerateLessonPlan(context.Background(), uuid.New(), validLessonPlanRequest())
	assert.Nil(t, res)

	var genErr *apperrors.GenerationError
	assert.ErrorAs(t, err, &genErr)

	assert.Empty(t, store.lessonPlans, "no entity may be persisted on failure")
	assert.Len(t, store.requests, 1)
	for _, record := range store.requests {
		assert.Equal(t, entity.AiRequestStatusFailed, record.Status)
		assert.NotNil(t, record.Error)
		assert.Contains(t, *record.Error, "model unavailable")
		assert.Nil(t, record.Response)
	}

	assert.Equal(t, []string{events.TypeGenerationFailed}, publisher.eventTypes())
}

func TestGenerateQuestionsMalformedStillCompletes(t *testing.T) {
	provider := &fakeProvider{response: "Sorry, here are some ideas instead of JSON."}
	svc, store, _, _ := newGenerationHarness(provider)

	res, err := svc.GenerateQuestions(context.Background(), uuid.New(), &dto.GenerateQuestionsRequest{
		Topic: "Algebra",
		Count: 3,
	})

	assert.NoError(t, err, "malformed output is not a generation failure")
	assert.Equal(t, 0, res.Count)
	assert.Empty(t, res.QuestionIds)
	assert.NotEmpty(t, res.Message)

	assert.Empty(t, store.questions)
	for _, record := range store.requests {
		assert.Equal(t, entity.AiRequestStatusCompleted, record.Status)
		assert.Equal(t, "Sorry, here are some ideas instead of JSON.", *record.Response)
		assert.Equal(t, true, record.Metadata["malformed"])
	}
}

func TestGenerateQuestionsPersistsBank(t *testing.T) {
	provider := &fakeProvider{response: questionsJSON}
	svc, store, _, _ := newGenerationHarness(provider)
	userId := uuid.New()

	res, err := svc.GenerateQuestions(context.Background(), userId, &dto.GenerateQuestionsRequest{
		Topic: "Algebra",
		Count: 2,
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, res.Count)
	assert.Len(t, res.QuestionIds, 2)
	assert.Len(t, store.questions, 2)
	for _, question := range store.questions {
		assert.Equal(t, userId, question.TeacherId)
		assert.Equal(t, "Algebra", question.Topic)
		assert.Nil(t, question.QuizId, "bank questions are not attached to a quiz")
		assert.NotNil(t, question.AiRequestId)
	}
	assert.Equal(t, entity.QuestionTypeShortAnswer, store.questions[0].QuestionType)
	assert.Equal(t, entity.QuestionTypeMultipleChoice, store.questions[1].QuestionType)
}

func TestGenerateQuizMalformedKeepsDraftShell(t *testing.T) {
	provider := &fakeProvider{response: "no json here"}
	svc, store, _, _ := newGenerationHarness(provider)

	res, err := svc.GenerateQuiz(context.Background(), uuid.New(), &dto.GenerateQuizRequest{
		Title:         "Geometry Check",
		Topic:         "Geometry",
		QuestionCount: 5,
	})

	assert.NoError(t, err)
	assert.Equal(t, 0, res.QuestionCount)
	assert.Equal(t, entity.QuizStatusDraft, res.Status)
	assert.Equal(t, defaultQuizTimeLimitMinutes, res.TimeLimit)

	assert.Len(t, store.quizzes, 1)
	assert.Equal(t, entity.QuizStatusDraft, store.quizzes[0].Status)
	assert.Empty(t, store.questions)
	for _, record := range store.requests {
		assert.Equal(t, entity.AiRequestStatusCompleted, record.Status)
	}
}

func TestGenerateQuizPersistsQuestionsAndScore(t *testing.T) {
	provider := &fakeProvider{response: quizJSON}
	svc, store, _, _ := newGenerationHarness(provider)
	userId := uuid.New()

	res, err := svc.GenerateQuiz(context.Background(), userId, &dto.GenerateQuizRequest{
		Title:         "Fractions Quiz",
		Topic:         "Fractions",
		QuestionCount: 5,
	})

	assert.NoError(t, err)
	assert.Equal(t, "Fractions Basics", res.Title)
	assert.Equal(t, 2, res.QuestionCount)
	assert.Equal(t, 2*pointsPerQuestion, res.TotalScore)
	assert.Equal(t, 20, res.TimeLimit)
	assert.Equal(t, entity.QuizStatusGenerated, res.Status)

	assert.Len(t, store.quizzes, 1)
	quiz := store.quizzes[0]
	assert.Len(t, store.questions, 2)
	for _, question := range store.questions {
		assert.NotNil(t, question.QuizId)
		assert.Equal(t, quiz.Id, *question.QuizId)
	}
}

func TestGenerateBlockedWhenQuotaSpent(t *testing.T) {
	provider := &fakeProvider{response: lessonPlanJSON}
	store := newFakeStore()
	publisher := &fakePublisher{}
	usage := &fakeUsage{err: apperrors.NewLimitExceededError(50, 50, time.Now().Add(time.Hour))}
	svc := NewAiGenerationService(&fakeFactory{store: store}, provider, usage, publisher, memory.NewConversationRepository(), noopLogger{})

	_, err := svc.GenerateLessonPlan(context.Background(), uuid.New(), validLessonPlanRequest())

	var limitErr *apperrors.LimitExceededError
	assert.ErrorAs(t, err, &limitErr)
	assert.Empty(t, store.requests, "a rejected request never reaches the ledger")
	assert.Empty(t, provider.prompts, "a rejected request never reaches the model")
}

func TestChatKeepsConversationAcrossTurns(t *testing.T) {
	provider := &fakeProvider{response: "Think about the denominators first."}
	svc, store, _, _ := newGenerationHarness(provider)
	userId := uuid.New()

	first, err := svc.Chat(context.Background(), userId, &dto.ChatRequest{
		Message: "How do I add fractions?",
		Topic:   "Fractions",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, first.ConversationId)

	second, err := svc.Chat(context.Background(), userId, &dto.ChatRequest{
		Message:        "Can you show an example?",
		ConversationId: first.ConversationId,
	})
	assert.NoError(t, err)
	assert.Equal(t, first.ConversationId, second.ConversationId)

	// The second model call must carry the first exchange as history.
	assert.Len(t, provider.histories, 2)
	secondHistory := provider.histories[1]
	assert.GreaterOrEqual(t, len(secondHistory), 3)
	assert.Contains(t, secondHistory[0].Content, "How do I add fractions?")
	assert.Equal(t, "Think about the denominators first.", secondHistory[1].Content)

	// Both turns are ledger-tracked and sealed.
	assert.Len(t, store.requests, 2)
	for _, record := range store.requests {
		assert.Equal(t, entity.AiRequestStatusCompleted, record.Status)
		assert.Equal(t, entity.AiRequestTypeChat, record.RequestType)
	}
}

func TestChatRejectsForeignConversation(t *testing.T) {
	provider := &fakeProvider{response: "ok"}
	svc, _, _, _ := newGenerationHarness(provider)

	owner := uuid.New()
	first, err := svc.Chat(context.Background(), owner, &dto.ChatRequest{Message: "hello"})
	assert.NoError(t, err)

	// Another user presenting the same conversation id gets a fresh one.
	intruder := uuid.New()
	second, err := svc.Chat(context.Background(), intruder, &dto.ChatRequest{
		Message:        "hello again",
		ConversationId: first.ConversationId,
	})
	assert.NoError(t, err)
	assert.NotEqual(t, first.ConversationId, second.ConversationId)
}

func TestRecommendationsDerivesProfileFromAttempts(t *testing.T) {
	provider := &fakeProvider{response: "Focus on fractions this week."}
	svc, store, _, _ := newGenerationHarness(provider)
	studentId := uuid.New()

	// Weak topic: 40%, strong topic: 90%.
	store.attempts = append(store.attempts,
		&entity.QuizAttempt{Id: uuid.New(), StudentId: studentId, Topic: "Fractions", Score: 40, TotalScore: 100},
		&entity.QuizAttempt{Id: uuid.New(), StudentId: studentId, Topic: "Geometry", Score: 90, TotalScore: 100},
	)

	res, err := svc.Recommendations(context.Background(), studentId, &dto.RecommendationsRequest{})
	assert.NoError(t, err)
	assert.Equal(t, "Focus on fractions this week.", res.Recommendations)

	assert.Len(t, provider.prompts, 1)
	assert.Contains(t, provider.prompts[0], "Fractions")
	assert.Contains(t, provider.prompts[0], "Geometry")
}

func TestRecommendationsWithoutAttemptsOrProfileFails(t *testing.T) {
	provider := &fakeProvider{response: "unused"}
	svc, _, _, _ := newGenerationHarness(provider)

	_, err := svc.Recommendations(context.Background(), uuid.New(), &dto.RecommendationsRequest{})
	assert.True(t, apperrors.IsValidation(err))
	assert.Empty(t, provider.prompts)
}

func TestLedgerSealsExactlyOnce(t *testing.T) {
	store := newFakeStore()
	repo := &fakeAiRequestRepo{store: store}
	record := &entity.AiRequest{Id: uuid.New(), UserId: uuid.New(), Status: entity.AiRequestStatusPending}
	assert.NoError(t, repo.Create(context.Background(), record))

	assert.NoError(t, repo.MarkCompleted(context.Background(), record.Id, "done", nil))

	err := repo.MarkFailed(context.Background(), record.Id, "late failure")
	assert.True(t, apperrors.IsInvalidTransition(err))

	err = repo.MarkCompleted(context.Background(), record.Id, "again", nil)
	assert.True(t, apperrors.IsInvalidTransition(err))
}
