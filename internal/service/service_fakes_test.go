package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"ai-mathteach-be/internal/entity"
	"ai-mathteach-be/internal/pkg/apperrors"
	"ai-mathteach-be/internal/repository/contract"
	"ai-mathteach-be/internal/repository/specification"
	"ai-mathteach-be/internal/repository/unitofwork"
	"ai-mathteach-be/pkg/events"
	"ai-mathteach-be/pkg/llm"

	"github.com/google/uuid"
)

// In-memory fakes backing the service tests. The ledger fake enforces the
// same guarded transitions as the SQL implementation: terminal updates only
// apply to Pending rows.

type fakeStore struct {
	mu           sync.Mutex
	requests     map[uuid.UUID]*entity.AiRequest
	lessonPlans  []*entity.LessonPlan
	questions    []*entity.Question
	quizzes      []*entity.Quiz
	attempts     []*entity.QuizAttempt
	difficulties []*entity.Difficulty

	createRequestErr error
	createPlanErr    error
	createBatchErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{requests: make(map[uuid.UUID]*entity.AiRequest)}
}

type fakeFactory struct {
	store *fakeStore
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{store: f.store}
}

type fakeUow struct {
	store *fakeStore
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) AiRequestRepository() contract.AiRequestRepository {
	return &fakeAiRequestRepo{store: u.store}
}
func (u *fakeUow) LessonPlanRepository() contract.LessonPlanRepository {
	return &fakeLessonPlanRepo{store: u.store}
}
func (u *fakeUow) QuestionRepository() contract.QuestionRepository {
	return &fakeQuestionRepo{store: u.store}
}
func (u *fakeUow) QuizRepository() contract.QuizRepository {
	return &fakeQuizRepo{store: u.store}
}
func (u *fakeUow) QuizAttemptRepository() contract.QuizAttemptRepository {
	return &fakeQuizAttemptRepo{store: u.store}
}
func (u *fakeUow) NotificationRepository() contract.NotificationRepository {
	return &fakeNotificationRepo{}
}
func (u *fakeUow) DifficultyRepository() contract.DifficultyRepository {
	return &fakeDifficultyRepo{store: u.store}
}

// Ledger

type fakeAiRequestRepo struct {
	store *fakeStore
}

func (r *fakeAiRequestRepo) Create(ctx context.Context, request *entity.AiRequest) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.createRequestErr != nil {
		return r.store.createRequestErr
	}
	clone := *request
	r.store.requests[request.Id] = &clone
	return nil
}

func (r *fakeAiRequestRepo) MarkCompleted(ctx context.Context, id uuid.UUID, response string, metadata map[string]interface{}) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	record, ok := r.store.requests[id]
	if !ok || record.Status != entity.AiRequestStatusPending {
		return apperrors.NewInvalidTransitionError(id.String(), string(entity.AiRequestStatusCompleted))
	}
	record.Status = entity.AiRequestStatusCompleted
	record.Response = &response
	record.Metadata = metadata
	now := time.Now()
	record.CompletedAt = &now
	return nil
}

func (r *fakeAiRequestRepo) MarkFailed(ctx context.Context, id uuid.UUID, cause string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	record, ok := r.store.requests[id]
	if !ok || record.Status != entity.AiRequestStatusPending {
		return apperrors.NewInvalidTransitionError(id.String(), string(entity.AiRequestStatusFailed))
	}
	record.Status = entity.AiRequestStatusFailed
	record.Error = &cause
	now := time.Now()
	record.CompletedAt = &now
	return nil
}

func (r *fakeAiRequestRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AiRequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, record := range r.store.requests {
		if matchRequest(record, specs) {
			clone := *record
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeAiRequestRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AiRequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.AiRequest
	for _, record := range r.store.requests {
		if matchRequest(record, specs) {
			clone := *record
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeAiRequestRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	records, _ := r.FindAll(ctx, specs...)
	return int64(len(records)), nil
}

func matchRequest(record *entity.AiRequest, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if record.Id != s.ID {
				return false
			}
		case specification.OwnedBy:
			if record.UserId != s.UserID {
				return false
			}
		case specification.ByRequestType:
			if record.RequestType != s.Type {
				return false
			}
		case specification.ByStatus:
			if record.Status != s.Status {
				return false
			}
		case specification.PromptSearch:
			if !strings.Contains(strings.ToLower(record.Prompt), strings.ToLower(s.Query)) {
				return false
			}
		}
	}
	return true
}

// Content repositories

type fakeLessonPlanRepo struct {
	store *fakeStore
}

func (r *fakeLessonPlanRepo) Create(ctx context.Context, plan *entity.LessonPlan) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.createPlanErr != nil {
		return r.store.createPlanErr
	}
	clone := *plan
	r.store.lessonPlans = append(r.store.lessonPlans, &clone)
	return nil
}

func (r *fakeLessonPlanRepo) Update(ctx context.Context, plan *entity.LessonPlan) error { return nil }
func (r *fakeLessonPlanRepo) Delete(ctx context.Context, id uuid.UUID) error            { return nil }

func (r *fakeLessonPlanRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.LessonPlan, error) {
	return nil, nil
}

func (r *fakeLessonPlanRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LessonPlan, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return append([]*entity.LessonPlan{}, r.store.lessonPlans...), nil
}

func (r *fakeLessonPlanRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.store.lessonPlans)), nil
}

type fakeQuestionRepo struct {
	store *fakeStore
}

func (r *fakeQuestionRepo) Create(ctx context.Context, question *entity.Question) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	clone := *question
	r.store.questions = append(r.store.questions, &clone)
	return nil
}

func (r *fakeQuestionRepo) CreateBatch(ctx context.Context, questions []*entity.Question) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.createBatchErr != nil {
		return r.store.createBatchErr
	}
	for _, question := range questions {
		clone := *question
		r.store.questions = append(r.store.questions, &clone)
	}
	return nil
}

func (r *fakeQuestionRepo) Update(ctx context.Context, question *entity.Question) error { return nil }
func (r *fakeQuestionRepo) Delete(ctx context.Context, id uuid.UUID) error              { return nil }

func (r *fakeQuestionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Question, error) {
	return nil, nil
}

func (r *fakeQuestionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Question, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Question
	for _, question := range r.store.questions {
		if matchQuestion(question, specs) {
			clone := *question
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeQuestionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	questions, _ := r.FindAll(ctx, specs...)
	return int64(len(questions)), nil
}

func matchQuestion(question *entity.Question, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if question.Id != s.ID {
				return false
			}
		case specification.ByQuiz:
			if question.QuizId == nil || *question.QuizId != s.QuizID {
				return false
			}
		case specification.OwnedBy:
			if question.TeacherId != s.UserID {
				return false
			}
		}
	}
	return true
}

type fakeQuizRepo struct {
	store *fakeStore
}

func (r *fakeQuizRepo) Create(ctx context.Context, quiz *entity.Quiz) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	clone := *quiz
	r.store.quizzes = append(r.store.quizzes, &clone)
	return nil
}

func (r *fakeQuizRepo) Update(ctx context.Context, quiz *entity.Quiz) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, existing := range r.store.quizzes {
		if existing.Id == quiz.Id {
			clone := *quiz
			r.store.quizzes[i] = &clone
			return nil
		}
	}
	return nil
}

func (r *fakeQuizRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := r.store.quizzes[:0]
	for _, quiz := range r.store.quizzes {
		if quiz.Id != id {
			out = append(out, quiz)
		}
	}
	r.store.quizzes = out
	return nil
}

func (r *fakeQuizRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Quiz, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, quiz := range r.store.quizzes {
		if matchQuiz(quiz, specs) {
			clone := *quiz
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeQuizRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Quiz, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Quiz
	for _, quiz := range r.store.quizzes {
		if matchQuiz(quiz, specs) {
			clone := *quiz
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeQuizRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	quizzes, _ := r.FindAll(ctx, specs...)
	return int64(len(quizzes)), nil
}

func matchQuiz(quiz *entity.Quiz, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if quiz.Id != s.ID {
				return false
			}
		case specification.OwnedBy:
			if quiz.TeacherId != s.UserID {
				return false
			}
		case specification.FilterBy:
			if s.Field == "status" && quiz.Status != s.Value {
				return false
			}
		}
	}
	return true
}

type fakeQuizAttemptRepo struct {
	store *fakeStore
}

func (r *fakeQuizAttemptRepo) Create(ctx context.Context, attempt *entity.QuizAttempt) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	clone := *attempt
	r.store.attempts = append(r.store.attempts, &clone)
	return nil
}

func (r *fakeQuizAttemptRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.QuizAttempt, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.QuizAttempt
	for _, attempt := range r.store.attempts {
		if matchAttempt(attempt, specs) {
			clone := *attempt
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeQuizAttemptRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	attempts, _ := r.FindAll(ctx, specs...)
	return int64(len(attempts)), nil
}

func matchAttempt(attempt *entity.QuizAttempt, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.OwnedBy:
			if attempt.StudentId != s.UserID {
				return false
			}
		case specification.FilterBy:
			if s.Field == "quiz_id" {
				if id, ok := s.Value.(uuid.UUID); !ok || attempt.QuizId != id {
					return false
				}
			}
		case specification.ByIDs:
			if s.Column == "quiz_id" {
				found := false
				for _, id := range s.IDs {
					if attempt.QuizId == id {
						found = true
						break
					}
				}
				if !found {
					return false
				}
			}
		}
	}
	return true
}

type fakeNotificationRepo struct{}

func (r *fakeNotificationRepo) Create(ctx context.Context, notification *entity.Notification) error {
	return nil
}
func (r *fakeNotificationRepo) MarkRead(ctx context.Context, id uuid.UUID, userId uuid.UUID) error {
	return nil
}
func (r *fakeNotificationRepo) MarkAllRead(ctx context.Context, userId uuid.UUID) error { return nil }
func (r *fakeNotificationRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Notification, error) {
	return nil, nil
}
func (r *fakeNotificationRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

type fakeDifficultyRepo struct {
	store *fakeStore
}

func (r *fakeDifficultyRepo) Upsert(ctx context.Context, difficulty *entity.Difficulty) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	clone := *difficulty
	r.store.difficulties = append(r.store.difficulties, &clone)
	return nil
}

func (r *fakeDifficultyRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Difficulty, error) {
	return nil, nil
}

func (r *fakeDifficultyRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Difficulty, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return append([]*entity.Difficulty{}, r.store.difficulties...), nil
}

// Collaborators

type fakeProvider struct {
	mu        sync.Mutex
	response  string
	err       error
	prompts   []string
	histories [][]llm.Message
}

func (p *fakeProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prompts = append(p.prompts, prompt)
	if p.err != nil {
		return "", p.err
	}
	return p.response, nil
}

func (p *fakeProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.histories = append(p.histories, history)
	if p.err != nil {
		return "", p.err
	}
	return p.response, nil
}

type fakeUsage struct {
	err   error
	calls int
}

func (u *fakeUsage) CheckAndIncrement(ctx context.Context, userId uuid.UUID) error {
	u.calls++
	return u.err
}

func (u *fakeUsage) Remaining(ctx context.Context, userId uuid.UUID) (int, int, error) {
	return 50, 0, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *fakePublisher) PublishEvent(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) eventTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, event := range p.events {
		out = append(out, event.EventType())
	}
	return out
}

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }
