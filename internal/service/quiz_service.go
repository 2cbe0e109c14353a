package service

import (
	"context"
	"strings"
	"time"

	"ai-mathteach-be/internal/dto"
	"ai-mathteach-be/internal/entity"
	"ai-mathteach-be/internal/pkg/apperrors"
	"ai-mathteach-be/internal/repository/specification"
	"ai-mathteach-be/internal/repository/unitofwork"
	"ai-mathteach-be/pkg/events"

	"github.com/google/uuid"
)

type IQuizService interface {
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowQuizResponse, error)
	List(ctx context.Context, teacherId uuid.UUID, query *dto.ListQuizzesQuery) ([]*dto.QuizSummaryResponse, int64, error)
	// ListPublished returns quizzes available to students.
	ListPublished(ctx context.Context, query *dto.ListQuizzesQuery) ([]*dto.QuizSummaryResponse, int64, error)
	Publish(ctx context.Context, teacherId uuid.UUID, id uuid.UUID) (*dto.PublishQuizResponse, error)
	Delete(ctx context.Context, teacherId uuid.UUID, id uuid.UUID) error
	// Submit grades a student's answers against the quiz's questions and
	// records the attempt.
	Submit(ctx context.Context, studentId uuid.UUID, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error)
	ListAttempts(ctx context.Context, studentId uuid.UUID, quizId *uuid.UUID) ([]*dto.QuizAttemptResponse, error)
}

type quizService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  IPublisherService
}

func NewQuizService(uowFactory unitofwork.RepositoryFactory, publisher IPublisherService) IQuizService {
	return &quizService{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

func (s *quizService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowQuizResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	quiz, err := uow.QuizRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, apperrors.NewNotFoundError("quiz")
	}
	// Unpublished quizzes are visible to their owner only
	if quiz.Status != entity.QuizStatusPublished && quiz.TeacherId != userId {
		return nil, apperrors.NewNotFoundError("quiz")
	}

	questions, err := uow.QuestionRepository().FindAll(ctx,
		specification.ByQuiz{QuizID: quiz.Id},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.ShowQuizResponse{
		Id:          quiz.Id,
		Title:       quiz.Title,
		Topic:       quiz.Topic,
		Description: quiz.Description,
		TimeLimit:   quiz.TimeLimit,
		TotalScore:  quiz.TotalScore,
		Status:      quiz.Status,
		AiRequestId: quiz.AiRequestId,
		CreatedAt:   quiz.CreatedAt,
	}
	for _, question := range questions {
		res.Questions = append(res.Questions, *questionToResponse(question))
	}
	return res, nil
}

func (s *quizService) List(ctx context.Context, teacherId uuid.UUID, query *dto.ListQuizzesQuery) ([]*dto.QuizSummaryResponse, int64, error) {
	specs := []specification.Specification{
		specification.OwnedBy{Column: "teacher_id", UserID: teacherId},
	}
	return s.list(ctx, specs, query)
}

func (s *quizService) ListPublished(ctx context.Context, query *dto.ListQuizzesQuery) ([]*dto.QuizSummaryResponse, int64, error) {
	specs := []specification.Specification{
		specification.Filter("status", entity.QuizStatusPublished),
	}
	return s.list(ctx, specs, query)
}

func (s *quizService) list(ctx context.Context, specs []specification.Specification, query *dto.ListQuizzesQuery) ([]*dto.QuizSummaryResponse, int64, error) {
	page, limit := dto.NormalizePage(query.Page, query.Limit)

	if query.Topic != "" {
		specs = append(specs, specification.ByTopic{Topic: query.Topic})
	}
	if query.Status != "" {
		specs = append(specs, specification.Filter("status", query.Status))
	}
	if query.Search != "" {
		specs = append(specs, specification.TitleTopicSearch{Query: query.Search})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	total, err := uow.QuizRepository().Count(ctx, specs...)
	if err != nil {
		return nil, 0, err
	}

	listSpecs := append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	quizzes, err := uow.QuizRepository().FindAll(ctx, listSpecs...)
	if err != nil {
		return nil, 0, err
	}

	out := make([]*dto.QuizSummaryResponse, 0, len(quizzes))
	for _, quiz := range quizzes {
		questionCount, err := uow.QuestionRepository().Count(ctx, specification.ByQuiz{QuizID: quiz.Id})
		if err != nil {
			return nil, 0, err
		}
		out = append(out, &dto.QuizSummaryResponse{
			Id:            quiz.Id,
			Title:         quiz.Title,
			Topic:         quiz.Topic,
			QuestionCount: int(questionCount),
			TimeLimit:     quiz.TimeLimit,
			TotalScore:    quiz.TotalScore,
			Status:        quiz.Status,
			CreatedAt:     quiz.CreatedAt,
		})
	}
	return out, total, nil
}

func (s *quizService) Publish(ctx context.Context, teacherId uuid.UUID, id uuid.UUID) (*dto.PublishQuizResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	quiz, err := uow.QuizRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{Column: "teacher_id", UserID: teacherId},
	)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, apperrors.NewNotFoundError("quiz")
	}

	questionCount, err := uow.QuestionRepository().Count(ctx, specification.ByQuiz{QuizID: quiz.Id})
	if err != nil {
		return nil, err
	}
	if questionCount == 0 {
		return nil, apperrors.NewValidationError("quizId", "a quiz needs at least one question before publishing")
	}

	now := time.Now()
	quiz.Status = entity.QuizStatusPublished
	quiz.UpdatedAt = &now
	if err := uow.QuizRepository().Update(ctx, quiz); err != nil {
		return nil, err
	}

	evt := events.BaseEvent{
		Type: events.TypeQuizPublished,
		Data: map[string]interface{}{
			"quiz_id":    quiz.Id.String(),
			"teacher_id": teacherId.String(),
			"title":      quiz.Title,
		},
		OccurredAt: now,
	}
	// Event delivery is auxiliary; publishing must not fail the request
	_ = s.publisher.PublishEvent(ctx, evt)

	return &dto.PublishQuizResponse{Id: quiz.Id, Status: quiz.Status}, nil
}

func (s *quizService) Delete(ctx context.Context, teacherId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	quiz, err := uow.QuizRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{Column: "teacher_id", UserID: teacherId},
	)
	if err != nil {
		return err
	}
	if quiz == nil {
		return apperrors.NewNotFoundError("quiz")
	}
	return uow.QuizRepository().Delete(ctx, quiz.Id)
}

func (s *quizService) Submit(ctx context.Context, studentId uuid.UUID, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	quiz, err := uow.QuizRepository().FindOne(ctx, specification.ByID{ID: req.QuizId})
	if err != nil {
		return nil, err
	}
	if quiz == nil || quiz.Status != entity.QuizStatusPublished {
		return nil, apperrors.NewNotFoundError("quiz")
	}

	questions, err := uow.QuestionRepository().FindAll(ctx, specification.ByQuiz{QuizID: quiz.Id})
	if err != nil {
		return nil, err
	}
	questionsById := make(map[uuid.UUID]*entity.Question, len(questions))
	for _, question := range questions {
		questionsById[question.Id] = question
	}

	score := 0
	answers := make([]entity.QuizAnswer, 0, len(req.Answers))
	results := make([]dto.AnswerResultDTO, 0, len(req.Answers))
	for _, submitted := range req.Answers {
		question, ok := questionsById[submitted.QuestionId]
		if !ok {
			return nil, apperrors.NewValidationError("answers", "answer references a question not in this quiz")
		}
		correct := gradeAnswer(question, submitted.Answer)
		if correct {
			score += pointsPerQuestion
		}
		answers = append(answers, entity.QuizAnswer{
			QuestionId: submitted.QuestionId,
			Answer:     submitted.Answer,
			Correct:    correct,
		})
		results = append(results, dto.AnswerResultDTO{
			QuestionId:    submitted.QuestionId,
			Answer:        submitted.Answer,
			Correct:       correct,
			CorrectAnswer: question.CorrectAnswer,
			Explanation:   question.Explanation,
		})
	}

	totalScore := len(questions) * pointsPerQuestion
	attempt := entity.QuizAttempt{
		Id:         uuid.New(),
		QuizId:     quiz.Id,
		StudentId:  studentId,
		Topic:      quiz.Topic,
		Score:      score,
		TotalScore: totalScore,
		Answers:    answers,
		CreatedAt:  time.Now(),
	}
	if err := uow.QuizAttemptRepository().Create(ctx, &attempt); err != nil {
		return nil, err
	}

	evt := events.BaseEvent{
		Type: events.TypeQuizSubmitted,
		Data: map[string]interface{}{
			"quiz_id":     quiz.Id.String(),
			"teacher_id":  quiz.TeacherId.String(),
			"student_id":  studentId.String(),
			"attempt_id":  attempt.Id.String(),
			"title":       quiz.Title,
			"score":       score,
			"total_score": totalScore,
		},
		OccurredAt: attempt.CreatedAt,
	}
	_ = s.publisher.PublishEvent(ctx, evt)

	return &dto.SubmitQuizResponse{
		AttemptId:  attempt.Id,
		QuizId:     quiz.Id,
		Score:      score,
		TotalScore: totalScore,
		Results:    results,
		CreatedAt:  attempt.CreatedAt,
	}, nil
}

// gradeAnswer compares case-insensitively after trimming; multiple choice
// answers also match by option index or option text.
func gradeAnswer(question *entity.Question, answer string) bool {
	normalize := func(s string) string {
		return strings.ToLower(strings.TrimSpace(s))
	}
	if normalize(answer) == normalize(question.CorrectAnswer) {
		return true
	}
	if question.QuestionType == entity.QuestionTypeMultipleChoice {
		for i, option := range question.Options {
			if normalize(option) != normalize(question.CorrectAnswer) {
				continue
			}
			// Accept "A"/"B"/... referencing the correct option
			letter := string(rune('a' + i))
			if normalize(answer) == letter {
				return true
			}
		}
	}
	return false
}

func (s *quizService) ListAttempts(ctx context.Context, studentId uuid.UUID, quizId *uuid.UUID) ([]*dto.QuizAttemptResponse, error) {
	specs := []specification.Specification{
		specification.OwnedBy{Column: "student_id", UserID: studentId},
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if quizId != nil {
		specs = append(specs, specification.Filter("quiz_id", *quizId))
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	attempts, err := uow.QuizAttemptRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.QuizAttemptResponse, 0, len(attempts))
	for _, attempt := range attempts {
		out = append(out, &dto.QuizAttemptResponse{
			Id:         attempt.Id,
			QuizId:     attempt.QuizId,
			Topic:      attempt.Topic,
			Score:      attempt.Score,
			TotalScore: attempt.TotalScore,
			CreatedAt:  attempt.CreatedAt,
		})
	}
	return out, nil
}
