package service

import (
	"context"
	"time"

	"ai-mathteach-be/internal/dto"
	"ai-mathteach-be/internal/entity"
	"ai-mathteach-be/internal/pkg/apperrors"
	"ai-mathteach-be/internal/repository/specification"
	"ai-mathteach-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IQuestionService interface {
	Create(ctx context.Context, teacherId uuid.UUID, req *dto.CreateQuestionRequest) (*dto.CreateQuestionResponse, error)
	Show(ctx context.Context, teacherId uuid.UUID, id uuid.UUID) (*dto.QuestionResponse, error)
	Delete(ctx context.Context, teacherId uuid.UUID, id uuid.UUID) error
	// List returns standalone question-bank entries, excluding questions
	// that belong to a quiz.
	List(ctx context.Context, teacherId uuid.UUID, query *dto.ListQuestionsQuery) ([]*dto.QuestionResponse, int64, error)
	ListDifficulties(ctx context.Context) ([]*dto.DifficultyResponse, error)
}

type questionService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewQuestionService(uowFactory unitofwork.RepositoryFactory) IQuestionService {
	return &questionService{
		uowFactory: uowFactory,
	}
}

func (s *questionService) Create(ctx context.Context, teacherId uuid.UUID, req *dto.CreateQuestionRequest) (*dto.CreateQuestionResponse, error) {
	question := entity.Question{
		Id:            uuid.New(),
		TeacherId:     teacherId,
		Topic:         req.Topic,
		QuestionText:  req.QuestionText,
		QuestionType:  entity.QuestionType(req.QuestionType),
		Options:       req.Options,
		CorrectAnswer: req.CorrectAnswer,
		Explanation:   req.Explanation,
		GradeLevel:    req.GradeLevel,
		DifficultyId:  req.DifficultyId,
		CreatedAt:     time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.QuestionRepository().Create(ctx, &question); err != nil {
		return nil, err
	}
	return &dto.CreateQuestionResponse{Id: question.Id}, nil
}

func (s *questionService) Show(ctx context.Context, teacherId uuid.UUID, id uuid.UUID) (*dto.QuestionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	question, err := uow.QuestionRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{Column: "teacher_id", UserID: teacherId},
	)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, apperrors.NewNotFoundError("question")
	}
	return questionToResponse(question), nil
}

func (s *questionService) Delete(ctx context.Context, teacherId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	question, err := uow.QuestionRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{Column: "teacher_id", UserID: teacherId},
	)
	if err != nil {
		return err
	}
	if question == nil {
		return apperrors.NewNotFoundError("question")
	}
	return uow.QuestionRepository().Delete(ctx, question.Id)
}

func (s *questionService) List(ctx context.Context, teacherId uuid.UUID, query *dto.ListQuestionsQuery) ([]*dto.QuestionResponse, int64, error) {
	page, limit := dto.NormalizePage(query.Page, query.Limit)

	specs := []specification.Specification{
		specification.OwnedBy{Column: "teacher_id", UserID: teacherId},
		specification.BankOnly{},
	}
	if query.Topic != "" {
		specs = append(specs, specification.ByTopic{Topic: query.Topic})
	}
	if query.QuestionType != "" {
		specs = append(specs, specification.Filter("question_type", query.QuestionType))
	}
	if query.Search != "" {
		specs = append(specs, specification.QuestionSearch{Query: query.Search})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	total, err := uow.QuestionRepository().Count(ctx, specs...)
	if err != nil {
		return nil, 0, err
	}

	listSpecs := append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	questions, err := uow.QuestionRepository().FindAll(ctx, listSpecs...)
	if err != nil {
		return nil, 0, err
	}

	out := make([]*dto.QuestionResponse, 0, len(questions))
	for _, question := range questions {
		out = append(out, questionToResponse(question))
	}
	return out, total, nil
}

func (s *questionService) ListDifficulties(ctx context.Context) ([]*dto.DifficultyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	difficulties, err := uow.DifficultyRepository().FindAll(ctx,
		specification.OrderBy{Field: "level", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.DifficultyResponse, 0, len(difficulties))
	for _, difficulty := range difficulties {
		out = append(out, &dto.DifficultyResponse{
			Id:    difficulty.Id,
			Name:  difficulty.Name,
			Level: difficulty.Level,
		})
	}
	return out, nil
}

func questionToResponse(question *entity.Question) *dto.QuestionResponse {
	return &dto.QuestionResponse{
		Id:            question.Id,
		QuestionText:  question.QuestionText,
		QuestionType:  string(question.QuestionType),
		Topic:         question.Topic,
		Options:       question.Options,
		CorrectAnswer: question.CorrectAnswer,
		Explanation:   question.Explanation,
		GradeLevel:    question.GradeLevel,
		DifficultyId:  question.DifficultyId,
		QuizId:        question.QuizId,
		AiRequestId:   question.AiRequestId,
		CreatedAt:     question.CreatedAt,
	}
}
