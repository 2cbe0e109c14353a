package service

import (
	"context"
	"sort"
	"time"

	"ai-mathteach-be/internal/dto"
	"ai-mathteach-be/internal/entity"
	"ai-mathteach-be/internal/pkg/apperrors"
	"ai-mathteach-be/internal/pkg/logger"
	"ai-mathteach-be/internal/repository/memory"
	"ai-mathteach-be/internal/repository/specification"
	"ai-mathteach-be/internal/repository/unitofwork"
	"ai-mathteach-be/pkg/ai/parse"
	"ai-mathteach-be/pkg/ai/prompt"
	"ai-mathteach-be/pkg/events"
	"ai-mathteach-be/pkg/llm"
	"ai-mathteach-be/pkg/store"

	"github.com/google/uuid"
)

const (
	pointsPerQuestion           = 10
	defaultQuizTimeLimitMinutes = 30
)

type IAiGenerationService interface {
	PreviewLessonPlan(ctx context.Context, userId uuid.UUID, req *dto.GenerateLessonPlanRequest) (*dto.PreviewLessonPlanResponse, error)
	GenerateLessonPlan(ctx context.Context, userId uuid.UUID, req *dto.GenerateLessonPlanRequest) (*dto.GenerateLessonPlanResponse, error)
	PreviewQuestions(ctx context.Context, userId uuid.UUID, req *dto.GenerateQuestionsRequest) (*dto.PreviewQuestionsResponse, error)
	GenerateQuestions(ctx context.Context, userId uuid.UUID, req *dto.GenerateQuestionsRequest) (*dto.GenerateQuestionsResponse, error)
	PreviewQuiz(ctx context.Context, userId uuid.UUID, req *dto.GenerateQuizRequest) (*dto.PreviewQuizResponse, error)
	GenerateQuiz(ctx context.Context, userId uuid.UUID, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error)
	Chat(ctx context.Context, userId uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error)
	Feedback(ctx context.Context, userId uuid.UUID, req *dto.FeedbackRequest) (*dto.FeedbackResponse, error)
	Recommendations(ctx context.Context, userId uuid.UUID, req *dto.RecommendationsRequest) (*dto.RecommendationsResponse, error)
	Rephrase(ctx context.Context, userId uuid.UUID, req *dto.RephraseRequest) (*dto.RephraseResponse, error)
}

type aiGenerationService struct {
	uowFactory    unitofwork.RepositoryFactory
	provider      llm.LLMProvider
	usageService  IUsageService
	publisher     IPublisherService
	conversations *memory.ConversationRepository
	logger        logger.ILogger
}

func NewAiGenerationService(
	uowFactory unitofwork.RepositoryFactory,
	provider llm.LLMProvider,
	usageService IUsageService,
	publisher IPublisherService,
	conversations *memory.ConversationRepository,
	log logger.ILogger,
) IAiGenerationService {
	return &aiGenerationService{
		uowFactory:    uowFactory,
		provider:      provider,
		usageService:  usageService,
		publisher:     publisher,
		conversations: conversations,
		logger:        log,
	}
}

// preview builds the prompt and calls the model without touching the
// ledger. Used by every preview endpoint.
func (s *aiGenerationService) preview(ctx context.Context, userId uuid.UUID, kind entity.AiRequestType, fields prompt.Fields) (parse.Result, error) {
	promptText, err := prompt.Build(kind, fields)
	if err != nil {
		return parse.Result{}, err
	}
	if err := s.usageService.CheckAndIncrement(ctx, userId); err != nil {
		return parse.Result{}, err
	}

	raw, err := s.provider.Generate(ctx, promptText)
	if err != nil {
		return parse.Result{}, apperrors.NewGenerationError(err)
	}
	return parse.Parse(kind, raw), nil
}

// generate runs the commit path up to the parsed result. A ledger record
// is created in Pending before the model call and sealed Failed here on
// any generation error. Sealing Completed is the caller's job once
// entity persistence and linkage are known.
func (s *aiGenerationService) generate(ctx context.Context, userId uuid.UUID, kind entity.AiRequestType, fields prompt.Fields) (uuid.UUID, parse.Result, error) {
	promptText, err := prompt.Build(kind, fields)
	if err != nil {
		return uuid.Nil, parse.Result{}, err
	}
	if err := s.usageService.CheckAndIncrement(ctx, userId); err != nil {
		return uuid.Nil, parse.Result{}, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	record := entity.AiRequest{
		Id:          uuid.New(),
		UserId:      userId,
		RequestType: kind,
		Prompt:      promptText,
		Status:      entity.AiRequestStatusPending,
		CreatedAt:   time.Now(),
	}
	if err := uow.AiRequestRepository().Create(ctx, &record); err != nil {
		// No audit trail, no generation
		return uuid.Nil, parse.Result{}, err
	}

	raw, err := s.provider.Generate(ctx, promptText)
	if err != nil {
		s.seal(ctx, record.Id, userId, kind, "", err, nil)
		return record.Id, parse.Result{}, apperrors.NewGenerationError(err)
	}

	return record.Id, parse.Parse(kind, raw), nil
}

// seal transitions the ledger record to its terminal status exactly once.
// A persistence failure here is logged but never surfaced: the generated
// content already exists and the user should still receive it.
func (s *aiGenerationService) seal(ctx context.Context, requestId uuid.UUID, userId uuid.UUID, kind entity.AiRequestType, response string, genErr error, metadata map[string]interface{}) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	var err error
	if genErr != nil {
		err = uow.AiRequestRepository().MarkFailed(ctx, requestId, genErr.Error())
	} else {
		err = uow.AiRequestRepository().MarkCompleted(ctx, requestId, response, metadata)
	}
	if err != nil {
		s.logger.Error("AiGenerationService", "Failed to seal generation record", map[string]interface{}{
			"request_id": requestId,
			"error":      err.Error(),
		})
		return
	}

	eventType := events.TypeGenerationCompleted
	if genErr != nil {
		eventType = events.TypeGenerationFailed
	}
	evt := events.BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"request_id":   requestId.String(),
			"user_id":      userId.String(),
			"request_type": string(kind),
		},
		OccurredAt: time.Now(),
	}
	if err := s.publisher.PublishEvent(ctx, evt); err != nil {
		s.logger.Warn("AiGenerationService", "Failed to publish generation event", map[string]interface{}{
			"request_id": requestId,
			"error":      err.Error(),
		})
	}
}

// Lesson plans

func lessonPlanFields(req *dto.GenerateLessonPlanRequest) prompt.Fields {
	return prompt.Fields{
		Topic:              req.Topic,
		GradeLevel:         req.GradeLevel,
		Duration:           req.Duration,
		LearningObjectives: req.LearningObjectives,
		AdditionalNotes:    req.AdditionalNotes,
		TeacherId:          req.TeacherId,
		LevelId:            req.LevelId,
		Grade:              req.Grade,
	}
}

func (s *aiGenerationService) PreviewLessonPlan(ctx context.Context, userId uuid.UUID, req *dto.GenerateLessonPlanRequest) (*dto.PreviewLessonPlanResponse, error) {
	result, err := s.preview(ctx, userId, entity.AiRequestTypeLessonPlan, lessonPlanFields(req))
	if err != nil {
		return nil, err
	}
	return lessonPlanPreviewFromResult(req, result), nil
}

func lessonPlanPreviewFromResult(req *dto.GenerateLessonPlanRequest, result parse.Result) *dto.PreviewLessonPlanResponse {
	if result.Malformed || result.LessonPlan == nil {
		raw := result.RawText
		return &dto.PreviewLessonPlanResponse{
			Title:      req.Topic,
			GradeLevel: req.GradeLevel,
			Duration:   req.Duration,
			Malformed:  true,
			RawContent: &raw,
		}
	}

	plan := result.LessonPlan
	res := &dto.PreviewLessonPlanResponse{
		Title:              plan.Title,
		GradeLevel:         req.GradeLevel,
		Duration:           req.Duration,
		LearningObjectives: plan.LearningObjectives,
		Materials:          plan.Materials,
		Assessment:         plan.Assessment,
	}
	if plan.Homework != "" {
		res.Homework = &plan.Homework
	}
	for _, a := range plan.Activities {
		res.Activities = append(res.Activities, dto.LessonActivityDTO{
			Title:        a.Title,
			Duration:     a.Duration,
			Description:  a.Description,
			TeacherNotes: a.TeacherNotes,
		})
	}
	return res
}

func (s *aiGenerationService) GenerateLessonPlan(ctx context.Context, userId uuid.UUID, req *dto.GenerateLessonPlanRequest) (*dto.GenerateLessonPlanResponse, error) {
	requestId, result, err := s.generate(ctx, userId, entity.AiRequestTypeLessonPlan, lessonPlanFields(req))
	if err != nil {
		return nil, err
	}

	plan := entity.LessonPlan{
		Id:         uuid.New(),
		TeacherId:  userId,
		Title:      req.Topic,
		Topic:      req.Topic,
		GradeLevel: req.GradeLevel,
		Grade:      req.Grade,
		LevelId:    req.LevelId,
		Duration:   req.Duration,
		Status:     entity.LessonPlanStatusGenerated,
		CreatedAt:  time.Now(),
	}
	plan.AiRequestId = &requestId

	if result.Malformed || result.LessonPlan == nil {
		raw := result.RawText
		plan.RawContent = &raw
	} else {
		parsed := result.LessonPlan
		if parsed.Title != "" {
			plan.Title = parsed.Title
		}
		plan.LearningObjectives = parsed.LearningObjectives
		plan.Materials = parsed.Materials
		plan.Assessment = parsed.Assessment
		if parsed.Homework != "" {
			plan.Homework = &parsed.Homework
		}
		for _, a := range parsed.Activities {
			plan.Activities = append(plan.Activities, entity.LessonActivity{
				Title:        a.Title,
				Duration:     a.Duration,
				Description:  a.Description,
				TeacherNotes: a.TeacherNotes,
			})
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.LessonPlanRepository().Create(ctx, &plan); err != nil {
		s.seal(ctx, requestId, userId, entity.AiRequestTypeLessonPlan, "", err, nil)
		return nil, err
	}

	s.seal(ctx, requestId, userId, entity.AiRequestTypeLessonPlan, result.RawText, nil, map[string]interface{}{
		"lessonPlanId": plan.Id.String(),
		"malformed":    result.Malformed,
	})

	return &dto.GenerateLessonPlanResponse{
		LessonPlanId: plan.Id,
		Title:        plan.Title,
		Topic:        plan.Topic,
		Duration:     plan.Duration,
		Status:       plan.Status,
		CreatedAt:    plan.CreatedAt,
	}, nil
}

// Questions

func questionFields(req *dto.GenerateQuestionsRequest) prompt.Fields {
	return prompt.Fields{
		Topic:        req.Topic,
		Count:        req.Count,
		QuestionType: req.QuestionType,
		GradeLevel:   req.GradeLevel,
	}
}

func (s *aiGenerationService) PreviewQuestions(ctx context.Context, userId uuid.UUID, req *dto.GenerateQuestionsRequest) (*dto.PreviewQuestionsResponse, error) {
	result, err := s.preview(ctx, userId, entity.AiRequestTypeQuestion, questionFields(req))
	if err != nil {
		return nil, err
	}

	if result.Malformed {
		raw := result.RawText
		return &dto.PreviewQuestionsResponse{Malformed: true, RawContent: &raw}, nil
	}
	return &dto.PreviewQuestionsResponse{Questions: toGeneratedQuestionDTOs(result.Questions)}, nil
}

func toGeneratedQuestionDTOs(questions []parse.ParsedQuestion) []dto.GeneratedQuestionDTO {
	out := make([]dto.GeneratedQuestionDTO, 0, len(questions))
	for _, q := range questions {
		out = append(out, dto.GeneratedQuestionDTO{
			QuestionText:  q.QuestionText,
			QuestionType:  string(parse.NormalizeQuestionType(q.QuestionType)),
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		})
	}
	return out
}

func (s *aiGenerationService) GenerateQuestions(ctx context.Context, userId uuid.UUID, req *dto.GenerateQuestionsRequest) (*dto.GenerateQuestionsResponse, error) {
	requestId, result, err := s.generate(ctx, userId, entity.AiRequestTypeQuestion, questionFields(req))
	if err != nil {
		return nil, err
	}

	if result.Malformed {
		// Best-effort content still counts as Completed; nothing to link
		s.seal(ctx, requestId, userId, entity.AiRequestTypeQuestion, result.RawText, nil, map[string]interface{}{
			"malformed": true,
		})
		return &dto.GenerateQuestionsResponse{
			Count:       0,
			QuestionIds: []uuid.UUID{},
			Message:     "Response could not be parsed as questions; raw content kept in history",
		}, nil
	}

	questions := s.buildQuestionEntities(userId, requestId, req, result.Questions, nil)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.QuestionRepository().CreateBatch(ctx, questions); err != nil {
		s.seal(ctx, requestId, userId, entity.AiRequestTypeQuestion, "", err, nil)
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(questions))
	idStrings := make([]string, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, q.Id)
		idStrings = append(idStrings, q.Id.String())
	}

	s.seal(ctx, requestId, userId, entity.AiRequestTypeQuestion, result.RawText, nil, map[string]interface{}{
		"questionIds": idStrings,
	})

	return &dto.GenerateQuestionsResponse{
		Count:       len(ids),
		QuestionIds: ids,
		Message:     "Questions generated and saved to the question bank",
	}, nil
}

func (s *aiGenerationService) buildQuestionEntities(userId uuid.UUID, requestId uuid.UUID, req *dto.GenerateQuestionsRequest, parsed []parse.ParsedQuestion, quizId *uuid.UUID) []*entity.Question {
	now := time.Now()
	out := make([]*entity.Question, 0, len(parsed))
	for _, q := range parsed {
		question := &entity.Question{
			Id:            uuid.New(),
			TeacherId:     userId,
			Topic:         req.Topic,
			QuestionText:  q.QuestionText,
			QuestionType:  parse.NormalizeQuestionType(q.QuestionType),
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			QuizId:        quizId,
			CreatedAt:     now,
		}
		question.AiRequestId = &requestId
		if q.Explanation != "" {
			explanation := q.Explanation
			question.Explanation = &explanation
		}
		if req.GradeLevel != "" {
			gradeLevel := req.GradeLevel
			question.GradeLevel = &gradeLevel
		}
		question.DifficultyId = req.DifficultyId
		out = append(out, question)
	}
	return out
}

// Quizzes

func quizFields(req *dto.GenerateQuizRequest) prompt.Fields {
	return prompt.Fields{
		Title:         req.Title,
		Topic:         req.Topic,
		QuestionCount: req.QuestionCount,
		TimeLimit:     req.TimeLimit,
		GradeLevel:    req.GradeLevel,
	}
}

func (s *aiGenerationService) PreviewQuiz(ctx context.Context, userId uuid.UUID, req *dto.GenerateQuizRequest) (*dto.PreviewQuizResponse, error) {
	result, err := s.preview(ctx, userId, entity.AiRequestTypeQuiz, quizFields(req))
	if err != nil {
		return nil, err
	}

	if result.Malformed || result.Quiz == nil {
		raw := result.RawText
		return &dto.PreviewQuizResponse{
			Title:      req.Title,
			TimeLimit:  req.TimeLimit,
			Malformed:  true,
			RawContent: &raw,
		}, nil
	}

	quiz := result.Quiz
	timeLimit := quiz.TimeLimit
	if timeLimit == 0 {
		timeLimit = req.TimeLimit
	}
	return &dto.PreviewQuizResponse{
		Title:       quiz.Title,
		Description: quiz.Description,
		TimeLimit:   timeLimit,
		TotalScore:  len(quiz.Questions) * pointsPerQuestion,
		Questions:   toGeneratedQuestionDTOs(quiz.Questions),
	}, nil
}

func (s *aiGenerationService) GenerateQuiz(ctx context.Context, userId uuid.UUID, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error) {
	requestId, result, err := s.generate(ctx, userId, entity.AiRequestTypeQuiz, quizFields(req))
	if err != nil {
		return nil, err
	}

	now := time.Now()
	quiz := entity.Quiz{
		Id:        uuid.New(),
		TeacherId: userId,
		Title:     req.Title,
		Topic:     req.Topic,
		TimeLimit: req.TimeLimit,
		Status:    entity.QuizStatusGenerated,
		CreatedAt: now,
	}
	quiz.AiRequestId = &requestId
	if quiz.TimeLimit == 0 {
		quiz.TimeLimit = defaultQuizTimeLimitMinutes
	}

	var questions []*entity.Question
	if result.Malformed || result.Quiz == nil {
		// Keep the quiz shell so the teacher can attach questions manually
		quiz.Status = entity.QuizStatusDraft
	} else {
		parsed := result.Quiz
		if parsed.Title != "" {
			quiz.Title = parsed.Title
		}
		quiz.Description = parsed.Description
		if parsed.TimeLimit > 0 {
			quiz.TimeLimit = parsed.TimeLimit
		}
		questionReq := &dto.GenerateQuestionsRequest{Topic: req.Topic, GradeLevel: req.GradeLevel}
		questions = s.buildQuestionEntities(userId, requestId, questionReq, parsed.Questions, &quiz.Id)
	}
	quiz.TotalScore = len(questions) * pointsPerQuestion

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		s.seal(ctx, requestId, userId, entity.AiRequestTypeQuiz, "", err, nil)
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.QuizRepository().Create(ctx, &quiz); err != nil {
		s.seal(ctx, requestId, userId, entity.AiRequestTypeQuiz, "", err, nil)
		return nil, err
	}
	if len(questions) > 0 {
		if err := uow.QuestionRepository().CreateBatch(ctx, questions); err != nil {
			s.seal(ctx, requestId, userId, entity.AiRequestTypeQuiz, "", err, nil)
			return nil, err
		}
	}
	if err := uow.Commit(); err != nil {
		s.seal(ctx, requestId, userId, entity.AiRequestTypeQuiz, "", err, nil)
		return nil, err
	}

	s.seal(ctx, requestId, userId, entity.AiRequestTypeQuiz, result.RawText, nil, map[string]interface{}{
		"quizId":    quiz.Id.String(),
		"malformed": result.Malformed,
	})

	return &dto.GenerateQuizResponse{
		QuizId:        quiz.Id,
		Title:         quiz.Title,
		QuestionCount: len(questions),
		TotalScore:    quiz.TotalScore,
		TimeLimit:     quiz.TimeLimit,
		Status:        quiz.Status,
		CreatedAt:     quiz.CreatedAt,
	}, nil
}

// Chat and the other free-text kinds. Each turn is ledger-tracked the
// same way as structured generations, with the response stored raw.

func (s *aiGenerationService) Chat(ctx context.Context, userId uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	fields := prompt.Fields{Message: req.Message, Topic: req.Topic}
	promptText, err := prompt.Build(entity.AiRequestTypeChat, fields)
	if err != nil {
		return nil, err
	}
	if err := s.usageService.CheckAndIncrement(ctx, userId); err != nil {
		return nil, err
	}

	conversation := s.resolveConversation(userId, req)

	history := make([]llm.Message, 0, len(conversation.Turns)+1)
	for _, turn := range conversation.Turns {
		role := llm.RoleUser
		if turn.Role == store.RoleAssistant {
			role = llm.RoleAssistant
		}
		history = append(history, llm.Message{Role: role, Content: turn.Content})
	}
	history = append(history, llm.Message{Role: llm.RoleUser, Content: promptText})

	uow := s.uowFactory.NewUnitOfWork(ctx)
	record := entity.AiRequest{
		Id:          uuid.New(),
		UserId:      userId,
		RequestType: entity.AiRequestTypeChat,
		Prompt:      promptText,
		Status:      entity.AiRequestStatusPending,
		CreatedAt:   time.Now(),
	}
	if err := uow.AiRequestRepository().Create(ctx, &record); err != nil {
		return nil, err
	}

	answer, err := s.provider.Chat(ctx, history)
	if err != nil {
		s.seal(ctx, record.Id, userId, entity.AiRequestTypeChat, "", err, nil)
		return nil, apperrors.NewGenerationError(err)
	}

	conversation.Append(store.RoleUser, req.Message)
	conversation.Append(store.RoleAssistant, answer)
	s.conversations.Save(conversation)

	s.seal(ctx, record.Id, userId, entity.AiRequestTypeChat, answer, nil, map[string]interface{}{
		"conversationId": conversation.ID,
	})

	return &dto.ChatResponse{
		Message:        answer,
		ConversationId: conversation.ID,
		Timestamp:      time.Now(),
	}, nil
}

// resolveConversation loads the cached conversation or starts a new one,
// seeding it from any client-supplied history.
func (s *aiGenerationService) resolveConversation(userId uuid.UUID, req *dto.ChatRequest) *store.Conversation {
	if req.ConversationId != "" {
		if conversation, found := s.conversations.Get(req.ConversationId); found && conversation.UserID == userId.String() {
			return conversation
		}
	}

	conversation := &store.Conversation{
		ID:      uuid.New().String(),
		UserID:  userId.String(),
		Subject: req.Topic,
	}
	for _, turn := range req.ConversationHistory {
		conversation.Append(turn.Role, turn.Content)
	}
	return conversation
}

// freeText runs the full ledger-tracked commit path for kinds whose
// result is unstructured text.
func (s *aiGenerationService) freeText(ctx context.Context, userId uuid.UUID, kind entity.AiRequestType, fields prompt.Fields) (string, error) {
	requestId, result, err := s.generate(ctx, userId, kind, fields)
	if err != nil {
		return "", err
	}
	s.seal(ctx, requestId, userId, kind, result.RawText, nil, nil)
	return result.Text, nil
}

func (s *aiGenerationService) Feedback(ctx context.Context, userId uuid.UUID, req *dto.FeedbackRequest) (*dto.FeedbackResponse, error) {
	text, err := s.freeText(ctx, userId, entity.AiRequestTypeFeedback, prompt.Fields{
		Question:      req.Question,
		StudentAnswer: req.StudentAnswer,
		CorrectAnswer: req.CorrectAnswer,
		Topic:         req.Topic,
	})
	if err != nil {
		return nil, err
	}
	return &dto.FeedbackResponse{Feedback: text}, nil
}

func (s *aiGenerationService) Recommendations(ctx context.Context, userId uuid.UUID, req *dto.RecommendationsRequest) (*dto.RecommendationsResponse, error) {
	fields := prompt.Fields{
		WeakTopics:   req.WeakTopics,
		StrongTopics: req.StrongTopics,
		RecentScores: req.RecentScores,
	}

	// When the client sends no profile, derive one from the student's
	// quiz attempts.
	if len(fields.WeakTopics) == 0 && len(fields.StrongTopics) == 0 {
		derived, err := s.deriveLearningProfile(ctx, userId)
		if err != nil {
			return nil, err
		}
		fields.WeakTopics = derived.WeakTopics
		fields.StrongTopics = derived.StrongTopics
		if len(fields.RecentScores) == 0 {
			fields.RecentScores = derived.RecentScores
		}
	}

	text, err := s.freeText(ctx, userId, entity.AiRequestTypeRecommendations, fields)
	if err != nil {
		return nil, err
	}
	return &dto.RecommendationsResponse{Recommendations: text}, nil
}

type learningProfile struct {
	WeakTopics   []string
	StrongTopics []string
	RecentScores []float64
}

func (s *aiGenerationService) deriveLearningProfile(ctx context.Context, userId uuid.UUID) (*learningProfile, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	attempts, err := uow.QuizAttemptRepository().FindAll(ctx,
		specification.OwnedBy{Column: "student_id", UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: 50, Offset: 0},
	)
	if err != nil {
		return nil, err
	}
	if len(attempts) == 0 {
		return nil, apperrors.NewValidationError("weakTopics", "no quiz attempts to derive a learning profile from; supply weakTopics or strongTopics")
	}

	type topicAgg struct {
		sum   float64
		count int
	}
	byTopic := map[string]*topicAgg{}
	profile := &learningProfile{}

	for i, attempt := range attempts {
		pct := 0.0
		if attempt.TotalScore > 0 {
			pct = float64(attempt.Score) / float64(attempt.TotalScore) * 100
		}
		if i < 10 {
			profile.RecentScores = append(profile.RecentScores, pct)
		}
		agg, ok := byTopic[attempt.Topic]
		if !ok {
			agg = &topicAgg{}
			byTopic[attempt.Topic] = agg
		}
		agg.sum += pct
		agg.count++
	}

	for topic, agg := range byTopic {
		avg := agg.sum / float64(agg.count)
		if avg < 60 {
			profile.WeakTopics = append(profile.WeakTopics, topic)
		} else if avg >= 80 {
			profile.StrongTopics = append(profile.StrongTopics, topic)
		}
	}
	if len(profile.WeakTopics) == 0 && len(profile.StrongTopics) == 0 {
		// Middling everywhere; treat everything as a focus area
		for topic := range byTopic {
			profile.WeakTopics = append(profile.WeakTopics, topic)
		}
	}
	sort.Strings(profile.WeakTopics)
	sort.Strings(profile.StrongTopics)
	return profile, nil
}

func (s *aiGenerationService) Rephrase(ctx context.Context, userId uuid.UUID, req *dto.RephraseRequest) (*dto.RephraseResponse, error) {
	text, err := s.freeText(ctx, userId, entity.AiRequestTypeRephrase, prompt.Fields{
		Content: req.Content,
		Style:   req.Style,
	})
	if err != nil {
		return nil, err
	}
	return &dto.RephraseResponse{Rephrased: text}, nil
}
