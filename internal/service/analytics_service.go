package service

import (
	"context"
	"sort"

	"ai-mathteach-be/internal/dto"
	"ai-mathteach-be/internal/entity"
	"ai-mathteach-be/internal/repository/specification"
	"ai-mathteach-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const (
	weakTopicThreshold   = 60.0
	strongTopicThreshold = 80.0
)

type IAnalyticsService interface {
	// StudentProgress aggregates one student's quiz attempts into the
	// learning profile the recommendations prompt consumes.
	StudentProgress(ctx context.Context, studentId uuid.UUID) (*dto.StudentProgressResponse, error)
	// ClassOverview aggregates attempts across all quizzes owned by the
	// teacher.
	ClassOverview(ctx context.Context, teacherId uuid.UUID) (*dto.ClassOverviewResponse, error)
}

type analyticsService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewAnalyticsService(uowFactory unitofwork.RepositoryFactory) IAnalyticsService {
	return &analyticsService{
		uowFactory: uowFactory,
	}
}

func attemptPercentage(attempt *entity.QuizAttempt) float64 {
	if attempt.TotalScore == 0 {
		return 0
	}
	return float64(attempt.Score) / float64(attempt.TotalScore) * 100
}

func (s *analyticsService) StudentProgress(ctx context.Context, studentId uuid.UUID) (*dto.StudentProgressResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	attempts, err := uow.QuizAttemptRepository().FindAll(ctx,
		specification.OwnedBy{Column: "student_id", UserID: studentId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.StudentProgressResponse{
		AttemptCount: len(attempts),
		RecentScores: []float64{},
		WeakTopics:   []string{},
		StrongTopics: []string{},
		Topics:       []dto.TopicPerformanceDTO{},
	}
	if len(attempts) == 0 {
		return res, nil
	}

	type agg struct {
		sum   float64
		count int
	}
	byTopic := map[string]*agg{}
	overall := 0.0

	for i, attempt := range attempts {
		pct := attemptPercentage(attempt)
		overall += pct
		if i < 10 {
			res.RecentScores = append(res.RecentScores, pct)
		}
		a, ok := byTopic[attempt.Topic]
		if !ok {
			a = &agg{}
			byTopic[attempt.Topic] = a
		}
		a.sum += pct
		a.count++
	}
	res.AverageScore = overall / float64(len(attempts))

	topics := make([]string, 0, len(byTopic))
	for topic := range byTopic {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	for _, topic := range topics {
		a := byTopic[topic]
		avg := a.sum / float64(a.count)
		res.Topics = append(res.Topics, dto.TopicPerformanceDTO{
			Topic:        topic,
			AttemptCount: a.count,
			AverageScore: avg,
		})
		if avg < weakTopicThreshold {
			res.WeakTopics = append(res.WeakTopics, topic)
		} else if avg >= strongTopicThreshold {
			res.StrongTopics = append(res.StrongTopics, topic)
		}
	}
	return res, nil
}

func (s *analyticsService) ClassOverview(ctx context.Context, teacherId uuid.UUID) (*dto.ClassOverviewResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	quizzes, err := uow.QuizRepository().FindAll(ctx,
		specification.OwnedBy{Column: "teacher_id", UserID: teacherId},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.ClassOverviewResponse{
		Topics:   []dto.TopicPerformanceDTO{},
		Students: []dto.StudentOverviewDTO{},
	}
	if len(quizzes) == 0 {
		return res, nil
	}

	quizIds := make([]uuid.UUID, 0, len(quizzes))
	for _, quiz := range quizzes {
		quizIds = append(quizIds, quiz.Id)
	}

	attempts, err := uow.QuizAttemptRepository().FindAll(ctx,
		specification.ByIDs{Column: "quiz_id", IDs: quizIds},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	type agg struct {
		sum   float64
		count int
	}
	byTopic := map[string]*agg{}
	byStudent := map[uuid.UUID]*agg{}
	overall := 0.0

	for _, attempt := range attempts {
		pct := attemptPercentage(attempt)
		overall += pct

		t, ok := byTopic[attempt.Topic]
		if !ok {
			t = &agg{}
			byTopic[attempt.Topic] = t
		}
		t.sum += pct
		t.count++

		st, ok := byStudent[attempt.StudentId]
		if !ok {
			st = &agg{}
			byStudent[attempt.StudentId] = st
		}
		st.sum += pct
		st.count++
	}

	res.AttemptCount = len(attempts)
	res.StudentCount = len(byStudent)
	if len(attempts) > 0 {
		res.AverageScore = overall / float64(len(attempts))
	}

	topics := make([]string, 0, len(byTopic))
	for topic := range byTopic {
		topics = append(topics, topic)
	}
	sort.Strings(topics)
	for _, topic := range topics {
		a := byTopic[topic]
		res.Topics = append(res.Topics, dto.TopicPerformanceDTO{
			Topic:        topic,
			AttemptCount: a.count,
			AverageScore: a.sum / float64(a.count),
		})
	}

	students := make([]uuid.UUID, 0, len(byStudent))
	for studentId := range byStudent {
		students = append(students, studentId)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].String() < students[j].String() })
	for _, studentId := range students {
		a := byStudent[studentId]
		res.Students = append(res.Students, dto.StudentOverviewDTO{
			StudentId:    studentId.String(),
			AttemptCount: a.count,
			AverageScore: a.sum / float64(a.count),
		})
	}
	return res, nil
}
