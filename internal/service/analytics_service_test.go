package service

import (
	"context"
	"testing"

	"ai-mathteach-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func addAttempt(store *fakeStore, studentId uuid.UUID, quizId uuid.UUID, topic string, score, total int) {
	store.attempts = append(store.attempts, &entity.QuizAttempt{
		Id:         uuid.New(),
		QuizId:     quizId,
		StudentId:  studentId,
		Topic:      topic,
		Score:      score,
		TotalScore: total,
	})
}

func TestStudentProgressClassifiesTopics(t *testing.T) {
	store := newFakeStore()
	svc := NewAnalyticsService(&fakeFactory{store: store})
	studentId := uuid.New()
	quizId := uuid.New()

	// Fractions averages 50% (weak), Geometry 90% (strong),
	// Algebra 70% (neither).
	addAttempt(store, studentId, quizId, "Fractions", 40, 100)
	addAttempt(store, studentId, quizId, "Fractions", 60, 100)
	addAttempt(store, studentId, quizId, "Geometry", 90, 100)
	addAttempt(store, studentId, quizId, "Algebra", 70, 100)
	addAttempt(store, uuid.New(), quizId, "Fractions", 100, 100)

	res, err := svc.StudentProgress(context.Background(), studentId)
	assert.NoError(t, err)
	assert.Equal(t, 4, res.AttemptCount)
	assert.Equal(t, []string{"Fractions"}, res.WeakTopics)
	assert.Equal(t, []string{"Geometry"}, res.StrongTopics)
	assert.Len(t, res.Topics, 3)
	assert.InDelta(t, 65.0, res.AverageScore, 0.01)
	assert.Len(t, res.RecentScores, 4)
}

func TestStudentProgressBoundaryScores(t *testing.T) {
	store := newFakeStore()
	svc := NewAnalyticsService(&fakeFactory{store: store})
	studentId := uuid.New()
	quizId := uuid.New()

	// Exactly 60% is not weak; exactly 80% is strong.
	addAttempt(store, studentId, quizId, "Decimals", 60, 100)
	addAttempt(store, studentId, quizId, "Percents", 80, 100)

	res, err := svc.StudentProgress(context.Background(), studentId)
	assert.NoError(t, err)
	assert.Empty(t, res.WeakTopics)
	assert.Equal(t, []string{"Percents"}, res.StrongTopics)
}

func TestStudentProgressEmptyHistory(t *testing.T) {
	svc := NewAnalyticsService(&fakeFactory{store: newFakeStore()})

	res, err := svc.StudentProgress(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Equal(t, 0, res.AttemptCount)
	assert.Equal(t, 0.0, res.AverageScore)
	assert.NotNil(t, res.Topics)
	assert.NotNil(t, res.RecentScores)
}

func TestStudentProgressZeroTotalScoreIsZeroPercent(t *testing.T) {
	store := newFakeStore()
	svc := NewAnalyticsService(&fakeFactory{store: store})
	studentId := uuid.New()

	addAttempt(store, studentId, uuid.New(), "Fractions", 0, 0)

	res, err := svc.StudentProgress(context.Background(), studentId)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, res.AverageScore)
	assert.Equal(t, []string{"Fractions"}, res.WeakTopics)
}

func TestClassOverviewAggregatesAcrossQuizzes(t *testing.T) {
	store := newFakeStore()
	svc := NewAnalyticsService(&fakeFactory{store: store})
	teacherId := uuid.New()

	quizA := &entity.Quiz{Id: uuid.New(), TeacherId: teacherId, Topic: "Fractions", Status: entity.QuizStatusPublished}
	quizB := &entity.Quiz{Id: uuid.New(), TeacherId: teacherId, Topic: "Geometry", Status: entity.QuizStatusPublished}
	otherTeacherQuiz := &entity.Quiz{Id: uuid.New(), TeacherId: uuid.New(), Topic: "Algebra", Status: entity.QuizStatusPublished}
	store.quizzes = append(store.quizzes, quizA, quizB, otherTeacherQuiz)

	alice := uuid.New()
	bob := uuid.New()
	addAttempt(store, alice, quizA.Id, "Fractions", 80, 100)
	addAttempt(store, alice, quizB.Id, "Geometry", 60, 100)
	addAttempt(store, bob, quizA.Id, "Fractions", 40, 100)
	addAttempt(store, uuid.New(), otherTeacherQuiz.Id, "Algebra", 100, 100)

	res, err := svc.ClassOverview(context.Background(), teacherId)
	assert.NoError(t, err)
	assert.Equal(t, 3, res.AttemptCount)
	assert.Equal(t, 2, res.StudentCount)
	assert.InDelta(t, 60.0, res.AverageScore, 0.01)

	assert.Len(t, res.Topics, 2)
	assert.Equal(t, "Fractions", res.Topics[0].Topic)
	assert.InDelta(t, 60.0, res.Topics[0].AverageScore, 0.01)
	assert.Equal(t, "Geometry", res.Topics[1].Topic)

	assert.Len(t, res.Students, 2)
}

func TestClassOverviewNoQuizzes(t *testing.T) {
	svc := NewAnalyticsService(&fakeFactory{store: newFakeStore()})

	res, err := svc.ClassOverview(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Equal(t, 0, res.AttemptCount)
	assert.NotNil(t, res.Topics)
	assert.NotNil(t, res.Students)
}
