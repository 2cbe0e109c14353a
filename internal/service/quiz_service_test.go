package service

import (
	"context"
	"testing"
	"time"

	"ai-mathteach-be/internal/dto"
	"ai-mathteach-be/internal/entity"
	"ai-mathteach-be/internal/pkg/apperrors"
	"ai-mathteach-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGradeAnswer(t *testing.T) {
	multipleChoice := &entity.Question{
		QuestionType:  entity.QuestionTypeMultipleChoice,
		Options:       []string{"3/4", "2/6", "1/8", "1"},
		CorrectAnswer: "3/4",
	}
	shortAnswer := &entity.Question{
		QuestionType:  entity.QuestionTypeShortAnswer,
		CorrectAnswer: "4",
	}

	tests := []struct {
		name     string
		question *entity.Question
		answer   string
		want     bool
	}{
		{"exact match", multipleChoice, "3/4", true},
		{"trimmed and case-insensitive", shortAnswer, "  4 ", true},
		{"option letter", multipleChoice, "A", true},
		{"lowercase option letter", multipleChoice, "a", true},
		{"wrong option letter", multipleChoice, "b", false},
		{"wrong value", shortAnswer, "5", false},
		{"letter not accepted for short answer", shortAnswer, "a", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gradeAnswer(tt.question, tt.answer))
		})
	}
}

func seedPublishedQuiz(store *fakeStore, teacherId uuid.UUID) (*entity.Quiz, []*entity.Question) {
	quiz := &entity.Quiz{
		Id:        uuid.New(),
		TeacherId: teacherId,
		Title:     "Fractions Basics",
		Topic:     "Fractions",
		TimeLimit: 20,
		Status:    entity.QuizStatusPublished,
		CreatedAt: time.Now(),
	}
	questions := []*entity.Question{
		{
			Id:            uuid.New(),
			TeacherId:     teacherId,
			Topic:         "Fractions",
			QuestionText:  "What is 1/2 + 1/4?",
			QuestionType:  entity.QuestionTypeMultipleChoice,
			Options:       []string{"3/4", "2/6", "1/8"},
			CorrectAnswer: "3/4",
			QuizId:        &quiz.Id,
		},
		{
			Id:            uuid.New(),
			TeacherId:     teacherId,
			Topic:         "Fractions",
			QuestionText:  "Is 2/4 equal to 1/2?",
			QuestionType:  entity.QuestionTypeTrueFalse,
			CorrectAnswer: "True",
			QuizId:        &quiz.Id,
		},
	}
	quiz.TotalScore = len(questions) * pointsPerQuestion
	store.quizzes = append(store.quizzes, quiz)
	store.questions = append(store.questions, questions...)
	return quiz, questions
}

func TestSubmitGradesAndRecordsAttempt(t *testing.T) {
	store := newFakeStore()
	publisher := &fakePublisher{}
	svc := NewQuizService(&fakeFactory{store: store}, publisher)

	teacherId := uuid.New()
	studentId := uuid.New()
	quiz, questions := seedPublishedQuiz(store, teacherId)

	res, err := svc.Submit(context.Background(), studentId, &dto.SubmitQuizRequest{
		QuizId: quiz.Id,
		Answers: []dto.AnswerSubmissionDTO{
			{QuestionId: questions[0].Id, Answer: "3/4"},
			{QuestionId: questions[1].Id, Answer: "false"},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, pointsPerQuestion, res.Score)
	assert.Equal(t, 2*pointsPerQuestion, res.TotalScore)
	assert.Len(t, res.Results, 2)
	assert.True(t, res.Results[0].Correct)
	assert.False(t, res.Results[1].Correct)
	assert.Equal(t, "True", res.Results[1].CorrectAnswer)

	assert.Len(t, store.attempts, 1)
	attempt := store.attempts[0]
	assert.Equal(t, studentId, attempt.StudentId)
	assert.Equal(t, quiz.Topic, attempt.Topic)
	assert.Equal(t, pointsPerQuestion, attempt.Score)

	assert.Equal(t, []string{events.TypeQuizSubmitted}, publisher.eventTypes())
	assert.Equal(t, teacherId.String(), publisher.events[0].Payload()["teacher_id"])
}

func TestSubmitRejectsUnpublishedQuiz(t *testing.T) {
	store := newFakeStore()
	svc := NewQuizService(&fakeFactory{store: store}, &fakePublisher{})

	quiz := &entity.Quiz{Id: uuid.New(), TeacherId: uuid.New(), Status: entity.QuizStatusDraft}
	store.quizzes = append(store.quizzes, quiz)

	_, err := svc.Submit(context.Background(), uuid.New(), &dto.SubmitQuizRequest{
		QuizId:  quiz.Id,
		Answers: []dto.AnswerSubmissionDTO{{QuestionId: uuid.New(), Answer: "x"}},
	})
	assert.True(t, apperrors.IsNotFound(err))
	assert.Empty(t, store.attempts)
}

func TestSubmitRejectsForeignQuestion(t *testing.T) {
	store := newFakeStore()
	svc := NewQuizService(&fakeFactory{store: store}, &fakePublisher{})

	quiz, _ := seedPublishedQuiz(store, uuid.New())

	_, err := svc.Submit(context.Background(), uuid.New(), &dto.SubmitQuizRequest{
		QuizId:  quiz.Id,
		Answers: []dto.AnswerSubmissionDTO{{QuestionId: uuid.New(), Answer: "x"}},
	})
	assert.True(t, apperrors.IsValidation(err))
}

func TestPublishRequiresQuestions(t *testing.T) {
	store := newFakeStore()
	publisher := &fakePublisher{}
	svc := NewQuizService(&fakeFactory{store: store}, publisher)

	teacherId := uuid.New()
	quiz := &entity.Quiz{Id: uuid.New(), TeacherId: teacherId, Status: entity.QuizStatusGenerated}
	store.quizzes = append(store.quizzes, quiz)

	_, err := svc.Publish(context.Background(), teacherId, quiz.Id)
	assert.True(t, apperrors.IsValidation(err))
	assert.Empty(t, publisher.events)
}

func TestPublishTransitionsAndEmitsEvent(t *testing.T) {
	store := newFakeStore()
	publisher := &fakePublisher{}
	svc := NewQuizService(&fakeFactory{store: store}, publisher)

	teacherId := uuid.New()
	quiz := &entity.Quiz{Id: uuid.New(), TeacherId: teacherId, Status: entity.QuizStatusGenerated}
	store.quizzes = append(store.quizzes, quiz)
	store.questions = append(store.questions, &entity.Question{
		Id: uuid.New(), TeacherId: teacherId, QuestionText: "q", CorrectAnswer: "a", QuizId: &quiz.Id,
	})

	res, err := svc.Publish(context.Background(), teacherId, quiz.Id)
	assert.NoError(t, err)
	assert.Equal(t, entity.QuizStatusPublished, res.Status)
	assert.Equal(t, entity.QuizStatusPublished, store.quizzes[0].Status)
	assert.Equal(t, []string{events.TypeQuizPublished}, publisher.eventTypes())
}

func TestPublishByNonOwnerFails(t *testing.T) {
	store := newFakeStore()
	svc := NewQuizService(&fakeFactory{store: store}, &fakePublisher{})

	quiz := &entity.Quiz{Id: uuid.New(), TeacherId: uuid.New(), Status: entity.QuizStatusGenerated}
	store.quizzes = append(store.quizzes, quiz)

	_, err := svc.Publish(context.Background(), uuid.New(), quiz.Id)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestShowHidesUnpublishedFromOthers(t *testing.T) {
	store := newFakeStore()
	svc := NewQuizService(&fakeFactory{store: store}, &fakePublisher{})

	owner := uuid.New()
	quiz := &entity.Quiz{Id: uuid.New(), TeacherId: owner, Status: entity.QuizStatusDraft}
	store.quizzes = append(store.quizzes, quiz)

	_, err := svc.Show(context.Background(), uuid.New(), quiz.Id)
	assert.True(t, apperrors.IsNotFound(err))

	res, err := svc.Show(context.Background(), owner, quiz.Id)
	assert.NoError(t, err)
	assert.Equal(t, quiz.Id, res.Id)
}
