package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"ai-mathteach-be/internal/entity"
	"ai-mathteach-be/internal/pkg/apperrors"
	"ai-mathteach-be/internal/repository/specification"
	"ai-mathteach-be/internal/repository/unitofwork"
	"ai-mathteach-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestLedgerSealingAgainstPostgres(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDB(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())
	repo := uow.AiRequestRepository()

	userId := uuid.New()
	record := &entity.AiRequest{
		Id:          uuid.New(),
		UserId:      userId,
		RequestType: entity.AiRequestTypeLessonPlan,
		Prompt:      "integration test prompt",
		Status:      entity.AiRequestStatusPending,
		CreatedAt:   time.Now(),
	}
	assert.NoError(t, repo.Create(context.Background(), record))

	t.Run("seal completed", func(t *testing.T) {
		err := repo.MarkCompleted(context.Background(), record.Id, "generated content", map[string]interface{}{
			"lessonPlanId": uuid.NewString(),
		})
		assert.NoError(t, err)

		stored, err := repo.FindOne(context.Background(),
			specification.ByID{ID: record.Id},
			specification.OwnedBy{UserID: userId},
		)
		assert.NoError(t, err)
		assert.NotNil(t, stored)
		assert.Equal(t, entity.AiRequestStatusCompleted, stored.Status)
		assert.NotNil(t, stored.Response)
		assert.NotNil(t, stored.CompletedAt)
	})

	t.Run("second seal is rejected", func(t *testing.T) {
		err := repo.MarkFailed(context.Background(), record.Id, "too late")
		assert.True(t, apperrors.IsInvalidTransition(err))

		err = repo.MarkCompleted(context.Background(), record.Id, "again", nil)
		assert.True(t, apperrors.IsInvalidTransition(err))
	})

	t.Run("filters compose", func(t *testing.T) {
		count, err := repo.Count(context.Background(),
			specification.OwnedBy{UserID: userId},
			specification.ByRequestType{Type: entity.AiRequestTypeLessonPlan},
			specification.ByStatus{Status: entity.AiRequestStatusCompleted},
		)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	// Cleanup
	gormDB.Exec("DELETE FROM ai_requests WHERE id = ?", record.Id)
}
