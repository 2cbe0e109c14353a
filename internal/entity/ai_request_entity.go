package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// AiRequestType is the canonical set of generation kinds. The legacy
// frontend and backend disagreed on naming ("GenerateLessonPlan" vs
// "LessonPlan"); normalization happens once here, at the boundary.
type AiRequestType string

const (
	AiRequestTypeLessonPlan      AiRequestType = "LessonPlan"
	AiRequestTypeQuestion        AiRequestType = "Question"
	AiRequestTypeQuiz            AiRequestType = "Quiz"
	AiRequestTypeChat            AiRequestType = "Chat"
	AiRequestTypeFeedback        AiRequestType = "Feedback"
	AiRequestTypeRecommendations AiRequestType = "Recommendations"
	AiRequestTypeRephrase        AiRequestType = "Rephrase"
)

var requestTypeAliases = map[string]AiRequestType{
	"lessonplan":         AiRequestTypeLessonPlan,
	"generatelessonplan": AiRequestTypeLessonPlan,
	"question":           AiRequestTypeQuestion,
	"questions":          AiRequestTypeQuestion,
	"generatequestions":  AiRequestTypeQuestion,
	"quiz":               AiRequestTypeQuiz,
	"generatequiz":       AiRequestTypeQuiz,
	"chat":               AiRequestTypeChat,
	"feedback":           AiRequestTypeFeedback,
	"recommendations":    AiRequestTypeRecommendations,
	"rephrase":           AiRequestTypeRephrase,
}

// ParseAiRequestType normalizes a raw type string, accepting the legacy
// "Generate*" aliases. The second return is false for unknown types.
func ParseAiRequestType(raw string) (AiRequestType, bool) {
	t, ok := requestTypeAliases[strings.ToLower(strings.TrimSpace(raw))]
	return t, ok
}

type AiRequestStatus string

const (
	AiRequestStatusPending   AiRequestStatus = "Pending"
	AiRequestStatusCompleted AiRequestStatus = "Completed"
	AiRequestStatusFailed    AiRequestStatus = "Failed"
)

// ParseAiRequestStatus normalizes a raw status string; the legacy backend
// reported "Success" where this service says "Completed".
func ParseAiRequestStatus(raw string) (AiRequestStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pending":
		return AiRequestStatusPending, true
	case "completed", "success":
		return AiRequestStatusCompleted, true
	case "failed":
		return AiRequestStatusFailed, true
	default:
		return "", false
	}
}

// AiRequest is one entry in the generation audit ledger. Invariants:
// CompletedAt is set iff the status is terminal, Response is set iff
// Completed, Error is set iff Failed. A record seals exactly once.
type AiRequest struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	RequestType AiRequestType
	Prompt      string
	Status      AiRequestStatus
	Response    *string
	Error       *string
	Metadata    map[string]interface{}
	CreatedAt   time.Time
	CompletedAt *time.Time
}

func (r *AiRequest) IsTerminal() bool {
	return r.Status == AiRequestStatusCompleted || r.Status == AiRequestStatusFailed
}
