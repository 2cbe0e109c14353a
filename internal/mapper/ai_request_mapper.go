package mapper

import (
	"encoding/json"

	"ai-mathteach-be/internal/entity"
	"ai-mathteach-be/internal/model"

	"gorm.io/datatypes"
)

type AiRequestMapper struct{}

func NewAiRequestMapper() *AiRequestMapper {
	return &AiRequestMapper{}
}

func (m *AiRequestMapper) ToEntity(r *model.AiRequest) *entity.AiRequest {
	if r == nil {
		return nil
	}

	var metadata map[string]interface{}
	if len(r.Metadata) > 0 {
		// Metadata is written by this service, a decode failure would mean
		// corruption; surface it as an empty map rather than panic.
		_ = json.Unmarshal(r.Metadata, &metadata)
	}

	return &entity.AiRequest{
		Id:          r.Id,
		UserId:      r.UserId,
		RequestType: entity.AiRequestType(r.RequestType),
		Prompt:      r.Prompt,
		Status:      entity.AiRequestStatus(r.Status),
		Response:    r.Response,
		Error:       r.Error,
		Metadata:    metadata,
		CreatedAt:   r.CreatedAt,
		CompletedAt: r.CompletedAt,
	}
}

func (m *AiRequestMapper) ToModel(r *entity.AiRequest) *model.AiRequest {
	if r == nil {
		return nil
	}

	var metadata datatypes.JSON
	if len(r.Metadata) > 0 {
		raw, err := json.Marshal(r.Metadata)
		if err == nil {
			metadata = datatypes.JSON(raw)
		}
	}

	return &model.AiRequest{
		Id:          r.Id,
		UserId:      r.UserId,
		RequestType: string(r.RequestType),
		Prompt:      r.Prompt,
		Status:      string(r.Status),
		Response:    r.Response,
		Error:       r.Error,
		Metadata:    metadata,
		CreatedAt:   r.CreatedAt,
		CompletedAt: r.CompletedAt,
	}
}

func (m *AiRequestMapper) ToEntities(requests []*model.AiRequest) []*entity.AiRequest {
	entities := make([]*entity.AiRequest, len(requests))
	for i, r := range requests {
		entities[i] = m.ToEntity(r)
	}
	return entities
}

// MarshalMetadata encodes linkage metadata the same way ToModel does, for
// use by conditional-update queries that bypass the full model.
func MarshalMetadata(metadata map[string]interface{}) datatypes.JSON {
	if len(metadata) == 0 {
		return nil
	}
	raw, err := json.Marshal(metadata)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}
