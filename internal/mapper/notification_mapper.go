package mapper

import (
	"encoding/json"

	"ai-mathteach-be/internal/entity"
	"ai-mathteach-be/internal/model"

	"gorm.io/datatypes"
)

type NotificationMapper struct{}

func NewNotificationMapper() *NotificationMapper {
	return &NotificationMapper{}
}

func (m *NotificationMapper) ToEntity(n *model.Notification) *entity.Notification {
	if n == nil {
		return nil
	}

	var metadata map[string]interface{}
	if len(n.Metadata) > 0 {
		_ = json.Unmarshal(n.Metadata, &metadata)
	}

	return &entity.Notification{
		Id:         n.Id,
		UserId:     n.UserId,
		Title:      n.Title,
		Message:    n.Message,
		EntityType: n.EntityType,
		EntityId:   n.EntityId,
		Metadata:   metadata,
		IsRead:     n.IsRead,
		ReadAt:     n.ReadAt,
		CreatedAt:  n.CreatedAt,
	}
}

func (m *NotificationMapper) ToModel(n *entity.Notification) *model.Notification {
	if n == nil {
		return nil
	}

	var metadata datatypes.JSON
	if len(n.Metadata) > 0 {
		raw, err := json.Marshal(n.Metadata)
		if err == nil {
			metadata = datatypes.JSON(raw)
		}
	}

	return &model.Notification{
		Id:         n.Id,
		UserId:     n.UserId,
		Title:      n.Title,
		Message:    n.Message,
		EntityType: n.EntityType,
		EntityId:   n.EntityId,
		Metadata:   metadata,
		IsRead:     n.IsRead,
		ReadAt:     n.ReadAt,
		CreatedAt:  n.CreatedAt,
	}
}

func (m *NotificationMapper) ToEntities(notifications []*model.Notification) []*entity.Notification {
	entities := make([]*entity.Notification, len(notifications))
	for i, n := range notifications {
		entities[i] = m.ToEntity(n)
	}
	return entities
}

type DifficultyMapper struct{}

func NewDifficultyMapper() *DifficultyMapper {
	return &DifficultyMapper{}
}

func (m *DifficultyMapper) ToEntity(d *model.Difficulty) *entity.Difficulty {
	if d == nil {
		return nil
	}
	return &entity.Difficulty{Id: d.Id, Name: d.Name, Level: d.Level}
}

func (m *DifficultyMapper) ToModel(d *entity.Difficulty) *model.Difficulty {
	if d == nil {
		return nil
	}
	return &model.Difficulty{Id: d.Id, Name: d.Name, Level: d.Level}
}

func (m *DifficultyMapper) ToEntities(difficulties []*model.Difficulty) []*entity.Difficulty {
	entities := make([]*entity.Difficulty, len(difficulties))
	for i, d := range difficulties {
		entities[i] = m.ToEntity(d)
	}
	return entities
}
