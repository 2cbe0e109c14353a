package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ai-mathteach-be/internal/dto"
	"ai-mathteach-be/internal/entity"
	"ai-mathteach-be/internal/pkg/apperrors"
	"ai-mathteach-be/internal/repository/specification"
	"ai-mathteach-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ILessonPlanService interface {
	Create(ctx context.Context, teacherId uuid.UUID, req *dto.CreateLessonPlanRequest) (*dto.CreateLessonPlanResponse, error)
	Show(ctx context.Context, teacherId uuid.UUID, id uuid.UUID) (*dto.ShowLessonPlanResponse, error)
	Update(ctx context.Context, teacherId uuid.UUID, req *dto.UpdateLessonPlanRequest) (*dto.UpdateLessonPlanResponse, error)
	Delete(ctx context.Context, teacherId uuid.UUID, id uuid.UUID) error
	List(ctx context.Context, teacherId uuid.UUID, query *dto.ListLessonPlansQuery) ([]*dto.LessonPlanSummaryResponse, int64, error)
	// DownloadMarkdown renders the plan as a markdown document.
	DownloadMarkdown(ctx context.Context, teacherId uuid.UUID, id uuid.UUID) (filename string, content []byte, err error)
}

type lessonPlanService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewLessonPlanService(uowFactory unitofwork.RepositoryFactory) ILessonPlanService {
	return &lessonPlanService{
		uowFactory: uowFactory,
	}
}

func activitiesFromDTO(activities []dto.LessonActivityDTO) []entity.LessonActivity {
	out := make([]entity.LessonActivity, 0, len(activities))
	for _, a := range activities {
		out = append(out, entity.LessonActivity{
			Title:        a.Title,
			Duration:     a.Duration,
			Description:  a.Description,
			TeacherNotes: a.TeacherNotes,
		})
	}
	return out
}

func activitiesToDTO(activities []entity.LessonActivity) []dto.LessonActivityDTO {
	out := make([]dto.LessonActivityDTO, 0, len(activities))
	for _, a := range activities {
		out = append(out, dto.LessonActivityDTO{
			Title:        a.Title,
			Duration:     a.Duration,
			Description:  a.Description,
			TeacherNotes: a.TeacherNotes,
		})
	}
	return out
}

func (s *lessonPlanService) Create(ctx context.Context, teacherId uuid.UUID, req *dto.CreateLessonPlanRequest) (*dto.CreateLessonPlanResponse, error) {
	plan := entity.LessonPlan{
		Id:                 uuid.New(),
		TeacherId:          teacherId,
		Title:              req.Title,
		Topic:              req.Topic,
		GradeLevel:         req.GradeLevel,
		Duration:           req.Duration,
		LearningObjectives: req.LearningObjectives,
		Materials:          req.Materials,
		Activities:         activitiesFromDTO(req.Activities),
		Assessment:         req.Assessment,
		Homework:           req.Homework,
		Status:             entity.LessonPlanStatusDraft,
		CreatedAt:          time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.LessonPlanRepository().Create(ctx, &plan); err != nil {
		return nil, err
	}
	return &dto.CreateLessonPlanResponse{Id: plan.Id}, nil
}

func (s *lessonPlanService) findOwned(ctx context.Context, teacherId uuid.UUID, id uuid.UUID) (*entity.LessonPlan, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	plan, err := uow.LessonPlanRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{Column: "teacher_id", UserID: teacherId},
	)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, apperrors.NewNotFoundError("lesson plan")
	}
	return plan, nil
}

func (s *lessonPlanService) Show(ctx context.Context, teacherId uuid.UUID, id uuid.UUID) (*dto.ShowLessonPlanResponse, error) {
	plan, err := s.findOwned(ctx, teacherId, id)
	if err != nil {
		return nil, err
	}
	return &dto.ShowLessonPlanResponse{
		Id:                 plan.Id,
		Title:              plan.Title,
		Topic:              plan.Topic,
		GradeLevel:         plan.GradeLevel,
		Duration:           plan.Duration,
		LearningObjectives: plan.LearningObjectives,
		Materials:          plan.Materials,
		Activities:         activitiesToDTO(plan.Activities),
		Assessment:         plan.Assessment,
		Homework:           plan.Homework,
		RawContent:         plan.RawContent,
		AiRequestId:        plan.AiRequestId,
		Status:             plan.Status,
		CreatedAt:          plan.CreatedAt,
		UpdatedAt:          plan.UpdatedAt,
	}, nil
}

func (s *lessonPlanService) Update(ctx context.Context, teacherId uuid.UUID, req *dto.UpdateLessonPlanRequest) (*dto.UpdateLessonPlanResponse, error) {
	plan, err := s.findOwned(ctx, teacherId, req.Id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	plan.Title = req.Title
	plan.Topic = req.Topic
	plan.GradeLevel = req.GradeLevel
	plan.Duration = req.Duration
	plan.LearningObjectives = req.LearningObjectives
	plan.Materials = req.Materials
	plan.Activities = activitiesFromDTO(req.Activities)
	plan.Assessment = req.Assessment
	plan.Homework = req.Homework
	plan.UpdatedAt = &now

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.LessonPlanRepository().Update(ctx, plan); err != nil {
		return nil, err
	}
	return &dto.UpdateLessonPlanResponse{Id: plan.Id}, nil
}

func (s *lessonPlanService) Delete(ctx context.Context, teacherId uuid.UUID, id uuid.UUID) error {
	plan, err := s.findOwned(ctx, teacherId, id)
	if err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.LessonPlanRepository().Delete(ctx, plan.Id)
}

func (s *lessonPlanService) List(ctx context.Context, teacherId uuid.UUID, query *dto.ListLessonPlansQuery) ([]*dto.LessonPlanSummaryResponse, int64, error) {
	page, limit := dto.NormalizePage(query.Page, query.Limit)

	specs := []specification.Specification{
		specification.OwnedBy{Column: "teacher_id", UserID: teacherId},
	}
	if query.Search != "" {
		specs = append(specs, specification.TitleTopicSearch{Query: query.Search})
	}
	if query.Topic != "" {
		specs = append(specs, specification.ByTopic{Topic: query.Topic})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	total, err := uow.LessonPlanRepository().Count(ctx, specs...)
	if err != nil {
		return nil, 0, err
	}

	listSpecs := append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	plans, err := uow.LessonPlanRepository().FindAll(ctx, listSpecs...)
	if err != nil {
		return nil, 0, err
	}

	out := make([]*dto.LessonPlanSummaryResponse, 0, len(plans))
	for _, plan := range plans {
		out = append(out, &dto.LessonPlanSummaryResponse{
			Id:         plan.Id,
			Title:      plan.Title,
			Topic:      plan.Topic,
			GradeLevel: plan.GradeLevel,
			Duration:   plan.Duration,
			Status:     plan.Status,
			CreatedAt:  plan.CreatedAt,
			UpdatedAt:  plan.UpdatedAt,
		})
	}
	return out, total, nil
}

func (s *lessonPlanService) DownloadMarkdown(ctx context.Context, teacherId uuid.UUID, id uuid.UUID) (string, []byte, error) {
	plan, err := s.findOwned(ctx, teacherId, id)
	if err != nil {
		return "", nil, err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", plan.Title)
	fmt.Fprintf(&sb, "**Topic:** %s  \n", plan.Topic)
	fmt.Fprintf(&sb, "**Grade Level:** %s  \n", plan.GradeLevel)
	fmt.Fprintf(&sb, "**Duration:** %d minutes\n\n", plan.Duration)

	if len(plan.LearningObjectives) > 0 {
		sb.WriteString("## Learning Objectives\n\n")
		for _, objective := range plan.LearningObjectives {
			fmt.Fprintf(&sb, "- %s\n", objective)
		}
		sb.WriteString("\n")
	}
	if len(plan.Materials) > 0 {
		sb.WriteString("## Materials\n\n")
		for _, material := range plan.Materials {
			fmt.Fprintf(&sb, "- %s\n", material)
		}
		sb.WriteString("\n")
	}
	if len(plan.Activities) > 0 {
		sb.WriteString("## Activities\n\n")
		for _, activity := range plan.Activities {
			fmt.Fprintf(&sb, "### %s (%d min)\n\n%s\n\n", activity.Title, activity.Duration, activity.Description)
			if activity.TeacherNotes != "" {
				fmt.Fprintf(&sb, "> Teacher notes: %s\n\n", activity.TeacherNotes)
			}
		}
	}
	if plan.Assessment != "" {
		fmt.Fprintf(&sb, "## Assessment\n\n%s\n\n", plan.Assessment)
	}
	if plan.Homework != nil && *plan.Homework != "" {
		fmt.Fprintf(&sb, "## Homework\n\n%s\n\n", *plan.Homework)
	}
	if plan.RawContent != nil && *plan.RawContent != "" {
		fmt.Fprintf(&sb, "## Generated Content\n\n%s\n", *plan.RawContent)
	}

	filename := fmt.Sprintf("%s.md", slugify(plan.Title))
	return filename, []byte(sb.String()), nil
}

func slugify(s string) string {
	out := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		case r == ' ', r == '-', r == '_':
			return '-'
		default:
			return -1
		}
	}, s)
	out = strings.Trim(out, "-")
	if out == "" {
		out = "lesson-plan"
	}
	return out
}
