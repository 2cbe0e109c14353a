package controller

import (
	"time"

	"ai-mathteach-be/internal/dto"
	"ai-mathteach-be/internal/pkg/serverutils"
	"ai-mathteach-be/internal/service"
	"ai-mathteach-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAiController interface {
	RegisterRoutes(r fiber.Router)
}

type aiController struct {
	generationService service.IAiGenerationService
	historyService    service.IAiHistoryService
	usageService      service.IUsageService
	provider          llm.LLMProvider
}

func NewAiController(
	generationService service.IAiGenerationService,
	historyService service.IAiHistoryService,
	usageService service.IUsageService,
	provider llm.LLMProvider,
) IAiController {
	return &aiController{
		generationService: generationService,
		historyService:    historyService,
		usageService:      usageService,
		provider:          provider,
	}
}

func (c *aiController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/ai/v1")
	h.Get("health", c.Health)

	h.Use(serverutils.JwtMiddleware)

	teacher := serverutils.RequireRole(serverutils.RoleTeacher)

	h.Post("lesson-plan/preview", teacher, c.PreviewLessonPlan)
	h.Post("lesson-plan/generate", teacher, c.GenerateLessonPlan)
	h.Post("questions/preview", teacher, c.PreviewQuestions)
	h.Post("questions/generate", teacher, c.GenerateQuestions)
	h.Post("quiz/preview", teacher, c.PreviewQuiz)
	h.Post("quiz/generate", teacher, c.GenerateQuiz)
	h.Post("rephrase", teacher, c.Rephrase)

	// Both roles
	h.Post("chat", c.Chat)
	h.Post("feedback", c.Feedback)
	h.Post("recommendations", c.Recommendations)

	h.Get("usage", c.Usage)

	h.Post("history", c.CreateHistory)
	h.Get("history", c.ListHistory)
	h.Get("history/:id", c.GetHistory)
	h.Patch("history/:id", c.UpdateHistory)
}

func currentUserId(ctx *fiber.Ctx) uuid.UUID {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	return userId
}

// Health probes the configured provider with a trivial completion.
func (c *aiController) Health(ctx *fiber.Ctx) error {
	type healthData struct {
		Status  string `json:"status"`
		Latency string `json:"latency,omitempty"`
	}

	start := time.Now()
	_, err := c.provider.Generate(ctx.Context(), "ping", llm.WithMaxTokens(1))
	if err != nil {
		return ctx.Status(fiber.StatusServiceUnavailable).
			JSON(serverutils.FailureResponse(fiber.StatusServiceUnavailable, "AI provider unreachable"))
	}
	return ctx.JSON(serverutils.SuccessResponse("AI provider reachable", healthData{
		Status:  "ok",
		Latency: time.Since(start).Round(time.Millisecond).String(),
	}))
}

func (c *aiController) Usage(ctx *fiber.Ctx) error {
	used, limit, err := c.usageService.Remaining(ctx.Context(), currentUserId(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get usage", fiber.Map{
		"used":  used,
		"limit": limit,
	}))
}

func (c *aiController) PreviewLessonPlan(ctx *fiber.Ctx) error {
	var req dto.GenerateLessonPlanRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.generationService.PreviewLessonPlan(ctx.Context(), currentUserId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success preview lesson plan", res))
}

func (c *aiController) GenerateLessonPlan(ctx *fiber.Ctx) error {
	var req dto.GenerateLessonPlanRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.generationService.GenerateLessonPlan(ctx.Context(), currentUserId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success generate lesson plan", res))
}

func (c *aiController) PreviewQuestions(ctx *fiber.Ctx) error {
	var req dto.GenerateQuestionsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.generationService.PreviewQuestions(ctx.Context(), currentUserId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success preview questions", res))
}

func (c *aiController) GenerateQuestions(ctx *fiber.Ctx) error {
	var req dto.GenerateQuestionsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.generationService.GenerateQuestions(ctx.Context(), currentUserId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success generate questions", res))
}

func (c *aiController) PreviewQuiz(ctx *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.generationService.PreviewQuiz(ctx.Context(), currentUserId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success preview quiz", res))
}

func (c *aiController) GenerateQuiz(ctx *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.generationService.GenerateQuiz(ctx.Context(), currentUserId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success generate quiz", res))
}

func (c *aiController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.generationService.Chat(ctx.Context(), currentUserId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success chat", res))
}

func (c *aiController) Feedback(ctx *fiber.Ctx) error {
	var req dto.FeedbackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.generationService.Feedback(ctx.Context(), currentUserId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success generate feedback", res))
}

func (c *aiController) Recommendations(ctx *fiber.Ctx) error {
	var req dto.RecommendationsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.generationService.Recommendations(ctx.Context(), currentUserId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success generate recommendations", res))
}

func (c *aiController) Rephrase(ctx *fiber.Ctx) error {
	var req dto.RephraseRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.generationService.Rephrase(ctx.Context(), currentUserId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success rephrase content", res))
}

func (c *aiController) CreateHistory(ctx *fiber.Ctx) error {
	var req dto.CreateHistoryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.historyService.Create(ctx.Context(), currentUserId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create history record", res))
}

func (c *aiController) UpdateHistory(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req dto.UpdateHistoryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	res, err := c.historyService.Update(ctx.Context(), currentUserId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update history record", res))
}

func (c *aiController) ListHistory(ctx *fiber.Ctx) error {
	var query dto.ListHistoryQuery
	if err := ctx.QueryParser(&query); err != nil {
		return err
	}

	records, total, err := c.historyService.List(ctx.Context(), currentUserId(ctx), &query)
	if err != nil {
		return err
	}

	page, limit := dto.NormalizePage(query.Page, query.Limit)
	return ctx.JSON(serverutils.PaginatedResponse("Success list history", records, serverutils.Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
	}))
}

func (c *aiController) GetHistory(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	res, err := c.historyService.GetById(ctx.Context(), currentUserId(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get history record", res))
}
