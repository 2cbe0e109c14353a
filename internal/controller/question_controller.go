package controller

import (
	"ai-mathteach-be/internal/dto"
	"ai-mathteach-be/internal/pkg/serverutils"
	"ai-mathteach-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IQuestionController interface {
	RegisterRoutes(r fiber.Router)
}

type questionController struct {
	questionService service.IQuestionService
}

func NewQuestionController(questionService service.IQuestionService) IQuestionController {
	return &questionController{
		questionService: questionService,
	}
}

func (c *questionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/question/v1")
	h.Use(serverutils.JwtMiddleware)

	// Both roles can read difficulties
	h.Get("difficulties", c.ListDifficulties)

	teacher := serverutils.RequireRole(serverutils.RoleTeacher)
	h.Post("", teacher, c.Create)
	h.Get("", teacher, c.List)
	h.Get(":id", teacher, c.Show)
	h.Delete(":id", teacher, c.Delete)
}

func (c *questionController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateQuestionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.questionService.Create(ctx.Context(), currentUserId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create question", res))
}

func (c *questionController) List(ctx *fiber.Ctx) error {
	var query dto.ListQuestionsQuery
	if err := ctx.QueryParser(&query); err != nil {
		return err
	}

	questions, total, err := c.questionService.List(ctx.Context(), currentUserId(ctx), &query)
	if err != nil {
		return err
	}

	page, limit := dto.NormalizePage(query.Page, query.Limit)
	return ctx.JSON(serverutils.PaginatedResponse("Success list questions", questions, serverutils.Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
	}))
}

func (c *questionController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	res, err := c.questionService.Show(ctx.Context(), currentUserId(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show question", res))
}

func (c *questionController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := c.questionService.Delete(ctx.Context(), currentUserId(ctx), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete question", fiber.Map{"id": id}))
}

func (c *questionController) ListDifficulties(ctx *fiber.Ctx) error {
	res, err := c.questionService.ListDifficulties(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list difficulties", res))
}
