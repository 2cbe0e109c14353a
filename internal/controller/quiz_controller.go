package controller

import (
	"ai-mathteach-be/internal/dto"
	"ai-mathteach-be/internal/pkg/serverutils"
	"ai-mathteach-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IQuizController interface {
	RegisterRoutes(r fiber.Router)
}

type quizController struct {
	quizService service.IQuizService
}

func NewQuizController(quizService service.IQuizService) IQuizController {
	return &quizController{
		quizService: quizService,
	}
}

func (c *quizController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/quiz/v1")
	h.Use(serverutils.JwtMiddleware)

	teacher := serverutils.RequireRole(serverutils.RoleTeacher)
	student := serverutils.RequireRole(serverutils.RoleStudent)

	h.Get("", teacher, c.List)
	h.Post(":id/publish", teacher, c.Publish)
	h.Delete(":id", teacher, c.Delete)

	h.Get("published", student, c.ListPublished)
	h.Post(":id/submit", student, c.Submit)
	h.Get("attempts", student, c.ListAttempts)

	// Both roles; detail access is filtered by ownership/publication
	h.Get(":id", c.Show)
}

func (c *quizController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	res, err := c.quizService.Show(ctx.Context(), currentUserId(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show quiz", res))
}

func (c *quizController) List(ctx *fiber.Ctx) error {
	var query dto.ListQuizzesQuery
	if err := ctx.QueryParser(&query); err != nil {
		return err
	}

	quizzes, total, err := c.quizService.List(ctx.Context(), currentUserId(ctx), &query)
	if err != nil {
		return err
	}
	return paginatedQuizResponse(ctx, quizzes, &query, total)
}

func (c *quizController) ListPublished(ctx *fiber.Ctx) error {
	var query dto.ListQuizzesQuery
	if err := ctx.QueryParser(&query); err != nil {
		return err
	}

	quizzes, total, err := c.quizService.ListPublished(ctx.Context(), &query)
	if err != nil {
		return err
	}
	return paginatedQuizResponse(ctx, quizzes, &query, total)
}

func paginatedQuizResponse(ctx *fiber.Ctx, quizzes []*dto.QuizSummaryResponse, query *dto.ListQuizzesQuery, total int64) error {
	page, limit := dto.NormalizePage(query.Page, query.Limit)
	return ctx.JSON(serverutils.PaginatedResponse("Success list quizzes", quizzes, serverutils.Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
	}))
}

func (c *quizController) Publish(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	res, err := c.quizService.Publish(ctx.Context(), currentUserId(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success publish quiz", res))
}

func (c *quizController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := c.quizService.Delete(ctx.Context(), currentUserId(ctx), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete quiz", fiber.Map{"id": id}))
}

func (c *quizController) Submit(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req dto.SubmitQuizRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.QuizId = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.quizService.Submit(ctx.Context(), currentUserId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success submit quiz", res))
}

func (c *quizController) ListAttempts(ctx *fiber.Ctx) error {
	var quizId *uuid.UUID
	if raw := ctx.Query("quizId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid quizId")
		}
		quizId = &id
	}

	res, err := c.quizService.ListAttempts(ctx.Context(), currentUserId(ctx), quizId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list attempts", res))
}
