package controller

import (
	"fmt"

	"ai-mathteach-be/internal/dto"
	"ai-mathteach-be/internal/pkg/serverutils"
	"ai-mathteach-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ILessonPlanController interface {
	RegisterRoutes(r fiber.Router)
}

type lessonPlanController struct {
	lessonPlanService service.ILessonPlanService
}

func NewLessonPlanController(lessonPlanService service.ILessonPlanService) ILessonPlanController {
	return &lessonPlanController{
		lessonPlanService: lessonPlanService,
	}
}

func (c *lessonPlanController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/lesson-plan/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Use(serverutils.RequireRole(serverutils.RoleTeacher))

	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Get(":id/download", c.Download)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *lessonPlanController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateLessonPlanRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.lessonPlanService.Create(ctx.Context(), currentUserId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create lesson plan", res))
}

func (c *lessonPlanController) List(ctx *fiber.Ctx) error {
	var query dto.ListLessonPlansQuery
	if err := ctx.QueryParser(&query); err != nil {
		return err
	}

	plans, total, err := c.lessonPlanService.List(ctx.Context(), currentUserId(ctx), &query)
	if err != nil {
		return err
	}

	page, limit := dto.NormalizePage(query.Page, query.Limit)
	return ctx.JSON(serverutils.PaginatedResponse("Success list lesson plans", plans, serverutils.Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
	}))
}

func (c *lessonPlanController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	res, err := c.lessonPlanService.Show(ctx.Context(), currentUserId(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show lesson plan", res))
}

func (c *lessonPlanController) Download(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	filename, content, err := c.lessonPlanService.DownloadMarkdown(ctx.Context(), currentUserId(ctx), id)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, "text/markdown; charset=utf-8")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return ctx.Send(content)
}

func (c *lessonPlanController) Update(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req dto.UpdateLessonPlanRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.lessonPlanService.Update(ctx.Context(), currentUserId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update lesson plan", res))
}

func (c *lessonPlanController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := c.lessonPlanService.Delete(ctx.Context(), currentUserId(ctx), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete lesson plan", fiber.Map{"id": id}))
}
