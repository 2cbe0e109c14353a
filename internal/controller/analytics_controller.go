package controller

import (
	"ai-mathteach-be/internal/pkg/serverutils"
	"ai-mathteach-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAnalyticsController interface {
	RegisterRoutes(r fiber.Router)
}

type analyticsController struct {
	analyticsService service.IAnalyticsService
}

func NewAnalyticsController(analyticsService service.IAnalyticsService) IAnalyticsController {
	return &analyticsController{
		analyticsService: analyticsService,
	}
}

func (c *analyticsController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/analytics/v1")
	h.Use(serverutils.JwtMiddleware)

	h.Get("student-progress", serverutils.RequireRole(serverutils.RoleStudent), c.StudentProgress)
	h.Get("class-overview", serverutils.RequireRole(serverutils.RoleTeacher), c.ClassOverview)
}

func (c *analyticsController) StudentProgress(ctx *fiber.Ctx) error {
	res, err := c.analyticsService.StudentProgress(ctx.Context(), currentUserId(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get student progress", res))
}

func (c *analyticsController) ClassOverview(ctx *fiber.Ctx) error {
	res, err := c.analyticsService.ClassOverview(ctx.Context(), currentUserId(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get class overview", res))
}
