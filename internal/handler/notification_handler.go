package handler

import (
	"os"

	"ai-mathteach-be/internal/dto"
	"ai-mathteach-be/internal/pkg/logger"
	"ai-mathteach-be/internal/pkg/serverutils"
	"ai-mathteach-be/internal/service"
	internalWS "ai-mathteach-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type NotificationHandler struct {
	service service.INotificationService
	hub     *internalWS.Hub
	logger  logger.ILogger
}

func NewNotificationHandler(svc service.INotificationService, hub *internalWS.Hub, log logger.ILogger) *NotificationHandler {
	return &NotificationHandler{
		service: svc,
		hub:     hub,
		logger:  log,
	}
}

func (h *NotificationHandler) RegisterRoutes(r fiber.Router) {
	g := r.Group("/notification/v1")

	// The websocket handshake authenticates itself (token via query or
	// header), so it sits outside the JWT middleware.
	g.Get("ws", h.ServeWs)

	g.Use(serverutils.JwtMiddleware)
	g.Get("", h.List)
	g.Get("unread-count", h.UnreadCount)
	g.Patch(":id/read", h.MarkRead)
	g.Patch("read-all", h.MarkAllRead)
}

// ServeWs authenticates the handshake and upgrades the connection.
// Browsers cannot set an Authorization header on a websocket request, so
// the token is also accepted as a query parameter.
func (h *NotificationHandler) ServeWs(c *fiber.Ctx) error {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}
	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.FailureResponse(fiber.StatusUnauthorized, "Missing token"))
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		h.logger.Warn("NotificationHandler", "Invalid token in ws handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.FailureResponse(fiber.StatusUnauthorized, "Invalid token"))
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.FailureResponse(fiber.StatusUnauthorized, "Invalid token claims"))
	}
	userIdStr, ok := claims["user_id"].(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.FailureResponse(fiber.StatusUnauthorized, "Token missing user_id"))
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.FailureResponse(fiber.StatusUnauthorized, "Invalid user id in token"))
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("NotificationHandler", "WebSocket session started", map[string]interface{}{"user_id": userId})
			internalWS.ServeWs(h.hub, conn, userId)
			h.logger.Info("NotificationHandler", "WebSocket session ended", map[string]interface{}{"user_id": userId})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userId, err := localUserId(c)
	if err != nil {
		return err
	}

	var query dto.ListNotificationsQuery
	if err := c.QueryParser(&query); err != nil {
		return err
	}

	notifications, total, err := h.service.List(c.Context(), userId, &query)
	if err != nil {
		return err
	}

	page, limit := dto.NormalizePage(query.Page, query.Limit)
	return c.JSON(serverutils.PaginatedResponse("Success list notifications", notifications, serverutils.Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
	}))
}

func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	userId, err := localUserId(c)
	if err != nil {
		return err
	}

	res, err := h.service.UnreadCount(c.Context(), userId)
	if err != nil {
		return err
	}
	return c.JSON(serverutils.SuccessResponse("Success get unread count", res))
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	userId, err := localUserId(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.service.MarkRead(c.Context(), userId, id); err != nil {
		return err
	}
	return c.JSON(serverutils.SuccessResponse("Success mark notification read", fiber.Map{"id": id}))
}

func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	userId, err := localUserId(c)
	if err != nil {
		return err
	}

	if err := h.service.MarkAllRead(c.Context(), userId); err != nil {
		return err
	}
	return c.JSON(serverutils.SuccessResponse("Success mark all notifications read", fiber.Map{}))
}

func localUserId(c *fiber.Ctx) (uuid.UUID, error) {
	userIdStr, ok := c.Locals("user_id").(string)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	return userId, nil
}
