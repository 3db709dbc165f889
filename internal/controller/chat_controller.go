package controller

import (
	"errors"

	"mindly-be/internal/dto"
	"mindly-be/internal/pkg/serverutils"
	"mindly-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	Metrics(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	r.Post("/chat", c.Chat)
	r.Get("/metrics", c.Metrics)
}

func (c *chatController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if userId := serverutils.UserIdFromLocals(ctx); userId != "" {
		req.UserId = dto.FlexibleID(userId)
	}

	res, err := c.chatService.HandleTurn(ctx.UserContext(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyMessage) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return err
	}

	return ctx.JSON(res)
}

func (c *chatController) Metrics(ctx *fiber.Ctx) error {
	res, err := c.chatService.GetMetrics(ctx.UserContext(), ctx.Query("session_id"))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}

	return ctx.JSON(res)
}
