package controller

import (
	"mindly-be/internal/dto"
	"mindly-be/internal/pkg/serverutils"
	"mindly-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IContactController interface {
	RegisterRoutes(r fiber.Router)
	Submit(ctx *fiber.Ctx) error
}

type contactController struct {
	contactService service.IContactService
}

func NewContactController(contactService service.IContactService) IContactController {
	return &contactController{contactService: contactService}
}

func (c *contactController) RegisterRoutes(r fiber.Router) {
	r.Post("/contact", c.Submit)
}

func (c *contactController) Submit(ctx *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.contactService.Submit(ctx.UserContext(), &req); err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "Could not deliver your message, please try again later")
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Message sent", nil))
}
