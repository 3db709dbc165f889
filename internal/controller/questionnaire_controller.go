package controller

import (
	"errors"

	"mindly-be/internal/dto"
	"mindly-be/internal/pkg/serverutils"
	"mindly-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IQuestionnaireController interface {
	RegisterRoutes(r fiber.Router)
	Save(ctx *fiber.Ctx) error
	Latest(ctx *fiber.Ctx) error
	Summary(ctx *fiber.Ctx) error
}

type questionnaireController struct {
	questionnaireService service.IQuestionnaireService
}

func NewQuestionnaireController(questionnaireService service.IQuestionnaireService) IQuestionnaireController {
	return &questionnaireController{
		questionnaireService: questionnaireService,
	}
}

func (c *questionnaireController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/questionnaire")
	h.Post("/latest", c.Save)
	h.Get("/latest", c.Latest)
	h.Get("/summary", c.Summary)
}

func (c *questionnaireController) Save(ctx *fiber.Ctx) error {
	var req dto.SaveQuestionnaireRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if userId := serverutils.UserIdFromLocals(ctx); userId != "" {
		req.UserId = dto.FlexibleID(userId)
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.questionnaireService.Save(ctx.UserContext(), &req); err != nil {
		return questionnaireError(err)
	}

	return ctx.JSON(dto.SaveQuestionnaireResponse{Saved: true})
}

func (c *questionnaireController) Latest(ctx *fiber.Ctx) error {
	res, err := c.questionnaireService.Latest(ctx.UserContext(), userIdParam(ctx))
	if err != nil {
		return questionnaireError(err)
	}
	return ctx.JSON(res)
}

func (c *questionnaireController) Summary(ctx *fiber.Ctx) error {
	res, err := c.questionnaireService.Summary(ctx.UserContext(), userIdParam(ctx))
	if err != nil {
		return questionnaireError(err)
	}
	return ctx.JSON(res)
}

func userIdParam(ctx *fiber.Ctx) string {
	if userId := serverutils.UserIdFromLocals(ctx); userId != "" {
		return userId
	}
	return ctx.Query("userId")
}

func questionnaireError(err error) error {
	switch {
	case errors.Is(err, service.ErrUserIDRequired):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrQuestionnaireNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	default:
		return err
	}
}
