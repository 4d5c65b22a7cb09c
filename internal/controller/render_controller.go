package controller

import (
	"portfolio-content-be/internal/dto"
	"portfolio-content-be/internal/pkg/serverutils"
	"portfolio-content-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRenderController interface {
	RegisterRoutes(r fiber.Router)
	Preview(ctx *fiber.Ctx) error
	Toc(ctx *fiber.Ctx) error
}

type renderController struct {
	renderService service.IRenderService
}

func NewRenderController(renderService service.IRenderService) IRenderController {
	return &renderController{
		renderService: renderService,
	}
}

func (c *renderController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/render/v1")
	h.Post("preview", c.Preview)
	h.Post("toc", c.Toc)
}

// Preview renders an unsaved editor state. Nothing is cached.
func (c *renderController) Preview(ctx *fiber.Ctx) error {
	var req dto.PreviewRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("Invalid request body", err)
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.renderService.Render(ctx.UserContext(), req.Content)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success render content", res))
}

// Toc reads ids from the markup as is, so html should be renderer output.
func (c *renderController) Toc(ctx *fiber.Ctx) error {
	var req dto.TocFromMarkupRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("Invalid request body", err)
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.renderService.TocFromMarkup(ctx.UserContext(), req.HTML)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success extract toc", res))
}
