package controller

import (
	"strconv"

	"portfolio-content-be/internal/dto"
	"portfolio-content-be/internal/pkg/serverutils"
	"portfolio-content-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IContentController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Markdown(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type contentController struct {
	contentService service.IContentService
	auth           fiber.Handler
}

func NewContentController(contentService service.IContentService, auth fiber.Handler) IContentController {
	return &contentController{
		contentService: contentService,
		auth:           auth,
	}
}

func (c *contentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/content/v1")
	// Public reads
	h.Get(":kind", c.List)
	h.Get(":kind/:slug", c.Show)
	h.Get(":kind/:slug/markdown", c.Markdown)
	// Writes need a token
	h.Post("", c.auth, c.Create)
	h.Put(":id", c.auth, c.Update)
	h.Delete(":id", c.auth, c.Delete)
}

func (c *contentController) List(ctx *fiber.Ctx) error {
	page, _ := strconv.Atoi(ctx.Query("page", "1"))
	limit, _ := strconv.Atoi(ctx.Query("limit", "10"))

	req := dto.ListContentRequest{
		Kind:  ctx.Params("kind"),
		Page:  page,
		Limit: limit,
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.contentService.List(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list content", res))
}

func (c *contentController) Show(ctx *fiber.Ctx) error {
	res, err := c.contentService.Show(ctx.UserContext(), ctx.Params("kind"), ctx.Params("slug"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show content", res))
}

// Markdown answers raw markdown when the client asks for it, the JSON envelope otherwise.
func (c *contentController) Markdown(ctx *fiber.Ctx) error {
	res, err := c.contentService.Markdown(ctx.UserContext(), ctx.Params("kind"), ctx.Params("slug"))
	if err != nil {
		return err
	}

	if ctx.Accepts(fiber.MIMEApplicationJSON, "text/markdown") == "text/markdown" {
		ctx.Set(fiber.HeaderContentType, "text/markdown; charset=utf-8")
		return ctx.SendString(res.Markdown)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success export content", res))
}

func (c *contentController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateContentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("Invalid request body", err)
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.contentService.Create(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create content", res))
}

func (c *contentController) Update(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewBadRequest("Invalid content id", err)
	}

	var req dto.UpdateContentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("Invalid request body", err)
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.contentService.Update(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update content", res))
}

func (c *contentController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewBadRequest("Invalid content id", err)
	}

	if err := c.contentService.Delete(ctx.UserContext(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete content", nil))
}
