package controller

import (
	"strings"

	"portfolio-content-be/internal/dto"
	"portfolio-content-be/internal/pkg/serverutils"
	"portfolio-content-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	GetLogs(ctx *fiber.Ctx) error
	GetLogDetail(ctx *fiber.Ctx) error
}

type adminController struct {
	adminService service.IAdminService
	auth         fiber.Handler
}

func NewAdminController(adminService service.IAdminService, auth fiber.Handler) IAdminController {
	return &adminController{
		adminService: adminService,
		auth:         auth,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/v1", c.auth)
	h.Get("/logs", c.GetLogs)
	h.Get("/logs/:id", c.GetLogDetail)
}

// GetLogs lists app or render log lines, newest first.
func (c *adminController) GetLogs(ctx *fiber.Ctx) error {
	query := dto.LogQuery{Page: 1, Limit: 10}
	if err := ctx.QueryParser(&query); err != nil {
		return serverutils.NewBadRequest("Invalid query", err)
	}
	query.Level = strings.ToUpper(query.Level)

	if err := serverutils.ValidateRequest(query); err != nil {
		return err
	}

	logs, err := c.adminService.GetSystemLogs(ctx.UserContext(), query.Source, query.Page, query.Limit, query.Level)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get logs", logs))
}

func (c *adminController) GetLogDetail(ctx *fiber.Ctx) error {
	logs, err := c.adminService.GetLogDetail(ctx.UserContext(), ctx.Query("source"), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get log detail", logs))
}
