package controller

import (
	"dec-assist-be/internal/pkg/serverutils"
	"dec-assist-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IUploadController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
}

type uploadController struct {
	uploadService service.IUploadService
}

func NewUploadController(uploadService service.IUploadService) IUploadController {
	return &uploadController{
		uploadService: uploadService,
	}
}

func (c *uploadController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assistant/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("upload", c.Upload)
}

func (c *uploadController) Upload(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	sessionId := ctx.FormValue("session_id")
	if sessionId == "" {
		return serverutils.NewBadRequestError("session_id is required")
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		return serverutils.NewBadRequestError("invalid multipart form")
	}
	files := form.File["files"]

	res, err := c.uploadService.Upload(ctx.Context(), userId, sessionId, files)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Upload processed", res))
}
