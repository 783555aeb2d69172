package handlers

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/seatboard/internal/api/dto"
	"github.com/spec-kit/seatboard/internal/photo"
	"github.com/spec-kit/seatboard/internal/service"
	apperrors "github.com/spec-kit/seatboard/pkg/util/errorutil"
)

// PhotoHandler uploads and serves staff photos.
type PhotoHandler struct {
	photos *service.PhotoService
}

// NewPhotoHandler constructs handler.
func NewPhotoHandler(photos *service.PhotoService) *PhotoHandler {
	return &PhotoHandler{photos: photos}
}

// Put PUT /employees/:id/photo. Accepts a multipart "photo" field or a raw image body.
func (h *PhotoHandler) Put(c *fiber.Ctx) error {
	raw, err := uploadedBytes(c)
	if err != nil {
		return err
	}
	id := c.Params("id")
	handle, err := h.photos.Upload(requestContext(c), id, raw)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.PhotoResponse{EmployeeID: id, Handle: handle}})
}

// Get GET /employees/:id/photo.
func (h *PhotoHandler) Get(c *fiber.Ctx) error {
	data, err := h.photos.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, photo.ContentType)
	c.Set(fiber.HeaderCacheControl, "private, max-age=300")
	return c.Send(data)
}

// Delete DELETE /employees/:id/photo.
func (h *PhotoHandler) Delete(c *fiber.Ctx) error {
	if err := h.photos.Remove(requestContext(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PatchPosition PATCH /employees/:id/photo-position.
func (h *PhotoHandler) PatchPosition(c *fiber.Ctx) error {
	var req dto.PhotoPositionRequest
	if err := c.BodyParser(&req); err != nil || req.PhotoPosY == nil {
		return apperrors.NewValidationError("photoPosY required", map[string]any{"field": "photoPosY"})
	}
	applied, err := h.photos.SetPosition(requestContext(c), c.Params("id"), *req.PhotoPosY)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"employeeId": c.Params("id"), "photoPosY": applied}})
}

// Bulk POST /photos/bulk with one or more multipart "photos" files named after employees.
func (h *PhotoHandler) Bulk(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return apperrors.NewValidationError("multipart form required", nil)
	}
	headers := form.File["photos"]
	if len(headers) == 0 {
		return apperrors.NewValidationError("no photos uploaded", map[string]any{"field": "photos"})
	}
	files := make([]service.UploadFile, 0, len(headers))
	for _, fh := range headers {
		data, err := readFileHeader(fh)
		if err != nil {
			return apperrors.NewValidationError("unreadable upload", map[string]any{"filename": fh.Filename})
		}
		files = append(files, service.UploadFile{Filename: fh.Filename, Data: data})
	}
	return c.JSON(fiber.Map{"data": h.photos.BulkUpload(requestContext(c), files)})
}

func uploadedBytes(c *fiber.Ctx) ([]byte, error) {
	if fh, err := c.FormFile("photo"); err == nil {
		data, err := readFileHeader(fh)
		if err != nil {
			return nil, apperrors.NewValidationError("unreadable upload", map[string]any{"filename": fh.Filename})
		}
		return data, nil
	}
	body := c.Body()
	if len(body) == 0 {
		return nil, apperrors.NewValidationError("photo required", map[string]any{"field": "photo"})
	}
	return append([]byte(nil), body...), nil
}

func readFileHeader(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer f.Close()
	return io.ReadAll(f)
}
