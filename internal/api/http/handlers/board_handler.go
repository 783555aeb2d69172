package handlers

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/seatboard/internal/api/dto"
	"github.com/spec-kit/seatboard/internal/board"
	"github.com/spec-kit/seatboard/internal/export"
	"github.com/spec-kit/seatboard/internal/service"
	apperrors "github.com/spec-kit/seatboard/pkg/util/errorutil"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// BoardHandler serves the board and its export.
type BoardHandler struct {
	boards *service.BoardService
}

// NewBoardHandler constructs handler.
func NewBoardHandler(boards *service.BoardService) *BoardHandler {
	return &BoardHandler{boards: boards}
}

// Get GET /board.
func (h *BoardHandler) Get(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.boards.Snapshot()})
}

// Export GET /board/export.xlsx.
func (h *BoardHandler) Export(c *fiber.Ctx) error {
	snapshot := h.boards.Snapshot()
	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, snapshot); err != nil {
		return apperrors.NewInternalError(fmt.Errorf("export board: %w", err))
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="seatboard-%s.xlsx"`, snapshot.LastUpdated.Format("20060102-150405")))
	return c.Send(buf.Bytes())
}

// PatchDepartment PATCH /departments/:id.
func (h *BoardHandler) PatchDepartment(c *fiber.Ctx) error {
	var req dto.DepartmentPatchRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.DisplayName == nil && req.SubLabel == nil && req.IsParentOrg == nil {
		return apperrors.NewValidationError("nothing to update", nil)
	}
	dept, err := h.boards.RelabelDepartment(requestContext(c), c.Params("id"), board.DepartmentLabels{
		DisplayName: req.DisplayName,
		SubLabel:    req.SubLabel,
		IsParentOrg: req.IsParentOrg,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dept})
}
