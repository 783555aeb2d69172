package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/seatboard/internal/api/dto"
	"github.com/spec-kit/seatboard/internal/service"
	apperrors "github.com/spec-kit/seatboard/pkg/util/errorutil"
)

// ScenarioHandler lists and edits saved scenarios. Saving and loading go through commands.
type ScenarioHandler struct {
	scenarios *service.ScenarioService
}

// NewScenarioHandler constructs handler.
func NewScenarioHandler(scenarios *service.ScenarioService) *ScenarioHandler {
	return &ScenarioHandler{scenarios: scenarios}
}

// List GET /scenarios.
func (h *ScenarioHandler) List(c *fiber.Ctx) error {
	list, err := h.scenarios.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]fiber.Map, 0, len(list))
	for _, sc := range list {
		items = append(items, fiber.Map{
			"id":          sc.ID,
			"name":        sc.Name,
			"description": sc.Description,
			"createdAt":   sc.CreatedAt,
			"updatedAt":   sc.UpdatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// Patch PATCH /scenarios/:id.
func (h *ScenarioHandler) Patch(c *fiber.Ctx) error {
	var req dto.ScenarioPatchRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	sc, err := h.scenarios.Update(requestContext(c), c.Params("id"), service.ScenarioChanges{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"id":          sc.ID,
		"name":        sc.Name,
		"description": sc.Description,
		"createdAt":   sc.CreatedAt,
		"updatedAt":   sc.UpdatedAt,
	}})
}
