package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/seatboard/internal/api/dto"
	"github.com/spec-kit/seatboard/internal/service"
	apperrors "github.com/spec-kit/seatboard/pkg/util/errorutil"
)

// CommandHandler runs operator text commands.
type CommandHandler struct {
	commands *service.CommandService
}

// NewCommandHandler constructs handler.
func NewCommandHandler(commands *service.CommandService) *CommandHandler {
	return &CommandHandler{commands: commands}
}

// Execute POST /commands. A rejected command is still a 200 with success=false;
// only infrastructure failures become error responses.
func (h *CommandHandler) Execute(c *fiber.Ctx) error {
	var req dto.CommandRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Text) == "" {
		return apperrors.NewValidationError("text required", map[string]any{"field": "text"})
	}

	res := h.commands.Execute(requestContext(c), req.Text)
	if res.Code == apperrors.CodeInternal {
		return res.Err
	}
	return c.JSON(fiber.Map{"data": res})
}

// Parse POST /commands/parse returns the parsed command without executing it.
func (h *CommandHandler) Parse(c *fiber.Ctx) error {
	var req dto.CommandRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	cmd := h.commands.Parse(req.Text)
	return c.JSON(fiber.Map{"data": fiber.Map{"kind": cmd.Kind(), "command": cmd}})
}
