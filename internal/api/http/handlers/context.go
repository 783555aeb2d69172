package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/seatboard/internal/auth"
	"github.com/spec-kit/seatboard/internal/service"
)

// requestContext returns the request context tagged with the authenticated caller.
func requestContext(c *fiber.Ctx) context.Context {
	ctx := c.UserContext()
	if principal, ok := auth.PrincipalFromContext(c); ok {
		ctx = service.WithActor(ctx, principal.Name)
	}
	return ctx
}
