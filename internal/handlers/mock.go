package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ywatanabe-dev/line-support-relay/internal/services"
)

// MockHandler serves deterministic demo data so the pipeline can be
// exercised without a real CRM backend.
type MockHandler struct{}

// NewMockHandler creates the mock data handler.
func NewMockHandler() *MockHandler {
	return &MockHandler{}
}

// GetCustomer returns the generated profile for a user id.
func (h *MockHandler) GetCustomer(c *fiber.Ctx) error {
	userID := c.Params("userId")
	return c.JSON(services.GenerateMockCustomer(userID))
}

// GetOrders returns the generated order history for a user id.
func (h *MockHandler) GetOrders(c *fiber.Ctx) error {
	userID := c.Params("userId")
	return c.JSON(services.GenerateMockOrders(userID))
}

// Health reports mock server liveness.
func (h *MockHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
