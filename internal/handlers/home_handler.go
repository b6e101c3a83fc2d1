package handlers

import (
	"github.com/gofiber/fiber/v2"

	"userapi/internal/response"
)

// HomeHandler serves the API metadata endpoint.
type HomeHandler struct{}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// RegisterRoutes registers the home route with the Fiber app.
func (h *HomeHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleHome)
}

// HandleHome returns API metadata and the endpoint list.
func (h *HomeHandler) HandleHome(c *fiber.Ctx) error {
	return response.Data(c, fiber.StatusOK, fiber.Map{
		"api_name":    "User Management API",
		"version":     "1.0.0",
		"description": "REST API for managing user data with CRUD operations",
		"endpoints": fiber.Map{
			"GET /":                 "API information",
			"GET /users":            "Get all users",
			"GET /users/:id":        "Get user by ID",
			"POST /users":           "Create new user",
			"PUT /users/:id":        "Update user",
			"DELETE /users/:id":     "Delete user",
			"GET /users/search?q=q": "Search users by name, email or position",
		},
	}, "Welcome to User Management API")
}
