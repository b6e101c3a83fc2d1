package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"userapi/internal/models"
	"userapi/internal/response"
	"userapi/internal/services"
	"userapi/internal/validation"
)

// UserHandler handles HTTP requests for user records.
type UserHandler struct {
	service *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// RegisterRoutes registers the user routes with the Fiber app. The search
// route is registered before the :id route so the literal segment wins.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/search", h.HandleSearchUsers)
	userRoutes.Get("/", h.HandleGetUsers)
	userRoutes.Get("/:id", h.HandleGetUserByID)
	userRoutes.Post("/", h.HandleCreateUser)
	userRoutes.Put("/:id", h.HandleUpdateUser)
	userRoutes.Delete("/:id", h.HandleDeleteUser)
}

// HandleGetUsers retrieves all users.
func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	users, err := h.service.GetAllUsers()
	if err != nil {
		log.Printf("Error getting all users: %v", err)
		return response.Error(c, fiber.StatusInternalServerError, "Error retrieving users", err.Error())
	}
	return response.Data(c, fiber.StatusOK, fiber.Map{
		"users":       users,
		"total_count": len(users),
	}, fmt.Sprintf("Retrieved %d users successfully", len(users)))
}

// HandleGetUserByID retrieves a single user by its ID.
func (h *UserHandler) HandleGetUserByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Error(c, fiber.StatusNotFound, "Resource not found")
	}

	user, err := h.service.GetUserByID(id)
	if err != nil {
		log.Printf("Error getting user %d: %v", id, err)
		return response.Error(c, fiber.StatusInternalServerError, "Error retrieving user", err.Error())
	}
	if user == nil {
		return response.Error(c, fiber.StatusNotFound, fmt.Sprintf("User with ID %d not found", id))
	}
	return response.Data(c, fiber.StatusOK, fiber.Map{"user": user}, "User retrieved successfully")
}

// HandleCreateUser creates a new user.
func (h *UserHandler) HandleCreateUser(c *fiber.Ctx) error {
	var payload models.UserPayload
	if err := c.BodyParser(&payload); err != nil {
		log.Printf("Error parsing create request body: %v", err)
		return response.Error(c, fiber.StatusBadRequest, "Request must contain JSON data")
	}

	if errs := validation.Validate(payload, validation.ModeCreate); len(errs) > 0 {
		return response.JSON(c, fiber.StatusBadRequest, response.Body{
			Message: "Validation failed",
			Errors:  errs,
		})
	}

	user, err := h.service.CreateUser(payload)
	if err != nil {
		if errors.Is(err, services.ErrEmailExists) {
			return response.Error(c, fiber.StatusConflict, "User with this email already exists")
		}
		log.Printf("Error creating user: %v", err)
		return response.Error(c, fiber.StatusInternalServerError, "Error creating user", err.Error())
	}

	return response.Data(c, fiber.StatusCreated, fiber.Map{"user": user}, "User created successfully")
}

// HandleUpdateUser applies a partial update to an existing user.
func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Error(c, fiber.StatusNotFound, "Resource not found")
	}

	// Unknown IDs answer 404 before the body is inspected.
	existing, err := h.service.GetUserByID(id)
	if err != nil {
		log.Printf("Error getting user %d for update: %v", id, err)
		return response.Error(c, fiber.StatusInternalServerError, "Error updating user", err.Error())
	}
	if existing == nil {
		return response.Error(c, fiber.StatusNotFound, fmt.Sprintf("User with ID %d not found", id))
	}

	var payload models.UserPayload
	if err := c.BodyParser(&payload); err != nil {
		log.Printf("Error parsing update request body: %v", err)
		return response.Error(c, fiber.StatusBadRequest, "Request must contain JSON data")
	}

	if errs := validation.Validate(payload, validation.ModeUpdate); len(errs) > 0 {
		return response.JSON(c, fiber.StatusBadRequest, response.Body{
			Message: "Validation failed",
			Errors:  errs,
		})
	}

	user, err := h.service.UpdateUser(id, payload)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return response.Error(c, fiber.StatusNotFound, fmt.Sprintf("User with ID %d not found", id))
		case errors.Is(err, services.ErrEmailExistsOther):
			return response.Error(c, fiber.StatusConflict, "Another user with this email already exists")
		}
		log.Printf("Error updating user %d: %v", id, err)
		return response.Error(c, fiber.StatusInternalServerError, "Error updating user", err.Error())
	}

	return response.Data(c, fiber.StatusOK, fiber.Map{"user": user}, "User updated successfully")
}

// HandleDeleteUser deletes a user and returns the deleted record.
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Error(c, fiber.StatusNotFound, "Resource not found")
	}

	user, err := h.service.DeleteUser(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return response.Error(c, fiber.StatusNotFound, fmt.Sprintf("User with ID %d not found", id))
		}
		log.Printf("Error deleting user %d: %v", id, err)
		return response.Error(c, fiber.StatusInternalServerError, "Error deleting user", err.Error())
	}

	return response.Data(c, fiber.StatusOK, fiber.Map{"deleted_user": user}, "User deleted successfully")
}

// HandleSearchUsers searches users by a case-insensitive substring match
// against name, email and position.
func (h *UserHandler) HandleSearchUsers(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return response.Error(c, fiber.StatusBadRequest, "Search query parameter 'q' is required")
	}

	users, err := h.service.SearchUsers(query)
	if err != nil {
		log.Printf("Error searching users for %q: %v", query, err)
		return response.Error(c, fiber.StatusInternalServerError, "Error searching users", err.Error())
	}

	return response.Data(c, fiber.StatusOK, fiber.Map{
		"users":        users,
		"total_count":  len(users),
		"search_query": query,
	}, fmt.Sprintf("Found %d users matching '%s'", len(users), query))
}

// parseID reads the :id route parameter. A non-numeric or non-positive ID
// is treated like an unmatched route.
func parseID(c *fiber.Ctx) (int, error) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid user ID %q", c.Params("id"))
	}
	return id, nil
}
