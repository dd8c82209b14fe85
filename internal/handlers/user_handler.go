package handlers

import (
	"log"

	"blogapi/internal/middleware"
	"blogapi/internal/models"
	"blogapi/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for user management.
type UserHandler struct {
	userService *services.UserService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Post("/", h.HandleCreate)
	userRoutes.Get("/", h.HandleList)
	userRoutes.Get("/:id", h.HandleGetByID)
	userRoutes.Put("/:id", h.HandleUpdate)
	userRoutes.Delete("/:id", h.HandleDelete)
}

// CreateUserRequest is the admin path for creating users with a role.
type CreateUserRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=100"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Role      string `json:"role" validate:"required,oneof=USER ADMIN"`
}

// UpdateUserRequest updates profile fields only; password and role are not
// mutable through this path.
type UpdateUserRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=100"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" validate:"required,email"`
}

// HandleCreate handles admin user creation.
func (h *UserHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create user request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return writeValidationError(c, err)
	}

	user := models.User{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
	}

	created, err := h.userService.Create(&user, middleware.PrincipalFrom(c))
	if err != nil {
		log.Printf("Error creating user %s: %v", req.Email, err)
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleList handles the paginated user listing.
func (h *UserHandler) HandleList(c *fiber.Ctx) error {
	page, size := pageParams(c)
	users, total, err := h.userService.List(page, size)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(models.NewPage(users, page, size, total))
}

// HandleGetByID returns a single user.
func (h *UserHandler) HandleGetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid user id"})
	}

	user, err := h.userService.GetByID(uint(id))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(user)
}

// HandleUpdate handles profile updates by the user themselves or an admin.
func (h *UserHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid user id"})
	}

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update user request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return writeValidationError(c, err)
	}

	updated := models.User{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}

	user, err := h.userService.Update(uint(id), &updated, middleware.PrincipalFrom(c))
	if err != nil {
		log.Printf("Error updating user %d: %v", id, err)
		return writeError(c, err)
	}
	return c.JSON(user)
}

// HandleDelete handles admin user deletion.
func (h *UserHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid user id"})
	}

	if err := h.userService.Delete(uint(id), middleware.PrincipalFrom(c)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
