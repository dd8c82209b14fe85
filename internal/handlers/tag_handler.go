package handlers

import (
	"log"

	"blogapi/internal/middleware"
	"blogapi/internal/models"
	"blogapi/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// TagHandler handles HTTP requests for the tag vocabulary.
type TagHandler struct {
	tagService *services.TagService
	validate   *validator.Validate
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(tagService *services.TagService) *TagHandler {
	return &TagHandler{
		tagService: tagService,
		validate:   validator.New(),
	}
}

// RegisterRoutes registers the tag routes with the Fiber app.
func (h *TagHandler) RegisterRoutes(router fiber.Router) {
	tagRoutes := router.Group("/tags")
	tagRoutes.Get("/", h.HandleList)
	tagRoutes.Post("/", h.HandleCreate)
}

// TagRequest represents the request body for creating a tag.
type TagRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

// HandleList returns the whole tag vocabulary.
func (h *TagHandler) HandleList(c *fiber.Ctx) error {
	tags, err := h.tagService.List()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(tags)
}

// HandleCreate adds a tag to the vocabulary. Admin only.
func (h *TagHandler) HandleCreate(c *fiber.Ctx) error {
	var req TagRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing tag request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return writeValidationError(c, err)
	}

	tag := models.Tag{Name: req.Name}
	created, err := h.tagService.Create(&tag, middleware.PrincipalFrom(c))
	if err != nil {
		log.Printf("Error creating tag %q: %v", req.Name, err)
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}
