package handlers

import (
	"log"

	"blogapi/internal/middleware"
	"blogapi/internal/models"
	"blogapi/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CommentHandler handles HTTP requests for article comments.
type CommentHandler struct {
	commentService *services.CommentService
	validate       *validator.Validate
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the comment routes, nested under articles.
func (h *CommentHandler) RegisterRoutes(router fiber.Router) {
	commentRoutes := router.Group("/articles/:articleId/comments")
	commentRoutes.Post("/", h.HandleAdd)
	commentRoutes.Get("/", h.HandleListByArticle)
	commentRoutes.Delete("/:id", h.HandleDelete)
}

// CommentRequest represents the request body for adding a comment.
type CommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// HandleAdd attaches a comment to an article for the authenticated user.
func (h *CommentHandler) HandleAdd(c *fiber.Ctx) error {
	articleID, err := c.ParamsInt("articleId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid article id"})
	}

	var req CommentRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing comment request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return writeValidationError(c, err)
	}

	comment := models.Comment{
		Content:   req.Content,
		ArticleID: uint(articleID),
	}

	saved, err := h.commentService.Add(&comment, middleware.PrincipalFrom(c))
	if err != nil {
		log.Printf("Error adding comment to article %d: %v", articleID, err)
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(saved)
}

// HandleListByArticle handles the paginated comment listing for an article.
func (h *CommentHandler) HandleListByArticle(c *fiber.Ctx) error {
	articleID, err := c.ParamsInt("articleId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid article id"})
	}

	page, size := pageParams(c)
	comments, total, err := h.commentService.ListByArticle(uint(articleID), page, size)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(models.NewPage(comments, page, size, total))
}

// HandleDelete deletes a comment; only its author may do so.
func (h *CommentHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid comment id"})
	}

	if err := h.commentService.Delete(uint(id), middleware.PrincipalFrom(c)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
