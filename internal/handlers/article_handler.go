package handlers

import (
	"log"

	"blogapi/internal/middleware"
	"blogapi/internal/models"
	"blogapi/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ArticleHandler handles HTTP requests for articles.
type ArticleHandler struct {
	articleService *services.ArticleService
	validate       *validator.Validate
}

// NewArticleHandler creates a new ArticleHandler.
func NewArticleHandler(articleService *services.ArticleService) *ArticleHandler {
	return &ArticleHandler{
		articleService: articleService,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the article routes with the Fiber app.
func (h *ArticleHandler) RegisterRoutes(router fiber.Router) {
	articleRoutes := router.Group("/articles")
	articleRoutes.Post("/", h.HandleCreate)
	articleRoutes.Get("/", h.HandleList)
	articleRoutes.Get("/author/:authorId", h.HandleListByAuthor)
	articleRoutes.Get("/:id", h.HandleGetByID)
	articleRoutes.Put("/:id", h.HandleUpdate)
	articleRoutes.Delete("/:id", h.HandleDelete)
}

// ArticleRequest represents the request body for creating or updating an
// article. Tags are referenced by ID; omitting them on an update keeps the
// stored tag set.
type ArticleRequest struct {
	Title    string               `json:"title" validate:"required"`
	Content  string               `json:"content" validate:"required"`
	ImageURL string               `json:"image_url"`
	Status   models.ArticleStatus `json:"status"`
	TagIDs   []uint               `json:"tag_ids"`
}

// HandleCreate handles article creation for the authenticated author.
func (h *ArticleHandler) HandleCreate(c *fiber.Ctx) error {
	req, ok := h.parseRequest(c)
	if !ok {
		return nil
	}

	article := models.Article{
		Title:    req.Title,
		Content:  req.Content,
		ImageURL: req.ImageURL,
		Status:   req.Status,
	}

	saved, err := h.articleService.Create(&article, req.TagIDs, middleware.PrincipalFrom(c))
	if err != nil {
		log.Printf("Error creating article: %v", err)
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(saved)
}

// HandleList handles the paginated article listing.
func (h *ArticleHandler) HandleList(c *fiber.Ctx) error {
	page, size := pageParams(c)
	articles, total, err := h.articleService.List(page, size)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(models.NewPage(articles, page, size, total))
}

// HandleListByAuthor handles the paginated listing of one author's articles.
func (h *ArticleHandler) HandleListByAuthor(c *fiber.Ctx) error {
	authorID, err := c.ParamsInt("authorId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid author id"})
	}

	page, size := pageParams(c)
	articles, total, err := h.articleService.ListByAuthor(uint(authorID), page, size)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(models.NewPage(articles, page, size, total))
}

// HandleGetByID returns a single article. Fetching an article counts a view.
func (h *ArticleHandler) HandleGetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid article id"})
	}

	article, err := h.articleService.GetByID(uint(id))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(article)
}

// HandleUpdate handles article updates by the author or an admin.
func (h *ArticleHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid article id"})
	}

	req, ok := h.parseRequest(c)
	if !ok {
		return nil
	}

	updated := models.Article{
		Title:    req.Title,
		Content:  req.Content,
		ImageURL: req.ImageURL,
		Status:   req.Status,
	}

	article, err := h.articleService.Update(uint(id), &updated, req.TagIDs, middleware.PrincipalFrom(c))
	if err != nil {
		log.Printf("Error updating article %d: %v", id, err)
		return writeError(c, err)
	}
	return c.JSON(article)
}

// HandleDelete handles article deletion by the author or an admin.
func (h *ArticleHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid article id"})
	}

	if err := h.articleService.Delete(uint(id), middleware.PrincipalFrom(c)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parseRequest decodes and validates an article request body. On failure it
// writes the error response itself and reports ok=false.
func (h *ArticleHandler) parseRequest(c *fiber.Ctx) (*ArticleRequest, bool) {
	var req ArticleRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing article request body: %v", err)
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
		return nil, false
	}
	if err := h.validate.Struct(req); err != nil {
		_ = writeValidationError(c, err)
		return nil, false
	}
	if req.Status != "" && !req.Status.Valid() {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid article status",
		})
		return nil, false
	}
	return &req, true
}
