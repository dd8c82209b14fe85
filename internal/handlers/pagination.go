package handlers

import "github.com/gofiber/fiber/v2"

// pageParams reads the page/size query parameters with the same defaults and
// bounds on every list endpoint.
func pageParams(c *fiber.Ctx) (page, size int) {
	page = c.QueryInt("page", 0)
	size = c.QueryInt("size", 10)
	if page < 0 {
		page = 0
	}
	if size < 1 || size > 100 {
		size = 10
	}
	return page, size
}
