package api

import (
	"github.com/impulsehq/impulse/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func getAuthorAnalytics(c *fiber.Ctx) error {
	summary, err := services.GetAuthorAnalytics(c.Params("authorId"))
	if err != nil {
		return err
	}

	return c.JSON(summary)
}

func listAuthorPostLikes(c *fiber.Ctx) error {
	items, err := services.ListAuthorPostLikes(c.Params("authorId"))
	if err != nil {
		return err
	}

	return c.JSON(items)
}
