package api

import (
	"github.com/impulsehq/impulse/pkg/internal/http/exts"
	"github.com/impulsehq/impulse/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func createComment(c *fiber.Ctx) error {
	id, err := postIDFromParams(c)
	if err != nil {
		return err
	}

	var data struct {
		Content string `json:"content" validate:"required"`
		Author  string `json:"author"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err := services.NewComment(id, data.Content, data.Author)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

func listPostComments(c *fiber.Ctx) error {
	id, err := postIDFromParams(c)
	if err != nil {
		return err
	}

	items, err := services.ListPostComments(id)
	if err != nil {
		return err
	}

	return c.JSON(items)
}
