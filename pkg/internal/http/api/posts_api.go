package api

import (
	"github.com/impulsehq/impulse/pkg/internal/database"
	"github.com/impulsehq/impulse/pkg/internal/http/exts"
	"github.com/impulsehq/impulse/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func postIDFromParams(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("postId")
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid post id")
	}
	return uint(id), nil
}

func createPost(c *fiber.Ctx) error {
	var data struct {
		Title   string   `json:"title" validate:"required"`
		Content string   `json:"content" validate:"required"`
		Tags    []string `json:"tags"`
		Author  *string  `json:"author"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err := services.NewPost(data.Title, data.Content, data.Tags, data.Author)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

func getPost(c *fiber.Ctx) error {
	id, err := postIDFromParams(c)
	if err != nil {
		return err
	}

	item, err := services.GetPost(database.C, id)
	if err != nil {
		return err
	}

	return c.JSON(item)
}

func listPost(c *fiber.Ctx) error {
	items, err := services.ListPost(database.C)
	if err != nil {
		return err
	}

	return c.JSON(items)
}

func searchPost(c *fiber.Ctx) error {
	probe := c.Query("q")
	if len(probe) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "query parameter (q) is required")
	}

	items, err := services.ListPost(services.FilterPostWithFuzzySearch(database.C, probe))
	if err != nil {
		return err
	}

	return c.JSON(items)
}

func listPostByTag(c *fiber.Ctx) error {
	items, err := services.ListPost(services.FilterPostWithTag(database.C, c.Params("tag")))
	if err != nil {
		return err
	}

	return c.JSON(items)
}

func listPostByAuthor(c *fiber.Ctx) error {
	items, err := services.ListPost(services.FilterPostWithAuthor(database.C, c.Params("authorId")))
	if err != nil {
		return err
	}

	return c.JSON(items)
}

func editPost(c *fiber.Ctx) error {
	id, err := postIDFromParams(c)
	if err != nil {
		return err
	}

	var data struct {
		Title   *string   `json:"title"`
		Content *string   `json:"content"`
		Tags    *[]string `json:"tags"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err := services.EditPost(id, services.PostUpdate{
		Title:   data.Title,
		Content: data.Content,
		Tags:    data.Tags,
	})
	if err != nil {
		return err
	}

	return c.JSON(item)
}

func deletePost(c *fiber.Ctx) error {
	id, err := postIDFromParams(c)
	if err != nil {
		return err
	}

	if err := services.DeletePost(id); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Post deleted successfully"})
}

func likePost(c *fiber.Ctx) error {
	id, err := postIDFromParams(c)
	if err != nil {
		return err
	}

	// The like body is optional; it only carries the author reference used
	// by the single_like feature.
	var data struct {
		Author string `json:"author"`
	}
	_ = c.BodyParser(&data)

	count, err := services.LikePost(id, data.Author)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Post liked successfully",
		"likes":   count,
	})
}
