package api

import (
	"github.com/gofiber/fiber/v2"
)

func MapAPIs(app *fiber.App, baseURL string) {
	api := app.Group(baseURL).Name("API")
	{
		posts := api.Group("/posts").Name("Posts API")
		{
			posts.Post("/", createPost)
			posts.Get("/", listPost)
			posts.Get("/search", searchPost)
			posts.Get("/tag/:tag", listPostByTag)
			posts.Get("/user/:authorId", listPostByAuthor)
			posts.Get("/likes/:authorId", listAuthorPostLikes)
			posts.Get("/:postId", getPost)
			posts.Put("/:postId", editPost)
			posts.Delete("/:postId", deletePost)
			posts.Post("/:postId/like", likePost)
			posts.Post("/:postId/comment", createComment)
			posts.Get("/:postId/comments", listPostComments)
		}

		api.Get("/analytics/user/:authorId", getAuthorAnalytics)
	}
}
