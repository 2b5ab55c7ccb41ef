package routes

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

type Suggester interface {
	Suggest(ctx context.Context, query string) []string
}

func SuggestRouter(router fiber.Router, suggester Suggester) {
	router.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(suggester.Suggest(c.UserContext(), c.Query("q")))
	})
}
