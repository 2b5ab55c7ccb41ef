package routes

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/travigo/modeadvisor/pkg/history"
)

func HistoryRouter(router fiber.Router, store history.Store) {
	router.Get("/", func(c *fiber.Ctx) error {
		return listHistory(c, store)
	})
	router.Delete("/:id", func(c *fiber.Ctx) error {
		return deleteHistory(c, store)
	})
	router.Delete("/", func(c *fiber.Ctx) error {
		return clearHistory(c, store)
	})
}

func listHistory(c *fiber.Ctx, store history.Store) error {
	records, err := store.List(c.UserContext(), "", history.RecentLimit)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Could not load search history",
		})
	}

	return c.JSON(records)
}

func deleteHistory(c *fiber.Ctx, store history.Store) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Parameter id should be an integer",
		})
	}

	if err := store.Delete(c.UserContext(), id); err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Could not delete search",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func clearHistory(c *fiber.Ctx, store history.Store) error {
	if err := store.Clear(c.UserContext()); err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Could not clear search history",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
