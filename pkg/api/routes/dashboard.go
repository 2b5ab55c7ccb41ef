package routes

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/travigo/modeadvisor/pkg/history"
)

func DashboardRouter(router fiber.Router, store history.Store) {
	router.Get("/", func(c *fiber.Ctx) error {
		dashboard, err := history.LoadDashboard(c.UserContext(), store, c.Query("feature"))

		if errors.Is(err, history.ErrUnknownDashboardFilter) {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Parameter feature should be public, cab, walk or both",
			})
		} else if err != nil {
			c.SendStatus(fiber.StatusInternalServerError)
			return c.JSON(fiber.Map{
				"error": "Could not build dashboard",
			})
		}

		return c.JSON(dashboard)
	})
}
