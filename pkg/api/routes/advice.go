package routes

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/rs/zerolog/log"
	"github.com/travigo/modeadvisor/pkg/advisor"
	"github.com/travigo/modeadvisor/pkg/ctdf"
	"github.com/travigo/modeadvisor/pkg/geocoder"
)

type Adviser interface {
	Advise(ctx context.Context, query ctdf.TripQuery) (*ctdf.TripAdvice, error)
}

func AdviceRouter(router fiber.Router, adviser Adviser) {
	router.Post("/", func(c *fiber.Ctx) error {
		return postAdvice(c, adviser)
	})
}

func postAdvice(c *fiber.Ctx, adviser Adviser) error {
	var query ctdf.TripQuery
	if err := c.BodyParser(&query); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Request body should be a trip query",
		})
	}

	advice, err := adviser.Advise(c.UserContext(), query)

	var geoError *geocoder.GeoError
	switch {
	case errors.As(err, &geoError):
		c.SendStatus(fiber.StatusUnprocessableEntity)
		return c.JSON(fiber.Map{
			"error": geoError.Message,
		})
	case errors.Is(err, advisor.ErrMissingPlaces), errors.Is(err, advisor.ErrUnknownFeature):
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	case err != nil:
		log.Error().Err(err).Msg("Trip advice failed")

		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Could not advise this trip",
		})
	}

	groups := []string{"basic"}
	if c.QueryBool("detail") {
		groups = append(groups, "detailed")
	}

	adviceReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: groups,
	}, advice)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce TripAdvice",
		})
	}

	return c.JSON(adviceReduced)
}
