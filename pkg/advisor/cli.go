package advisor

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/kr/pretty"
	"github.com/travigo/modeadvisor/pkg/config"
	"github.com/travigo/modeadvisor/pkg/ctdf"
	"github.com/travigo/modeadvisor/pkg/geocoder"
	"github.com/travigo/modeadvisor/pkg/redis_client"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "advise",
		Usage: "Advise transport modes for a single trip",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "source",
				Usage:    "free text source place",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "destination",
				Usage:    "free text destination place",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "feature",
				Value: string(ctdf.FeaturePublic),
				Usage: "public, cab or walk",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "print the advice as a Go value instead of JSON",
			},
		},
		Action: func(c *cli.Context) error {
			advisorConfig, err := config.Load()
			if err != nil {
				return err
			}

			if err := redis_client.Connect(false); err != nil {
				return err
			}

			advisor, err := NewFromConfig(advisorConfig)
			if err != nil {
				return err
			}

			advice, err := advisor.Advise(c.Context, ctdf.TripQuery{
				Source:      c.String("source"),
				Destination: c.String("destination"),
				Feature:     ctdf.Feature(c.String("feature")),
			})

			var geoError *geocoder.GeoError
			if errors.As(err, &geoError) || errors.Is(err, ErrMissingPlaces) {
				return cli.Exit(err.Error(), 2)
			} else if err != nil {
				return err
			}

			if c.Bool("pretty") {
				pretty.Println(advice)
				return nil
			}

			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(advice); err != nil {
				return fmt.Errorf("encoding advice: %w", err)
			}

			return nil
		},
	}
}
