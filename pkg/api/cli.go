package api

import (
	"errors"

	"github.com/travigo/modeadvisor/pkg/advisor"
	"github.com/travigo/modeadvisor/pkg/api/routes"
	"github.com/travigo/modeadvisor/pkg/config"
	"github.com/travigo/modeadvisor/pkg/elastic_client"
	"github.com/travigo/modeadvisor/pkg/history"
	"github.com/travigo/modeadvisor/pkg/redis_client"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the trip advice web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
					&cli.StringFlag{
						Name:  "history",
						Value: "memory",
						Usage: "search history store: memory, mongodb or sqlite",
					},
					&cli.BoolFlag{
						Name:  "history-queue",
						Usage: "publish searches to the redis history queue instead of storing them inline",
					},
				},
				Action: func(c *cli.Context) error {
					advisorConfig, err := config.Load()
					if err != nil {
						return err
					}

					if err := redis_client.Connect(c.Bool("history-queue")); err != nil {
						return err
					}
					if err := elastic_client.Connect(false); err != nil {
						return err
					}
					defer elastic_client.WaitUntilQueueEmpty()

					store, err := history.NewStore(c.String("history"))
					if err != nil {
						return err
					}

					tripAdvisor, err := advisor.NewFromConfig(advisorConfig)
					if err != nil {
						return err
					}

					if c.Bool("history-queue") {
						queueRecorder, err := history.NewQueueRecorder(redis_client.QueueConnection)
						if err != nil {
							return err
						}
						tripAdvisor.Observers = append(tripAdvisor.Observers, queueRecorder)
					} else {
						tripAdvisor.Observers = append(tripAdvisor.Observers, history.NewRecorder(store))
					}

					if elastic_client.Client != nil {
						tripAdvisor.Observers = append(tripAdvisor.Observers, elastic_client.NewAdviceEvents())
					}

					suggester, ok := tripAdvisor.Places.(routes.Suggester)
					if !ok {
						return errors.New("place resolver does not support suggestions")
					}

					server := &Server{
						Adviser:   tripAdvisor,
						Suggester: suggester,
						History:   store,
					}

					return server.Listen(c.String("listen"))
				},
			},
		},
	}
}
