package history

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/travigo/modeadvisor/pkg/consumer"
	"github.com/travigo/modeadvisor/pkg/redis_client"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Stores trip search history",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "consume the history queue into a store",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "store",
						Value: "sqlite",
						Usage: "history store: memory, mongodb or sqlite",
					},
					&cli.StringFlag{
						Name:  "stats-listen",
						Value: ":3333",
						Usage: "address for the queue stats server",
					},
				},
				Action: func(c *cli.Context) error {
					if err := redis_client.Connect(true); err != nil {
						return err
					}

					store, err := NewStore(c.String("store"))
					if err != nil {
						return err
					}

					redisConsumer := consumer.RedisConsumer{
						QueueName:       QueueName,
						NumberConsumers: 2,
						BatchSize:       20,
						Timeout:         2 * time.Second,
						Consumer:        NewBatchConsumer(store),
						StatsListen:     c.String("stats-listen"),
					}
					if err := redisConsumer.Setup(); err != nil {
						return err
					}

					signals := make(chan os.Signal, 1)
					signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
					defer signal.Stop(signals)

					<-signals // wait for signal
					go func() {
						<-signals // hard exit on second signal (in case shutdown gets stuck)
						os.Exit(1)
					}()

					<-redis_client.QueueConnection.StopAllConsuming() // wait for all Consume() calls to finish

					return nil
				},
			},
		},
	}
}
