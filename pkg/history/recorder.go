package history

import (
	"context"
	"encoding/json"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
	"github.com/travigo/modeadvisor/pkg/ctdf"
)

const QueueName = "history-queue"

// Recorder writes every observed attempt straight to a Store
type Recorder struct {
	Store Store
	Now   func() time.Time
}

func NewRecorder(store Store) *Recorder {
	return &Recorder{Store: store, Now: time.Now}
}

func (r *Recorder) Observe(ctx context.Context, query ctdf.TripQuery, advice *ctdf.TripAdvice, err error) {
	record, recordErr := NewRecord(query, advice, r.Now())
	if recordErr != nil {
		log.Error().Err(recordErr).Msg("Failed to build history record")
		return
	}

	if addErr := r.Store.Add(ctx, record); addErr != nil {
		log.Error().Err(addErr).Str("source", query.Source).Str("destination", query.Destination).Msg("Failed to record search")
	}
}

// QueueRecorder publishes attempts to the history queue for a BatchConsumer to store
type QueueRecorder struct {
	Queue rmq.Queue
	Now   func() time.Time
}

func NewQueueRecorder(connection rmq.Connection) (*QueueRecorder, error) {
	queue, err := connection.OpenQueue(QueueName)
	if err != nil {
		return nil, err
	}

	return &QueueRecorder{Queue: queue, Now: time.Now}, nil
}

func (r *QueueRecorder) Observe(ctx context.Context, query ctdf.TripQuery, advice *ctdf.TripAdvice, err error) {
	record, recordErr := NewRecord(query, advice, r.Now())
	if recordErr != nil {
		log.Error().Err(recordErr).Msg("Failed to build history record")
		return
	}

	payload, marshalErr := json.Marshal(record)
	if marshalErr != nil {
		log.Error().Err(marshalErr).Msg("Failed to encode history record")
		return
	}

	if publishErr := r.Queue.PublishBytes(payload); publishErr != nil {
		log.Error().Err(publishErr).Str("queue", QueueName).Msg("Failed to publish history record")
	}
}

type BatchConsumer struct {
	Store Store
}

func NewBatchConsumer(store Store) *BatchConsumer {
	return &BatchConsumer{Store: store}
}

func (c *BatchConsumer) Consume(batch rmq.Deliveries) {
	for _, delivery := range batch {
		var record Record
		if err := json.Unmarshal([]byte(delivery.Payload()), &record); err != nil {
			log.Error().Err(err).Msg("Failed to decode history record")

			if err := delivery.Reject(); err != nil {
				log.Error().Err(err).Msg("Failed to reject history record")
			}
			continue
		}

		if err := c.Store.Add(context.Background(), &record); err != nil {
			log.Error().Err(err).Msg("Failed to store history record")

			if err := delivery.Push(); err != nil {
				log.Error().Err(err).Msg("Failed to push history record")
			}
			continue
		}

		if err := delivery.Ack(); err != nil {
			log.Error().Err(err).Msg("Failed to ack history record")
		}
	}
}
