package output

import (
	"context"
	"flowgger/internal/config"
	"flowgger/internal/global"
	"flowgger/internal/logctx"
	"flowgger/internal/metrics"
	"sync"
	"time"

	"github.com/IBM/sarama"
)

// kafkaProducer is the slice of the sarama client the workers use
type kafkaProducer interface {
	SendMessages(msgs []*sarama.ProducerMessage) error
	Close() error
}

// Ships payload batches to a Kafka topic. Each worker owns a producer and a
// coalescing buffer; a batch is flushed when it reaches kafka_coalesce
// payloads. Failed sends are retried with exponential backoff until
// kafka_timeout elapses, then the batch is dropped: the pipeline favors
// liveness over durability.
type KafkaOutput struct {
	cfg         config.OutputConfig
	deps        Deps
	newProducer func() (kafkaProducer, error)
	metrics     *sinkMetrics
}

func NewKafkaOutput(cfg config.OutputConfig, deps Deps) (new *KafkaOutput) {
	new = &KafkaOutput{
		cfg:     cfg,
		deps:    deps,
		metrics: newSinkMetrics("Kafka"),
	}
	new.newProducer = func() (producer kafkaProducer, err error) {
		producer, err = sarama.NewSyncProducer(cfg.KafkaBrokers, saramaConfig(cfg))
		return
	}
	return
}

func saramaConfig(cfg config.OutputConfig) (sc *sarama.Config) {
	sc = sarama.NewConfig()
	sc.ClientID = global.ProgBaseName
	sc.Producer.Return.Successes = true
	sc.Producer.Timeout = cfg.KafkaTimeout
	// retry policy lives here, not in the client, so attempts stay observable
	sc.Producer.Retry.Max = 0
	switch cfg.KafkaAcks {
	case config.AcksNone:
		sc.Producer.RequiredAcks = sarama.NoResponse
	case config.AcksLeader:
		sc.Producer.RequiredAcks = sarama.WaitForLocal
	case config.AcksAll:
		sc.Producer.RequiredAcks = sarama.WaitForAll
	}
	return
}

func (o *KafkaOutput) Metrics() metrics.Collector {
	return o.metrics
}

func (o *KafkaOutput) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for i := 0; i < o.cfg.KafkaThreads; i++ {
		wg.Add(1)
		workerCtx := logctx.AppendCtxTag(ctx, global.NSWorker)
		go func() {
			defer wg.Done()
			o.runWorker(workerCtx)
		}()
	}
	wg.Wait()
}

func (o *KafkaOutput) runWorker(ctx context.Context) {
	producer, err := o.newProducer()
	if err != nil {
		logctx.LogEvent(ctx, global.VerbosityStandard, global.ErrorLog,
			"unable to connect to Kafka: %v\n", err)
		return
	}
	defer producer.Close()

	batch := make([][]byte, 0, o.cfg.KafkaCoalesce)
	for {
		payload, ok := o.deps.Queue.Get(ctx)
		if !ok {
			// shutdown: push out whatever is buffered
			o.flush(ctx, producer, batch)
			return
		}
		batch = append(batch, o.deps.Framer.Frame(payload))
		if len(batch) >= o.cfg.KafkaCoalesce {
			o.flush(ctx, producer, batch)
			batch = batch[:0]
		}
	}
}

// Sends one batch, retrying with exponential backoff within the produce deadline.
// Batches are never split or reordered, retry lives only at this level.
func (o *KafkaOutput) flush(ctx context.Context, producer kafkaProducer, batch [][]byte) {
	if len(batch) == 0 {
		return
	}

	msgs := make([]*sarama.ProducerMessage, 0, len(batch))
	for _, payload := range batch {
		msgs = append(msgs, &sarama.ProducerMessage{
			Topic: o.cfg.KafkaTopic,
			Value: sarama.ByteEncoder(payload),
		})
	}

	deadline := time.Now().Add(o.cfg.KafkaTimeout)
	delay := o.cfg.RecoveryDelayInit
	for {
		err := producer.SendMessages(msgs)
		if err == nil {
			o.metrics.Batches.Add(1)
			o.metrics.Writes.Add(uint64(len(batch)))
			return
		}
		if time.Now().Add(delay).After(deadline) {
			logctx.LogEvent(ctx, global.VerbosityStandard, global.ErrorLog,
				"dropping a batch of %d payloads, Kafka not responsive: %v\n", len(batch), err)
			o.metrics.Drops.Add(uint64(len(batch)))
			return
		}
		logctx.LogEvent(ctx, global.VerbosityProgress, global.WarnLog,
			"Kafka send failed, retrying in %s: %v\n", delay, err)
		o.metrics.Retries.Add(1)

		select {
		case <-ctx.Done():
			// one last try below the deadline already happened, give up
			o.metrics.Drops.Add(uint64(len(batch)))
			return
		case <-time.After(delay):
		}
		delay *= 2
		if delay > o.cfg.RecoveryDelayMax {
			delay = o.cfg.RecoveryDelayMax
		}
	}
}
