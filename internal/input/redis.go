package input

import (
	"context"
	"errors"
	"flowgger/internal/config"
	"flowgger/internal/global"
	"flowgger/internal/logctx"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Pulls payloads from a Redis list using the reliable queue pattern: each
// worker atomically moves an item onto its own in-progress list, decodes and
// enqueues it, then removes it. Items stranded on an in-progress list by a
// crash are pushed back at startup.
type RedisInput struct {
	cfg  config.InputConfig
	pipe Pipeline
}

func (in *RedisInput) Run(ctx context.Context) (err error) {
	client := redis.NewClient(&redis.Options{
		Addr: in.cfg.RedisConnect,
	})
	defer client.Close()

	if err = client.Ping(ctx).Err(); err != nil {
		err = fmt.Errorf("unable to connect to the Redis server [%s]: %v", in.cfg.RedisConnect, err)
		return
	}
	logctx.LogEvent(ctx, global.VerbosityStandard, global.InfoLog,
		"Connected to Redis [%s], pulling messages from key [%s]\n",
		in.cfg.RedisConnect, in.cfg.RedisQueueKey)

	var wg sync.WaitGroup
	for i := 0; i < in.cfg.RedisThreads; i++ {
		wg.Add(1)
		workerIndex := i
		workerCtx := logctx.AppendCtxTag(ctx, global.NSWorker)
		go func() {
			defer wg.Done()
			in.runWorker(workerCtx, client, workerIndex)
		}()
	}
	wg.Wait()
	return
}

func (in *RedisInput) runWorker(ctx context.Context, client *redis.Client, workerIndex int) {
	queueKey := in.cfg.RedisQueueKey
	tmpKey := fmt.Sprintf("%s.tmp.%d", queueKey, workerIndex)

	// recover items a previous run left in progress
	for {
		moved := client.RPopLPush(ctx, tmpKey, queueKey)
		if moved.Err() != nil {
			break
		}
	}

	for {
		if ctx.Err() != nil {
			return
		}

		line, err := client.BRPopLPush(ctx, queueKey, tmpKey, 0).Result()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if errors.Is(err, redis.Nil) {
				continue
			}
			logctx.LogEvent(ctx, global.VerbosityStandard, global.ErrorLog,
				"Redis protocol error in BRPOPLPUSH: %v\n", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
			continue
		}

		if !in.pipe.handlePayload(ctx, []byte(line)) {
			// payload stays on the in-progress list for the next run
			return
		}

		if err := client.LRem(ctx, tmpKey, 1, line).Err(); err != nil {
			logctx.LogEvent(ctx, global.VerbosityStandard, global.ErrorLog,
				"Redis protocol error in LREM: %v\n", err)
		}
	}
}
