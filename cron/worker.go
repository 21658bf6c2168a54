package cron

import (
	"context"
	"log"
	"time"

	"greengarden/config"
	"greengarden/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// TurnWriter persists one chat turn.
type TurnWriter interface {
	RecordTurn(ctx context.Context, sessionID, userText, botText string) error
}

// QueueRedisOpt is the asynq connection shared by the worker and the enqueueing client.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitTurnWorker runs the conversation recording worker in background.
// The returned server is shut down by the caller.
func InitTurnWorker(writer TurnWriter) *asynq.Server {
	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeRecordTurn, handleRecordTurnTask(writer))

	go monitorRedisConnection()

	go func() {
		log.Println("[TurnWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[TurnWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[TurnWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
	return srv
}

func handleRecordTurnTask(writer TurnWriter) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseRecordTurnTask(task)
		if err != nil {
			log.Printf("[TurnHandler] Invalid payload: %v", err)
			return asynq.SkipRetry
		}
		if p.SessionID == "" {
			log.Printf("[TurnHandler] Dropping turn without session id")
			return nil
		}

		if err := writer.RecordTurn(ctx, p.SessionID, p.UserMessage, p.BotResponse); err != nil {
			log.Printf("[TurnHandler] Failed to record turn for %s: %v", p.SessionID, err)
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[TurnWorker] Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
