// File: localbooker/cron/worker.go
package cron

import (
	"context"
	"fmt"
	"log"
	"time"

	"localbooker/config"
	"localbooker/services/booking"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

const TypeAvailabilitySweep = "availability:sweep"

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSweepDB,
	}
}

// InitSweepWorker runs the availability sweep worker and its periodic
// scheduler in the background. The sweep interval comes from configuration;
// the sweep itself never fails a task on a single bad record.
func InitSweepWorker(engine *booking.Engine) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			// Sweeps are cheap and idempotent; one at a time is plenty.
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeAvailabilitySweep, handleSweepTask(engine))

	go monitorRedisConnection()
	go runScheduler()

	// Start async worker with retry logic
	go func() {
		log.Println("[SweepWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[SweepWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[SweepWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

// runScheduler enqueues the sweep task on the configured interval.
func runScheduler() {
	interval := config.AppConfig.SweepIntervalMin
	if interval <= 0 {
		interval = 5
	}
	scheduler := asynq.NewScheduler(redisOpts(), &asynq.SchedulerOpts{})

	spec := fmt.Sprintf("@every %dm", interval)
	task := asynq.NewTask(TypeAvailabilitySweep, nil)
	if _, err := scheduler.Register(spec, task); err != nil {
		log.Fatalf("[SweepWorker] failed to register sweep schedule: %v", err)
	}
	if err := scheduler.Run(); err != nil {
		log.Fatalf("[SweepWorker] scheduler stopped: %v", err)
	}
}

func handleSweepTask(engine *booking.Engine) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		n, err := engine.RunSweep(ctx)
		if err != nil {
			log.Printf("[SweepHandler] sweep failed: %v", err)
			return err
		}
		if n > 0 {
			log.Printf("[SweepHandler] reconciled %d records", n)
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSweepDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[SweepWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
