package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cleanslate/config"
	"cleanslate/models"
	"cleanslate/services/notification"
	"cleanslate/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// QueueRedisOpt is the asynq connection shared by the client and the worker.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitReminderWorker runs the asynq server in the background and returns it
// so the caller can shut it down.
func InitReminderWorker(ctx context.Context, publisher notification.Publisher, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger.Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, HandleReminderTask(publisher, logger))

	go monitorRedisConnection(ctx, logger)

	go func() {
		logger.Info("starting reminder worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("reminder worker failed to start",
				zap.Int("attempt", attempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("reminder worker giving up; reminders will not fire")
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Duration(attempts*2) * time.Second):
			}
		}
	}()
	return srv
}

// HandleReminderTask turns a due reminder into a booking.reminder change event.
func HandleReminderTask(publisher notification.Publisher, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid reminder payload", zap.Error(err))
			return fmt.Errorf("invalid reminder payload: %v: %w", err, asynq.SkipRetry)
		}

		logger.Info("triggering booking reminder",
			zap.String("bookingId", p.BookingID),
			zap.String("workerId", p.WorkerID),
			zap.String("startsAt", p.StartsAt))

		event := notification.NewEvent(models.EventBookingReminder, "booking", p.BookingID, map[string]string{
			"workerId":   p.WorkerID,
			"customerId": p.CustomerID,
			"startsAt":   p.StartsAt,
			"title":      p.Title,
			"body":       p.Body,
		})
		if err := publisher.Publish(ctx, event); err != nil {
			logger.Error("failed to publish reminder", zap.Error(err))
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings the queue database periodically to surface outages in the logs.
func monitorRedisConnection(ctx context.Context, logger *zap.Logger) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer client.Close()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil {
				logger.Warn("reminder queue redis connection lost", zap.Error(err))
			}
		}
	}
}
