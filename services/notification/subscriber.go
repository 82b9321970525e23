package notification

import (
	"context"
	"encoding/json"

	"cleanslate/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Subscribe streams change events from Redis until ctx is cancelled.
// Malformed payloads are logged and skipped.
func Subscribe(ctx context.Context, client *redis.Client, logger *zap.Logger, handle func(models.ChangeEvent)) error {
	sub := client.Subscribe(ctx, ChangesChannel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return err
	}

	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event models.ChangeEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					logger.Warn("dropping malformed change event", zap.Error(err))
					continue
				}
				handle(event)
			}
		}
	}()
	return nil
}
