package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"cleanslate/models"

	"github.com/hibiken/asynq"
)

const TypeSendReminder = "reminder:send"

func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		// One reminder per booking, even if it is confirmed again after a conflict retry.
		asynq.TaskID("reminder:" + payload.BookingID),
		asynq.MaxRetry(3),
	}
	return task, opts, nil
}

// ReminderScheduler schedules a reminder for a confirmed booking.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, payload models.ReminderPayload, fireAt time.Time) error
}

// AsynqReminderScheduler enqueues reminder tasks on the Redis backed asynq queue.
type AsynqReminderScheduler struct {
	client *asynq.Client
}

func NewAsynqReminderScheduler(client *asynq.Client) *AsynqReminderScheduler {
	return &AsynqReminderScheduler{client: client}
}

func (s *AsynqReminderScheduler) ScheduleReminder(ctx context.Context, payload models.ReminderPayload, fireAt time.Time) error {
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}
	if _, err := s.client.EnqueueContext(ctx, task, opts...); err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return nil
		}
		return fmt.Errorf("failed to enqueue reminder for booking %s: %w", payload.BookingID, err)
	}
	return nil
}

// NopReminderScheduler drops reminders; used when no queue is configured.
type NopReminderScheduler struct{}

func (NopReminderScheduler) ScheduleReminder(context.Context, models.ReminderPayload, time.Time) error {
	return nil
}

// ScheduledReminder is one call captured by RecordingReminderScheduler.
type ScheduledReminder struct {
	Payload models.ReminderPayload
	FireAt  time.Time
}

// RecordingReminderScheduler remembers every scheduled reminder.
type RecordingReminderScheduler struct {
	mu        sync.Mutex
	Reminders []ScheduledReminder
}

func (s *RecordingReminderScheduler) ScheduleReminder(_ context.Context, payload models.ReminderPayload, fireAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Reminders = append(s.Reminders, ScheduledReminder{Payload: payload, FireAt: fireAt})
	return nil
}

func (s *RecordingReminderScheduler) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Reminders)
}
