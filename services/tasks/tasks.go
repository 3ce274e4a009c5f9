package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/vvladislovv/buitifal/models"
	"github.com/vvladislovv/buitifal/utils"
)

const (
	TypeSendReminder        = "reservation:reminder"
	TypeCompleteReservation = "reservation:complete"
)

// ReminderPayload carries the reservation a reminder is due for.
type ReminderPayload struct {
	ReservationID string `json:"reservationId"`
}

// CompletePayload carries the reservation whose visit window has ended.
type CompletePayload struct {
	ReservationID string `json:"reservationId"`
}

// NewReminderTask builds the reminder task scheduled at fireAt.
func NewReminderTask(reservationID string, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	payload, err := json.Marshal(ReminderPayload{ReservationID: reservationID})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal reminder payload: %w", err)
	}
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.MaxRetry(3),
	}
	return asynq.NewTask(TypeSendReminder, payload), opts, nil
}

// NewCompleteTask builds the completion task scheduled at fireAt.
func NewCompleteTask(reservationID string, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	payload, err := json.Marshal(CompletePayload{ReservationID: reservationID})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal completion payload: %w", err)
	}
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.MaxRetry(5),
	}
	return asynq.NewTask(TypeCompleteReservation, payload), opts, nil
}

// AsynqScheduler enqueues the follow-up tasks of a committed reservation: a
// reminder ahead of the visit and the confirmed-to-completed transition at
// its end.
type AsynqScheduler struct {
	Client       *asynq.Client
	ReminderLead time.Duration
}

func (s *AsynqScheduler) ScheduleReservationTasks(ctx context.Context, r *models.Reservation) error {
	log := utils.GetLogger()

	start, err := r.StartTime(time.Local)
	if err != nil {
		return err
	}
	end, err := r.EndTime(time.Local)
	if err != nil {
		return err
	}

	remindAt := start.Add(-s.ReminderLead)
	if remindAt.After(time.Now()) {
		task, opts, err := NewReminderTask(r.ID, remindAt)
		if err != nil {
			return err
		}
		if _, err := s.Client.EnqueueContext(ctx, task, opts...); err != nil {
			return fmt.Errorf("failed to enqueue reminder task: %w", err)
		}
		log.Debug("reminder task enqueued",
			zap.String("reservationId", r.ID),
			zap.Time("fireAt", remindAt))
	} else {
		// Too close to the visit for a useful reminder.
		log.Debug("skipping reminder, fire time already past",
			zap.String("reservationId", r.ID))
	}

	task, opts, err := NewCompleteTask(r.ID, end)
	if err != nil {
		return err
	}
	if _, err := s.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue completion task: %w", err)
	}
	log.Debug("completion task enqueued",
		zap.String("reservationId", r.ID),
		zap.Time("fireAt", end))
	return nil
}
