package cron

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"

	"github.com/vvladislovv/buitifal/config"
	reservationRepo "github.com/vvladislovv/buitifal/database/repository/reservation"
	"github.com/vvladislovv/buitifal/models"
	"github.com/vvladislovv/buitifal/services/tasks"
)

// InitReservationWorker runs the async worker in background. It processes the
// scheduled follow-ups of committed reservations: the reminder flag ahead of
// the visit and the confirmed-to-completed transition at its end.
func InitReservationWorker(repo reservationRepo.ReservationRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: config.AppConfig.WorkerConcurrency,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(repo))
	mux.HandleFunc(tasks.TypeCompleteReservation, handleCompleteTask(repo))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[ReservationWorker] 🚀 Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReservationWorker] ❌ Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReservationWorker] ❗ Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(repo reservationRepo.ReservationRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] 🔴 Invalid payload: %v", err)
			return err
		}

		r, err := repo.GetByID(ctx, p.ReservationID)
		if errors.Is(err, reservationRepo.ErrNotFound) {
			log.Printf("[ReminderHandler] ⚠️ Reservation %s no longer exists, dropping reminder", p.ReservationID)
			return nil
		}
		if err != nil {
			return err
		}

		// Cancelled or already-reminded reservations get no reminder.
		if r.Status != models.StatusConfirmed || r.ReminderSent {
			return nil
		}

		log.Printf("[ReminderHandler] ⏰ Reminder due for reservation %s (%s %s)", r.ID, r.Date, models.ClockTime(r.Start))
		return repo.MarkReminderSent(ctx, r.ID)
	}
}

func handleCompleteTask(repo reservationRepo.ReservationRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.CompletePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[CompleteHandler] 🔴 Invalid payload: %v", err)
			return err
		}

		r, err := repo.GetByID(ctx, p.ReservationID)
		if errors.Is(err, reservationRepo.ErrNotFound) {
			log.Printf("[CompleteHandler] ⚠️ Reservation %s no longer exists, dropping task", p.ReservationID)
			return nil
		}
		if err != nil {
			return err
		}

		if r.Status != models.StatusConfirmed {
			return nil
		}

		log.Printf("[CompleteHandler] ✅ Completing reservation %s", r.ID)
		return repo.UpdateStatus(ctx, r.ID, models.StatusCompleted)
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
			log.Printf("[ReservationWorker] ⚠️ Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
